package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/mcgen/pkg/errors"
)

// Table is a titled grid of cells with a header row.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// RenderTable writes t to w. JSON output is a list of objects keyed by
// header.
func RenderTable(w io.Writer, format Format, t Table) error {
	switch format.Resolve(w) {
	case FormatJSON:
		records := make([]map[string]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			rec := make(map[string]string, len(t.Header))
			for i, h := range t.Header {
				if i < len(row) {
					rec[strings.ToLower(h)] = row[i]
				}
			}
			records = append(records, rec)
		}
		return RenderJSON(w, records)
	case FormatTerminal:
		if t.Title != "" {
			fmt.Fprintln(w, pterm.Bold.Sprint(t.Title))
		}
		out, err := pterm.DefaultTable.WithHasHeader().WithData(tableData(t)).Srender()
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to render table")
		}
		fmt.Fprintln(w, out)
	default:
		if t.Title != "" {
			fmt.Fprintln(w, t.Title)
		}
		out, err := pterm.DefaultTable.WithHasHeader().WithData(tableData(t)).Srender()
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to render table")
		}
		fmt.Fprintln(w, pterm.RemoveColorFromString(out))
	}
	return nil
}

func tableData(t Table) pterm.TableData {
	data := pterm.TableData{t.Header}
	return append(data, t.Rows...)
}

// RenderJSON writes v as indented JSON.
func RenderJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode JSON")
	}
	return nil
}

// RenderError formats an error for display, showing the code of coded
// errors.
func RenderError(err error, format Format) string {
	if err == nil {
		return ""
	}

	code := errors.GetErrorCode(err)
	if format == FormatTerminal {
		if code != errors.ErrUnknown {
			return fmt.Sprintf("%s Error [%s]: %s",
				pterm.Error.Prefix.Text,
				pterm.Error.MessageStyle.Sprint(string(code)),
				err.Error())
		}
		return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
	}
	return "Error: " + err.Error()
}

// Success formats a confirmation line.
func Success(format Format, msg string) string {
	if format == FormatTerminal {
		return pterm.Success.Sprint(msg)
	}
	return msg
}
