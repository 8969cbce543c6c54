package chat

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/arthur-debert/mcgen/pkg/errors"
)

// ClickKind enumerates what happens when a run is clicked.
type ClickKind string

const (
	OpenURL        ClickKind = "open_url"
	RunCommand     ClickKind = "run_command"
	SuggestCommand ClickKind = "suggest_command"
	ChangePage     ClickKind = "change_page"
)

// HoverKind enumerates what is shown when a run is hovered.
type HoverKind string

const (
	ShowText   HoverKind = "show_text"
	ShowItem   HoverKind = "show_item"
	ShowEntity HoverKind = "show_entity"
)

// ClickAction is attached to a run inside a click scope. Page is only
// meaningful for ChangePage, Value for every other kind.
type ClickAction struct {
	Kind  ClickKind
	Value string
	Page  int
}

// HoverAction is attached to a run inside a hover scope.
type HoverAction struct {
	Kind  HoverKind
	Value string
}

type actionRecord struct {
	Action string          `json:"action"`
	Value  json.RawMessage `json:"value"`
}

// ParseClickKind resolves a click action name, case-insensitively.
func ParseClickKind(s string) (ClickKind, error) {
	switch k := ClickKind(strings.ToLower(s)); k {
	case OpenURL, RunCommand, SuggestCommand, ChangePage:
		return k, nil
	}
	return "", errors.Markup("unknown click action %q", s)
}

// ParseHoverKind resolves a hover action name, case-insensitively.
func ParseHoverKind(s string) (HoverKind, error) {
	switch k := HoverKind(strings.ToLower(s)); k {
	case ShowText, ShowItem, ShowEntity:
		return k, nil
	}
	return "", errors.Markup("unknown hover action %q", s)
}

// NewClickAction builds a click action from its textual form. change_page
// requires an integer value.
func NewClickAction(kind, value string) (ClickAction, error) {
	k, err := ParseClickKind(kind)
	if err != nil {
		return ClickAction{}, err
	}
	if k == ChangePage {
		page, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return ClickAction{}, errors.Markup("change_page needs an integer page, got %q", value)
		}
		return ClickAction{Kind: k, Page: page}, nil
	}
	return ClickAction{Kind: k, Value: value}, nil
}

// NewHoverAction builds a hover action from its textual form.
func NewHoverAction(kind, value string) (HoverAction, error) {
	k, err := ParseHoverKind(kind)
	if err != nil {
		return HoverAction{}, err
	}
	return HoverAction{Kind: k, Value: value}, nil
}

// Argument returns the value as it appears in markup.
func (a ClickAction) Argument() string {
	if a.Kind == ChangePage {
		return strconv.Itoa(a.Page)
	}
	return a.Value
}

// MarshalJSON emits {"action": kind, "value": ...}; change_page values are
// numbers, all others strings.
func (a ClickAction) MarshalJSON() ([]byte, error) {
	var value interface{} = a.Value
	if a.Kind == ChangePage {
		value = a.Page
	}
	return json.Marshal(struct {
		Action ClickKind   `json:"action"`
		Value  interface{} `json:"value"`
	}{a.Kind, value})
}

// UnmarshalJSON accepts the record produced by MarshalJSON. A quoted page
// number is tolerated for change_page.
func (a *ClickAction) UnmarshalJSON(data []byte) error {
	var rec actionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid click action")
	}
	kind, err := ParseClickKind(rec.Action)
	if err != nil {
		return err
	}
	if kind == ChangePage {
		raw := string(bytes.Trim(rec.Value, `"`))
		page, err := strconv.Atoi(raw)
		if err != nil {
			return errors.Newf(errors.ErrInvalidInput, "change_page value %s is not an integer", rec.Value)
		}
		*a = ClickAction{Kind: kind, Page: page}
		return nil
	}
	var s string
	if err := json.Unmarshal(rec.Value, &s); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "%s value must be a string", kind)
	}
	*a = ClickAction{Kind: kind, Value: s}
	return nil
}

// MarshalJSON emits {"action": kind, "value": text}.
func (a HoverAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Action HoverKind `json:"action"`
		Value  string    `json:"value"`
	}{a.Kind, a.Value})
}

// UnmarshalJSON accepts the record produced by MarshalJSON.
func (a *HoverAction) UnmarshalJSON(data []byte) error {
	var rec actionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid hover action")
	}
	kind, err := ParseHoverKind(rec.Action)
	if err != nil {
		return err
	}
	var s string
	if err := json.Unmarshal(rec.Value, &s); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "%s value must be a string", kind)
	}
	*a = HoverAction{Kind: kind, Value: s}
	return nil
}
