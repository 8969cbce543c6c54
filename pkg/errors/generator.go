package errors

import (
	"fmt"
	"strings"
	"time"
)

// Markup reports malformed interactive markup. The whole input is rejected.
func Markup(format string, args ...interface{}) *Error {
	return Newf(ErrMarkup, format, args...)
}

// Generator builds a GENERATOR error. String arguments have backticks
// removed so the message can be embedded in code-formatted chat output.
func Generator(format string, args ...interface{}) *Error {
	return Newf(ErrGenerator, format, sanitize(args)...)
}

// TooManyTextures reports a skin source that resolved to more than one texture.
func TooManyTextures(count int) *Error {
	return Newf(ErrTooManyTextures, "expected a single skin texture, found %d", count).
		WithDetail("count", count)
}

// Timeout reports that a render exceeded the caller's budget.
func Timeout(operation string, budget time.Duration) *Error {
	return Newf(ErrGeneratorTimeout, "%s did not finish within %s", sanitizeString(operation), budget).
		WithDetail("operation", operation).
		WithDetail("budget", budget.String())
}

// IsGeneratorFailure reports whether err is a generator error or one of its
// specializations.
func IsGeneratorFailure(err error) bool {
	switch GetErrorCode(err) {
	case ErrGenerator, ErrTooManyTextures, ErrGeneratorTimeout:
		return true
	}
	return false
}

func sanitize(args []interface{}) []interface{} {
	out := make([]interface{}, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case string:
			out[i] = sanitizeString(v)
		case fmt.Stringer:
			out[i] = sanitizeString(v.String())
		default:
			out[i] = a
		}
	}
	return out
}

func sanitizeString(s string) string {
	return strings.ReplaceAll(s, "`", "")
}
