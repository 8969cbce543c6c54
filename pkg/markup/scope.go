package markup

import "github.com/arthur-debert/mcgen/pkg/chat"

type scopeKind int

const (
	clickScope scopeKind = iota
	hoverScope
)

type scope struct {
	kind  scopeKind
	click *chat.ClickAction
	hover *chat.HoverAction
}

// scopeStack tracks open click and hover scopes, innermost last.
type scopeStack []scope

func (s scopeStack) push(sc scope) scopeStack { return append(s, sc) }

// close removes the innermost scope of the given kind. Closing with nothing
// open is a no-op.
func (s scopeStack) close(kind scopeKind) scopeStack {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].kind == kind {
			return append(s[:i:i], s[i+1:]...)
		}
	}
	return s
}

func (s scopeStack) click() *chat.ClickAction {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].kind == clickScope {
			return s[i].click
		}
	}
	return nil
}

func (s scopeStack) hover() *chat.HoverAction {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].kind == hoverScope {
			return s[i].hover
		}
	}
	return nil
}
