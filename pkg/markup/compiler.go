package markup

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/mcgen/pkg/chat"
	"github.com/arthur-debert/mcgen/pkg/errors"
)

const (
	tokenDelim = "%%"
	resetName  = "RESET"
)

// format is the color and style carried into the next run.
type format struct {
	color chat.Color
	style chat.Style
}

// scanner holds the state of a single Compile call.
type scanner struct {
	input  string
	pos    int
	format format
	scopes scopeStack
	text   strings.Builder
	runs   []chat.Run
}

// Compile turns annotated text into an ordered sequence of styled runs.
func Compile(input string) ([]chat.Run, error) {
	s := &scanner{input: input}
	if err := s.scan(); err != nil {
		return nil, err
	}
	return s.runs, nil
}

// MustCompile is Compile for inputs known to be well formed.
func MustCompile(input string) []chat.Run {
	runs, err := Compile(input)
	if err != nil {
		panic(err)
	}
	return runs
}

func (s *scanner) scan() error {
	for s.pos < len(s.input) {
		rest := s.input[s.pos:]
		r, size := utf8.DecodeRuneInString(rest)

		switch {
		case r == '&' || r == '§':
			if s.legacyCode(rest[size:]) {
				s.pos += size + 1
				continue
			}
		case strings.HasPrefix(rest, tokenDelim):
			n, err := s.token(rest[len(tokenDelim):])
			if err != nil {
				return err
			}
			if n > 0 {
				s.pos += len(tokenDelim) + n
				continue
			}
			// not a token, keep the delimiter as text
			s.text.WriteString(tokenDelim)
			s.pos += len(tokenDelim)
			continue
		}

		s.text.WriteRune(r)
		s.pos += size
	}
	s.flush()
	// Remaining scopes close here. Runs already carry their actions, so
	// draining is just discarding the stack.
	s.scopes = nil
	return nil
}

// legacyCode applies a single-character code following & or §. It reports
// false when the character is not a formatting code.
func (s *scanner) legacyCode(after string) bool {
	if after == "" {
		return false
	}
	code := rune(after[0])
	if code == 'r' || code == 'R' {
		s.setFormat(format{})
		return true
	}
	if c, ok := chat.ColorByCode(code); ok {
		s.setFormat(format{color: c})
		return true
	}
	if st, ok := chat.StyleByCode(code); ok {
		s.setFormat(format{color: s.format.color, style: s.format.style | st})
		return true
	}
	return false
}

// token interprets the text after an opening %%. It returns how many bytes
// were consumed including the closing delimiter, or 0 when the text is not a
// token and should be kept literally.
func (s *scanner) token(after string) (int, error) {
	end := strings.Index(after, tokenDelim)
	if end < 0 {
		if isActionToken(after) {
			return 0, errors.Markup("unterminated action token %q", truncate(tokenDelim+after))
		}
		return 0, nil
	}
	body := after[:end]
	consumed := end + len(tokenDelim)

	if isActionToken(body) || isCloseToken(body) {
		return consumed, s.action(body)
	}

	name, arg, hasArg := strings.Cut(body, ":")
	upper := strings.ToUpper(name)

	if !hasArg {
		switch {
		case upper == resetName:
			s.setFormat(format{})
			return consumed, nil
		case strings.HasPrefix(name, "#"):
			c, err := chat.ParseHex(name)
			if err != nil {
				return 0, nil
			}
			s.setFormat(format{color: c})
			return consumed, nil
		}
		if c, ok := chat.ColorByName(name); ok {
			s.setFormat(format{color: c})
			return consumed, nil
		}
		if st, ok := chat.StyleByName(name); ok {
			s.setFormat(format{color: s.format.color, style: s.format.style | st})
			return consumed, nil
		}
	}

	if icon, ok := chat.LookupIcon(upper); ok {
		count := 1
		if hasArg {
			// Out-of-range counts come back saturated and Repeat clamps them.
			n, err := strconv.Atoi(strings.TrimSpace(arg))
			if ne, ok := err.(*strconv.NumError); err == nil || ok && ne.Err == strconv.ErrRange {
				count = n
			}
		}
		s.text.WriteString(icon.Repeat(count))
		return consumed, nil
	}
	return 0, nil
}

func (s *scanner) action(body string) error {
	if isCloseToken(body) {
		s.flush()
		if strings.EqualFold(body, "/click") {
			s.scopes = s.scopes.close(clickScope)
		} else {
			s.scopes = s.scopes.close(hoverScope)
		}
		return nil
	}

	parts := strings.SplitN(body, ":", 3)
	if len(parts) < 3 || parts[2] == "" {
		return errors.Markup("action token %q needs a kind and a value", truncate(body))
	}

	var sc scope
	if strings.EqualFold(parts[0], "click") {
		a, err := chat.NewClickAction(parts[1], parts[2])
		if err != nil {
			return err
		}
		sc = scope{kind: clickScope, click: &a}
	} else {
		a, err := chat.NewHoverAction(parts[1], parts[2])
		if err != nil {
			return err
		}
		sc = scope{kind: hoverScope, hover: &a}
	}

	s.flush()
	s.scopes = s.scopes.push(sc)
	return nil
}

func (s *scanner) setFormat(f format) {
	s.flush()
	s.format = f
}

// flush closes the pending text into a run, merging with the previous run
// when nothing but the text differs.
func (s *scanner) flush() {
	if s.text.Len() == 0 {
		return
	}
	run := chat.Run{
		Text:  s.text.String(),
		Color: s.format.color,
		Style: s.format.style,
		Click: s.scopes.click(),
		Hover: s.scopes.hover(),
	}
	s.text.Reset()

	if n := len(s.runs); n > 0 && s.runs[n-1].SameFormat(run) {
		s.runs[n-1].Text += run.Text
		return
	}
	s.runs = append(s.runs, run)
}

func isActionToken(body string) bool {
	lower := strings.ToLower(body)
	return strings.HasPrefix(lower, "click:") || strings.HasPrefix(lower, "hover:")
}

func isCloseToken(body string) bool {
	return strings.EqualFold(body, "/click") || strings.EqualFold(body, "/hover")
}

func truncate(s string) string {
	const max = 40
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
