package diff

import (
	"strconv"
	"strings"
)

// String returns a structured listing of s in debug style, one fragment per record:
//
//	[
//	    Equal(
//	        "Lorem ipsum dol",
//	    ),
//	    Delete(
//	        "e",
//	    ),
//	]
//
// Texts are Go-quoted, so whitespace and control characters are visible. An empty script renders as "[]".
func (s Script) String() string {
	if len(s) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteString("[\n")
	for _, f := range s {
		b.WriteString("    ")
		b.WriteString(f.Op.String())
		b.WriteString("(\n        ")
		b.WriteString(strconv.Quote(f.Text))
		b.WriteString(",\n    ),\n")
	}
	b.WriteString("]")
	return b.String()
}

// RenderPretty returns an inline rendering of s: equal text as-is, with deletions and insertions marked in place.
//
// If color, deleted text gets a pink background and inserted text a green one (ANSI 256-color escapes). Highlighting is closed before each '\n' and reopened after it, so
// backgrounds never bleed to the end of a terminal line. Otherwise, deletions are wrapped as "[-text-]" and insertions as "{+text+}".
func (s Script) RenderPretty(color bool) string {
	const (
		reset     = "\x1b[0m"
		blackFG   = "\x1b[30m"
		pinkSpan  = "\x1b[48;5;217m" // deleted text
		greenSpan = "\x1b[48;5;114m" // inserted text
	)

	var b strings.Builder
	highlight := func(text, bg string) {
		lines := strings.Split(text, "\n")
		for i, ln := range lines {
			if i > 0 {
				b.WriteString("\n")
			}
			if ln == "" {
				continue
			}
			b.WriteString(blackFG)
			b.WriteString(bg)
			b.WriteString(ln)
			b.WriteString(reset)
		}
	}

	for _, f := range s {
		switch f.Op {
		case OpEqual:
			b.WriteString(f.Text)
		case OpDelete:
			if color {
				highlight(f.Text, pinkSpan)
			} else {
				b.WriteString("[-" + f.Text + "-]")
			}
		case OpInsert:
			if color {
				highlight(f.Text, greenSpan)
			} else {
				b.WriteString("{+" + f.Text + "+}")
			}
		}
	}
	return b.String()
}
