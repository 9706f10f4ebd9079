package diff

import (
	"strconv"
	"strings"
)

// Op is an operation from left text to right text.
type Op int

// Operations from left text to right text.
const (
	OpEqual Op = iota
	OpDelete
	OpInsert
)

func (op Op) String() string {
	switch op {
	case OpEqual:
		return "Equal"
	case OpDelete:
		return "Delete"
	case OpInsert:
		return "Insert"
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}

// Fragment is one tagged span of an edit script. Text is never empty.
//
// For OpEqual and OpDelete, Text is a substring of the left input; for OpInsert, it is a substring of the right input.
type Fragment struct {
	Op   Op
	Text string
}

// Script is an ordered edit script from left text to right text. See the package documentation for its invariants.
//
// A Script is computed fresh for every comparison and should be treated as immutable.
type Script []Fragment

// Left reconstructs the left input by concatenating the OpEqual and OpDelete fragments in order.
func (s Script) Left() string {
	var b strings.Builder
	for _, f := range s {
		if f.Op != OpInsert {
			b.WriteString(f.Text)
		}
	}
	return b.String()
}

// Right reconstructs the right input by concatenating the OpEqual and OpInsert fragments in order.
func (s Script) Right() string {
	var b strings.Builder
	for _, f := range s {
		if f.Op != OpDelete {
			b.WriteString(f.Text)
		}
	}
	return b.String()
}

// Changed reports whether s contains any OpDelete or OpInsert fragment.
func (s Script) Changed() bool {
	for _, f := range s {
		if f.Op != OpEqual {
			return true
		}
	}
	return false
}

// appendFragment appends f to s, dropping empty text and merging f into the last fragment when both share an Op.
func appendFragment(s Script, f Fragment) Script {
	if f.Text == "" {
		return s
	}
	if n := len(s); n > 0 && s[n-1].Op == f.Op {
		s[n-1].Text += f.Text
		return s
	}
	return append(s, f)
}
