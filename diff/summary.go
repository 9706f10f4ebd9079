package diff

import (
	"fmt"
	"strings"

	"github.com/codalotl/strassert/internal/uni"
)

// Tally counts the fragments of one Op in a Script.
type Tally struct {
	Fragments int // number of fragments
	Graphemes int // user-perceived characters
	Columns   int // display width in a monospace terminal
}

// Summary tallies a Script per Op.
type Summary struct {
	Equal  Tally
	Delete Tally
	Insert Tally
}

// Summary returns the per-Op tallies of s.
func (s Script) Summary() Summary {
	var sum Summary
	for _, f := range s {
		var t *Tally
		switch f.Op {
		case OpEqual:
			t = &sum.Equal
		case OpDelete:
			t = &sum.Delete
		case OpInsert:
			t = &sum.Insert
		default:
			continue
		}
		t.Fragments++
		t.Graphemes += uni.Count(f.Text)
		t.Columns += uni.TextWidth(f.Text, nil)
	}
	return sum
}

// String renders sum as one aligned line per Op, e.g. "delete  1 fragments   1 graphemes   1 columns".
func (sum Summary) String() string {
	rows := []struct {
		name string
		t    Tally
	}{
		{"equal", sum.Equal},
		{"delete", sum.Delete},
		{"insert", sum.Insert},
	}
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-6s %3d fragments %5d graphemes %5d columns", r.name, r.t.Fragments, r.t.Graphemes, r.t.Columns)
	}
	return b.String()
}
