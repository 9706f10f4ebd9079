package diff

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Delta encodes s as a diff-match-patch delta: tab-separated "=N" (keep N runes), "-N" (delete N runes) and "+text" (insert URL-escaped text) operations. Together with the
// left text, the delta is enough to rebuild s; see FromDelta.
func (s Script) Delta() string {
	return diffmatchpatch.New().DiffToDelta(s.toDMP())
}

// FromDelta rebuilds a Script from the left text and a delta produced by Script.Delta. It returns an error if the delta is malformed or does not fit left.
func FromDelta(left, delta string) (Script, error) {
	diffs, err := diffmatchpatch.New().DiffFromDelta(left, delta)
	if err != nil {
		return nil, fmt.Errorf("decode delta: %w", err)
	}

	var s Script
	for _, d := range diffs {
		s = appendFragment(s, Fragment{Op: opFromDMP(d.Type), Text: d.Text})
	}
	if err := s.Validate(left, s.Right()); err != nil {
		return nil, fmt.Errorf("decode delta: %w", err)
	}
	return s, nil
}

// Levenshtein returns the edit distance of s in runes: each run of changes between equalities costs the larger of its deleted and inserted rune counts.
func (s Script) Levenshtein() int {
	return diffmatchpatch.New().DiffLevenshtein(s.toDMP())
}

func (s Script) toDMP() []diffmatchpatch.Diff {
	out := make([]diffmatchpatch.Diff, 0, len(s))
	for _, f := range s {
		var t diffmatchpatch.Operation
		switch f.Op {
		case OpEqual:
			t = diffmatchpatch.DiffEqual
		case OpDelete:
			t = diffmatchpatch.DiffDelete
		case OpInsert:
			t = diffmatchpatch.DiffInsert
		}
		out = append(out, diffmatchpatch.Diff{Type: t, Text: f.Text})
	}
	return out
}

func opFromDMP(t diffmatchpatch.Operation) Op {
	switch t {
	case diffmatchpatch.DiffDelete:
		return OpDelete
	case diffmatchpatch.DiffInsert:
		return OpInsert
	}
	return OpEqual
}
