package diff

import (
	"fmt"
	"unicode/utf8"

	"github.com/codalotl/strassert/internal/simplelogger"
	"github.com/codalotl/strassert/internal/uni"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// defaultCellBudget bounds the longest-common-substring search of a single DiffText call. One cell is one (left grapheme, right grapheme) comparison; cells are summed over
// the whole recursion.
const defaultCellBudget = 1 << 24

// maxFallbackTokens is the number of distinct graphemes that can be mapped onto valid, non-surrogate runes for diff-match-patch.
const maxFallbackTokens = utf8.MaxRune + 1 - (0xE000 - 0xD800)

// DiffText diffs left to right, returning a Script. It is total over all string pairs and a pure function of its inputs.
//
// Algorithm: the common prefix and suffix are emitted as OpEqual. In the remaining windows, the longest common run of graphemes is emitted as OpEqual, and the unmatched prefix
// pair and suffix pair are diffed recursively. When no common run exists, the left window becomes one OpDelete followed by the right window as one OpInsert.
//
// Tie-breaking: among equally long common runs, the one starting earliest in left wins, then the one starting earliest in right.
//
// If the comparisons needed for a window exceed the call's remaining budget, that window is diffed with diff-match-patch instead. The invariants hold either way.
func DiffText(left, right string) Script {
	return diffText(left, right, defaultCellBudget)
}

func diffText(left, right string, budget int) Script {
	if left == right {
		if left == "" {
			return nil
		}
		return Script{{Op: OpEqual, Text: left}}
	}

	d := newDiffer(left, right, budget)
	d.diff(0, len(d.a), 0, len(d.b))
	script := d.script()

	if err := script.Validate(left, right); err != nil {
		panic(fmt.Errorf("DiffText: validate failed with %v", err))
	}
	return script
}

// differ holds the state of one DiffText call. Both inputs are tokenized into grapheme clusters; tokens are interned so that equal clusters share an id.
type differ struct {
	left, right string
	aEnds       []int   // aEnds[i] is the byte offset in left where token i ends
	bEnds       []int   // bEnds[i] is the byte offset in right where token i ends
	a, b        []int32 // token ids
	distinct    int     // number of distinct token ids

	budget   int
	prevRow  []int32 // scratch rows for longestCommon
	curRow   []int32
	pieces   []piece
	fallback int // number of windows handed to diff-match-patch
}

// piece is a fragment expressed as token offsets, so that adjacent pieces with the same op can be merged without copying text.
type piece struct {
	op         Op
	start, end int // token offsets into a (OpEqual, OpDelete) or b (OpInsert)
}

func newDiffer(left, right string, budget int) *differ {
	d := &differ{
		left:   left,
		right:  right,
		aEnds:  uni.Boundaries(left),
		bEnds:  uni.Boundaries(right),
		budget: budget,
	}

	ids := make(map[string]int32)
	intern := func(s string, ends []int) []int32 {
		out := make([]int32, len(ends))
		start := 0
		for i, end := range ends {
			tok := s[start:end]
			id, ok := ids[tok]
			if !ok {
				id = int32(len(ids))
				ids[tok] = id
			}
			out[i] = id
			start = end
		}
		return out
	}
	d.a = intern(left, d.aEnds)
	d.b = intern(right, d.bEnds)
	d.distinct = len(ids)

	d.prevRow = make([]int32, len(d.b)+1)
	d.curRow = make([]int32, len(d.b)+1)
	return d
}

// diff emits the edit script for a[a0:a1] -> b[b0:b1].
func (d *differ) diff(a0, a1, b0, b1 int) {
	n := 0
	for a0+n < a1 && b0+n < b1 && d.a[a0+n] == d.b[b0+n] {
		n++
	}
	d.emit(OpEqual, a0, a0+n)
	a0 += n
	b0 += n

	m := 0
	for a1-m > a0 && b1-m > b0 && d.a[a1-m-1] == d.b[b1-m-1] {
		m++
	}
	a1 -= m
	b1 -= m

	d.middle(a0, a1, b0, b1)
	d.emit(OpEqual, a1, a1+m)
}

// middle emits the edit script for windows that share no common prefix or suffix.
func (d *differ) middle(a0, a1, b0, b1 int) {
	switch {
	case a0 == a1:
		d.emit(OpInsert, b0, b1)
		return
	case b0 == b1:
		d.emit(OpDelete, a0, a1)
		return
	}

	cells := (a1 - a0) * (b1 - b0)
	if cells > d.budget && d.distinct <= maxFallbackTokens {
		d.diffMatchPatch(a0, a1, b0, b1)
		return
	}
	d.budget = max(d.budget-cells, 0)

	i, j, k := d.longestCommon(a0, a1, b0, b1)
	if k == 0 {
		d.emit(OpDelete, a0, a1)
		d.emit(OpInsert, b0, b1)
		return
	}
	d.diff(a0, i, b0, j)
	d.emit(OpEqual, i, i+k)
	d.diff(i+k, a1, j+k, b1)
}

// longestCommon returns the longest common run a[i:i+k] == b[j:j+k] within the given windows. Ties go to the smallest i, then the smallest j. k is 0 if the windows share no token.
func (d *differ) longestCommon(a0, a1, b0, b1 int) (i, j, k int) {
	m := b1 - b0
	prev := d.prevRow[:m+1]
	cur := d.curRow[:m+1]
	clear(prev)
	cur[0] = 0

	var best int32
	for x := a0; x < a1; x++ {
		tok := d.a[x]
		for y := 1; y <= m; y++ {
			if tok != d.b[b0+y-1] {
				cur[y] = 0
				continue
			}
			cur[y] = prev[y-1] + 1
			if cur[y] > best {
				best = cur[y]
				i = x + 1 - int(best)
				j = b0 + y - int(best)
			}
		}
		prev, cur = cur, prev
	}
	return i, j, int(best)
}

// diffMatchPatch diffs a[a0:a1] -> b[b0:b1] with diff-match-patch. Each token id is mapped to one rune, so the result is still aligned to grapheme boundaries.
func (d *differ) diffMatchPatch(a0, a1, b0, b1 int) {
	d.fallback++
	simplelogger.Log("diff: %dx%d grapheme window exceeds the remaining budget of %d cells; using diff-match-patch", a1-a0, b1-b0, d.budget)

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // no deadline; the output must not depend on timing
	diffs := dmp.DiffCleanupMerge(dmp.DiffMainRunes(tokenRunes(d.a[a0:a1]), tokenRunes(d.b[b0:b1]), false))

	ai, bi := a0, b0
	for _, df := range diffs {
		k := utf8.RuneCountInString(df.Text)
		switch df.Type {
		case diffmatchpatch.DiffEqual:
			d.emit(OpEqual, ai, ai+k)
			ai += k
			bi += k
		case diffmatchpatch.DiffDelete:
			d.emit(OpDelete, ai, ai+k)
			ai += k
		case diffmatchpatch.DiffInsert:
			d.emit(OpInsert, bi, bi+k)
			bi += k
		}
	}
}

// tokenRunes maps token ids onto runes, skipping the surrogate range so every id survives a round trip through a Go string.
func tokenRunes(ids []int32) []rune {
	out := make([]rune, len(ids))
	for i, id := range ids {
		r := rune(id)
		if r >= 0xD800 {
			r += 0xE000 - 0xD800
		}
		out[i] = r
	}
	return out
}

// emit appends the tokens [start, end) as op, extending the previous piece when it has the same op.
func (d *differ) emit(op Op, start, end int) {
	if start == end {
		return
	}
	if n := len(d.pieces); n > 0 && d.pieces[n-1].op == op {
		d.pieces[n-1].end = end
		return
	}
	d.pieces = append(d.pieces, piece{op: op, start: start, end: end})
}

// script converts pieces back into substrings of the inputs.
func (d *differ) script() Script {
	out := make(Script, 0, len(d.pieces))
	for _, p := range d.pieces {
		if p.op == OpInsert {
			out = append(out, Fragment{Op: p.op, Text: tokenSpan(d.right, d.bEnds, p.start, p.end)})
		} else {
			out = append(out, Fragment{Op: p.op, Text: tokenSpan(d.left, d.aEnds, p.start, p.end)})
		}
	}
	return out
}

// tokenSpan returns the substring of s covering tokens [start, end), where ends holds the end offset of each token.
func tokenSpan(s string, ends []int, start, end int) string {
	from := 0
	if start > 0 {
		from = ends[start-1]
	}
	return s[from:ends[end-1]]
}
