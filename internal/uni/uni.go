// Package uni splits text into user-perceived characters (extended grapheme clusters) and measures their width in monospace terminals.
package uni

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// Options control width calculation. Currently only relevant for East Asian code points and their locale.
type Options struct {
	EastAsianWidth   bool // if true, treats certain East Asian code points as 2 wide (e.g., Chinese, Japanese, Korean). Use if the locale is one of CJK.
	TreatEmojiAsWide bool // Only considered if EastAsianWidth. If true, treats emoji as wide (2 columns).
}

// Boundaries returns the byte offsets at which each grapheme cluster of s ends. The last element is len(s); for an empty s, it returns nil.
//
// Slicing s between consecutive boundaries (starting at 0) never splits a rune or a cluster such as "e" + U+0301.
func Boundaries(s string) []int {
	if s == "" {
		return nil
	}
	ends := make([]int, 0, len(s))
	iter := graphemes.FromString(s)
	for iter.Next() {
		ends = append(ends, iter.End())
	}
	return ends
}

// Graphemes returns the grapheme clusters of s, in order.
func Graphemes(s string) []string {
	var out []string
	start := 0
	for _, end := range Boundaries(s) {
		out = append(out, s[start:end])
		start = end
	}
	return out
}

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	n := 0
	iter := graphemes.FromString(s)
	for iter.Next() {
		n++
	}
	return n
}

// TextWidth returns the text width of s for monospace fonts in terminals. If opts is nil, locale is assumed to be non-East Asian.
func TextWidth(s string, opts *Options) int {
	return conditionFromOptions(opts).StringWidth(s)
}

func conditionFromOptions(opts *Options) *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	if opts == nil {
		return cond
	}

	cond.EastAsianWidth = opts.EastAsianWidth
	if opts.EastAsianWidth && opts.TreatEmojiAsWide {
		cond.StrictEmojiNeutral = false
	}

	return cond
}
