// Package diff computes a character-level edit script between a "left" and a "right" string.
//
// Representation: A Script is an ordered slice of Fragments. Each Fragment has an Op and a non-empty Text:
//   - OpEqual: text present in both inputs (a substring of left)
//   - OpDelete: text present only in left
//   - OpInsert: text present only in right
//
// Invariants:
//   - concat(Equal and Delete texts) == left
//   - concat(Equal and Insert texts) == right
//   - No two adjacent fragments share an Op.
//   - If left == right, the script is a single OpEqual fragment (or empty, when both inputs are empty).
//
// Granularity: the unit of comparison is the extended grapheme cluster, so a fragment never splits a multi-byte rune or a cluster such as "e" followed by a combining accent.
//
// Getting a diff: Use DiffText to compute a Script:
//
//	s := diff.DiffText("Lorem ipsum doleret", "Lorem ipsum dolert")
//	fmt.Println(s) // Equal("Lorem ipsum dol"), Delete("e"), Equal("ret"), one item per line
//
// Rendering: Script.String prints a structured, debug-style listing of the fragments. Script.RenderPretty emits an inline view with ANSI colors or plain-text markers. Script.Delta
// encodes the script compactly in diff-match-patch delta form; FromDelta decodes it.
package diff
