package diff

import (
	"fmt"
	"strings"
)

// Validate checks that s is a well-formed edit script from left to right and returns an error describing the first violation:
//   - every fragment has a known Op and non-empty Text
//   - no two adjacent fragments share an Op
//   - OpEqual and OpDelete fragments reconstruct left; OpEqual and OpInsert fragments reconstruct right
//   - if left == right, s is a single OpEqual fragment (or empty when both are empty)
func (s Script) Validate(left, right string) error {
	var leftConcat, rightConcat strings.Builder
	for i, f := range s {
		switch f.Op {
		case OpEqual:
			leftConcat.WriteString(f.Text)
			rightConcat.WriteString(f.Text)
		case OpDelete:
			leftConcat.WriteString(f.Text)
		case OpInsert:
			rightConcat.WriteString(f.Text)
		default:
			return fmt.Errorf("fragment[%d]: unknown op %d", i, int(f.Op))
		}

		if f.Text == "" {
			return fmt.Errorf("fragment[%d]: %v requires non-empty Text", i, f.Op)
		}
		if i > 0 && s[i-1].Op == f.Op {
			return fmt.Errorf("fragment[%d]: same op %v as previous fragment", i, f.Op)
		}
	}

	if leftConcat.String() != left {
		return fmt.Errorf("script: fragments do not reconstruct left")
	}
	if rightConcat.String() != right {
		return fmt.Errorf("script: fragments do not reconstruct right")
	}

	// Empty equal inputs already imply an empty script, since no fragment text is empty.
	if left == right && left != "" && (len(s) != 1 || s[0].Op != OpEqual) {
		return fmt.Errorf("script: equal inputs require a single %v fragment, got %d fragments", OpEqual, len(s))
	}
	return nil
}
