// Package mddiff compares two Markdown renderings of a document.
package mddiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Semantic returns a line-prefixed diff of source and target: "- " for
// removed text, "+ " for inserted text and two spaces for unchanged text.
// Diffs are cleaned up semantically so edits align with words, not characters.
func Semantic(source, target string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(source, target, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var result strings.Builder
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			result.WriteString("- " + strings.ReplaceAll(diff.Text, "\n", "\n- ") + "\n")
		case diffmatchpatch.DiffInsert:
			result.WriteString("+ " + strings.ReplaceAll(diff.Text, "\n", "\n+ ") + "\n")
		case diffmatchpatch.DiffEqual:
			result.WriteString("  " + strings.ReplaceAll(diff.Text, "\n", "\n  ") + "\n")
		}
	}

	return result.String()
}

// Changed reports whether source and target differ at all.
func Changed(source, target string) bool {
	return source != target
}
