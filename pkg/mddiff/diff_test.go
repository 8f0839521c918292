package mddiff_test

import (
	"testing"

	"github.com/athapong/adf-mcp/pkg/mddiff"
	"github.com/stretchr/testify/assert"
)

func TestSemantic(t *testing.T) {
	t.Parallel()

	t.Run("identical", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "  # Title\n", mddiff.Semantic("# Title", "# Title"))
		assert.False(t, mddiff.Changed("# Title", "# Title"))
	})

	t.Run("appended line", func(t *testing.T) {
		t.Parallel()
		got := mddiff.Semantic("# Title", "# Title\n\nnew")
		assert.Equal(t, "  # Title\n+ \n+ \n+ new\n", got)
		assert.True(t, mddiff.Changed("# Title", "# Title\n\nnew"))
	})

	t.Run("removed text", func(t *testing.T) {
		t.Parallel()
		got := mddiff.Semantic("keep drop", "keep ")
		assert.Equal(t, "  keep \n- drop\n", got)
	})

	t.Run("empty inputs", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, mddiff.Semantic("", ""))
	})
}
