package adf_test

import (
	"testing"

	"github.com/athapong/adf-mcp/pkg/adf"
	"github.com/ctreminiom/go-atlassian/pkg/infra/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCommentNode(t *testing.T) {
	t.Parallel()

	assert.Nil(t, adf.FromCommentNode(nil))

	body := &models.CommentNodeScheme{
		Version: 1,
		Type:    "doc",
		Content: []*models.CommentNodeScheme{
			{
				Type:  "heading",
				Attrs: map[string]interface{}{"level": float64(3)},
				Content: []*models.CommentNodeScheme{
					{Type: "text", Text: "Notes"},
				},
			},
			{
				Type: "paragraph",
				Content: []*models.CommentNodeScheme{
					{Type: "text", Text: "bold", Marks: []*models.MarkScheme{{Type: "strong"}}},
					{Type: "text", Text: " "},
					{
						Type:  "text",
						Text:  "docs",
						Marks: []*models.MarkScheme{{Type: "link", Attrs: map[string]interface{}{"href": "https://x.io"}}},
					},
				},
			},
			nil,
		},
	}

	root := adf.FromCommentNode(body)
	require.NotNil(t, root)
	assert.Equal(t, 1, root.Version)
	assert.Len(t, root.Content, 2)

	md, err := quietConverter().Convert(root)
	require.NoError(t, err)
	assert.Equal(t, "### Notes\n\n**bold** [docs](https://x.io)", md)

	// The copy must not alias the source attributes.
	body.Content[0].Attrs["level"] = float64(1)
	assert.Equal(t, float64(3), root.Content[0].Attrs["level"])
}
