package prompts

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizePageHandler(t *testing.T) {
	var request mcp.GetPromptRequest
	request.Params.Arguments = map[string]string{"page_id": "12345"}

	res, err := summarizePageHandler(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, "Summary of Confluence page 12345", res.Description)
	require.Len(t, res.Messages, 1)

	content, ok := res.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, content.Text, "confluence_get_page")
	assert.Contains(t, content.Text, "12345")
}

func TestSummarizePageHandler_MissingPageID(t *testing.T) {
	var request mcp.GetPromptRequest
	_, err := summarizePageHandler(context.Background(), request)
	assert.Error(t, err)
}
