package tools

import (
	"context"
	"testing"

	"github.com/ctreminiom/go-atlassian/pkg/infra/models"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headingDoc = `{"type":"doc","version":1,"content":[{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"Hi"}]}]}`

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) (string, error) {
	t.Helper()
	var request mcp.CallToolRequest
	request.Params.Arguments = args
	res, err := handler(context.Background(), request)
	if err != nil {
		return "", err
	}
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	content, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return content.Text, nil
}

func TestADFToMarkdownHandler(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		want    string
		wantErr string
	}{
		{
			name: "plain document",
			args: map[string]interface{}{"adf": headingDoc},
			want: "## Hi",
		},
		{
			name: "document inside payload",
			args: map[string]interface{}{"adf": `{"fields":{"description":` + headingDoc + `}}`, "path": "fields.description"},
			want: "## Hi",
		},
		{
			name: "unknown nodes are reported",
			args: map[string]interface{}{"adf": `{"type":"doc","version":1,"content":[{"type":"futureBlock"},{"type":"paragraph","content":[{"type":"text","text":"kept"}]}]}`},
			want: "kept\n" + separator + "\nWarnings:\n- unknown_node (futureBlock): unsupported node type\n",
		},
		{
			name:    "missing argument",
			args:    map[string]interface{}{},
			wantErr: "adf argument is required",
		},
		{
			name:    "invalid root",
			args:    map[string]interface{}{"adf": `{"type":"paragraph","version":1}`},
			wantErr: "failed to parse ADF",
		},
		{
			name:    "invalid JSON",
			args:    map[string]interface{}{"adf": `{"type":`},
			wantErr: "failed to parse ADF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := callTool(t, adfToMarkdownHandler, tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestADFToMarkdownHandler_Stats(t *testing.T) {
	orig := countTokens
	countTokens = func(string) (int, error) { return 7, nil }
	t.Cleanup(func() { countTokens = orig })

	got, err := callTool(t, adfToMarkdownHandler, map[string]interface{}{"adf": headingDoc, "stats": true})
	require.NoError(t, err)
	assert.Equal(t, "## Hi\n"+separator+"\nStats: headings: 1\nTokens: 7\n", got)
}

func TestADFDiffHandler(t *testing.T) {
	got, err := callTool(t, adfDiffHandler, map[string]interface{}{"source": headingDoc, "target": headingDoc})
	require.NoError(t, err)
	assert.Equal(t, "No content changes", got)

	changed := `{"type":"doc","version":1,"content":[{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"Bye"}]}]}`
	got, err = callTool(t, adfDiffHandler, map[string]interface{}{"source": headingDoc, "target": changed})
	require.NoError(t, err)
	assert.Contains(t, got, "Content Changes:\n")
	assert.Contains(t, got, "+ ")

	_, err = callTool(t, adfDiffHandler, map[string]interface{}{"source": headingDoc})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target argument is required")

	_, err = callTool(t, adfDiffHandler, map[string]interface{}{"source": "[]", "target": headingDoc})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source:")
}

func TestConverterOptions(t *testing.T) {
	t.Setenv("ADF_MAX_DEPTH", "")
	t.Setenv("ADF_DATE_LAYOUT", "")
	assert.Len(t, converterOptions(), 1)

	t.Setenv("ADF_MAX_DEPTH", "12")
	t.Setenv("ADF_DATE_LAYOUT", "02 Jan 2006")
	assert.Len(t, converterOptions(), 3)

	t.Setenv("ADF_MAX_DEPTH", "deep")
	assert.Len(t, converterOptions(), 2)
}

func TestPageBodyMarkdown(t *testing.T) {
	res, err := pageBodyMarkdown(`{"type":"doc","version":1,"content":[` +
		`{"type":"paragraph","content":[{"type":"text","text":"bold","marks":[{"type":"strong"}]}]},` +
		`{"type":"panel","attrs":{"panelType":"warning"},"content":[{"type":"paragraph","content":[{"type":"text","text":"careful"}]}]}]}`)
	require.NoError(t, err)
	assert.Equal(t, "**bold**\n\n> ⚠️ careful", res.Markdown)
	assert.Empty(t, res.Warnings)

	_, err = pageBodyMarkdown("not json")
	assert.Error(t, err)

	_, err = pageBodyMarkdown(`{"type":"paragraph"}`)
	assert.Error(t, err)
}

func TestStorageMarkdown(t *testing.T) {
	got, err := storageMarkdown(`{"body":{"storage":{"value":"<h1>Title</h1><p>Hello <strong>world</strong></p>"}}}`)
	require.NoError(t, err)
	assert.Contains(t, got, "# Title")
	assert.Contains(t, got, "Hello **world**")

	got, err = storageMarkdown(`{"body":{}}`)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name       string
		args       map[string]interface{}
		latest     int
		wantSource int
		wantTarget int
		wantErr    bool
	}{
		{name: "defaults to previous", args: map[string]interface{}{}, latest: 5, wantSource: 4, wantTarget: 5},
		{name: "explicit versions", args: map[string]interface{}{"source_version": "2", "target_version": "4"}, latest: 5, wantSource: 2, wantTarget: 4},
		{name: "single version page", args: map[string]interface{}{}, latest: 1, wantErr: true},
		{name: "source after target", args: map[string]interface{}{"source_version": "4", "target_version": "3"}, latest: 5, wantErr: true},
		{name: "target beyond latest", args: map[string]interface{}{"target_version": "9"}, latest: 5, wantErr: true},
		{name: "not a number", args: map[string]interface{}{"source_version": "two"}, latest: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, target, err := compareVersions(tt.args, tt.latest)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, source)
			assert.Equal(t, tt.wantTarget, target)
		})
	}
}

func TestFormatComparison(t *testing.T) {
	source := &renderedPage{page: &models.PageScheme{Title: "Runbook"}, markdown: "## Steps\n\n1. restart"}
	target := &renderedPage{page: &models.PageScheme{Title: "Runbook v2"}, markdown: "## Steps\n\n1. restart\n2. verify"}

	got := formatComparison(42, 1, 2, source, target)
	assert.Contains(t, got, "Comparing Page: Runbook v2 (ID: 42)\n")
	assert.Contains(t, got, "Comparing versions: 1 → 2\n")
	assert.Contains(t, got, "- Version 1: Runbook\n+ Version 2: Runbook v2\n")
	assert.Contains(t, got, "+ \n+ 2. verify\n")

	same := formatComparison(42, 1, 2, source, source)
	assert.Contains(t, same, "Title: Runbook (unchanged)")
	assert.Contains(t, same, "No content changes")
}

func TestPageIDArgument(t *testing.T) {
	id, err := pageIDArgument(map[string]interface{}{"page_id": "123"})
	require.NoError(t, err)
	assert.Equal(t, 123, id)

	_, err = pageIDArgument(map[string]interface{}{})
	assert.Error(t, err)

	_, err = pageIDArgument(map[string]interface{}{"page_id": "abc"})
	assert.Error(t, err)
}

func TestFormatIssue(t *testing.T) {
	raw := `{
		"key": "KP-2",
		"fields": {
			"summary": "Broken login",
			"status": {"name": "In Progress"},
			"issuetype": {"name": "Bug"},
			"assignee": null,
			"reporter": {"displayName": "Ana"},
			"labels": ["auth", "web"],
			"description": {"type": "doc", "version": 1, "content": [
				{"type": "paragraph", "content": [{"type": "text", "text": "Steps"}]},
				{"type": "taskList", "content": [{"type": "taskItem", "attrs": {"state": "DONE"}, "content": [{"type": "text", "text": "repro"}]}]}
			]},
			"comment": {"comments": [
				{"id": "10", "author": {"displayName": "Bo"}, "created": "2024-01-02",
				 "body": {"type": "doc", "version": 1, "content": [{"type": "paragraph", "content": [{"type": "text", "text": "Fixed", "marks": [{"type": "strong"}]}]}]}}
			]}
		}
	}`

	got, err := formatIssue([]byte(raw))
	require.NoError(t, err)
	assert.Contains(t, got, "Key: KP-2\n")
	assert.Contains(t, got, "Summary: Broken login\n")
	assert.Contains(t, got, "Type: Bug\n")
	assert.Contains(t, got, "Status: In Progress\n")
	assert.Contains(t, got, "Priority: None\n")
	assert.Contains(t, got, "Reporter: Ana\n")
	assert.Contains(t, got, "Assignee: Unassigned\n")
	assert.Contains(t, got, "Labels: auth, web\n")
	assert.Contains(t, got, "Steps\n\n- [x] repro")
	assert.Contains(t, got, "Comments (1):\nBo (2024-01-02):\n**Fixed**\n")
	assert.NotContains(t, got, "Warnings:")
}

func TestFormatIssue_NoDescription(t *testing.T) {
	got, err := formatIssue([]byte(`{"key":"KP-3","fields":{"summary":"Empty","description":null}}`))
	require.NoError(t, err)
	assert.Contains(t, got, "No description")
	assert.NotContains(t, got, "Comments")

	_, err = formatIssue([]byte("{"))
	assert.Error(t, err)
}

func TestToolManagerHandler(t *testing.T) {
	t.Setenv("ENABLE_TOOLS", "")

	got, err := callTool(t, toolManagerHandler, map[string]interface{}{"action": "list"})
	require.NoError(t, err)
	assert.Contains(t, got, "- adf (ADF to Markdown conversion and diffing) [enabled]")
	assert.Contains(t, got, "All tools are enabled")

	got, err = callTool(t, toolManagerHandler, map[string]interface{}{"action": "disable", "tool_name": "jira"})
	require.NoError(t, err)
	assert.Contains(t, got, "Successfully disabled tool: jira")
	assert.True(t, IsEnabled("adf"))
	assert.True(t, IsEnabled("confluence"))
	assert.False(t, IsEnabled("jira"))

	got, err = callTool(t, toolManagerHandler, map[string]interface{}{"action": "list"})
	require.NoError(t, err)
	assert.Contains(t, got, "- jira (Jira issues as Markdown) [disabled]")
	assert.Contains(t, got, "Currently enabled tools:\n- adf\n- confluence\n")

	_, err = callTool(t, toolManagerHandler, map[string]interface{}{"action": "enable", "tool_name": "jira"})
	require.NoError(t, err)
	assert.True(t, IsEnabled("jira"))

	var request mcp.CallToolRequest
	request.Params.Arguments = map[string]interface{}{"action": "enable", "tool_name": "gitlab"}
	res, err := toolManagerHandler(context.Background(), request)
	require.NoError(t, err)
	assert.True(t, res.IsError)

	request.Params.Arguments = map[string]interface{}{"action": "explode"}
	res, err = toolManagerHandler(context.Background(), request)
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
