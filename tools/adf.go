package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/athapong/adf-mcp/pkg/mddiff"
	"github.com/athapong/adf-mcp/util"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterADFTool registers the ADF conversion tools to the server
func RegisterADFTool(s *server.MCPServer) {
	convertTool := mcp.NewTool("adf_to_markdown",
		mcp.WithDescription("Convert an Atlassian Document Format (ADF) document, as used by Jira and Confluence, to Markdown. Unknown node types are skipped and reported as warnings"),
		mcp.WithString("adf", mcp.Required(), mcp.Description("ADF document as JSON, or a JSON payload that contains one (see path)")),
		mcp.WithString("path", mcp.Description("Path of the ADF document inside the payload, e.g. fields.description or body.atlas_doc_format.value (optional)")),
		mcp.WithBoolean("stats", mcp.Description("Append Markdown structure counts and a token estimate (optional)")),
	)
	s.AddTool(convertTool, util.ErrorGuard(adfToMarkdownHandler))

	diffTool := mcp.NewTool("adf_diff",
		mcp.WithDescription("Compare two ADF documents by diffing their Markdown renderings"),
		mcp.WithString("source", mcp.Required(), mcp.Description("Original ADF document as JSON")),
		mcp.WithString("target", mcp.Required(), mcp.Description("Changed ADF document as JSON")),
	)
	s.AddTool(diffTool, util.ErrorGuard(adfDiffHandler))
}

func adfToMarkdownHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	raw, ok := arguments["adf"].(string)
	if !ok || raw == "" {
		return nil, fmt.Errorf("adf argument is required")
	}
	path, _ := arguments["path"].(string)
	withStats, _ := arguments["stats"].(bool)

	res, err := parseAndRender("mcp", []byte(raw), path)
	if err != nil {
		return nil, err
	}

	var result strings.Builder
	result.WriteString(res.Markdown)
	if len(res.Warnings) > 0 || withStats {
		result.WriteString("\n" + separator + "\n")
	}
	if len(res.Warnings) > 0 {
		result.WriteString(formatWarnings(res.Warnings))
	}
	if withStats {
		result.WriteString(formatStats(res.Markdown))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func adfDiffHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	source, ok := arguments["source"].(string)
	if !ok || source == "" {
		return nil, fmt.Errorf("source argument is required")
	}
	target, ok := arguments["target"].(string)
	if !ok || target == "" {
		return nil, fmt.Errorf("target argument is required")
	}

	sourceRes, err := parseAndRender("mcp", []byte(source), "")
	if err != nil {
		return nil, fmt.Errorf("source: %v", err)
	}
	targetRes, err := parseAndRender("mcp", []byte(target), "")
	if err != nil {
		return nil, fmt.Errorf("target: %v", err)
	}

	if !mddiff.Changed(sourceRes.Markdown, targetRes.Markdown) {
		return mcp.NewToolResultText("No content changes"), nil
	}

	var comparison strings.Builder
	comparison.WriteString("Content Changes:\n")
	comparison.WriteString("=================\n")
	comparison.WriteString(mddiff.Semantic(sourceRes.Markdown, targetRes.Markdown))

	return mcp.NewToolResultText(comparison.String()), nil
}
