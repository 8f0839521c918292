package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func RegisterPagePrompts(s *server.MCPServer) {
	prompt := mcp.NewPrompt("summarize_page",
		mcp.WithPromptDescription("Summarize a Confluence page from its Markdown rendering"),
		mcp.WithArgument("page_id", mcp.ArgumentDescription("The Confluence page ID"), mcp.RequiredArgument()),
	)
	s.AddPrompt(prompt, summarizePageHandler)
}

func summarizePageHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	pageID := request.Params.Arguments["page_id"]
	if pageID == "" {
		return nil, fmt.Errorf("page_id argument is required")
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Summary of Confluence page %s", pageID),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("Use the confluence_get_page tool to fetch page %s as Markdown, then summarize it. "+
						"List open tasks and decisions separately, and mention any conversion warnings.", pageID),
				},
			},
		},
	}, nil
}
