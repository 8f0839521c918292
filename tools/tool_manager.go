package tools

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/athapong/adf-mcp/util"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolGroup is a set of tools switched on and off together through ENABLE_TOOLS.
type ToolGroup struct {
	Name        string
	Description string
	Register    func(s *server.MCPServer)
}

// Groups lists every tool group the server can register, in registration order.
var Groups = []ToolGroup{
	{"adf", "ADF to Markdown conversion and diffing", RegisterADFTool},
	{"confluence", "Confluence pages as Markdown", RegisterConfluenceTool},
	{"jira", "Jira issues as Markdown", RegisterJiraTool},
}

// EnabledTools parses ENABLE_TOOLS. An empty set means every group is enabled.
func EnabledTools() mapset.Set[string] {
	enabled := mapset.NewSet[string]()
	for _, name := range strings.Split(os.Getenv("ENABLE_TOOLS"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			enabled.Add(name)
		}
	}
	return enabled
}

// IsEnabled reports whether the named group is enabled.
func IsEnabled(name string) bool {
	enabled := EnabledTools()
	return enabled.IsEmpty() || enabled.Contains(name)
}

func RegisterToolManagerTool(s *server.MCPServer) {
	tool := mcp.NewTool("tool_manager",
		mcp.WithDescription("Manage MCP tools - list, enable or disable tool groups"),
		mcp.WithString("action", mcp.Required(), mcp.Description("Action to perform: list, enable, disable")),
		mcp.WithString("tool_name", mcp.Description("Tool group name to enable/disable")),
	)

	s.AddTool(tool, util.ErrorGuard(toolManagerHandler))
}

func toolManagerHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	action, ok := arguments["action"].(string)
	if !ok {
		return mcp.NewToolResultError("action must be a string"), nil
	}

	enabled := EnabledTools()

	switch action {
	case "list":
		var response strings.Builder
		response.WriteString("Available tools:\n")
		for _, g := range Groups {
			status := "disabled"
			if enabled.IsEmpty() || enabled.Contains(g.Name) {
				status = "enabled"
			}
			response.WriteString(fmt.Sprintf("- %s (%s) [%s]\n", g.Name, g.Description, status))
		}
		response.WriteString("\nCurrently enabled tools:\n")
		if enabled.IsEmpty() {
			response.WriteString("All tools are enabled (ENABLE_TOOLS is empty)\n")
		} else {
			names := enabled.ToSlice()
			slices.Sort(names)
			for _, name := range names {
				response.WriteString(fmt.Sprintf("- %s\n", name))
			}
		}
		return mcp.NewToolResultText(response.String()), nil

	case "enable", "disable":
		toolName, ok := arguments["tool_name"].(string)
		if !ok || toolName == "" {
			return mcp.NewToolResultError("tool_name is required for enable/disable actions"), nil
		}
		if !slices.ContainsFunc(Groups, func(g ToolGroup) bool { return g.Name == toolName }) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown tool: %s", toolName)), nil
		}

		if action == "enable" {
			enabled.Add(toolName)
		} else {
			if enabled.IsEmpty() {
				for _, g := range Groups {
					enabled.Add(g.Name)
				}
			}
			enabled.Remove(toolName)
		}

		names := enabled.ToSlice()
		slices.Sort(names)
		os.Setenv("ENABLE_TOOLS", strings.Join(names, ","))

		return mcp.NewToolResultText(fmt.Sprintf("Successfully %sd tool: %s (takes effect on restart)", action, toolName)), nil

	default:
		return mcp.NewToolResultError("Invalid action. Use 'list', 'enable', or 'disable'"), nil
	}
}
