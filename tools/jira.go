package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/athapong/adf-mcp/pkg/adf"
	"github.com/athapong/adf-mcp/services"
	"github.com/athapong/adf-mcp/util"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tidwall/gjson"
)

var issueFields = []string{"summary", "status", "issuetype", "priority", "assignee", "reporter", "labels", "description", "comment"}

// RegisterJiraTool registers the Jira tools to the server
func RegisterJiraTool(s *server.MCPServer) {
	jiraGetIssueTool := mcp.NewTool("jira_get_issue",
		mcp.WithDescription("Retrieve a Jira issue with its status, assignee, and priority, plus its description and comments rendered as Markdown"),
		mcp.WithString("issue_key", mcp.Required(), mcp.Description("The unique identifier of the Jira issue (e.g., KP-2, PROJ-123)")),
	)
	s.AddTool(jiraGetIssueTool, util.ErrorGuard(jiraIssueHandler))
}

func jiraIssueHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	issueKey, ok := request.Params.Arguments["issue_key"].(string)
	if !ok || issueKey == "" {
		return nil, fmt.Errorf("issue_key argument is required")
	}

	client, err := services.JiraClient()
	if err != nil {
		return nil, err
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 4*time.Second)
	defer cancel()

	_, response, err := client.Issue.Get(ctxWithTimeout, issueKey, issueFields, nil)
	if err != nil {
		if response != nil {
			return nil, fmt.Errorf("failed to get issue: %s (endpoint: %s)", response.Bytes.String(), response.Endpoint)
		}
		return nil, fmt.Errorf("failed to get issue: %v", err)
	}

	result, err := formatIssue(response.Bytes.Bytes())
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(result), nil
}

// formatIssue renders a raw v3 issue response. Rich text fields are ADF documents.
func formatIssue(raw []byte) (string, error) {
	if !gjson.ValidBytes(raw) {
		return "", fmt.Errorf("failed to parse issue response")
	}
	issue := gjson.ParseBytes(raw)
	fields := issue.Get("fields")

	orDefault := func(path, def string) string {
		if v := fields.Get(path).String(); v != "" {
			return v
		}
		return def
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Key: %s\n", issue.Get("key").String()))
	result.WriteString(fmt.Sprintf("Summary: %s\n", fields.Get("summary").String()))
	result.WriteString(fmt.Sprintf("Type: %s\n", orDefault("issuetype.name", "Unknown")))
	result.WriteString(fmt.Sprintf("Status: %s\n", orDefault("status.name", "Unknown")))
	result.WriteString(fmt.Sprintf("Priority: %s\n", orDefault("priority.name", "None")))
	result.WriteString(fmt.Sprintf("Reporter: %s\n", orDefault("reporter.displayName", "Unassigned")))
	result.WriteString(fmt.Sprintf("Assignee: %s\n", orDefault("assignee.displayName", "Unassigned")))

	if labels := fields.Get("labels").Array(); len(labels) > 0 {
		names := make([]string, 0, len(labels))
		for _, l := range labels {
			names = append(names, l.String())
		}
		result.WriteString(fmt.Sprintf("Labels: %s\n", strings.Join(names, ", ")))
	}

	var warnings []adf.Warning

	result.WriteString("\nDescription:\n")
	result.WriteString(separator + "\n")
	if description := fields.Get("description"); description.IsObject() {
		res, err := parseAndRender("jira", []byte(description.Raw), "")
		if err != nil {
			return "", fmt.Errorf("description: %v", err)
		}
		result.WriteString(res.Markdown)
		warnings = append(warnings, res.Warnings...)
	} else {
		result.WriteString("No description")
	}
	result.WriteString("\n" + separator + "\n")

	comments := fields.Get("comment.comments").Array()
	if len(comments) > 0 {
		result.WriteString(fmt.Sprintf("\nComments (%d):\n", len(comments)))
		for _, comment := range comments {
			author := comment.Get("author.displayName").String()
			if author == "" {
				author = "Unknown"
			}
			result.WriteString(fmt.Sprintf("%s (%s):\n", author, comment.Get("created").String()))

			body := comment.Get("body")
			if !body.IsObject() {
				result.WriteString(body.String() + "\n")
				continue
			}
			res, err := parseAndRender("jira", []byte(body.Raw), "")
			if err != nil {
				return "", fmt.Errorf("comment %s: %v", comment.Get("id").String(), err)
			}
			result.WriteString(res.Markdown + "\n")
			result.WriteString(separator + "\n")
			warnings = append(warnings, res.Warnings...)
		}
	}

	if len(warnings) > 0 {
		result.WriteString(formatWarnings(warnings))
	}

	return result.String(), nil
}
