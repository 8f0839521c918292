package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/athapong/adf-mcp/pkg/adf"
	"github.com/athapong/adf-mcp/pkg/mddiff"
	"github.com/athapong/adf-mcp/services"
	"github.com/athapong/adf-mcp/util"
	"github.com/ctreminiom/go-atlassian/pkg/infra/models"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tidwall/gjson"
)

// RegisterConfluenceTool registers the confluence tools to the server
func RegisterConfluenceTool(s *server.MCPServer) {
	pageTool := mcp.NewTool("confluence_get_page",
		mcp.WithDescription("Get Confluence page content rendered as Markdown"),
		mcp.WithString("page_id", mcp.Required(), mcp.Description("Confluence page ID")),
	)
	s.AddTool(pageTool, util.ErrorGuard(confluencePageHandler))

	compareTool := mcp.NewTool("confluence_compare_versions",
		mcp.WithDescription("Compare two versions of a Confluence page by diffing their Markdown renderings"),
		mcp.WithString("page_id", mcp.Required(), mcp.Description("Confluence page ID")),
		mcp.WithString("source_version", mcp.Description("Source version number (optional, defaults to the previous version)")),
		mcp.WithString("target_version", mcp.Description("Target version number (optional, defaults to the latest version)")),
	)
	s.AddTool(compareTool, util.ErrorGuard(confluenceCompareHandler))
}

// renderedPage is a fetched page version with its body as Markdown.
type renderedPage struct {
	page     *models.PageScheme
	markdown string
	warnings []adf.Warning
}

func pageIDArgument(arguments map[string]interface{}) (int, error) {
	pageID, ok := arguments["page_id"].(string)
	if !ok || pageID == "" {
		return 0, fmt.Errorf("page_id argument is required")
	}
	pageIDInt, err := strconv.Atoi(pageID)
	if err != nil {
		return 0, fmt.Errorf("invalid page ID: %v", err)
	}
	return pageIDInt, nil
}

// fetchPage loads one version of a page, -1 meaning the latest, and renders its body.
// Pages without an ADF body fall back to the storage format through html-to-markdown.
func fetchPage(ctx context.Context, pageID, version int) (*renderedPage, error) {
	client, err := services.ConfluenceClient()
	if err != nil {
		return nil, err
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 4*time.Second)
	defer cancel()

	page, response, err := client.Page.Get(ctxWithTimeout, pageID, "atlas_doc_format", false, version)
	if err != nil {
		if response != nil {
			return nil, fmt.Errorf("failed to get page: %s (endpoint: %s)", response.Bytes.String(), response.Endpoint)
		}
		return nil, fmt.Errorf("failed to get page: %v", err)
	}
	if page == nil {
		return nil, fmt.Errorf("no content returned for page ID: %d", pageID)
	}

	if page.Body != nil && page.Body.AtlasDocFormat != nil && page.Body.AtlasDocFormat.Value != "" {
		res, err := pageBodyMarkdown(page.Body.AtlasDocFormat.Value)
		if err != nil {
			return nil, err
		}
		return &renderedPage{page: page, markdown: res.Markdown, warnings: res.Warnings}, nil
	}

	_, response, err = client.Page.Get(ctxWithTimeout, pageID, "storage", false, version)
	if err != nil {
		if response != nil {
			return nil, fmt.Errorf("failed to get storage format: %s (endpoint: %s)", response.Bytes.String(), response.Endpoint)
		}
		return nil, fmt.Errorf("failed to get storage format: %v", err)
	}
	markdown, err := storageMarkdown(response.Bytes.String())
	if err != nil {
		return nil, err
	}
	return &renderedPage{page: page, markdown: markdown}, nil
}

// pageBodyMarkdown renders the atlas_doc_format value of a page body.
func pageBodyMarkdown(value string) (*adf.Result, error) {
	body := &models.CommentNodeScheme{}
	if err := json.Unmarshal([]byte(value), body); err != nil {
		return nil, fmt.Errorf("failed to parse ADF content: %v", err)
	}
	res, err := render("confluence", adf.FromCommentNode(body))
	if err != nil {
		return nil, fmt.Errorf("failed to convert ADF content: %v", err)
	}
	return res, nil
}

// storageMarkdown converts the storage (XHTML) body of a raw page response.
func storageMarkdown(raw string) (string, error) {
	html := gjson.Get(raw, "body.storage.value").String()
	if html == "" {
		return "", nil
	}
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert storage format: %v", err)
	}
	return strings.TrimSpace(markdown), nil
}

func confluencePageHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := pageIDArgument(request.Params.Arguments)
	if err != nil {
		return nil, err
	}

	rendered, err := fetchPage(ctx, pageID, -1)
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(formatPage(rendered)), nil
}

func formatPage(rendered *renderedPage) string {
	page := rendered.page

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Title: %s\n", page.Title))
	result.WriteString(fmt.Sprintf("ID: %s\n", page.ID))
	result.WriteString(fmt.Sprintf("Space ID: %s\n", page.SpaceID))
	result.WriteString(fmt.Sprintf("Status: %s\n", page.Status))

	if page.Version != nil {
		result.WriteString(fmt.Sprintf("Version: %d (Created: %s)\n",
			page.Version.Number,
			page.Version.CreatedAt,
		))
	}

	result.WriteString("\nContent:\n")
	result.WriteString(separator + "\n")
	result.WriteString(rendered.markdown)
	result.WriteString("\n" + separator + "\n")

	if len(rendered.warnings) > 0 {
		result.WriteString(formatWarnings(rendered.warnings))
	}

	return result.String()
}

func confluenceCompareHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	pageID, err := pageIDArgument(arguments)
	if err != nil {
		return nil, err
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	latest, err := fetchPage(ctxWithTimeout, pageID, -1)
	if err != nil {
		return nil, err
	}
	if latest.page.Version == nil {
		return nil, fmt.Errorf("failed to get page version information")
	}

	sourceNum, targetNum, err := compareVersions(arguments, latest.page.Version.Number)
	if err != nil {
		return nil, err
	}

	target := latest
	if targetNum != latest.page.Version.Number {
		if target, err = fetchPage(ctxWithTimeout, pageID, targetNum); err != nil {
			return nil, fmt.Errorf("target version %d: %v", targetNum, err)
		}
	}
	source, err := fetchPage(ctxWithTimeout, pageID, sourceNum)
	if err != nil {
		return nil, fmt.Errorf("source version %d: %v", sourceNum, err)
	}

	return mcp.NewToolResultText(formatComparison(pageID, sourceNum, targetNum, source, target)), nil
}

// compareVersions resolves the optional version arguments against the latest version number.
func compareVersions(arguments map[string]interface{}, latest int) (int, int, error) {
	targetNum := latest
	sourceNum := targetNum - 1

	if sourceVersion, ok := arguments["source_version"].(string); ok && sourceVersion != "" {
		num, err := strconv.Atoi(sourceVersion)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid source_version: %v", err)
		}
		sourceNum = num
	}
	if targetVersion, ok := arguments["target_version"].(string); ok && targetVersion != "" {
		num, err := strconv.Atoi(targetVersion)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid target_version: %v", err)
		}
		targetNum = num
	}

	if sourceNum <= 0 || targetNum <= 0 || sourceNum >= targetNum || targetNum > latest {
		return 0, 0, fmt.Errorf("invalid version numbers: source=%d, target=%d (latest %d)", sourceNum, targetNum, latest)
	}
	return sourceNum, targetNum, nil
}

func formatComparison(pageID, sourceNum, targetNum int, source, target *renderedPage) string {
	var comparison strings.Builder
	comparison.WriteString(fmt.Sprintf("Comparing Page: %s (ID: %d)\n", target.page.Title, pageID))
	comparison.WriteString(fmt.Sprintf("Comparing versions: %d → %d\n\n", sourceNum, targetNum))

	if source.page.Title != target.page.Title {
		comparison.WriteString("Title Changes:\n")
		comparison.WriteString(fmt.Sprintf("- Version %d: %s\n", sourceNum, source.page.Title))
		comparison.WriteString(fmt.Sprintf("+ Version %d: %s\n\n", targetNum, target.page.Title))
	} else {
		comparison.WriteString(fmt.Sprintf("Title: %s (unchanged)\n\n", source.page.Title))
	}

	if source.page.Version != nil && target.page.Version != nil {
		comparison.WriteString("Version Information:\n")
		comparison.WriteString(fmt.Sprintf("Source (v%d): Created %s\n", source.page.Version.Number, source.page.Version.CreatedAt))
		comparison.WriteString(fmt.Sprintf("Target (v%d): Created %s\n\n", target.page.Version.Number, target.page.Version.CreatedAt))
	}

	comparison.WriteString("Content Changes:\n")
	comparison.WriteString("=================\n")
	if !mddiff.Changed(source.markdown, target.markdown) {
		comparison.WriteString("No content changes\n")
	} else {
		comparison.WriteString(mddiff.Semantic(source.markdown, target.markdown))
	}

	return comparison.String()
}
