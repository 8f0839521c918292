// Package mdstats inspects rendered Markdown: it re-parses the output with
// goldmark (GitHub flavour) and counts the structures a reader will see, and
// estimates how many LLM tokens the text costs.
package mdstats

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Stats counts block and inline structures in a Markdown document.
type Stats struct {
	Headings       int `json:"headings"`
	Paragraphs     int `json:"paragraphs"`
	Lists          int `json:"lists"`
	ListItems      int `json:"listItems"`
	TaskItems      int `json:"taskItems"`
	CompletedTasks int `json:"completedTasks"`
	Tables         int `json:"tables"`
	TableRows      int `json:"tableRows"`
	CodeBlocks     int `json:"codeBlocks"`
	Blockquotes    int `json:"blockquotes"`
	Links          int `json:"links"`
	Images         int `json:"images"`
}

var parser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// Analyze parses markdown and counts its structures.
func Analyze(markdown string) Stats {
	var s Stats
	if markdown == "" {
		return s
	}

	doc := parser.Parse(text.NewReader([]byte(markdown)))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			s.Headings++
		case ast.KindParagraph:
			s.Paragraphs++
		case ast.KindList:
			s.Lists++
		case ast.KindListItem:
			s.ListItems++
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			s.CodeBlocks++
		case ast.KindBlockquote:
			s.Blockquotes++
		case ast.KindLink, ast.KindAutoLink:
			s.Links++
		case ast.KindImage:
			s.Images++
		case east.KindTable:
			s.Tables++
		case east.KindTableRow:
			s.TableRows++
		case east.KindTaskCheckBox:
			s.TaskItems++
			if box, ok := n.(*east.TaskCheckBox); ok && box.IsChecked {
				s.CompletedTasks++
			}
		}
		return ast.WalkContinue, nil
	})
	return s
}

// String renders the non-zero counters as a short report.
func (s Stats) String() string {
	fields := []struct {
		name  string
		count int
	}{
		{"headings", s.Headings},
		{"paragraphs", s.Paragraphs},
		{"lists", s.Lists},
		{"list items", s.ListItems},
		{"task items", s.TaskItems},
		{"completed tasks", s.CompletedTasks},
		{"tables", s.Tables},
		{"table rows", s.TableRows},
		{"code blocks", s.CodeBlocks},
		{"blockquotes", s.Blockquotes},
		{"links", s.Links},
		{"images", s.Images},
	}

	var parts []string
	for _, f := range fields {
		if f.count > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", f.name, f.count))
		}
	}
	if len(parts) == 0 {
		return "empty document"
	}
	return strings.Join(parts, ", ")
}
