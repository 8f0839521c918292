package adf

import (
	"github.com/ctreminiom/go-atlassian/pkg/infra/models"
)

// FromCommentNode converts the go-atlassian representation of an ADF tree
// (used for Jira descriptions, comments and Confluence bodies) into a Node.
func FromCommentNode(node *models.CommentNodeScheme) *Node {
	if node == nil {
		return nil
	}

	adfNode := &Node{
		Type:    node.Type,
		Version: node.Version,
		Text:    node.Text,
	}

	if len(node.Attrs) > 0 {
		adfNode.Attrs = make(Attrs, len(node.Attrs))
		for k, v := range node.Attrs {
			adfNode.Attrs[k] = v
		}
	}

	for _, mark := range node.Marks {
		if mark == nil {
			continue
		}
		adfMark := &Mark{Type: mark.Type}
		if len(mark.Attrs) > 0 {
			adfMark.Attrs = make(Attrs, len(mark.Attrs))
			for k, v := range mark.Attrs {
				adfMark.Attrs[k] = v
			}
		}
		adfNode.Marks = append(adfNode.Marks, adfMark)
	}

	for _, child := range node.Content {
		if childNode := FromCommentNode(child); childNode != nil {
			adfNode.Content = append(adfNode.Content, childNode)
		}
	}

	return adfNode
}
