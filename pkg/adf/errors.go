package adf

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidRoot is returned when the value handed to the converter is not a
// "doc" node.
var ErrInvalidRoot = errors.New(`adf: root node must be of type "doc"`)

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningUnknownNode   WarningType = "unknown_node"
	WarningDepthExceeded WarningType = "depth_exceeded"
)

// Warning is a non-fatal issue met during conversion. The node that caused
// it renders as an empty string.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Message  string      `json:"message"`
}

func (w Warning) String() string {
	if w.NodeType == "" {
		return fmt.Sprintf("%s: %s", w.Type, w.Message)
	}
	return fmt.Sprintf("%s (%s): %s", w.Type, w.NodeType, w.Message)
}

// Result holds the output of a conversion.
type Result struct {
	Markdown string    `json:"markdown"`
	Warnings []Warning `json:"warnings,omitempty"`
}

func invalidRoot(got string) error {
	if got == "" {
		return errors.Wrap(ErrInvalidRoot, "missing root node")
	}
	return errors.Wrapf(ErrInvalidRoot, "got %q", got)
}
