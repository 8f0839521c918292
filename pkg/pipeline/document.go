package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/athapong/adf-mcp/pkg/adf"
	"github.com/athapong/adf-mcp/pkg/mdstats"
	"github.com/google/uuid"
)

// Document is one ADF payload moving through the pipeline.
type Document struct {
	ID     string
	Source string // file path or other origin, used to name the output
	Data   []byte
	Path   string // gjson path of the document inside Data, empty for the root

	Markdown string
	Warnings []adf.Warning
	Stats    *mdstats.Stats
	Err      error
}

// NewDocument creates a document with a fresh ID.
func NewDocument(source string, data []byte) *Document {
	return &Document{
		ID:     uuid.New().String(),
		Source: source,
		Data:   data,
	}
}

// Name returns the source file name without directory and extension.
func (d *Document) Name() string {
	if d.Source == "" {
		return d.ID
	}
	base := filepath.Base(d.Source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
