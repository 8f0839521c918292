package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Store persists converted documents.
type Store interface {
	// Store writes the Markdown of a converted document
	Store(ctx context.Context, doc *Document) error
}

// ErrDuplicateOutput is returned when two documents map to the same output file.
var ErrDuplicateOutput = errors.New("duplicate output path")

// FileStore writes each document to <dir>/<name>.md. Each output path is
// written at most once; a second document with the same name is refused.
type FileStore struct {
	dir string

	mu      sync.Mutex
	written map[string]string // output path -> source
}

// NewFileStore creates a store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, written: make(map[string]string)}
}

// Path returns where doc is written.
func (s *FileStore) Path(doc *Document) string {
	return filepath.Join(s.dir, doc.Name()+".md")
}

// Check reports every pair of documents that would be written to the same
// file, so callers can refuse a batch before converting it.
func (s *FileStore) Check(docs []*Document) error {
	seen := make(map[string]string, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		path := s.Path(doc)
		if prev, ok := seen[path]; ok {
			return errors.Wrapf(ErrDuplicateOutput, "%s and %s both write %s", prev, doc.Source, path)
		}
		seen[path] = doc.Source
	}
	return nil
}

// Store writes the document's Markdown followed by a newline.
func (s *FileStore) Store(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.Err != nil {
		return errors.Wrapf(doc.Err, "refusing to store failed document %s", doc.Source)
	}

	path := s.Path(doc)
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.written[path]; ok {
		return errors.Wrapf(ErrDuplicateOutput, "%s already written from %s, refusing %s", path, prev, doc.Source)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	if err := os.WriteFile(path, []byte(doc.Markdown+"\n"), 0644); err != nil {
		return err
	}
	s.written[path] = doc.Source
	return nil
}

// WriterStore writes documents to a single stream. With headers set every
// document is preceded by an HTML comment naming its source.
type WriterStore struct {
	w       io.Writer
	headers bool
}

// NewWriterStore creates a store writing to w.
func NewWriterStore(w io.Writer, headers bool) *WriterStore {
	return &WriterStore{w: w, headers: headers}
}

func (s *WriterStore) Store(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.Err != nil {
		return errors.Wrapf(doc.Err, "refusing to store failed document %s", doc.Source)
	}
	if s.headers {
		if _, err := fmt.Fprintf(s.w, "<!-- %s -->\n", doc.Source); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(s.w, doc.Markdown)
	return err
}
