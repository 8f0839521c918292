package adf

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxDepth bounds how deeply nested a document may be before
	// subtrees are dropped with a warning.
	DefaultMaxDepth = 256

	// DefaultDateLayout renders date nodes as ISO-8601 calendar dates.
	DefaultDateLayout = "2006-01-02"
)

var panelIcons = map[string]string{
	"info":    "ℹ️",
	"note":    "📝",
	"warning": "⚠️",
	"error":   "❌",
	"success": "✅",
}

const (
	decidedGlyph   = "✓"
	undecidedGlyph = "○"
)

// Converter renders ADF documents as Markdown. It holds only options, so a
// single instance may be shared between goroutines; every call gets its own
// traversal state.
type Converter struct {
	logger     logrus.FieldLogger
	maxDepth   int
	dateLayout string
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger that receives conversion warnings.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxDepth sets the maximum node nesting depth. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(c *Converter) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithDateLayout sets the time layout used for date nodes. Dates are always
// rendered in UTC.
func WithDateLayout(layout string) Option {
	return func(c *Converter) {
		if layout != "" {
			c.dateLayout = layout
		}
	}
}

// NewConverter creates a converter with the given options
func NewConverter(opts ...Option) *Converter {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	c := &Converter{
		logger:     logger,
		maxDepth:   DefaultMaxDepth,
		dateLayout: DefaultDateLayout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = sync.OnceValue(func() *Converter {
	return NewConverter()
})

// Convert converts an ADF document to Markdown
func Convert(doc *Node) (string, error) {
	return defaultConverter().Convert(doc)
}

// Convert renders doc as trimmed Markdown. It fails only when doc is not a
// "doc" node.
func (c *Converter) Convert(doc *Node) (string, error) {
	res, err := c.ConvertWithResult(doc)
	if err != nil {
		return "", err
	}
	return res.Markdown, nil
}

// ConvertWithResult is Convert plus the warnings collected on the way.
func (c *Converter) ConvertWithResult(doc *Node) (*Result, error) {
	if doc == nil {
		return nil, invalidRoot("")
	}
	if doc.Kind() != KindDoc {
		return nil, invalidRoot(doc.Type)
	}

	r := &renderer{
		Converter: c,
		reported:  mapset.NewThreadUnsafeSet[string](),
	}
	markdown := strings.TrimSpace(r.convertNodes(doc.Content))

	return &Result{Markdown: markdown, Warnings: r.warnings}, nil
}

type listFrame struct {
	ordered bool
	counter int
}

// renderer carries the state of one conversion.
type renderer struct {
	*Converter

	lists    []listFrame
	inTable  bool
	depth    int
	warnings []Warning
	reported mapset.Set[string]
}

// withList pushes a list frame for the duration of fn.
func (r *renderer) withList(ordered bool, start int, fn func() string) string {
	r.lists = append(r.lists, listFrame{ordered: ordered, counter: start})
	defer func() { r.lists = r.lists[:len(r.lists)-1] }()
	return fn()
}

// withTable marks table scope for the duration of fn.
func (r *renderer) withTable(fn func() string) string {
	prev := r.inTable
	r.inTable = true
	defer func() { r.inTable = prev }()
	return fn()
}

func (r *renderer) warn(kind WarningType, nodeType, message string) {
	if !r.reported.Add(string(kind) + "/" + nodeType) {
		return
	}
	r.warnings = append(r.warnings, Warning{Type: kind, NodeType: nodeType, Message: message})
	r.logger.WithFields(logrus.Fields{
		"warning":   kind,
		"node_type": nodeType,
	}).Warn(message)
}

func (r *renderer) convertNodes(nodes []*Node) string {
	var result strings.Builder
	for _, node := range nodes {
		result.WriteString(r.convertNode(node))
	}
	return result.String()
}

func (r *renderer) convertNode(node *Node) string {
	if node == nil {
		return ""
	}
	if r.depth >= r.maxDepth {
		r.warn(WarningDepthExceeded, node.Type, fmt.Sprintf("document nested deeper than %d levels", r.maxDepth))
		return ""
	}
	r.depth++
	defer func() { r.depth-- }()

	switch node.Kind() {
	// Block nodes
	case KindParagraph:
		return r.convertParagraph(node)
	case KindHeading:
		return r.convertHeading(node)
	case KindBulletList, KindTaskList:
		return r.convertList(node, false, 0)
	case KindOrderedList:
		return r.convertList(node, true, orderedListAttrs(node.Attrs).Order)
	case KindListItem:
		return r.convertListItem(node)
	case KindTaskItem:
		return r.convertTaskItem(node)
	case KindCodeBlock:
		return r.convertCodeBlock(node)
	case KindBlockquote:
		return prefixLines(strings.TrimSpace(r.convertNodes(node.Content)), "> ") + "\n\n"
	case KindRule:
		return "---\n\n"
	case KindTable:
		return r.withTable(func() string { return r.convertTable(node) })
	case KindTableRow:
		return r.convertTableRow(node)
	case KindTableHeader:
		return r.convertTableCell(node, true)
	case KindTableCell:
		return r.convertTableCell(node, false)
	case KindPanel:
		return r.convertPanel(node)
	case KindMediaSingle:
		if len(node.Content) == 0 {
			return ""
		}
		return r.convertNode(node.Content[0])
	case KindMediaGroup:
		return r.convertNodes(node.Content)
	case KindMedia:
		return convertMedia(node)
	case KindExpand, KindNestedExpand:
		return r.convertExpand(node)
	case KindDecisionList:
		return r.convertNodes(node.Content) + "\n"
	case KindDecisionItem:
		return r.convertDecisionItem(node)
	case KindBlockCard:
		if url := cardAttrs(node.Attrs).URL; url != "" {
			return "[" + url + "](" + url + ")\n\n"
		}
		return ""

	// Inline nodes
	case KindText:
		return ApplyMarks(node.Text, node.Marks)
	case KindHardBreak:
		return "  \n"
	case KindMention:
		return mentionAttrs(node.Attrs).Text
	case KindEmoji:
		return emojiAttrs(node.Attrs).Text
	case KindDate:
		return r.convertDate(node)
	case KindStatus:
		return "[" + statusAttrs(node.Attrs).Text + "]"
	case KindInlineCard:
		if url := cardAttrs(node.Attrs).URL; url != "" {
			return "[" + url + "](" + url + ")"
		}
		return ""

	// A nested doc has no rendering rule either.
	case KindDoc, KindUnknown:
		r.warn(WarningUnknownNode, node.Type, "unsupported node type")
		return ""
	}
	return ""
}

func (r *renderer) convertParagraph(node *Node) string {
	if len(node.Content) == 0 {
		return "\n"
	}
	return r.convertNodes(node.Content) + "\n\n"
}

func (r *renderer) convertHeading(node *Node) string {
	hashes := strings.Repeat("#", headingAttrs(node.Attrs).Level)
	return hashes + " " + r.convertNodes(node.Content) + "\n\n"
}

// convertList renders bullet, ordered and task lists. Only the outermost list
// of a nesting chain is followed by a blank line.
func (r *renderer) convertList(node *Node, ordered bool, start int) string {
	result := r.withList(ordered, start, func() string {
		return r.convertNodes(node.Content)
	})
	if len(r.lists) == 0 {
		return result + "\n"
	}
	return result
}

func (r *renderer) listIndent() string {
	return strings.Repeat("  ", max(len(r.lists)-1, 0))
}

func (r *renderer) convertListItem(node *Node) string {
	indent := r.listIndent()

	marker := "-"
	if n := len(r.lists); n > 0 && r.lists[n-1].ordered {
		frame := &r.lists[n-1]
		marker = strconv.Itoa(frame.counter) + "."
		frame.counter++
	}

	var result strings.Builder
	marked := false
	for _, child := range node.Content {
		if child == nil {
			continue
		}
		switch child.Kind() {
		case KindParagraph:
			text := strings.TrimSpace(r.convertNodes(child.Content))
			if !marked {
				result.WriteString(indent + marker + " " + text + "\n")
				marked = true
			} else {
				result.WriteString(indent + "  " + text + "\n")
			}
		case KindBulletList, KindOrderedList, KindTaskList:
			if !marked {
				result.WriteString(indent + marker + "\n")
				marked = true
			}
			result.WriteString(r.convertNode(child))
		default:
			block := strings.TrimSpace(r.convertNode(child))
			if block == "" {
				continue
			}
			if marked {
				result.WriteString(prefixLines(block, indent+"  ") + "\n")
				continue
			}
			// The first block carries the marker, the rest of it is continuation.
			first, rest, _ := strings.Cut(block, "\n")
			result.WriteString(indent + marker + " " + first + "\n")
			if rest != "" {
				result.WriteString(prefixLines(rest, indent+"  ") + "\n")
			}
			marked = true
		}
	}
	if !marked {
		result.WriteString(indent + marker + "\n")
	}
	return result.String()
}

func (r *renderer) convertTaskItem(node *Node) string {
	checked := " "
	if taskItemAttrs(node.Attrs).Done {
		checked = "x"
	}
	content := strings.TrimSpace(r.convertNodes(node.Content))
	return r.listIndent() + "- [" + checked + "] " + content + "\n"
}

func (r *renderer) convertCodeBlock(node *Node) string {
	language := codeBlockAttrs(node.Attrs).Language
	code := ""
	if len(node.Content) > 0 && node.Content[0] != nil {
		code = node.Content[0].Text
	}
	return "```" + language + "\n" + code + "\n```\n\n"
}

// convertTable emits a separator after the first row, which is assumed to
// be the header.
func (r *renderer) convertTable(node *Node) string {
	var result strings.Builder
	for i, row := range node.Content {
		result.WriteString(r.convertNode(row))
		if i == 0 {
			cells := 0
			if row != nil {
				cells = len(row.Content)
			}
			result.WriteString("| " + strings.Join(repeat("---", cells), " | ") + " |\n")
		}
	}
	result.WriteString("\n")
	return result.String()
}

func (r *renderer) convertTableRow(node *Node) string {
	cells := make([]string, 0, len(node.Content))
	for _, cell := range node.Content {
		cells = append(cells, r.convertNode(cell))
	}
	return "| " + strings.Join(cells, " | ") + " |\n"
}

// convertTableCell renders header and body cells alike.
func (r *renderer) convertTableCell(node *Node, _ bool) string {
	return strings.TrimSpace(r.convertNodes(node.Content))
}

func (r *renderer) convertPanel(node *Node) string {
	icon, ok := panelIcons[panelAttrs(node.Attrs).PanelType]
	if !ok {
		icon = panelIcons["info"]
	}
	content := strings.TrimSpace(r.convertNodes(node.Content))
	return prefixLines(content, "> "+icon+" ") + "\n\n"
}

func convertMedia(node *Node) string {
	attrs := mediaAttrs(node.Attrs)
	if attrs.ID != "" {
		return "![" + attrs.Alt + "](media://" + attrs.ID + ")\n\n"
	}
	return "![" + attrs.Alt + "]()\n\n"
}

func (r *renderer) convertExpand(node *Node) string {
	title := expandAttrs(node.Attrs).Title
	content := strings.TrimSpace(r.convertNodes(node.Content))
	return "<details>\n<summary>" + title + "</summary>\n\n" + content + "\n</details>\n\n"
}

func (r *renderer) convertDecisionItem(node *Node) string {
	glyph := undecidedGlyph
	if decisionItemAttrs(node.Attrs).Decided {
		glyph = decidedGlyph
	}
	content := strings.TrimSpace(r.convertNodes(node.Content))
	return "- " + glyph + " " + content + "\n"
}

func (r *renderer) convertDate(node *Node) string {
	attrs := dateAttrs(node.Attrs)
	if !attrs.Valid {
		return ""
	}
	return time.UnixMilli(attrs.Timestamp).UTC().Format(r.dateLayout)
}

func prefixLines(content, prefix string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
