package adf

// Node represents an ADF node
type Node struct {
	Type    string  `json:"type"`
	Version int     `json:"version,omitempty"`
	Text    string  `json:"text,omitempty"`
	Attrs   Attrs   `json:"attrs,omitempty"`
	Marks   []*Mark `json:"marks,omitempty"`
	Content []*Node `json:"content,omitempty"`
}

// Mark represents formatting marks in ADF
type Mark struct {
	Type  string `json:"type"`
	Attrs Attrs  `json:"attrs,omitempty"`
}

// Kind returns the node kind, KindUnknown for tags without a rendering rule.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindUnknown
	}
	return ParseKind(n.Type)
}

// Kind returns the mark kind, MarkUnknown for unrecognised tags.
func (m *Mark) Kind() MarkKind {
	if m == nil {
		return MarkUnknown
	}
	return ParseMarkKind(m.Type)
}

// Kind enumerates the node types the converter knows how to render.
type Kind int

const (
	KindUnknown Kind = iota
	KindDoc
	KindParagraph
	KindHeading
	KindBulletList
	KindOrderedList
	KindListItem
	KindTaskList
	KindTaskItem
	KindCodeBlock
	KindBlockquote
	KindRule
	KindTable
	KindTableRow
	KindTableHeader
	KindTableCell
	KindPanel
	KindMediaSingle
	KindMediaGroup
	KindMedia
	KindExpand
	KindNestedExpand
	KindDecisionList
	KindDecisionItem
	KindBlockCard
	KindText
	KindHardBreak
	KindMention
	KindEmoji
	KindDate
	KindStatus
	KindInlineCard
)

var kindNames = map[Kind]string{
	KindDoc:          "doc",
	KindParagraph:    "paragraph",
	KindHeading:      "heading",
	KindBulletList:   "bulletList",
	KindOrderedList:  "orderedList",
	KindListItem:     "listItem",
	KindTaskList:     "taskList",
	KindTaskItem:     "taskItem",
	KindCodeBlock:    "codeBlock",
	KindBlockquote:   "blockquote",
	KindRule:         "rule",
	KindTable:        "table",
	KindTableRow:     "tableRow",
	KindTableHeader:  "tableHeader",
	KindTableCell:    "tableCell",
	KindPanel:        "panel",
	KindMediaSingle:  "mediaSingle",
	KindMediaGroup:   "mediaGroup",
	KindMedia:        "media",
	KindExpand:       "expand",
	KindNestedExpand: "nestedExpand",
	KindDecisionList: "decisionList",
	KindDecisionItem: "decisionItem",
	KindBlockCard:    "blockCard",
	KindText:         "text",
	KindHardBreak:    "hardBreak",
	KindMention:      "mention",
	KindEmoji:        "emoji",
	KindDate:         "date",
	KindStatus:       "status",
	KindInlineCard:   "inlineCard",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// ParseKind maps an ADF type tag onto a Kind.
func ParseKind(name string) Kind {
	if k, ok := kindsByName[name]; ok {
		return k
	}
	return KindUnknown
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarkKind enumerates the inline marks.
type MarkKind int

const (
	MarkUnknown MarkKind = iota
	MarkStrong
	MarkEm
	MarkCode
	MarkStrike
	MarkUnderline
	MarkLink
	MarkSubSup
	MarkTextColor
	MarkBorder
)

var markKindsByName = map[string]MarkKind{
	"strong":    MarkStrong,
	"em":        MarkEm,
	"code":      MarkCode,
	"strike":    MarkStrike,
	"underline": MarkUnderline,
	"link":      MarkLink,
	"subsup":    MarkSubSup,
	"textColor": MarkTextColor,
	"border":    MarkBorder,
}

// ParseMarkKind maps an ADF mark tag onto a MarkKind.
func ParseMarkKind(name string) MarkKind {
	if k, ok := markKindsByName[name]; ok {
		return k
	}
	return MarkUnknown
}
