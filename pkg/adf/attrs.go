package adf

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Attrs holds the kind-specific attributes of a node or mark as decoded from JSON.
type Attrs map[string]interface{}

// String returns a non-empty string attribute.
func (a Attrs) String(key string) (string, bool) {
	s, ok := a[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// StringOr returns the string attribute or def when it is missing or empty.
func (a Attrs) StringOr(key, def string) string {
	if s, ok := a.String(key); ok {
		return s
	}
	return def
}

// Int returns a numeric attribute. JSON numbers, Go integers and numeric
// strings are accepted.
func (a Attrs) Int(key string) (int64, bool) {
	switch v := a[key].(type) {
	case float64:
		return floatInt(v)
	case float32:
		return floatInt(float64(v))
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if f, err := v.Float64(); err == nil {
			return floatInt(f)
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// floatInt truncates f, rejecting values outside the int64 range.
func floatInt(f float64) (int64, bool) {
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// MaxHeadingLevel is the largest heading level rendered as is. Larger levels
// are treated as malformed and fall back to 1.
const MaxHeadingLevel = 1 << 10

// HeadingAttrs configures a heading. Level is in [1, MaxHeadingLevel] and
// not clamped to 6.
type HeadingAttrs struct {
	Level int
}

func headingAttrs(a Attrs) HeadingAttrs {
	level := 1
	if n, ok := a.Int("level"); ok && n > 1 && n <= MaxHeadingLevel {
		level = int(n)
	}
	return HeadingAttrs{Level: level}
}

// OrderedListAttrs holds the first number of an ordered list.
type OrderedListAttrs struct {
	Order int
}

func orderedListAttrs(a Attrs) OrderedListAttrs {
	order := 1
	if n, ok := a.Int("order"); ok && n > 1 {
		order = int(n)
	}
	return OrderedListAttrs{Order: order}
}

// TaskItemAttrs reports whether a task is done.
type TaskItemAttrs struct {
	Done bool
}

func taskItemAttrs(a Attrs) TaskItemAttrs {
	return TaskItemAttrs{Done: a.StringOr("state", "TODO") == "DONE"}
}

// CodeBlockAttrs holds the fence language, empty when unset.
type CodeBlockAttrs struct {
	Language string
}

func codeBlockAttrs(a Attrs) CodeBlockAttrs {
	return CodeBlockAttrs{Language: a.StringOr("language", "")}
}

// PanelAttrs holds the panel type, "info" when unset.
type PanelAttrs struct {
	PanelType string
}

func panelAttrs(a Attrs) PanelAttrs {
	return PanelAttrs{PanelType: a.StringOr("panelType", "info")}
}

// MediaAttrs describes an image reference.
type MediaAttrs struct {
	ID         string
	Alt        string
	Collection string
}

func mediaAttrs(a Attrs) MediaAttrs {
	return MediaAttrs{
		ID:         a.StringOr("id", ""),
		Alt:        a.StringOr("alt", "image"),
		Collection: a.StringOr("collection", ""),
	}
}

// ExpandAttrs holds the summary line of an expand block.
type ExpandAttrs struct {
	Title string
}

func expandAttrs(a Attrs) ExpandAttrs {
	return ExpandAttrs{Title: a.StringOr("title", "Expand")}
}

// DecisionItemAttrs reports whether a decision was taken. Absent state means decided.
type DecisionItemAttrs struct {
	Decided bool
}

func decisionItemAttrs(a Attrs) DecisionItemAttrs {
	return DecisionItemAttrs{Decided: a.StringOr("state", "DECIDED") == "DECIDED"}
}

// CardAttrs holds the target of a block or inline card.
type CardAttrs struct {
	URL string
}

func cardAttrs(a Attrs) CardAttrs {
	return CardAttrs{URL: a.StringOr("url", "")}
}

// MentionAttrs holds the display text of a mention.
type MentionAttrs struct {
	Text string
}

func mentionAttrs(a Attrs) MentionAttrs {
	return MentionAttrs{Text: a.StringOr("text", "@unknown")}
}

// EmojiAttrs holds the rendered emoji text.
type EmojiAttrs struct {
	Text string
}

func emojiAttrs(a Attrs) EmojiAttrs {
	return EmojiAttrs{Text: a.StringOr("text", a.StringOr("shortName", ""))}
}

// DateAttrs holds a millisecond epoch timestamp. Valid is false when the
// attribute is missing or not numeric.
type DateAttrs struct {
	Timestamp int64
	Valid     bool
}

func dateAttrs(a Attrs) DateAttrs {
	ts, ok := a.Int("timestamp")
	return DateAttrs{Timestamp: ts, Valid: ok}
}

// StatusAttrs holds a status lozenge. Color is decoded but not rendered.
type StatusAttrs struct {
	Text  string
	Color string
}

func statusAttrs(a Attrs) StatusAttrs {
	return StatusAttrs{
		Text:  a.StringOr("text", ""),
		Color: a.StringOr("color", "neutral"),
	}
}

// LinkAttrs holds a link mark target.
type LinkAttrs struct {
	Href string
}

func linkAttrs(a Attrs) LinkAttrs {
	return LinkAttrs{Href: a.StringOr("href", "")}
}

// SubSupAttrs selects subscript or superscript. Tag is empty for anything else.
type SubSupAttrs struct {
	Tag string
}

func subSupAttrs(a Attrs) SubSupAttrs {
	switch t := a.StringOr("type", ""); t {
	case "sub", "sup":
		return SubSupAttrs{Tag: t}
	}
	return SubSupAttrs{}
}

// TextColorAttrs holds a CSS color value.
type TextColorAttrs struct {
	Color string
}

func textColorAttrs(a Attrs) TextColorAttrs {
	return TextColorAttrs{Color: a.StringOr("color", "")}
}
