package adf

import "strings"

// ApplyMarks wraps text in the Markdown (or inline HTML) syntax of each mark.
// The first mark becomes the outermost wrapper. Marks that are unknown or
// miss a required attribute contribute nothing. Text is not escaped.
func ApplyMarks(text string, marks []*Mark) string {
	if len(marks) == 0 {
		return text
	}

	opening := make([]string, 0, len(marks))
	closing := make([]string, 0, len(marks))
	wrap := func(open, close string) {
		opening = append(opening, open)
		closing = append(closing, close)
	}

	for _, mark := range marks {
		if mark == nil {
			continue
		}
		switch mark.Kind() {
		case MarkStrong:
			wrap("**", "**")
		case MarkEm:
			wrap("*", "*")
		case MarkCode:
			wrap("`", "`")
		case MarkStrike:
			wrap("~~", "~~")
		case MarkUnderline:
			wrap("<u>", "</u>")
		case MarkLink:
			if href := linkAttrs(mark.Attrs).Href; href != "" {
				wrap("[", "]("+href+")")
			}
		case MarkSubSup:
			if tag := subSupAttrs(mark.Attrs).Tag; tag != "" {
				wrap("<"+tag+">", "</"+tag+">")
			}
		case MarkTextColor:
			if color := textColorAttrs(mark.Attrs).Color; color != "" {
				wrap(`<span style="color: `+color+`">`, "</span>")
			}
		case MarkBorder, MarkUnknown:
		}
	}

	var b strings.Builder
	for _, open := range opening {
		b.WriteString(open)
	}
	b.WriteString(text)
	for i := len(closing) - 1; i >= 0; i-- {
		b.WriteString(closing[i])
	}
	return b.String()
}
