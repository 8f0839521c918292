package adf_test

import (
	"testing"

	"github.com/athapong/adf-mcp/pkg/adf"
	"github.com/stretchr/testify/assert"
)

func TestApplyMarks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		marks []*adf.Mark
		want  string
	}{
		{"no marks", nil, "x"},
		{"empty marks", []*adf.Mark{}, "x"},
		{"strong", []*adf.Mark{mark("strong", nil)}, "**x**"},
		{"em", []*adf.Mark{mark("em", nil)}, "*x*"},
		{"code", []*adf.Mark{mark("code", nil)}, "`x`"},
		{"strike", []*adf.Mark{mark("strike", nil)}, "~~x~~"},
		{"underline", []*adf.Mark{mark("underline", nil)}, "<u>x</u>"},
		{"link", []*adf.Mark{mark("link", adf.Attrs{"href": "https://example.com"})}, "[x](https://example.com)"},
		{"link without href", []*adf.Mark{mark("link", nil)}, "x"},
		{"link with empty href", []*adf.Mark{mark("link", adf.Attrs{"href": ""})}, "x"},
		{"subscript", []*adf.Mark{mark("subsup", adf.Attrs{"type": "sub"})}, "<sub>x</sub>"},
		{"superscript", []*adf.Mark{mark("subsup", adf.Attrs{"type": "sup"})}, "<sup>x</sup>"},
		{"subsup without selector", []*adf.Mark{mark("subsup", nil)}, "x"},
		{"subsup with unknown selector", []*adf.Mark{mark("subsup", adf.Attrs{"type": "mid"})}, "x"},
		{"text color", []*adf.Mark{mark("textColor", adf.Attrs{"color": "#ff0000"})}, `<span style="color: #ff0000">x</span>`},
		{"text color without color", []*adf.Mark{mark("textColor", nil)}, "x"},
		{"border", []*adf.Mark{mark("border", adf.Attrs{"size": 2})}, "x"},
		{"unknown mark", []*adf.Mark{mark("sparkle", nil)}, "x"},
		{"nil mark", []*adf.Mark{nil, mark("strong", nil)}, "**x**"},
		{"strong then em", []*adf.Mark{mark("strong", nil), mark("em", nil)}, "***x***"},
		{"strong then link", []*adf.Mark{mark("strong", nil), mark("link", adf.Attrs{"href": "u"})}, "**[x](u)**"},
		{"link then strong", []*adf.Mark{mark("link", adf.Attrs{"href": "u"}), mark("strong", nil)}, "[**x**](u)"},
		{"underline then code then strike", []*adf.Mark{mark("underline", nil), mark("code", nil), mark("strike", nil)}, "<u>`~~x~~`</u>"},
		{"skipped mark keeps nesting of others", []*adf.Mark{mark("em", nil), mark("link", nil), mark("underline", nil)}, "*<u>x</u>*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, adf.ApplyMarks("x", tt.marks))
		})
	}
}

func TestApplyMarks_NoEscaping(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "*a_b* [c]", adf.ApplyMarks("*a_b* [c]", nil))
	assert.Equal(t, "***a*b***", adf.ApplyMarks("a*b", []*adf.Mark{mark("strong", nil), mark("em", nil)}))
}
