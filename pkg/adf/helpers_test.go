package adf_test

import "github.com/athapong/adf-mcp/pkg/adf"

func doc(children ...*adf.Node) *adf.Node {
	return &adf.Node{Type: "doc", Version: 1, Content: children}
}

func node(kind string, attrs adf.Attrs, children ...*adf.Node) *adf.Node {
	return &adf.Node{Type: kind, Attrs: attrs, Content: children}
}

func para(children ...*adf.Node) *adf.Node {
	return node("paragraph", nil, children...)
}

func text(s string, marks ...*adf.Mark) *adf.Node {
	return &adf.Node{Type: "text", Text: s, Marks: marks}
}

func mark(kind string, attrs adf.Attrs) *adf.Mark {
	return &adf.Mark{Type: kind, Attrs: attrs}
}

func item(children ...*adf.Node) *adf.Node {
	return node("listItem", nil, children...)
}

func bullets(items ...*adf.Node) *adf.Node {
	return node("bulletList", nil, items...)
}

func ordered(order interface{}, items ...*adf.Node) *adf.Node {
	var attrs adf.Attrs
	if order != nil {
		attrs = adf.Attrs{"order": order}
	}
	return node("orderedList", attrs, items...)
}

func cell(kind, s string) *adf.Node {
	return node(kind, nil, para(text(s)))
}

func row(cells ...*adf.Node) *adf.Node {
	return node("tableRow", nil, cells...)
}
