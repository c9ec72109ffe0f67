// Package codec reads and writes the tagged-JSON wire form of a
// NamuMark tree. Each node is an object with a "t" tag and the fields
// of its variant; hrefs and styles nest the same way. This is the
// library's input boundary: the external parser produces this form,
// and the CLI and preview server consume it.
package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"nmark.dev/nmark/ast"
)

type wireNode struct {
	T        string      `json:"t"`
	Text     string      `json:"text,omitempty"`
	Level    int         `json:"level,omitempty"`
	Path     []int       `json:"path,omitempty"`
	Label    string      `json:"label,omitempty"`
	Name     string      `json:"name,omitempty"`
	Args     string      `json:"args,omitempty"`
	Color    string      `json:"color,omitempty"`
	Delta    int         `json:"delta,omitempty"`
	Kind     string      `json:"kind,omitempty"`
	Start    int         `json:"start,omitempty"`
	Alt      string      `json:"alt,omitempty"`
	Href     *wireHref   `json:"href,omitempty"`
	Style    *wireStyle  `json:"style,omitempty"`
	Child    *wireNode   `json:"child,omitempty"`
	Children []*wireNode `json:"children,omitempty"`
}

type wireHref struct {
	T        string    `json:"t"`
	Name     string    `json:"name,omitempty"`
	Path     []int     `json:"path,omitempty"`
	Fragment string    `json:"fragment,omitempty"`
	URL      string    `json:"url,omitempty"`
	Href     *wireHref `json:"href,omitempty"`
}

type wireStyle struct {
	Bg       string `json:"bg,omitempty"`
	Border   string `json:"border,omitempty"`
	Width    string `json:"width,omitempty"`
	Height   string `json:"height,omitempty"`
	Align    string `json:"align,omitempty"`
	ColSpan  int    `json:"colspan,omitempty"`
	RowSpan  int    `json:"rowspan,omitempty"`
	RowAlign string `json:"rowalign,omitempty"`
}

// Read decodes one document tree from r.
func Read(r io.Reader) (ast.Node, error) {
	var w wireNode
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, err
	}
	return w.node()
}

// Write encodes the tree to w, one JSON document.
func Write(w io.Writer, n ast.Node) error {
	wire, err := fromNode(n)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(wire)
}

func (w *wireNode) node() (ast.Node, error) {
	if w == nil {
		return nil, fmt.Errorf("codec: missing node")
	}
	switch w.T {
	case "text":
		return &ast.Text{Text: w.Text}, nil
	case "html":
		return &ast.HTML{Raw: w.Text}, nil
	case "code":
		return &ast.Code{Code: w.Text}, nil
	case "hrule":
		return &ast.HRule{}, nil
	case "br":
		return &ast.BR{}, nil
	case "macro":
		return &ast.Macro{Name: w.Name, Args: w.Args}, nil
	case "image":
		h, err := w.Href.node()
		if err != nil {
			return nil, err
		}
		return &ast.Image{Href: h, Alt: w.Alt}, nil
	case "link":
		h, err := w.Href.node()
		if err != nil {
			return nil, err
		}
		var text ast.Node
		if w.Child != nil {
			if text, err = w.Child.node(); err != nil {
				return nil, err
			}
		}
		return &ast.Link{Href: h, Text: text}, nil
	case "para":
		xs, err := w.nodes()
		if err != nil {
			return nil, err
		}
		return &ast.Para{Xs: xs}, nil
	case "list":
		kind, err := listKind(w.Kind)
		if err != nil {
			return nil, err
		}
		xs, err := w.nodes()
		if err != nil {
			return nil, err
		}
		items := make([]*ast.ListItem, len(xs))
		for i, x := range xs {
			it, ok := x.(*ast.ListItem)
			if !ok {
				return nil, fmt.Errorf("codec: list child %d is not a listitem", i)
			}
			items[i] = it
		}
		return &ast.List{Kind: kind, Start: w.Start, Items: items}, nil
	case "table":
		xs, err := w.nodes()
		if err != nil {
			return nil, err
		}
		rows := make([]*ast.Row, len(xs))
		for i, x := range xs {
			r, ok := x.(*ast.Row)
			if !ok {
				return nil, fmt.Errorf("codec: table child %d is not a row", i)
			}
			rows[i] = r
		}
		return &ast.Table{Styles: w.Style.style(), Rows: rows}, nil
	case "row":
		xs, err := w.nodes()
		if err != nil {
			return nil, err
		}
		cells := make([]*ast.Cell, len(xs))
		for i, x := range xs {
			c, ok := x.(*ast.Cell)
			if !ok {
				return nil, fmt.Errorf("codec: row child %d is not a cell", i)
			}
			cells[i] = c
		}
		return &ast.Row{Styles: w.Style.style(), Cells: cells}, nil
	case "cell":
		c, err := w.Child.node()
		if err != nil {
			return nil, err
		}
		return &ast.Cell{Styles: w.Style.style(), X: c}, nil
	}
	// The rest are single-child wrappers.
	c, err := w.Child.node()
	if err != nil {
		return nil, err
	}
	switch w.T {
	case "bold":
		return &ast.Bold{X: c}, nil
	case "italic":
		return &ast.Italic{X: c}, nil
	case "underline":
		return &ast.Underline{X: c}, nil
	case "strike":
		return &ast.Strike{X: c}, nil
	case "sup":
		return &ast.Sup{X: c}, nil
	case "sub":
		return &ast.Sub{X: c}, nil
	case "quote":
		return &ast.Quote{X: c}, nil
	case "indent":
		return &ast.Indent{X: c}, nil
	case "wordbox":
		return &ast.WordBox{X: c}, nil
	case "sized":
		return &ast.Sized{X: c, Delta: w.Delta}, nil
	case "colored":
		return &ast.Colored{X: c, Color: w.Color}, nil
	case "rawheading":
		return &ast.RawHeading{X: c, Level: w.Level}, nil
	case "heading":
		return &ast.Heading{X: c, Level: w.Level, Path: w.Path}, nil
	case "footnote":
		return &ast.Footnote{X: c, Label: w.Label}, nil
	case "listitem":
		return &ast.ListItem{X: c}, nil
	}
	return nil, fmt.Errorf("codec: unknown node tag %q", w.T)
}

func (w *wireNode) nodes() ([]ast.Node, error) {
	xs := make([]ast.Node, len(w.Children))
	for i, c := range w.Children {
		n, err := c.node()
		if err != nil {
			return nil, err
		}
		xs[i] = n
	}
	return xs, nil
}

func (w *wireHref) node() (ast.Href, error) {
	if w == nil {
		return nil, fmt.Errorf("codec: missing href")
	}
	switch w.T {
	case "doc":
		return &ast.DocHref{Name: w.Name}, nil
	case "para":
		return &ast.ParaHref{Name: w.Name, Path: w.Path}, nil
	case "anchor":
		return &ast.AnchorHref{Name: w.Name, Fragment: w.Fragment}, nil
	case "external":
		return &ast.ExternalHref{URL: w.URL}, nil
	case "selfpara":
		return &ast.SelfParaHref{Path: w.Path}, nil
	case "selfanchor":
		return &ast.SelfAnchorHref{Fragment: w.Fragment}, nil
	case "parent":
		return &ast.ParentHref{Name: w.Name}, nil
	case "child":
		inner, err := w.Href.node()
		if err != nil {
			return nil, err
		}
		return &ast.ChildHref{Href: inner}, nil
	}
	return nil, fmt.Errorf("codec: unknown href tag %q", w.T)
}

func (w *wireStyle) style() ast.Style {
	if w == nil {
		return ast.Style{}
	}
	return ast.Style{
		BgColor:     w.Bg,
		BorderColor: w.Border,
		Width:       w.Width,
		Height:      w.Height,
		Align:       align(w.Align),
		ColSpan:     w.ColSpan,
		RowSpan:     w.RowSpan,
		RowAlign:    align(w.RowAlign),
	}
}

func fromNode(n ast.Node) (*wireNode, error) {
	switch t := n.(type) {
	case *ast.Text:
		return &wireNode{T: "text", Text: t.Text}, nil
	case *ast.HTML:
		return &wireNode{T: "html", Text: t.Raw}, nil
	case *ast.Code:
		return &wireNode{T: "code", Text: t.Code}, nil
	case *ast.HRule:
		return &wireNode{T: "hrule"}, nil
	case *ast.BR:
		return &wireNode{T: "br"}, nil
	case *ast.Macro:
		return &wireNode{T: "macro", Name: t.Name, Args: t.Args}, nil
	case *ast.Image:
		return &wireNode{T: "image", Href: fromHref(t.Href), Alt: t.Alt}, nil
	case *ast.Link:
		w := &wireNode{T: "link", Href: fromHref(t.Href)}
		if t.Text != nil {
			c, err := fromNode(t.Text)
			if err != nil {
				return nil, err
			}
			w.Child = c
		}
		return w, nil
	case *ast.Para:
		cs, err := fromNodes(t.Xs)
		if err != nil {
			return nil, err
		}
		return &wireNode{T: "para", Children: cs}, nil
	case *ast.List:
		cs := make([]*wireNode, len(t.Items))
		for i, it := range t.Items {
			c, err := fromNode(it)
			if err != nil {
				return nil, err
			}
			cs[i] = c
		}
		return &wireNode{T: "list", Kind: kindName(t.Kind), Start: t.Start, Children: cs}, nil
	case *ast.Table:
		cs := make([]*wireNode, len(t.Rows))
		for i, r := range t.Rows {
			c, err := fromNode(r)
			if err != nil {
				return nil, err
			}
			cs[i] = c
		}
		return &wireNode{T: "table", Style: fromStyle(t.Styles), Children: cs}, nil
	case *ast.Row:
		cs := make([]*wireNode, len(t.Cells))
		for i, cell := range t.Cells {
			c, err := fromNode(cell)
			if err != nil {
				return nil, err
			}
			cs[i] = c
		}
		return &wireNode{T: "row", Style: fromStyle(t.Styles), Children: cs}, nil
	case *ast.Cell:
		c, err := fromNode(t.X)
		if err != nil {
			return nil, err
		}
		return &wireNode{T: "cell", Style: fromStyle(t.Styles), Child: c}, nil
	}
	// Single-child wrappers.
	var (
		w wireNode
		x ast.Node
	)
	switch t := n.(type) {
	case *ast.Bold:
		w, x = wireNode{T: "bold"}, t.X
	case *ast.Italic:
		w, x = wireNode{T: "italic"}, t.X
	case *ast.Underline:
		w, x = wireNode{T: "underline"}, t.X
	case *ast.Strike:
		w, x = wireNode{T: "strike"}, t.X
	case *ast.Sup:
		w, x = wireNode{T: "sup"}, t.X
	case *ast.Sub:
		w, x = wireNode{T: "sub"}, t.X
	case *ast.Quote:
		w, x = wireNode{T: "quote"}, t.X
	case *ast.Indent:
		w, x = wireNode{T: "indent"}, t.X
	case *ast.WordBox:
		w, x = wireNode{T: "wordbox"}, t.X
	case *ast.Sized:
		w, x = wireNode{T: "sized", Delta: t.Delta}, t.X
	case *ast.Colored:
		w, x = wireNode{T: "colored", Color: t.Color}, t.X
	case *ast.RawHeading:
		w, x = wireNode{T: "rawheading", Level: t.Level}, t.X
	case *ast.Heading:
		w, x = wireNode{T: "heading", Level: t.Level, Path: t.Path}, t.X
	case *ast.Footnote:
		w, x = wireNode{T: "footnote", Label: t.Label}, t.X
	case *ast.ListItem:
		w, x = wireNode{T: "listitem"}, t.X
	default:
		return nil, fmt.Errorf("codec: unknown node type %T", n)
	}
	c, err := fromNode(x)
	if err != nil {
		return nil, err
	}
	w.Child = c
	return &w, nil
}

func fromNodes(xs []ast.Node) ([]*wireNode, error) {
	cs := make([]*wireNode, len(xs))
	for i, x := range xs {
		c, err := fromNode(x)
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}
	return cs, nil
}

func fromHref(h ast.Href) *wireHref {
	switch t := h.(type) {
	case *ast.DocHref:
		return &wireHref{T: "doc", Name: t.Name}
	case *ast.ParaHref:
		return &wireHref{T: "para", Name: t.Name, Path: t.Path}
	case *ast.AnchorHref:
		return &wireHref{T: "anchor", Name: t.Name, Fragment: t.Fragment}
	case *ast.ExternalHref:
		return &wireHref{T: "external", URL: t.URL}
	case *ast.SelfParaHref:
		return &wireHref{T: "selfpara", Path: t.Path}
	case *ast.SelfAnchorHref:
		return &wireHref{T: "selfanchor", Fragment: t.Fragment}
	case *ast.ParentHref:
		return &wireHref{T: "parent", Name: t.Name}
	case *ast.ChildHref:
		return &wireHref{T: "child", Href: fromHref(t.Href)}
	}
	return nil
}

func fromStyle(s ast.Style) *wireStyle {
	if s == (ast.Style{}) {
		return nil
	}
	return &wireStyle{
		Bg:       s.BgColor,
		Border:   s.BorderColor,
		Width:    s.Width,
		Height:   s.Height,
		Align:    alignName(s.Align),
		ColSpan:  s.ColSpan,
		RowSpan:  s.RowSpan,
		RowAlign: alignName(s.RowAlign),
	}
}

func listKind(s string) (ast.ListKind, error) {
	switch s {
	case "", "ul":
		return ast.Unordered, nil
	case "1":
		return ast.Decimal, nil
	case "a":
		return ast.LowerAlpha, nil
	case "A":
		return ast.UpperAlpha, nil
	case "i":
		return ast.LowerRoman, nil
	case "I":
		return ast.UpperRoman, nil
	}
	return 0, fmt.Errorf("codec: unknown list kind %q", s)
}

func kindName(k ast.ListKind) string {
	switch k {
	case ast.Decimal:
		return "1"
	case ast.LowerAlpha:
		return "a"
	case ast.UpperAlpha:
		return "A"
	case ast.LowerRoman:
		return "i"
	case ast.UpperRoman:
		return "I"
	}
	return "ul"
}

func align(s string) ast.Align {
	switch s {
	case "start":
		return ast.AlignStart
	case "center":
		return ast.AlignCenter
	case "end":
		return ast.AlignEnd
	}
	return ast.AlignNone
}

func alignName(a ast.Align) string {
	switch a {
	case ast.AlignStart:
		return "start"
	case ast.AlignCenter:
		return "center"
	case ast.AlignEnd:
		return "end"
	}
	return ""
}
