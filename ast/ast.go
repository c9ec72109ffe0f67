// Package ast defines the NamuMark document tree.
//
// A document is an immutable tree of Node values. Nodes come in four
// shapes: leaves, single-child wrappers, ordered-sequence containers,
// and optional-child containers. Resolution passes never mutate a tree;
// they rebuild changed subtrees bottom-up through the shape's rebuild
// constructor (see walk.go).
package ast

// Node is one unit of the markup syntax tree.
type Node interface {
	node()
}

// The three non-leaf shapes. Every non-leaf variant implements exactly
// one of these; the traversal operations in walk.go dispatch on them.
// Rebuild constructors return a fresh node and leave the receiver
// untouched.
type wrapper interface {
	Node
	child() Node
	withChild(Node) Node
}

type sequence interface {
	Node
	children() []Node
	withChildren([]Node) Node
}

type optional interface {
	Node
	opt() Node
	withOpt(Node) Node
}

// Leaves

// Text is raw document text. The renderer escapes it.
type Text struct {
	Text string
}

// HTML is pre-escaped passthrough text emitted verbatim.
type HTML struct {
	Raw string
}

// Code is an inline literal span.
type Code struct {
	Code string
}

// HRule is a horizontal rule.
type HRule struct{}

// BR is an explicit line break.
type BR struct{}

// Macro is a macro placeholder. Args is the raw, unsplit argument
// text between the parentheses; the parser owns argument syntax.
// Age and date macros stay placeholders: this library renders their
// literal form and never computes dates.
type Macro struct {
	Name string
	Args string
}

// Image is an inline image reference.
type Image struct {
	Href Href
	Alt  string
}

func (*Text) node()  {}
func (*HTML) node()  {}
func (*Code) node()  {}
func (*HRule) node() {}
func (*BR) node()    {}
func (*Macro) node() {}
func (*Image) node() {}

// Single-child wrappers

type Bold struct{ X Node }
type Italic struct{ X Node }
type Underline struct{ X Node }
type Strike struct{ X Node }
type Sup struct{ X Node }
type Sub struct{ X Node }

// Quote is a block quotation.
type Quote struct{ X Node }

// Indent is an indented block.
type Indent struct{ X Node }

// WordBox is the boxed-word block. The renderer emits only its class
// token; the surrounding document owns the class definition.
type WordBox struct{ X Node }

// Sized scales its content by Delta steps relative to the base size.
type Sized struct {
	X     Node
	Delta int
}

// Colored sets the text color of its content.
type Colored struct {
	X     Node
	Color string
}

// RawHeading is a heading as produced by the parser: a literal level
// 1 through 6 and no section number yet. The numbering pass replaces
// every RawHeading with a Heading.
type RawHeading struct {
	X     Node
	Level int
}

// Heading is a numbered section heading. Path holds the full dotted
// section number, one counter per nesting level.
type Heading struct {
	X     Node
	Level int
	Path  []int
}

// Footnote attaches footnote content to an inline reference point.
// Label may be empty; the renderer substitutes a placeholder mark.
type Footnote struct {
	X     Node
	Label string
}

// ListItem is one item of a List.
type ListItem struct{ X Node }

func (*Bold) node()       {}
func (*Italic) node()     {}
func (*Underline) node()  {}
func (*Strike) node()     {}
func (*Sup) node()        {}
func (*Sub) node()        {}
func (*Quote) node()      {}
func (*Indent) node()     {}
func (*WordBox) node()    {}
func (*Sized) node()      {}
func (*Colored) node()    {}
func (*RawHeading) node() {}
func (*Heading) node()    {}
func (*Footnote) node()   {}
func (*ListItem) node()   {}

func (n *Bold) child() Node       { return n.X }
func (n *Italic) child() Node     { return n.X }
func (n *Underline) child() Node  { return n.X }
func (n *Strike) child() Node     { return n.X }
func (n *Sup) child() Node        { return n.X }
func (n *Sub) child() Node        { return n.X }
func (n *Quote) child() Node      { return n.X }
func (n *Indent) child() Node     { return n.X }
func (n *WordBox) child() Node    { return n.X }
func (n *Sized) child() Node      { return n.X }
func (n *Colored) child() Node    { return n.X }
func (n *RawHeading) child() Node { return n.X }
func (n *Heading) child() Node    { return n.X }
func (n *Footnote) child() Node   { return n.X }
func (n *ListItem) child() Node   { return n.X }

func (n *Bold) withChild(c Node) Node      { return &Bold{X: c} }
func (n *Italic) withChild(c Node) Node    { return &Italic{X: c} }
func (n *Underline) withChild(c Node) Node { return &Underline{X: c} }
func (n *Strike) withChild(c Node) Node    { return &Strike{X: c} }
func (n *Sup) withChild(c Node) Node       { return &Sup{X: c} }
func (n *Sub) withChild(c Node) Node       { return &Sub{X: c} }
func (n *Quote) withChild(c Node) Node     { return &Quote{X: c} }
func (n *Indent) withChild(c Node) Node    { return &Indent{X: c} }
func (n *WordBox) withChild(c Node) Node   { return &WordBox{X: c} }
func (n *Sized) withChild(c Node) Node     { return &Sized{X: c, Delta: n.Delta} }
func (n *Colored) withChild(c Node) Node   { return &Colored{X: c, Color: n.Color} }
func (n *RawHeading) withChild(c Node) Node {
	return &RawHeading{X: c, Level: n.Level}
}
func (n *Heading) withChild(c Node) Node {
	return &Heading{X: c, Level: n.Level, Path: n.Path}
}
func (n *Footnote) withChild(c Node) Node { return &Footnote{X: c, Label: n.Label} }
func (n *ListItem) withChild(c Node) Node { return &ListItem{X: c} }

// Sequence containers

// Para is an ordered run of sibling content. Paragraph resolution
// (builder.go) keeps these flat: a Para built from a builder never
// directly contains another Para produced by the same builder chain.
type Para struct {
	Xs []Node
}

// ListKind selects the list marker style.
type ListKind int

const (
	Unordered ListKind = iota
	Decimal
	LowerAlpha
	UpperAlpha
	LowerRoman
	UpperRoman
)

// List is an ordered or unordered list. Start is the first item's
// ordinal for ordered kinds; 0 means 1.
type List struct {
	Kind  ListKind
	Start int
	Items []*ListItem
}

// Table is a table of rows. Styles holds table-scope presentation.
type Table struct {
	Styles Style
	Rows   []*Row
}

// Row is one table row.
type Row struct {
	Styles Style
	Cells  []*Cell
}

// Cell is one table cell: a single-child wrapper carrying cell-scope
// styles.
type Cell struct {
	Styles Style
	X      Node
}

func (*Para) node()  {}
func (*List) node()  {}
func (*Table) node() {}
func (*Row) node()   {}
func (*Cell) node()  {}

func (n *Para) children() []Node            { return n.Xs }
func (n *Para) withChildren(cs []Node) Node { return &Para{Xs: cs} }

func (n *List) children() []Node {
	cs := make([]Node, len(n.Items))
	for i, it := range n.Items {
		cs[i] = it
	}
	return cs
}

// withChildren rebuilds the list. Replacing an item with anything but
// a *ListItem is a contract violation in the rewrite rule.
func (n *List) withChildren(cs []Node) Node {
	items := make([]*ListItem, len(cs))
	for i, c := range cs {
		items[i] = c.(*ListItem)
	}
	return &List{Kind: n.Kind, Start: n.Start, Items: items}
}

func (n *Table) children() []Node {
	cs := make([]Node, len(n.Rows))
	for i, r := range n.Rows {
		cs[i] = r
	}
	return cs
}

func (n *Table) withChildren(cs []Node) Node {
	rows := make([]*Row, len(cs))
	for i, c := range cs {
		rows[i] = c.(*Row)
	}
	return &Table{Styles: n.Styles, Rows: rows}
}

func (n *Row) children() []Node {
	cs := make([]Node, len(n.Cells))
	for i, c := range n.Cells {
		cs[i] = c
	}
	return cs
}

func (n *Row) withChildren(cs []Node) Node {
	cells := make([]*Cell, len(cs))
	for i, c := range cs {
		cells[i] = c.(*Cell)
	}
	return &Row{Styles: n.Styles, Cells: cells}
}

func (n *Cell) child() Node           { return n.X }
func (n *Cell) withChild(c Node) Node { return &Cell{Styles: n.Styles, X: c} }

// Optional-child containers

// Link is a document link. Text is the display content; when nil the
// renderer falls back to the href's canonical string.
type Link struct {
	Href Href
	Text Node
}

func (*Link) node() {}

func (n *Link) opt() Node           { return n.Text }
func (n *Link) withOpt(c Node) Node { return &Link{Href: n.Href, Text: c} }
