package ast

import "strconv"

// Align is a three-way alignment. For cell and row scope it selects
// text alignment; for table scope it positions the table itself.
type Align int

const (
	AlignNone Align = iota
	AlignStart
	AlignCenter
	AlignEnd
)

// Scope selects how a Style composes: table-scope alignment places
// the whole table, cell- and row-scope alignment sets text alignment.
type Scope int

const (
	CellScope Scope = iota
	RowScope
	TableScope
)

// Style is the presentation record of one table, row, or cell. One
// field per semantic slot; the zero value of a field means the slot is
// unset. The parser emits at most one directive per slot, so no
// last-wins scanning happens here.
//
// RowSpan carries its own vertical alignment (RowAlign): spanning a
// row vertically places the content, so the two are one slot, not two.
type Style struct {
	BgColor     string
	BorderColor string
	Width       string
	Height      string
	Align       Align
	ColSpan     int
	RowSpan     int
	RowAlign    Align
}

// Attrs renders the attribute-contributing slots as ` name="value"`
// pairs, with a leading space per pair. Empty when no slot contributes.
func (s Style) Attrs() string {
	var b []byte
	if s.ColSpan > 1 {
		b = append(b, ` colspan="`...)
		b = strconv.AppendInt(b, int64(s.ColSpan), 10)
		b = append(b, '"')
	}
	if s.RowSpan > 1 {
		b = append(b, ` rowspan="`...)
		b = strconv.AppendInt(b, int64(s.RowSpan), 10)
		b = append(b, '"')
	}
	return string(b)
}

// CSS renders the declaration-contributing slots as a single CSS
// declaration list, in slot order. Empty when no slot contributes.
func (s Style) CSS(scope Scope) string {
	var b []byte
	decl := func(prop, val string) {
		if len(b) > 0 {
			b = append(b, ' ')
		}
		b = append(b, prop...)
		b = append(b, ':', ' ')
		b = append(b, val...)
		b = append(b, ';')
	}
	if s.BgColor != "" {
		decl("background-color", s.BgColor)
	}
	if s.BorderColor != "" {
		decl("border-color", s.BorderColor)
	}
	if s.Width != "" {
		decl("width", s.Width)
	}
	if s.Height != "" {
		decl("height", s.Height)
	}
	switch scope {
	case TableScope:
		switch s.Align {
		case AlignStart:
			decl("margin-right", "auto")
		case AlignCenter:
			decl("margin-left", "auto")
			decl("margin-right", "auto")
		case AlignEnd:
			decl("margin-left", "auto")
		}
	default:
		switch s.Align {
		case AlignStart:
			decl("text-align", "left")
		case AlignCenter:
			decl("text-align", "center")
		case AlignEnd:
			decl("text-align", "right")
		}
	}
	if s.RowSpan > 1 {
		switch s.RowAlign {
		case AlignStart:
			decl("vertical-align", "top")
		case AlignEnd:
			decl("vertical-align", "bottom")
		default:
			decl("vertical-align", "middle")
		}
	}
	return string(b)
}
