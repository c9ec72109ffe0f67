package ast

import "strconv"

// Href is a link-target descriptor. A parsed tree may carry the
// provisional self and relative forms; the href resolution pass in
// package resolve reduces those to final forms. String derives the
// canonical text of the target; it is the only place href strings are
// built. Canonical forms are document-relative — mapping a document
// name to a site URL belongs to the outer document assembler.
type Href interface {
	href()
	String() string
}

// DocHref points at another document.
type DocHref struct {
	Name string
}

// ParaHref points at a numbered paragraph of a document. Path is the
// dotted section number, outermost counter first.
type ParaHref struct {
	Name string
	Path []int
}

// AnchorHref points at a named anchor inside a document.
type AnchorHref struct {
	Name     string
	Fragment string
}

// ExternalHref is an absolute external URL, emitted as-is.
type ExternalHref struct {
	URL string
}

// SelfParaHref is a provisional reference to a numbered paragraph of
// the current document.
type SelfParaHref struct {
	Path []int
}

// SelfAnchorHref is a provisional reference to a named anchor in the
// current document.
type SelfAnchorHref struct {
	Fragment string
}

// ParentHref points at the parent document, or a sibling reached
// through it when Name is non-empty.
type ParentHref struct {
	Name string
}

// ChildHref wraps another href and marks it relative to the current
// document.
type ChildHref struct {
	Href Href
}

func (*DocHref) href()        {}
func (*ParaHref) href()       {}
func (*AnchorHref) href()     {}
func (*ExternalHref) href()   {}
func (*SelfParaHref) href()   {}
func (*SelfAnchorHref) href() {}
func (*ParentHref) href()     {}
func (*ChildHref) href()      {}

func (h *DocHref) String() string      { return h.Name }
func (h *ParaHref) String() string     { return h.Name + "#" + SectionFragment(h.Path) }
func (h *AnchorHref) String() string   { return h.Name + "#" + h.Fragment }
func (h *ExternalHref) String() string { return h.URL }
func (h *SelfParaHref) String() string { return "#" + SectionFragment(h.Path) }
func (h *SelfAnchorHref) String() string { return "#" + h.Fragment }
func (h *ParentHref) String() string   { return "../" + h.Name }
func (h *ChildHref) String() string    { return "./" + h.Href.String() }

// SectionFragment is the fragment identifier of a numbered section,
// "s-2.1.3" for path [2 1 3]. Heading anchors and paragraph hrefs
// must agree on this form.
func SectionFragment(path []int) string {
	b := []byte("s-")
	for i, n := range path {
		if i > 0 {
			b = append(b, '.')
		}
		b = strconv.AppendInt(b, int64(n), 10)
	}
	return string(b)
}
