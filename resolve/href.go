package resolve

import "nmark.dev/nmark/ast"

// Context supplies the document-level knowledge href resolution needs:
// the identity of the document being rendered and the numbered-section
// outlines of every document that may be targeted.
type Context struct {
	Doc      string
	Outlines map[string]*Outline
}

// Hrefs resolves every provisional link target in the tree to its
// final form. It is a node-first rewrite restricted to href-bearing
// nodes (links and images):
//
//   - self-paragraph and self-anchor targets resolve against the
//     context's document, becoming ordinary anchor references;
//   - paragraph targets become anchor references through the target
//     document's outline;
//   - child targets resolve their wrapped href and stay marked
//     relative;
//   - document, anchor, external, and parent targets are already
//     final and pass through, so resolving twice changes nothing.
//
// Resolution never fails a render: a paragraph path the target's
// outline no longer contains degrades to the longest prefix that
// exists, and a document with no outline at all degrades to a plain
// document link.
func Hrefs(n ast.Node, ctx Context) ast.Node {
	return ast.RewriteNodeFirst(n, ast.Rule{
		Match: func(n ast.Node) bool {
			switch n.(type) {
			case *ast.Link, *ast.Image:
				return true
			}
			return false
		},
		Rewrite: func(n ast.Node) ast.Node {
			switch t := n.(type) {
			case *ast.Link:
				return &ast.Link{Href: ctx.resolve(t.Href), Text: t.Text}
			case *ast.Image:
				return &ast.Image{Href: ctx.resolve(t.Href), Alt: t.Alt}
			}
			return n
		},
	})
}

func (c Context) resolve(h ast.Href) ast.Href {
	switch h := h.(type) {
	case *ast.SelfParaHref:
		return c.paragraph(c.Doc, h.Path)
	case *ast.SelfAnchorHref:
		return &ast.AnchorHref{Name: c.Doc, Fragment: h.Fragment}
	case *ast.ParaHref:
		return c.paragraph(h.Name, h.Path)
	case *ast.ChildHref:
		return &ast.ChildHref{Href: c.resolve(h.Href)}
	}
	return h
}

func (c Context) paragraph(doc string, path []int) ast.Href {
	clamped := c.Outlines[doc].Clamp(path)
	if len(clamped) == 0 {
		return &ast.DocHref{Name: doc}
	}
	return &ast.AnchorHref{Name: doc, Fragment: ast.SectionFragment(clamped)}
}
