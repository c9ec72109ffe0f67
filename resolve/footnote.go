package resolve

import "nmark.dev/nmark/ast"

// Footnotes collects every footnote in the tree with a child-first
// visit, so a footnote nested inside another's content precedes its
// host in the returned slice — matching the order the rendered
// footnote section lists them.
func Footnotes(n ast.Node) []*ast.Footnote {
	var fns []*ast.Footnote
	ast.VisitChildFirst(n, func(n ast.Node) {
		if fn, ok := n.(*ast.Footnote); ok {
			fns = append(fns, fn)
		}
	})
	return fns
}
