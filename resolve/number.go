// Package resolve implements the semantic passes run between parsing
// and rendering: heading numbering, href resolution, and footnote
// collection. Within one document the order is fixed — numbering, then
// hrefs, then rendering — because href resolution consumes numbering
// results. Passes over different documents are independent.
package resolve

import "nmark.dev/nmark/ast"

// Outline is the numbered-section tree of one document, as produced
// by Number. Sections[i] is the subtree of section i+1.
type Outline struct {
	Sections []*Outline
}

// Clamp returns the longest prefix of path that names an existing
// section. A nil outline clamps everything to the empty path.
func (o *Outline) Clamp(path []int) []int {
	cur := o
	for i, n := range path {
		if cur == nil || n < 1 || n > len(cur.Sections) {
			return path[:i]
		}
		cur = cur.Sections[n-1]
	}
	return path
}

func (o *Outline) add(path []int) {
	cur := o
	for _, n := range path {
		for len(cur.Sections) < n {
			cur.Sections = append(cur.Sections, &Outline{})
		}
		cur = cur.Sections[n-1]
	}
}

// Number assigns hierarchical section numbers to every raw heading of
// the tree, in document order, and returns the rewritten tree together
// with its outline. Siblings at one depth count up; a deeper heading
// starts a fresh counter at 1; returning to a shallower depth pops the
// deeper counters, so revisiting a depth restarts its numbering.
//
// The counter stack lives on the pass value and is discarded when
// Number returns; this is the only stateful pass, which is why it runs
// node-first — document order is what makes the numbers meaningful.
func Number(n ast.Node) (ast.Node, *Outline) {
	p := &numberer{outline: &Outline{}}
	out := ast.RewriteNodeFirst(n, ast.Rule{
		Match: func(n ast.Node) bool {
			_, ok := n.(*ast.RawHeading)
			return ok
		},
		Rewrite: p.heading,
	})
	return out, p.outline
}

type numberer struct {
	counters []int
	outline  *Outline
}

func (p *numberer) heading(n ast.Node) ast.Node {
	h := n.(*ast.RawHeading)
	depth := h.Level
	if depth < 1 {
		depth = 1
	}
	switch {
	case depth <= len(p.counters):
		p.counters = p.counters[:depth]
		p.counters[depth-1]++
	default:
		for len(p.counters) < depth {
			p.counters = append(p.counters, 1)
		}
	}
	path := append([]int(nil), p.counters...)
	p.outline.add(path)
	return &ast.Heading{X: h.X, Level: h.Level, Path: path}
}
