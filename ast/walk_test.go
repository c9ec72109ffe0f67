// Tests for walk.go
package ast_test

import (
	"reflect"
	"testing"

	"github.com/sanity-io/litter"
	"nmark.dev/nmark/ast"
)

// sample builds a tree touching all four node shapes.
func sample() ast.Node {
	return &ast.Para{Xs: []ast.Node{
		&ast.RawHeading{Level: 1, X: &ast.Text{Text: "intro"}},
		&ast.Bold{X: &ast.Italic{X: &ast.Text{Text: "hi"}}},
		&ast.Link{Href: &ast.DocHref{Name: "other"}, Text: &ast.Text{Text: "see"}},
		&ast.Link{Href: &ast.ExternalHref{URL: "https://example.com"}},
		&ast.List{Kind: ast.Decimal, Start: 3, Items: []*ast.ListItem{
			{X: &ast.Text{Text: "one"}},
			{X: &ast.Footnote{Label: "a", X: &ast.Text{Text: "note"}}},
		}},
		&ast.Table{Rows: []*ast.Row{
			{Cells: []*ast.Cell{
				{Styles: ast.Style{ColSpan: 2}, X: &ast.Text{Text: "wide"}},
			}},
		}},
		&ast.Macro{Name: "date"},
		&ast.HRule{},
	}}
}

func TestRewriteIdentity(t *testing.T) {
	undefined := ast.Rule{}
	for _, rw := range []struct {
		name string
		f    func(ast.Node, ast.Rule) ast.Node
	}{
		{"child-first", ast.RewriteChildFirst},
		{"node-first", ast.RewriteNodeFirst},
	} {
		in := sample()
		got := rw.f(in, undefined)
		if !reflect.DeepEqual(in, got) {
			t.Errorf("%s identity rewrite changed the tree,\nwant %s,\ngot %s",
				rw.name, litter.Sdump(in), litter.Sdump(got))
		}
	}
}

func TestRewriteUndefinedPassThrough(t *testing.T) {
	// Defined only at *ast.Bold; a tree without Bold passes through
	// unchanged, and Rewrite must never run.
	called := false
	rule := ast.Rule{
		Match: func(n ast.Node) bool {
			_, ok := n.(*ast.Bold)
			return ok
		},
		Rewrite: func(n ast.Node) ast.Node {
			called = true
			return n
		},
	}
	in := &ast.Quote{X: &ast.Text{Text: "plain"}}
	got := ast.RewriteChildFirst(in, rule)
	if called {
		t.Error("rule applied to a tree outside its domain")
	}
	if !reflect.DeepEqual(in, got) {
		t.Errorf("pass-through changed the tree, got %s", litter.Sdump(got))
	}
}

func TestVisitOrder(t *testing.T) {
	c := &ast.Text{Text: "c"}
	d := &ast.Text{Text: "d"}
	p3 := &ast.Para{Xs: []ast.Node{c, d}}
	b := &ast.Text{Text: "b"}
	p2 := &ast.Para{Xs: []ast.Node{b, p3}}
	a := &ast.Text{Text: "a"}
	f := &ast.Text{Text: "f"}
	root := &ast.Para{Xs: []ast.Node{a, p2, f}}

	var cfs []ast.Node
	ast.VisitChildFirst(root, func(n ast.Node) { cfs = append(cfs, n) })
	wantCFS := []ast.Node{a, b, c, d, p3, p2, f, root}
	if !reflect.DeepEqual(cfs, wantCFS) {
		t.Errorf("child-first order: want %s,\ngot %s", litter.Sdump(wantCFS), litter.Sdump(cfs))
	}

	var nfs []ast.Node
	ast.VisitNodeFirst(root, func(n ast.Node) { nfs = append(nfs, n) })
	wantNFS := []ast.Node{root, a, p2, b, p3, c, d, f}
	if !reflect.DeepEqual(nfs, wantNFS) {
		t.Errorf("node-first order: want %s,\ngot %s", litter.Sdump(wantNFS), litter.Sdump(nfs))
	}
}

func TestRewriteChildFirstSinglePass(t *testing.T) {
	// A child rewritten bottom-up must not be handed back to the rule
	// after its parent is rebuilt.
	rule := ast.Rule{
		Match: func(n ast.Node) bool {
			_, ok := n.(*ast.Text)
			return ok
		},
		Rewrite: func(n ast.Node) ast.Node {
			return &ast.Text{Text: n.(*ast.Text).Text + "!"}
		},
	}
	in := &ast.Bold{X: &ast.Text{Text: "x"}}
	got := ast.RewriteChildFirst(in, rule)
	want := &ast.Bold{X: &ast.Text{Text: "x!"}}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("want %s,\ngot %s", litter.Sdump(want), litter.Sdump(got))
	}
}

func TestRewriteNodeFirstVisitsReplacementChild(t *testing.T) {
	// Replacing a node with another wrapper keeps the new child in the
	// pass: the Text inside the replacement is still rewritten.
	rule := ast.Rule{
		Match: func(n ast.Node) bool {
			switch n.(type) {
			case *ast.Italic, *ast.Text:
				return true
			}
			return false
		},
		Rewrite: func(n ast.Node) ast.Node {
			switch t := n.(type) {
			case *ast.Italic:
				return &ast.Bold{X: t.X}
			case *ast.Text:
				return &ast.Text{Text: t.Text + "!"}
			}
			return n
		},
	}
	in := &ast.Italic{X: &ast.Text{Text: "x"}}
	got := ast.RewriteNodeFirst(in, rule)
	want := &ast.Bold{X: &ast.Text{Text: "x!"}}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("want %s,\ngot %s", litter.Sdump(want), litter.Sdump(got))
	}
}

func TestVisitOptionalChild(t *testing.T) {
	// A link without display text has no child to visit.
	var seen int
	ast.VisitNodeFirst(&ast.Link{Href: &ast.DocHref{Name: "d"}}, func(ast.Node) { seen++ })
	if seen != 1 {
		t.Errorf("bare link visited %d nodes, want 1", seen)
	}
}
