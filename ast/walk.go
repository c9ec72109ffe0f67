package ast

// Rule is a partial rewrite from Node to Node. Match declares the
// variants the rule handles; Rewrite is invoked only on nodes Match
// accepts. Nodes outside the rule's domain pass through unchanged —
// that is defined behavior, never an error.
type Rule struct {
	Match   func(Node) bool
	Rewrite func(Node) Node
}

func (r Rule) definedAt(n Node) bool {
	return r.Match != nil && r.Match(n)
}

// VisitChildFirst calls visit on every node of the tree, descendants
// before their parent, sequence children left to right.
func VisitChildFirst(n Node, visit func(Node)) {
	switch t := n.(type) {
	case wrapper:
		VisitChildFirst(t.child(), visit)
	case sequence:
		for _, c := range t.children() {
			VisitChildFirst(c, visit)
		}
	case optional:
		if c := t.opt(); c != nil {
			VisitChildFirst(c, visit)
		}
	}
	visit(n)
}

// VisitNodeFirst calls visit on every node of the tree, each parent
// before its descendants, sequence children left to right.
func VisitNodeFirst(n Node, visit func(Node)) {
	visit(n)
	switch t := n.(type) {
	case wrapper:
		VisitNodeFirst(t.child(), visit)
	case sequence:
		for _, c := range t.children() {
			VisitNodeFirst(c, visit)
		}
	case optional:
		if c := t.opt(); c != nil {
			VisitNodeFirst(c, visit)
		}
	}
}

// RewriteChildFirst rewrites the tree bottom-up: children first, then
// the node is rebuilt around them, then r applies to the rebuilt node
// if defined there. A node produced by r is never handed back to r, so
// the pass makes exactly one sweep.
func RewriteChildFirst(n Node, r Rule) Node {
	n = rebuild(n, func(c Node) Node { return RewriteChildFirst(c, r) })
	if r.definedAt(n) {
		return r.Rewrite(n)
	}
	return n
}

// RewriteNodeFirst rewrites the tree top-down. If r is defined at the
// node it applies first, and the rewrite then descends into the
// result's children — replacing a node with another of the same shape
// keeps its new child visible to the pass. r is not re-applied to the
// replacement node itself.
func RewriteNodeFirst(n Node, r Rule) Node {
	if r.definedAt(n) {
		n = r.Rewrite(n)
	}
	return rebuild(n, func(c Node) Node { return RewriteNodeFirst(c, r) })
}

// rebuild reconstructs n around f applied to each child, via the
// shape's rebuild constructor. Leaves return unchanged.
func rebuild(n Node, f func(Node) Node) Node {
	switch t := n.(type) {
	case wrapper:
		return t.withChild(f(t.child()))
	case sequence:
		cs := t.children()
		out := make([]Node, len(cs))
		for i, c := range cs {
			out[i] = f(c)
		}
		return t.withChildren(out)
	case optional:
		if c := t.opt(); c != nil {
			return t.withOpt(f(c))
		}
	}
	return n
}
