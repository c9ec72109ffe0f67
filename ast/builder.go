package ast

import "strings"

// Builder accumulates one paragraph's content during tree
// construction: an ordered list of finalized nodes plus a pending
// raw-text buffer. A Builder is never part of a finished tree; Build
// consumes it exactly once and its result takes the Builder's place.
type Builder struct {
	nodes   []Node
	pending strings.Builder
}

// WriteString appends raw text to the pending buffer.
func (b *Builder) WriteString(s string) {
	b.pending.WriteString(s)
}

// Append adds a finalized node after the content built so far. A
// non-empty pending buffer is flushed to a Text leaf first. When the
// buffer is empty and the only prior element is an already-built Para,
// the node splices into that Para instead of nesting — paragraph trees
// stay flat rather than right-nested.
func (b *Builder) Append(n Node) {
	if b.pending.Len() > 0 {
		b.flush()
		b.nodes = append(b.nodes, n)
		return
	}
	if len(b.nodes) == 1 {
		if p, ok := b.nodes[0].(*Para); ok {
			b.nodes[0] = &Para{Xs: append(append([]Node(nil), p.Xs...), n)}
			return
		}
	}
	b.nodes = append(b.nodes, n)
}

func (b *Builder) flush() {
	b.nodes = append(b.nodes, &Text{Text: b.pending.String()})
	b.pending.Reset()
}

// Build collapses the builder into the minimal equivalent node:
//
//   - no prior nodes: a Text leaf of the pending buffer, even if empty;
//   - empty buffer, one prior node: that node, unwrapped;
//   - empty buffer, several prior nodes: a Para over them;
//   - otherwise: a Para over the prior nodes plus a trailing Text leaf.
//
// Build is total over every reachable builder state.
func (b *Builder) Build() Node {
	if len(b.nodes) == 0 {
		return &Text{Text: b.pending.String()}
	}
	if b.pending.Len() == 0 {
		if len(b.nodes) == 1 {
			return b.nodes[0]
		}
		return &Para{Xs: b.nodes}
	}
	b.flush()
	return &Para{Xs: b.nodes}
}
