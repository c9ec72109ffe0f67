// Package html converts a resolved NamuMark tree into an HTML
// fragment. Raw text and attribute values are escaped; block-level
// constructs that carry a symbolic class (quotes, word boxes, indents,
// footnote sections) emit only the class token — the surrounding
// document owns the class definitions and page chrome.
//
// AST nodes correspond to the following HTML tags:
//	Para                        children in order, no wrapper
//	Heading                     <h1>..<h6> with a section anchor id
//	List                        <ul></ul>, <ol type=...></ol>
//	Table / Row / Cell          <table><tbody><tr><td>, styled
//	Quote                       <blockquote class="wiki-quote"></blockquote>
//	WordBox                     <div class="wiki-word-box"></div>
//	Indent                      <div class="wiki-indent"></div>
//	Bold/Italic/...             <strong>, <em>, <u>, <s>, <sup>, <sub>
//	Link                        <a href=""></a>
//	Footnote                    paired reference/content anchors
//	Macro (mapped)              depends on the result of command execution
//	Macro (unmapped)            its literal placeholder form
package html

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	sq "github.com/kballard/go-shellquote"
	"nmark.dev/nmark/ast"
	"nmark.dev/nmark/resolve"
)

type syncWriter struct {
	m sync.Mutex
	w io.Writer
}

func (s *syncWriter) Write(p []byte) (n int, err error) {
	s.m.Lock()
	defer s.m.Unlock()
	n, err = s.w.Write(p)
	return
}

type stickyCountWriter struct {
	n   int64
	err error
	w   io.Writer
}

func (c *stickyCountWriter) Write(p []byte) (n int, err error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err = c.w.Write(p)
	c.err = err
	c.n += int64(n)
	return
}

// Generator is a non-reusable HTML generator for one resolved tree.
type Generator struct {
	// Stdout and Stderr specify the generator's standard output and
	// standard error.
	//
	// HTML output is written to standard out. Standard error is only
	// written by processes run for mapped macros.
	//
	// If Stdout == Stderr, at most one goroutine at a time will call Write.
	Stdout io.Writer
	Stderr io.Writer

	// Macros maps macro names to external commands, split by the Bourne
	// shell's word-splitting rules. A mapped macro runs its command with
	// the raw macro arguments on stdin and its stdout spliced into the
	// document. Unmapped macros render their placeholder form.
	Macros map[string]string

	ctx      context.Context
	doc      ast.Node
	waitdone chan error

	m     sync.Mutex
	pipes []io.Closer
}

// Gen returns a Generator for the given resolved tree.
func Gen(doc ast.Node) *Generator {
	return &Generator{ctx: context.TODO(), doc: doc}
}

// GenContext is like Gen but includes a context.
//
// The provided context halts generation between top-level nodes and
// kills any processes executed for a mapped macro.
func GenContext(ctx context.Context, doc ast.Node) *Generator {
	if ctx == nil {
		panic("nil context")
	}
	return &Generator{ctx: ctx, doc: doc}
}

// Start starts the generator but does not wait for it to complete.
func (g *Generator) Start() error {
	if g.Stdout == nil {
		g.Stdout = io.Discard
	}
	if g.Stderr == nil {
		g.Stderr = io.Discard
	}
	if g.Stdout == g.Stderr {
		g.Stdout = &syncWriter{w: g.Stdout}
		g.Stderr = g.Stdout
	}
	g.waitdone = make(chan error)
	go func() {
		err := g.gen()
		for _, p := range g.pipes {
			p.Close()
		}
		g.m.Lock()
		g.pipes = nil
		g.m.Unlock()
		g.waitdone <- err
	}()
	return nil
}

// Wait waits for the generator to complete and finish copying to
// Stdout and Stderr. It is an error to call Wait before Start.
//
// Wait releases any resources associated with the generator.
func (g *Generator) Wait() error {
	if g.waitdone == nil {
		return fmt.Errorf("not started")
	}
	g.m.Lock()
	if g.pipes != nil {
		g.m.Unlock()
		return fmt.Errorf("all reads from the pipe have not completed")
	}
	g.m.Unlock()
	err := <-g.waitdone
	close(g.waitdone)
	return err
}

// Run starts the generator and waits for it to complete, returning
// any errors encountered.
func (g *Generator) Run() error {
	if err := g.Start(); err != nil {
		return err
	}
	return g.Wait()
}

// StdoutPipe returns a pipe connected to the generator's standard
// output.
//
// It is invalid to call Wait until all reads from the pipe have
// completed, and for the same reason invalid to call Run when using
// StdoutPipe.
func (g *Generator) StdoutPipe() (io.Reader, error) {
	if g.Stdout != nil {
		return nil, fmt.Errorf("Stdout already set")
	}
	pr, pw := io.Pipe()
	g.Stdout = pw
	g.pipes = append(g.pipes, pw)
	return pr, nil
}

// StderrPipe returns a pipe connected to the generator's standard
// error.
//
// It is invalid to call Wait until all reads from the pipe have
// completed, and for the same reason invalid to call Run when using
// StderrPipe.
func (g *Generator) StderrPipe() (io.Reader, error) {
	if g.Stderr != nil {
		return nil, fmt.Errorf("Stderr already set")
	}
	pr, pw := io.Pipe()
	g.Stderr = pw
	g.pipes = append(g.pipes, pw)
	return pr, nil
}

// Output runs the generator and returns its standard output.
func (g *Generator) Output() ([]byte, error) {
	if g.Stdout != nil {
		return nil, fmt.Errorf("Stdout already set")
	}
	var stdout bytes.Buffer
	g.Stdout = &stdout
	err := g.Run()
	return stdout.Bytes(), err
}

// CombinedOutput runs the generator and returns its combined standard
// output and standard error.
func (g *Generator) CombinedOutput() ([]byte, error) {
	if g.Stdout != nil {
		return nil, fmt.Errorf("Stdout already set")
	}
	if g.Stderr != nil {
		return nil, fmt.Errorf("Stderr already set")
	}
	var b bytes.Buffer
	g.Stdout = &b
	g.Stderr = &b
	err := g.Run()
	return b.Bytes(), err
}

func (g *Generator) gen() error {
	cw := &stickyCountWriter{0, nil, g.Stdout}
	top := []ast.Node{g.doc}
	if p, ok := g.doc.(*ast.Para); ok {
		top = p.Xs
	}
	for _, n := range top {
		select {
		case <-g.ctx.Done():
			return cw.err
		default:
			if err := g.node(n, cw); err != nil {
				return err
			}
		}
	}
	if err := g.footnotes(cw); err != nil {
		return err
	}
	return cw.err
}

func (g *Generator) node(n ast.Node, w io.Writer) error {
	switch t := n.(type) {
	case *ast.Text:
		io.WriteString(w, html.EscapeString(t.Text))
	case *ast.HTML:
		io.WriteString(w, t.Raw)
	case *ast.Code:
		fmt.Fprintf(w, "<code>%s</code>", html.EscapeString(t.Code))
	case *ast.HRule:
		io.WriteString(w, "<hr>")
	case *ast.BR:
		io.WriteString(w, "<br>")
	case *ast.Macro:
		return g.macro(t, w)
	case *ast.Image:
		fmt.Fprintf(w, `<img src="%s" alt="%s">`,
			html.EscapeString(t.Href.String()), html.EscapeString(t.Alt))
	case *ast.Bold:
		return g.wrap("<strong>", "</strong>", t.X, w)
	case *ast.Italic:
		return g.wrap("<em>", "</em>", t.X, w)
	case *ast.Underline:
		return g.wrap("<u>", "</u>", t.X, w)
	case *ast.Strike:
		return g.wrap("<s>", "</s>", t.X, w)
	case *ast.Sup:
		return g.wrap("<sup>", "</sup>", t.X, w)
	case *ast.Sub:
		return g.wrap("<sub>", "</sub>", t.X, w)
	case *ast.Quote:
		return g.wrap(`<blockquote class="wiki-quote">`, "</blockquote>", t.X, w)
	case *ast.Indent:
		return g.wrap(`<div class="wiki-indent">`, "</div>", t.X, w)
	case *ast.WordBox:
		return g.wrap(`<div class="wiki-word-box">`, "</div>", t.X, w)
	case *ast.Sized:
		return g.wrap(fmt.Sprintf(`<span class="%s">`, sizeClass(t.Delta)), "</span>", t.X, w)
	case *ast.Colored:
		return g.wrap(fmt.Sprintf(`<span style="color: %s;">`, html.EscapeString(t.Color)), "</span>", t.X, w)
	case *ast.RawHeading:
		tag := headingTag(t.Level)
		return g.wrap("<"+tag+">", "</"+tag+">", t.X, w)
	case *ast.Heading:
		tag := headingTag(t.Level)
		fmt.Fprintf(w, `<%s id="%s">%s. `, tag, ast.SectionFragment(t.Path), dotted(t.Path))
		if err := g.node(t.X, w); err != nil {
			return err
		}
		io.WriteString(w, "</"+tag+">")
	case *ast.Footnote:
		l := label(t)
		fmt.Fprintf(w, `<a id="rfn-%[1]s" href="#fn-%[1]s"><sup>[%[1]s]</sup></a>`,
			html.EscapeString(l))
	case *ast.Link:
		fmt.Fprintf(w, `<a href="%s">`, html.EscapeString(t.Href.String()))
		if t.Text != nil {
			if err := g.node(t.Text, w); err != nil {
				return err
			}
		} else {
			io.WriteString(w, html.EscapeString(t.Href.String()))
		}
		io.WriteString(w, "</a>")
	case *ast.Para:
		for _, c := range t.Xs {
			if err := g.node(c, w); err != nil {
				return err
			}
		}
	case *ast.ListItem:
		return g.wrap("<li>", "</li>", t.X, w)
	case *ast.List:
		open, close := listTags(t)
		io.WriteString(w, open)
		for _, it := range t.Items {
			if err := g.node(it, w); err != nil {
				return err
			}
		}
		io.WriteString(w, close)
	case *ast.Table:
		fmt.Fprintf(w, "<table%s%s><tbody>",
			t.Styles.Attrs(), styleAttr(t.Styles.CSS(ast.TableScope)))
		for _, r := range t.Rows {
			if err := g.node(r, w); err != nil {
				return err
			}
		}
		io.WriteString(w, "</tbody></table>")
	case *ast.Row:
		fmt.Fprintf(w, "<tr%s%s>", t.Styles.Attrs(), styleAttr(t.Styles.CSS(ast.RowScope)))
		for _, c := range t.Cells {
			if err := g.node(c, w); err != nil {
				return err
			}
		}
		io.WriteString(w, "</tr>")
	case *ast.Cell:
		fmt.Fprintf(w, "<td%s%s>", t.Styles.Attrs(), styleAttr(t.Styles.CSS(ast.CellScope)))
		if err := g.node(t.X, w); err != nil {
			return err
		}
		io.WriteString(w, "</td>")
	}
	return nil
}

func (g *Generator) wrap(open, close string, c ast.Node, w io.Writer) error {
	io.WriteString(w, open)
	err := g.node(c, w)
	io.WriteString(w, close)
	return err
}

// macro runs the mapped command for a macro, or renders the literal
// placeholder form when no command is mapped. Age and date macros are
// placeholders on purpose; the library never does date arithmetic.
func (g *Generator) macro(m *ast.Macro, w io.Writer) error {
	cmdstr, ok := g.Macros[m.Name]
	if !ok {
		if m.Args == "" {
			fmt.Fprintf(w, `<span class="wiki-macro">[%s]</span>`, html.EscapeString(m.Name))
		} else {
			fmt.Fprintf(w, `<span class="wiki-macro">[%s(%s)]</span>`,
				html.EscapeString(m.Name), html.EscapeString(m.Args))
		}
		return nil
	}
	words, err := sq.Split(cmdstr)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("No valid command for macro: '%q'", m.Name)
	}
	cmd := exec.CommandContext(g.ctx, words[0], words[1:]...)
	cmd.Stdin = strings.NewReader(m.Args)
	cmd.Stdout = w
	cmd.Stderr = g.Stderr
	return cmd.Run()
}

func (g *Generator) footnotes(w io.Writer) error {
	fns := resolve.Footnotes(g.doc)
	if len(fns) == 0 {
		return nil
	}
	io.WriteString(w, `<div class="wiki-footnotes">`)
	for _, fn := range fns {
		l := html.EscapeString(label(fn))
		fmt.Fprintf(w, `<span class="footnote"><a id="fn-%[1]s" href="#rfn-%[1]s">[%[1]s]</a> `, l)
		if err := g.node(fn.X, w); err != nil {
			return err
		}
		io.WriteString(w, "</span>")
	}
	io.WriteString(w, "</div>")
	return nil
}

// label substitutes the placeholder mark for footnotes the parser
// left unlabeled.
func label(fn *ast.Footnote) string {
	if fn.Label == "" {
		return "*"
	}
	return fn.Label
}

func headingTag(level int) string {
	if level > 6 {
		level = 6
	}
	if level < 1 {
		level = 1
	}
	return "h" + strconv.Itoa(level)
}

func dotted(path []int) string {
	return strings.TrimPrefix(ast.SectionFragment(path), "s-")
}

func sizeClass(delta int) string {
	if delta < 0 {
		return "wiki-size-down-" + strconv.Itoa(-delta)
	}
	return "wiki-size-up-" + strconv.Itoa(delta)
}

func styleAttr(css string) string {
	if css == "" {
		return ""
	}
	return ` style="` + html.EscapeString(css) + `"`
}

func listTags(l *ast.List) (string, string) {
	if l.Kind == ast.Unordered {
		return "<ul>", "</ul>"
	}
	var typ string
	switch l.Kind {
	case ast.LowerAlpha:
		typ = ` type="a"`
	case ast.UpperAlpha:
		typ = ` type="A"`
	case ast.LowerRoman:
		typ = ` type="i"`
	case ast.UpperRoman:
		typ = ` type="I"`
	}
	var start string
	if l.Start > 1 {
		start = ` start="` + strconv.Itoa(l.Start) + `"`
	}
	return "<ol" + typ + start + ">", "</ol>"
}
