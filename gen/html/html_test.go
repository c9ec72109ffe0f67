// Tests for html.go
package html_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"nmark.dev/nmark/ast"
	"nmark.dev/nmark/gen/html"
)

func render(t *testing.T, n ast.Node) string {
	t.Helper()
	out, err := html.Gen(n).Output()
	require.NoError(t, err)
	return string(out)
}

func query(t *testing.T, n ast.Node) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(render(t, n)))
	require.NoError(t, err)
	return doc
}

type smallcase struct {
	in   ast.Node
	want string
}

var renderSmall = []smallcase{
	{&ast.Text{Text: "n >= 3 & m"}, "n &gt;= 3 &amp; m"},
	{&ast.Code{Code: "<b>"}, "<code>&lt;b&gt;</code>"},
	{&ast.HTML{Raw: "<kbd>F5</kbd>"}, "<kbd>F5</kbd>"},
	{&ast.Bold{X: &ast.Italic{X: &ast.Text{Text: "hi"}}}, "<strong><em>hi</em></strong>"},
	{&ast.Strike{X: &ast.Text{Text: "no"}}, "<s>no</s>"},
	{&ast.Sup{X: &ast.Text{Text: "2"}}, "<sup>2</sup>"},
	{&ast.Quote{X: &ast.Text{Text: "q"}}, `<blockquote class="wiki-quote">q</blockquote>`},
	{&ast.WordBox{X: &ast.Text{Text: "w"}}, `<div class="wiki-word-box">w</div>`},
	{&ast.Sized{Delta: 2, X: &ast.Text{Text: "big"}}, `<span class="wiki-size-up-2">big</span>`},
	{&ast.Sized{Delta: -1, X: &ast.Text{Text: "small"}}, `<span class="wiki-size-down-1">small</span>`},
	{&ast.Colored{Color: "#ff0000", X: &ast.Text{Text: "red"}}, `<span style="color: #ff0000;">red</span>`},
	{&ast.Para{Xs: []ast.Node{&ast.Text{Text: "a"}, &ast.BR{}, &ast.Text{Text: "b"}}}, "a<br>b"},
	{&ast.HRule{}, "<hr>"},
	{&ast.Macro{Name: "date"}, `<span class="wiki-macro">[date]</span>`},
	{&ast.Macro{Name: "age", Args: "1993-06-12"}, `<span class="wiki-macro">[age(1993-06-12)]</span>`},
	{
		&ast.Link{Href: &ast.DocHref{Name: "guide"}, Text: &ast.Text{Text: "the guide"}},
		`<a href="guide">the guide</a>`,
	},
	{
		&ast.Link{Href: &ast.ExternalHref{URL: "https://example.com"}},
		`<a href="https://example.com">https://example.com</a>`,
	},
	{
		&ast.Heading{Level: 2, Path: []int{2, 1}, X: &ast.Text{Text: "Usage"}},
		`<h2 id="s-2.1">2.1. Usage</h2>`,
	},
}

func TestRenderSmall(t *testing.T) {
	for i, test := range renderSmall {
		got := render(t, test.in)
		if test.want != got {
			t.Errorf("case %d,\nwant %s, \ngot %s", i, test.want, got)
		}
	}
}

func TestHeadingLevelCapped(t *testing.T) {
	h := &ast.Heading{Level: 9, Path: []int{1, 1, 1, 1, 1, 1, 1}, X: &ast.Text{Text: "deep"}}
	got := render(t, h)
	require.True(t, strings.HasPrefix(got, "<h6 "), "over-deep heading should render h6: %s", got)
	require.Contains(t, got, "1.1.1.1.1.1.1. deep")
}

func TestListRender(t *testing.T) {
	l := &ast.List{Kind: ast.LowerAlpha, Start: 3, Items: []*ast.ListItem{
		{X: &ast.Text{Text: "one"}},
		{X: &ast.Text{Text: "two"}},
	}}
	require.Equal(t,
		`<ol type="a" start="3"><li>one</li><li>two</li></ol>`,
		render(t, l))

	u := &ast.List{Items: []*ast.ListItem{{X: &ast.Text{Text: "x"}}}}
	require.Equal(t, "<ul><li>x</li></ul>", render(t, u))
}

func TestTableStyleComposition(t *testing.T) {
	// One attribute-contributing slot and one CSS-contributing slot on
	// the same cell must emit both an attribute and a style, each with
	// exactly its one value.
	table := &ast.Table{Rows: []*ast.Row{{Cells: []*ast.Cell{
		{
			Styles: ast.Style{ColSpan: 2, BgColor: "#eee"},
			X:      &ast.Text{Text: "wide"},
		},
	}}}}
	doc := query(t, table)
	td := doc.Find("td")
	require.Equal(t, 1, td.Length())
	colspan, ok := td.Attr("colspan")
	require.True(t, ok)
	require.Equal(t, "2", colspan)
	style, ok := td.Attr("style")
	require.True(t, ok)
	require.Equal(t, "background-color: #eee;", style)
}

func TestTableRowSpanVerticalAlign(t *testing.T) {
	table := &ast.Table{Rows: []*ast.Row{{Cells: []*ast.Cell{
		{
			Styles: ast.Style{RowSpan: 2, RowAlign: ast.AlignStart},
			X:      &ast.Text{Text: "tall"},
		},
	}}}}
	td := query(t, table).Find("td")
	rowspan, _ := td.Attr("rowspan")
	require.Equal(t, "2", rowspan)
	style, _ := td.Attr("style")
	require.Equal(t, "vertical-align: top;", style)
}

func TestTableScopeStyles(t *testing.T) {
	table := &ast.Table{
		Styles: ast.Style{Align: ast.AlignCenter, Width: "80%"},
		Rows: []*ast.Row{{
			Styles: ast.Style{BgColor: "#ccc"},
			Cells:  []*ast.Cell{{X: &ast.Text{Text: "c"}}},
		}},
	}
	doc := query(t, table)
	style, _ := doc.Find("table").Attr("style")
	require.Equal(t, "width: 80%; margin-left: auto; margin-right: auto;", style)
	rowStyle, _ := doc.Find("tr").Attr("style")
	require.Equal(t, "background-color: #ccc;", rowStyle)
	_, ok := doc.Find("td").Attr("style")
	require.False(t, ok, "unstyled cell should carry no style attribute")
}

func TestFootnotes(t *testing.T) {
	doc := query(t, &ast.Para{Xs: []ast.Node{
		&ast.Text{Text: "body"},
		&ast.Footnote{Label: "1", X: &ast.Text{Text: "the note"}},
	}})
	ref := doc.Find("a#rfn-1")
	require.Equal(t, 1, ref.Length())
	href, _ := ref.Attr("href")
	require.Equal(t, "#fn-1", href)

	section := doc.Find("div.wiki-footnotes")
	require.Equal(t, 1, section.Length())
	back := section.Find("a#fn-1")
	require.Equal(t, 1, back.Length())
	backHref, _ := back.Attr("href")
	require.Equal(t, "#rfn-1", backHref)
	require.Contains(t, section.Text(), "the note")
}

func TestFootnoteMissingLabelPlaceholder(t *testing.T) {
	out := render(t, &ast.Footnote{X: &ast.Text{Text: "n"}})
	require.Contains(t, out, `<a id="rfn-*" href="#fn-*"><sup>[*]</sup></a>`)
	require.Contains(t, out, `<a id="fn-*" href="#rfn-*">[*]</a>`)
}

func TestMacroMapped(t *testing.T) {
	g := html.Gen(&ast.Macro{Name: "upper", Args: "hello"})
	g.Macros = map[string]string{"upper": "tr a-z A-Z"}
	out, err := g.Output()
	require.NoError(t, err)
	require.Equal(t, "HELLO", string(bytes.TrimSpace(out)))
}

func TestLinkHrefEscaped(t *testing.T) {
	out := render(t, &ast.Link{
		Href: &ast.ExternalHref{URL: `https://example.com/?q="a"&r=1`},
		Text: &ast.Text{Text: "q"},
	})
	require.Equal(t,
		`<a href="https://example.com/?q=&#34;a&#34;&amp;r=1">q</a>`,
		out)
}
