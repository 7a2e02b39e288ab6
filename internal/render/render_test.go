package render

import (
	"strings"
	"testing"

	"folio-backend/internal/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func para(spans ...content.Span) content.TextBlock {
	return content.TextBlock{Style: content.StyleNormal, Spans: spans}
}

func span(text string, marks ...string) content.Span {
	return content.Span{Text: text, Marks: marks}
}

func TestRenderOneNodePerKnownBlock(t *testing.T) {
	body := []content.Block{
		para(span("Intro")),
		content.ImageBlock{Asset: content.Image{URL: "/img/a.jpg", Alt: "A"}},
		content.Divider{Style: content.DividerLine},
		content.PullQuote{Text: "Quote"},
	}

	nodes := New(nil).Render(body)
	require.Len(t, nodes, 4)
	kinds := []string{KindText, KindImage, KindDivider, KindPullQuote}
	for i, n := range nodes {
		assert.Equal(t, kinds[i], n.Kind)
		assert.Equal(t, i, n.Index)
		assert.NotEmpty(t, n.HTML)
	}
}

func TestRenderSkipsUnknownAndMalformed(t *testing.T) {
	body := []content.Block{
		content.UnknownBlock{Type: "video"},
		para(span("Kept")),
		content.TextBlock{},
		content.ImageBlock{Asset: content.Image{Alt: "no url"}},
		content.PullQuote{Text: "   "},
		nil,
		content.Divider{},
	}

	var nodes []Node
	require.NotPanics(t, func() { nodes = New(nil).Render(body) })
	require.Len(t, nodes, 2)
	assert.Equal(t, KindText, nodes[0].Kind)
	assert.Equal(t, 1, nodes[0].Index)
	assert.Equal(t, KindDivider, nodes[1].Kind)
	assert.Equal(t, 6, nodes[1].Index)
}

func TestRenderTextStyles(t *testing.T) {
	r := New(nil)
	node, ok := r.Block(content.TextBlock{Style: content.StyleH2, Spans: []content.Span{span("Brief")}})
	require.True(t, ok)
	assert.Equal(t, "<h2>Brief</h2>", string(node.HTML))

	node, ok = r.Block(content.TextBlock{Style: "caption", Spans: []content.Span{span("Plain")}})
	require.True(t, ok)
	assert.Equal(t, "<p>Plain</p>", string(node.HTML))

	node, ok = r.Block(content.TextBlock{Style: content.StyleBlockquote, Spans: []content.Span{span("Said")}})
	require.True(t, ok)
	assert.Equal(t, "<blockquote>Said</blockquote>", string(node.HTML))
}

func TestRenderOverlappingMarks(t *testing.T) {
	html, ok := renderText(para(
		span("a", content.MarkStrong),
		span("b", content.MarkStrong, content.MarkEm),
		span("c", content.MarkEm),
	))
	require.True(t, ok)
	assert.Equal(t, "<p><strong>a<em>b</em></strong><em>c</em></p>", string(html))
}

func TestRenderLongestRunningMarkOpensFirst(t *testing.T) {
	html, ok := renderText(para(
		span("a", content.MarkEm, content.MarkStrong),
		span("b", content.MarkStrong),
	))
	require.True(t, ok)
	assert.Equal(t, "<p><strong><em>a</em>b</strong></p>", string(html))
}

func TestRenderLinks(t *testing.T) {
	block := content.TextBlock{
		Spans: []content.Span{
			span("site", "ext"),
			span(" and "),
			span("home", "int"),
			span(" and "),
			span("bad", "evil"),
		},
		MarkDefs: []content.MarkDef{
			{Key: "ext", Type: content.MarkLink, Href: "https://example.com", Blank: true},
			{Key: "int", Type: content.MarkLink, Href: "/about"},
			{Key: "evil", Type: content.MarkLink, Href: "javascript:alert(1)"},
		},
	}

	html, ok := renderText(block)
	require.True(t, ok)
	assert.Equal(t,
		`<p><a href="https://example.com" target="_blank" rel="noopener noreferrer">site</a> and <a href="/about">home</a> and bad</p>`,
		string(html))
}

func TestRenderKeepsOneLinkPerSpan(t *testing.T) {
	block := content.TextBlock{
		Spans: []content.Span{
			span("both", "first", "second"),
			span(" then "),
			span("second", "second"),
		},
		MarkDefs: []content.MarkDef{
			{Key: "first", Type: content.MarkLink, Href: "/x"},
			{Key: "second", Type: content.MarkLink, Href: "https://y"},
		},
	}

	html, ok := renderText(block)
	require.True(t, ok)
	assert.Equal(t,
		`<p><a href="/x">both</a> then <a href="https://y">second</a></p>`,
		string(html))
	assert.Equal(t, 2, strings.Count(string(html), "<a "))
}

func TestRenderEscapesText(t *testing.T) {
	html, ok := renderText(para(span("<script>\nx")))
	require.True(t, ok)
	assert.Equal(t, "<p>&lt;script&gt;<br>x</p>", string(html))
}

func TestRenderImage(t *testing.T) {
	r := New(nil)
	node, ok := r.Block(content.ImageBlock{Asset: content.Image{URL: "/img/a.jpg", Alt: "Poster"}})
	require.True(t, ok)
	html := string(node.HTML)
	assert.Contains(t, html, `width="1200"`)
	assert.Contains(t, html, `height="800"`)
	assert.Contains(t, html, `alt="Poster"`)
	assert.NotContains(t, html, "figcaption")

	node, ok = r.Block(content.ImageBlock{
		Asset:   content.Image{URL: "/img/b.jpg", Alt: "B", Width: 640, Height: 480},
		Caption: "Launch day",
	})
	require.True(t, ok)
	html = string(node.HTML)
	assert.Contains(t, html, `width="640"`)
	assert.Contains(t, html, `height="480"`)
	assert.Contains(t, html, "<figcaption>Launch day</figcaption>")
}

func TestRenderDividers(t *testing.T) {
	assert.Equal(t, dividerLine, string(divider(content.Divider{})))
	assert.Equal(t, dividerLine, string(divider(content.Divider{Style: "zigzag"})))

	spacer := string(divider(content.Divider{Style: content.DividerSpacer}))
	assert.NotContains(t, spacer, "<hr")
	assert.NotContains(t, spacer, "cs-ornament")

	decorative := string(divider(content.Divider{Style: content.DividerDecorative}))
	assert.Contains(t, decorative, "<hr>")
	assert.Contains(t, decorative, "cs-ornament")
}

func TestRenderPullQuote(t *testing.T) {
	r := New(nil)
	node, ok := r.Block(content.PullQuote{Text: "Say less."})
	require.True(t, ok)
	assert.False(t, strings.Contains(string(node.HTML), "<cite>"))

	node, ok = r.Block(content.PullQuote{Text: "Say less.", Attribution: "Editor"})
	require.True(t, ok)
	assert.Contains(t, string(node.HTML), "<cite>Editor</cite>")

	_, ok = r.Block(content.PullQuote{Attribution: "Nobody"})
	assert.False(t, ok)
}

func TestSafeHref(t *testing.T) {
	assert.True(t, SafeHref("https://example.com"))
	assert.True(t, SafeHref("mailto:hi@example.com"))
	assert.True(t, SafeHref("/work"))
	assert.False(t, SafeHref(""))
	assert.False(t, SafeHref("javascript:alert(1)"))
	assert.False(t, SafeHref(" JavaScript:alert(1)"))
}
