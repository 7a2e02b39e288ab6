// Package render turns a case-study body into HTML fragments, one per
// block, through a fixed set of block handlers.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"folio-backend/internal/content"
)

// Intrinsic size used when an image does not declare both dimensions.
const (
	FallbackWidth  = 1200
	FallbackHeight = 800
)

const (
	KindText      = "text"
	KindImage     = "image"
	KindDivider   = "divider"
	KindPullQuote = "pullQuote"
)

// Node is the rendered form of one block. Index is the block's position in
// the input sequence.
type Node struct {
	Kind  string        `json:"kind"`
	Index int           `json:"index"`
	HTML  template.HTML `json:"html"`
}

type Renderer struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Renderer{log: log}
}

// Render emits one node per renderable block, in input order. Unknown and
// malformed blocks produce no node; this is the only place content problems
// are dropped silently rather than reported.
func (r *Renderer) Render(blocks []content.Block) []Node {
	nodes := make([]Node, 0, len(blocks))
	for i, blk := range blocks {
		node, ok := r.safeBlock(blk)
		if !ok {
			continue
		}
		node.Index = i
		nodes = append(nodes, node)
	}
	return nodes
}

// HTML renders blocks and joins the fragments.
func (r *Renderer) HTML(blocks []content.Block) template.HTML {
	var sb strings.Builder
	for _, n := range r.Render(blocks) {
		sb.WriteString(string(n.HTML))
		sb.WriteByte('\n')
	}
	return template.HTML(sb.String())
}

func (r *Renderer) safeBlock(blk content.Block) (node Node, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("render block: panic", slog.String("error", fmt.Sprint(rec)))
			node, ok = Node{}, false
		}
	}()
	return r.Block(blk)
}

// Block dispatches on the block type.
func (r *Renderer) Block(blk content.Block) (Node, bool) {
	var (
		html template.HTML
		ok   bool
		kind string
	)
	switch b := blk.(type) {
	case content.TextBlock:
		kind = KindText
		html, ok = renderText(b)
	case content.ImageBlock:
		kind = KindImage
		html, ok = r.image(b)
	case content.Divider:
		kind = KindDivider
		html, ok = divider(b), true
	case content.PullQuote:
		kind = KindPullQuote
		html, ok = r.pullQuote(b)
	case content.UnknownBlock:
		r.log.Debug("render block: unknown type", slog.String("type", b.Type))
		return Node{}, false
	default:
		return Node{}, false
	}
	if !ok {
		r.log.Debug("render block: skipped malformed block", slog.String("type", kind))
		return Node{}, false
	}
	return Node{Kind: kind, HTML: html}, true
}

var imageTmpl = template.Must(template.New("image").Parse(
	`<figure class="cs-figure"><img src="{{.URL}}" alt="{{.Alt}}" width="{{.Width}}" height="{{.Height}}" loading="lazy">` +
		`{{if .Caption}}<figcaption>{{.Caption}}</figcaption>{{end}}</figure>`))

type imageView struct {
	URL     string
	Alt     string
	Width   int
	Height  int
	Caption string
}

func (r *Renderer) image(b content.ImageBlock) (template.HTML, bool) {
	if strings.TrimSpace(b.Asset.URL) == "" {
		return "", false
	}
	w, h := Dimensions(b.Asset)
	return r.execute(imageTmpl, imageView{
		URL:     b.Asset.URL,
		Alt:     b.Asset.Alt,
		Width:   w,
		Height:  h,
		Caption: strings.TrimSpace(b.Caption),
	})
}

// Dimensions returns the declared size, or the fallback when either side
// is unknown.
func Dimensions(img content.Image) (int, int) {
	if img.Width > 0 && img.Height > 0 {
		return img.Width, img.Height
	}
	return FallbackWidth, FallbackHeight
}

const (
	dividerLine       = `<hr class="cs-divider cs-divider--line">`
	dividerDecorative = `<div class="cs-divider cs-divider--decorative" role="separator"><hr><span class="cs-ornament" aria-hidden="true">&#10022;</span><hr></div>`
	dividerSpacer     = `<div class="cs-divider cs-divider--spacer" aria-hidden="true"></div>`
)

func divider(b content.Divider) template.HTML {
	switch b.Style {
	case content.DividerSpacer:
		return dividerSpacer
	case content.DividerDecorative:
		return dividerDecorative
	default:
		return dividerLine
	}
}

var pullQuoteTmpl = template.Must(template.New("pullQuote").Parse(
	`<blockquote class="cs-pull-quote"><p>{{.Text}}</p>{{if .Attribution}}<cite>{{.Attribution}}</cite>{{end}}</blockquote>`))

func (r *Renderer) pullQuote(b content.PullQuote) (template.HTML, bool) {
	text := strings.TrimSpace(b.Text)
	if text == "" {
		return "", false
	}
	return r.execute(pullQuoteTmpl, content.PullQuote{Text: text, Attribution: strings.TrimSpace(b.Attribution)})
}

func (r *Renderer) execute(tmpl *template.Template, data any) (template.HTML, bool) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		r.log.Error("render block: template error", slog.String("template", tmpl.Name()), slog.String("error", err.Error()))
		return "", false
	}
	return template.HTML(buf.String()), true
}
