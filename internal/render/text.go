package render

import (
	"html/template"
	"net/url"
	"sort"
	"strings"

	"folio-backend/internal/content"
)

var styleTags = map[content.TextStyle]string{
	content.StyleNormal:     "p",
	content.StyleH2:         "h2",
	content.StyleH3:         "h3",
	content.StyleH4:         "h4",
	content.StyleBlockquote: "blockquote",
}

// renderText writes a text block with its span marks. Marks may overlap
// across spans, so open marks are kept on a stack: a span keeps the longest
// still-open prefix of the stack, closes the rest and opens what it adds,
// longest-running marks first.
func renderText(b content.TextBlock) (template.HTML, bool) {
	if !hasText(b.Spans) {
		return "", false
	}

	tag, ok := styleTags[b.Style]
	if !ok {
		tag = "p"
	}

	marks := make([][]string, len(b.Spans))
	for i, span := range b.Spans {
		marks[i] = usableMarks(b, span.Marks)
	}

	var sb strings.Builder
	sb.WriteString("<" + tag + ">")

	var open []string
	for i, span := range b.Spans {
		next := orderMarks(open, marks, i)

		keep := 0
		for keep < len(open) && keep < len(next) && open[keep] == next[keep] {
			keep++
		}
		for j := len(open) - 1; j >= keep; j-- {
			sb.WriteString(closeTag(b, open[j]))
		}
		for _, m := range next[keep:] {
			sb.WriteString(openTag(b, m))
		}
		open = next

		writeText(&sb, span.Text)
	}
	for j := len(open) - 1; j >= 0; j-- {
		sb.WriteString(closeTag(b, open[j]))
	}

	sb.WriteString("</" + tag + ">")
	return template.HTML(sb.String()), true
}

func hasText(spans []content.Span) bool {
	for _, s := range spans {
		if s.Text != "" {
			return true
		}
	}
	return false
}

// usableMarks drops duplicates, undefined annotation keys and links whose
// href is not safe to emit. A span keeps at most one link, the first one,
// since anchors cannot nest.
func usableMarks(b content.TextBlock, raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	linked := false
	for _, m := range raw {
		if seen[m] {
			continue
		}
		seen[m] = true
		switch m {
		case content.MarkStrong, content.MarkEm:
			out = append(out, m)
		default:
			def, ok := b.MarkDef(m)
			if !ok || def.Type != content.MarkLink || !SafeHref(def.Href) || linked {
				continue
			}
			linked = true
			out = append(out, m)
		}
	}
	return out
}

// orderMarks orders the marks of span i: the still-open prefix of the
// current stack first, then new marks by how many spans they run for.
func orderMarks(open []string, marks [][]string, i int) []string {
	current := marks[i]
	has := func(set []string, m string) bool {
		for _, v := range set {
			if v == m {
				return true
			}
		}
		return false
	}

	next := make([]string, 0, len(current))
	for _, m := range open {
		if !has(current, m) {
			break
		}
		next = append(next, m)
	}

	var added []string
	for _, m := range current {
		if !has(next, m) {
			added = append(added, m)
		}
	}
	run := func(m string) int {
		n := 0
		for j := i; j < len(marks) && has(marks[j], m); j++ {
			n++
		}
		return n
	}
	sort.SliceStable(added, func(a, b int) bool {
		ra, rb := run(added[a]), run(added[b])
		if ra != rb {
			return ra > rb
		}
		return added[a] < added[b]
	})
	return append(next, added...)
}

func openTag(b content.TextBlock, mark string) string {
	switch mark {
	case content.MarkStrong:
		return "<strong>"
	case content.MarkEm:
		return "<em>"
	}
	def, _ := b.MarkDef(mark)
	attrs := `href="` + template.HTMLEscapeString(def.Href) + `"`
	if def.Blank {
		attrs += ` target="_blank" rel="noopener noreferrer"`
	}
	return "<a " + attrs + ">"
}

func closeTag(_ content.TextBlock, mark string) string {
	switch mark {
	case content.MarkStrong:
		return "</strong>"
	case content.MarkEm:
		return "</em>"
	default:
		return "</a>"
	}
}

func writeText(sb *strings.Builder, text string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("<br>")
		}
		sb.WriteString(template.HTMLEscapeString(line))
	}
}

// SafeHref accepts relative references and http, https, mailto and tel
// links.
func SafeHref(href string) bool {
	href = strings.TrimSpace(href)
	if href == "" {
		return false
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto", "tel":
		return true
	default:
		return false
	}
}
