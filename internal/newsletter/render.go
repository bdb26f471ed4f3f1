// Package newsletter assembles articles and their summaries into a
// newsletter document and drives the fetch-summarize-render pipeline.
package newsletter

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/Ripley-h/newsgen/internal/news"
)

// Format selects the rendered output mode.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// ParseFormat validates a format string from config or flags.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatHTML:
		return Format(s), nil
	case "":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown format: %q (valid: text, html)", s)
	}
}

// NoArticlesMessage replaces the document when there is nothing to render.
const NoArticlesMessage = "No articles found for the newsletter."

const closingLine = "We hope you enjoyed this update. Stay tuned for more!"

// Item pairs one article with its summary.
type Item struct {
	Article news.Article
	Summary string
}

// Document is the input to Render. Items keep source order.
type Document struct {
	Title  string
	Topic  string
	Items  []Item
	Format Format
}

// Render produces the newsletter body. It is a pure transform: the same
// document always renders to the same bytes. An empty item list yields
// the fixed no-articles message in either mode.
func Render(doc Document) (string, error) {
	if len(doc.Items) == 0 {
		return NoArticlesMessage, nil
	}
	switch doc.Format {
	case FormatText:
		return renderText(doc), nil
	case FormatHTML:
		return renderHTML(doc)
	default:
		return "", fmt.Errorf("unknown format: %q", doc.Format)
	}
}

func renderText(doc Document) string {
	parts := []string{fmt.Sprintf("# %s\n\nHere's your daily update on %s:\n", doc.Title, doc.Topic)}
	for _, item := range doc.Items {
		parts = append(parts, fmt.Sprintf("## %s\n\n%s\n\n[Read more](%s)\n", item.Article.Title, item.Summary, item.Article.URL))
	}
	parts = append(parts, "\n"+closingLine+"\n")
	return strings.Join(parts, "\n")
}

var htmlTmpl = template.Must(template.New("newsletter").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Arial, Helvetica, sans-serif; background-color: #f4f4f4; margin: 0; padding: 20px; color: #333; }
  .container { max-width: 640px; margin: 0 auto; background-color: #ffffff; border-radius: 8px; padding: 32px; }
  h1 { color: #1a1a2e; margin-top: 0; }
  .intro { color: #555; }
  .article h2 { color: #16213e; margin-bottom: 8px; }
  .article p { line-height: 1.5; }
  .cta { display: inline-block; background-color: #0f3460; color: #ffffff; padding: 10px 18px; text-decoration: none; border-radius: 4px; }
  hr.divider { border: none; border-top: 1px solid #e0e0e0; margin: 28px 0; }
  .footer { margin-top: 32px; color: #777; font-size: 14px; }
</style>
</head>
<body>
<div class="container">
  <h1>{{.Title}}</h1>
  <p class="intro">Here's your daily update on {{.Topic}}:</p>
{{range $i, $item := .Items}}{{if $i}}  <hr class="divider">
{{end}}  <div class="article">
    <h2>{{$item.Article.Title}}</h2>
    <p>{{$item.Summary}}</p>
    <a class="cta" href="{{$item.Article.URL}}">Read more</a>
  </div>
{{end}}  <div class="footer">
    <p>` + closingLine + `</p>
  </div>
</div>
</body>
</html>
`))

func renderHTML(doc Document) (string, error) {
	var b strings.Builder
	if err := htmlTmpl.Execute(&b, doc); err != nil {
		return "", fmt.Errorf("rendering newsletter: %w", err)
	}
	return b.String(), nil
}
