package newsletter

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ripley-h/newsgen/internal/news"
	"github.com/Ripley-h/newsgen/internal/summarize"
)

// ErrNoArticles means the source answered but had nothing for the topic.
// Like a fetch failure it aborts the run without producing a newsletter.
var ErrNoArticles = errors.New("no articles could be fetched")

// ArticleSource yields the articles for one topic, in source order.
type ArticleSource interface {
	Fetch(ctx context.Context, topic string, maxArticles int) ([]news.Article, error)
}

// ProgressFunc receives one callback per completed unit of work. It is
// operator feedback only and never influences the pipeline.
type ProgressFunc func(step, total int, message string)

// Request describes one newsletter run.
type Request struct {
	Title       string
	Topic       string
	MaxArticles int
	Format      Format
}

// Result is a fully generated newsletter.
type Result struct {
	Document Document
	Body     string
}

// Generator runs the fetch-summarize-render pipeline sequentially.
type Generator struct {
	source     ArticleSource
	summarizer summarize.Summarizer
	progress   ProgressFunc
}

func NewGenerator(source ArticleSource, summarizer summarize.Summarizer, progress ProgressFunc) *Generator {
	if progress == nil {
		progress = func(int, int, string) {}
	}
	return &Generator{source: source, summarizer: summarizer, progress: progress}
}

// Run generates one newsletter. Only a fetch failure (or an empty fetch)
// is fatal; summarization falls back per article and never aborts.
func (g *Generator) Run(ctx context.Context, req Request) (*Result, error) {
	if req.MaxArticles <= 0 {
		req.MaxArticles = 5
	}

	articles, err := g.source.Fetch(ctx, req.Topic, req.MaxArticles)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, ErrNoArticles
	}

	// One unit per article plus finalize and render bookkeeping.
	total := len(articles) + 2
	step := 0

	doc := Document{
		Title:  req.Title,
		Topic:  req.Topic,
		Format: req.Format,
		Items:  make([]Item, 0, len(articles)),
	}
	for i, a := range articles {
		step++
		g.progress(step, total, fmt.Sprintf("Summarizing article %d/%d...", i+1, len(articles)))
		doc.Items = append(doc.Items, Item{
			Article: a,
			Summary: summarize.Article(ctx, g.summarizer, a),
		})
	}

	step++
	g.progress(step, total, "Finalizing newsletter...")
	body, err := Render(doc)
	if err != nil {
		return nil, err
	}

	step++
	g.progress(step, total, "Done!")
	return &Result{Document: doc, Body: body}, nil
}
