package news

import (
	"context"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"
)

// RSSSource fetches articles from a single RSS or Atom feed instead of
// the search API. The topic is used only to label the articles; the feed
// decides what it serves.
type RSSSource struct {
	feedURL string
	parser  *gofeed.Parser
	cache   ArticleCache
}

// NewRSSSource creates an RSS-backed article source. cache may be nil.
func NewRSSSource(feedURL string, cache ArticleCache) *RSSSource {
	return &RSSSource{
		feedURL: feedURL,
		parser:  gofeed.NewParser(),
		cache:   cache,
	}
}

// Fetch returns up to maxArticles feed items in feed order. Parse errors
// are reported as *FetchError, matching the search client.
func (s *RSSSource) Fetch(ctx context.Context, topic string, maxArticles int) ([]Article, error) {
	key := Fingerprint(s.feedURL, topic, maxArticles)
	if s.cache != nil {
		if articles, ok := s.cache.Lookup(key); ok {
			return articles, nil
		}
	}

	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	articles := make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if len(articles) >= maxArticles {
			break
		}
		articles = append(articles, Article{
			Title:       item.Title,
			URL:         item.Link,
			Content:     stripHTML(item.Content),
			Description: stripHTML(item.Description),
			Topic:       topic,
		})
	}

	if s.cache != nil {
		if err := s.cache.Store(key, articles); err != nil {
			logrus.WithError(err).Warn("caching articles failed")
		}
	}
	return articles, nil
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
