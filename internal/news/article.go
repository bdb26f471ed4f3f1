package news

// Article is a single news item as returned by a source.
// Articles are immutable once fetched; order is preserved through
// the whole pipeline.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Content     string `json:"content,omitempty"`
	Description string `json:"description,omitempty"`
	Topic       string `json:"topic,omitempty"`
}

// Text returns the best available body text for summarization:
// full content first, description as a fallback, else empty.
func (a Article) Text() string {
	if a.Content != "" {
		return a.Content
	}
	return a.Description
}

// ArticleCache caches fetched article lists under a fingerprint key.
// Implementations must treat read failures as a miss.
type ArticleCache interface {
	Lookup(key string) ([]Article, bool)
	Store(key string, articles []Article) error
}
