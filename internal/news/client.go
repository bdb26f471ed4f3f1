package news

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultEndpoint is the NewsAPI "everything" search endpoint.
const DefaultEndpoint = "https://newsapi.org/v2/everything"

// FetchError reports a failed article fetch. It is the one fatal error
// kind in the pipeline: the caller aborts the run without a newsletter.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("news source returned status %d", e.Status)
	}
	return fmt.Sprintf("news source unreachable: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client fetches articles for a topic from a JSON search API.
type Client struct {
	endpoint string
	apiKey   string
	httpc    *http.Client
	cache    ArticleCache
}

// NewClient creates a news search client. cache may be nil to disable
// cache consultation.
func NewClient(endpoint, apiKey string, cache ArticleCache) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpc:    &http.Client{Timeout: 30 * time.Second},
		cache:    cache,
	}
}

// Fingerprint derives the cache key for a fetch request. Identical
// logical requests always map to the same key regardless of call order.
func Fingerprint(endpoint, topic string, maxArticles int) string {
	desc := fmt.Sprintf("%s?q=%s&pageSize=%d&language=en", endpoint, topic, maxArticles)
	h := sha256.Sum256([]byte(desc))
	return fmt.Sprintf("%x", h[:16])
}

type searchResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Content     string `json:"content"`
		Description string `json:"description"`
	} `json:"articles"`
}

// Fetch returns up to maxArticles articles for topic, in source order.
// The cache is consulted first; a fresh entry short-circuits the network
// call. On a miss exactly one request is issued, with no retry. A non-2xx
// response or transport error yields a *FetchError.
func (c *Client) Fetch(ctx context.Context, topic string, maxArticles int) ([]Article, error) {
	key := Fingerprint(c.endpoint, topic, maxArticles)
	if c.cache != nil {
		if articles, ok := c.cache.Lookup(key); ok {
			return articles, nil
		}
	}

	q := url.Values{}
	q.Set("q", topic)
	q.Set("pageSize", fmt.Sprint(maxArticles))
	q.Set("language", "en")
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Status: resp.StatusCode}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("decoding response: %w", err)}
	}

	articles := make([]Article, 0, len(sr.Articles))
	for _, a := range sr.Articles {
		articles = append(articles, Article{
			Title:       a.Title,
			URL:         a.URL,
			Content:     a.Content,
			Description: a.Description,
			Topic:       topic,
		})
	}
	if len(articles) > maxArticles {
		articles = articles[:maxArticles]
	}

	if c.cache != nil {
		if err := c.cache.Store(key, articles); err != nil {
			logrus.WithError(err).Warn("caching articles failed")
		}
	}
	return articles, nil
}
