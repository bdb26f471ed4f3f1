// Package summarize turns article text into short newsletter synopses
// through an LLM chat-completion provider.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Ripley-h/newsgen/internal/news"
)

// Placeholder substitutes for a summary when the provider fails.
const Placeholder = "Summary could not be generated."

const systemPrompt = "You are a helpful assistant that summarizes news articles for a newsletter."

const userPromptFmt = `Summarize the following article in 3-5 sentences, in a concise, email-friendly format:

%s`

// maxOutputTokens bounds the length of each generated summary.
const maxOutputTokens = 150

// Summarizer reduces one article's text to a short synopsis.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// New creates a Summarizer for the given provider ("openai" or "claude").
// model may be empty to use the provider's default.
func New(provider, apiKey, model string) (Summarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("summarization API key is required")
	}
	switch provider {
	case "openai", "":
		return newOpenAI(apiKey, model), nil
	case "claude":
		return newClaude(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q (valid: openai, claude)", provider)
	}
}

// Article summarizes one article, preferring full content and falling
// back to the description. Both absent means the provider still gets an
// empty prompt. Any provider error is absorbed here: the placeholder
// string is returned and the run continues.
func Article(ctx context.Context, s Summarizer, a news.Article) string {
	out, err := s.Summarize(ctx, a.Text())
	if err != nil {
		logrus.WithError(err).Warn("summarization failed, using placeholder")
		return Placeholder
	}
	return strings.TrimSpace(out)
}
