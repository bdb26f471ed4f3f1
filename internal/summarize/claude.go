package summarize

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type claudeProvider struct {
	client *anthropic.Client
	model  anthropic.Model
}

func newClaude(apiKey, model string) *claudeProvider {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	m := anthropic.Model("claude-haiku-4-5")
	if model != "" {
		m = anthropic.Model(model)
	}
	return &claudeProvider{client: &client, model: m}
}

func (p *claudeProvider) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: maxOutputTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf(userPromptFmt, text))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude API error: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from claude")
	}
	return resp.Content[0].Text, nil
}
