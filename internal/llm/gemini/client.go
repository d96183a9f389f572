package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"careerpilot-backend/internal/llm"
)

// Client implements llm.Completer and llm.Embedder over the Gemini API.
type Client struct {
	client     *genai.Client
	model      string
	embedModel string
}

// NewClient constructs a Gemini client. Each feature area gets its own
// client so API keys and quotas stay independent.
func NewClient(ctx context.Context, apiKey, model, embedModel string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Gemini")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{
		client:     client,
		model:      model,
		embedModel: embedModel,
	}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Complete sends the prompt and returns the raw text reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response empty content")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("gemini response unexpected part type")
	}
	out := strings.TrimSpace(string(text))
	if out == "" {
		return "", fmt.Errorf("gemini response empty content")
	}
	return out, nil
}

// Embed returns the embedding vector for text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(c.embedModel) == "" {
		return nil, fmt.Errorf("EMBED_MODEL is required for Gemini embeddings")
	}
	em := c.client.EmbeddingModel(c.embedModel)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini embed returned empty vector")
	}
	return resp.Embedding.Values, nil
}

var (
	_ llm.Completer = (*Client)(nil)
	_ llm.Embedder  = (*Client)(nil)
)
