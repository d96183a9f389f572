package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"careerpilot-backend/internal/llm"
)

const (
	chatURL       = "https://api.openai.com/v1/chat/completions"
	embeddingsURL = "https://api.openai.com/v1/embeddings"
)

// Client implements llm.Completer and llm.Embedder using the OpenAI API.
// Used when LLM_PROVIDER=openai; the wire format is hand-rolled over
// net/http so the dependency surface stays small.
type Client struct {
	apiKey     string
	model      string
	embedModel string
	httpClient *http.Client
}

// NewClient constructs an OpenAI client.
func NewClient(apiKey, model, embedModel string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		embedModel: embedModel,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float32        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete returns the raw model response for the prompt.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	temp := float32(0)
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: &temp,
	}
	// The API rejects response_format=json_object when the messages never
	// mention JSON, and the conversational prompts want free text anyway.
	if strings.Contains(prompt, "JSON") {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	body, status, err := c.post(ctx, chatURL, payload)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if status >= 400 {
			return "", fmt.Errorf("openai http status %d: %s", status, strings.TrimSpace(string(body)))
		}
		return "", fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai http status %d: %s (%s)", status, parsed.Error.Message, parsed.Error.Type)
	}
	if status >= 400 {
		return "", fmt.Errorf("openai http status %d: %s", status, strings.TrimSpace(string(body)))
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai response empty content")
	}
	return content, nil
}

type embeddingsRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Embed returns the embedding vector for text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(c.embedModel) == "" {
		return nil, fmt.Errorf("EMBED_MODEL is required for OpenAI embeddings")
	}
	payload, err := json.Marshal(embeddingsRequest{Model: c.embedModel, Input: text})
	if err != nil {
		return nil, err
	}

	body, status, err := c.post(ctx, embeddingsURL, payload)
	if err != nil {
		return nil, err
	}

	var parsed embeddingsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if status >= 400 {
			return nil, fmt.Errorf("openai http status %d: %s", status, strings.TrimSpace(string(body)))
		}
		return nil, fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai http status %d: %s (%s)", status, parsed.Error.Message, parsed.Error.Type)
	}
	if status >= 400 {
		return nil, fmt.Errorf("openai http status %d: %s", status, strings.TrimSpace(string(body)))
	}
	if len(parsed.Data) == 0 || len(parsed.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("openai embed returned empty vector")
	}
	return parsed.Data[0].Embedding, nil
}

func (c *Client) post(ctx context.Context, url string, payload []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, 0, fmt.Errorf("openai request timeout: %w", err)
		}
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

var (
	_ llm.Completer = (*Client)(nil)
	_ llm.Embedder  = (*Client)(nil)
)
