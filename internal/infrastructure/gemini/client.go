package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	modelName = "gemini-2.0-flash"

	// requestDelay spaces out consecutive requests to stay inside the
	// free tier rate limit.
	requestDelay = 350 * time.Millisecond
)

// Client talks to the Gemini API. Requests are serialized and spaced
// out through a single-slot semaphore.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	sem    chan struct{}
}

// NewClient creates a Gemini client with the sales assistant tuning.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)
	model.SetTopK(20)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(2048)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(
			"You are the quotation assistant for Alchemy Chemicals, an Indian herbal extract manufacturer. " +
				"Always answer with the exact JSON shape the prompt asks for, nothing else.",
		)},
	}

	return &Client{
		client: client,
		model:  model,
		sem:    make(chan struct{}, 1),
	}, nil
}

// Complete sends one prompt and returns the model's text answer.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.acquire(ctx); err != nil {
		return "", err
	}
	defer c.release()

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) acquire(ctx context.Context) error {
	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-time.After(requestDelay):
		return nil
	case <-ctx.Done():
		<-c.sem
		return ctx.Err()
	}
}

func (c *Client) release() {
	<-c.sem
}

func extractText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(b.String())
}
