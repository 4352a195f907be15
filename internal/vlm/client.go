// Package vlm is the client for the vision/language classifier that turns
// receipt screenshots and free-text notes into structured transaction
// facts. The engine only trusts the field shapes of what comes back.
package vlm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/shunichi-ikebuchi/beancount-agent/pkg/engine"
)

// Client wraps a Gemini model for bill parsing.
type Client struct {
	client *genai.Client
	model  string
}

// New creates a classifier client. The API key may be empty, in which case
// the genai client falls back to its environment configuration.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// ParseImage extracts a transaction fact from a bill screenshot.
func (c *Client) ParseImage(ctx context.Context, image []byte, mimeType string) (engine.Fact, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	parts := []*genai.Part{
		genai.NewPartFromBytes(image, mimeType),
		genai.NewPartFromText(ImageParsePrompt(time.Now())),
	}
	return c.generate(ctx, parts)
}

// ParseText extracts a transaction fact from a free-text note.
func (c *Client) ParseText(ctx context.Context, text string) (engine.Fact, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(TextParsePrompt(time.Now())),
		genai.NewPartFromText(text),
	}
	return c.generate(ctx, parts)
}

func (c *Client) generate(ctx context.Context, parts []*genai.Part) (engine.Fact, error) {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return engine.Fact{}, fmt.Errorf("classifier request failed: %w", err)
	}

	fact, err := DecodeFact(resp.Text())
	if err != nil {
		return engine.Fact{}, err
	}
	return fact, nil
}

// DecodeFact parses the model's JSON answer into a validated fact. Models
// occasionally wrap the JSON in markdown fences despite instructions, so
// fences are stripped first.
func DecodeFact(answer string) (engine.Fact, error) {
	text := strings.TrimSpace(answer)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var fact engine.Fact
	if err := json.Unmarshal([]byte(text), &fact); err != nil {
		return engine.Fact{}, fmt.Errorf("classifier returned malformed JSON: %w", err)
	}
	if err := fact.Validate(); err != nil {
		return engine.Fact{}, fmt.Errorf("classifier returned invalid fact: %w", err)
	}
	return fact, nil
}
