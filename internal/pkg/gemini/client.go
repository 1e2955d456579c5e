// Package gemini wraps the Google Gemini SDK behind a single-call Generator.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/content"
	"github.com/yigit/studyhub/internal/pkg/logger"
	"google.golang.org/api/option"
)

// Generator performs one model invocation and returns the raw text reply
type Generator interface {
	Generate(ctx context.Context, prompt string, attachment *content.Attachment) (string, error)
}

// Config for the Gemini client
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// contentGenerator is the part of *genai.GenerativeModel the client calls
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Client is a Generator backed by the Gemini API. It never retries.
type Client struct {
	client  *genai.Client
	model   contentGenerator
	name    string
	timeout time.Duration
}

// NewClient creates the SDK client
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		client:  client,
		model:   client.GenerativeModel(cfg.Model),
		name:    cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// Close releases the underlying connection
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Generate sends the prompt, plus the attachment as inline data when present.
// The call is bounded by the configured timeout and by ctx.
func (c *Client) Generate(ctx context.Context, prompt string, attachment *content.Attachment) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	parts := []genai.Part{genai.Text(prompt)}
	if attachment != nil {
		// The SDK base64-encodes blob data on the wire
		parts = append(parts, genai.Blob{MIMEType: attachment.MIMEType, Data: attachment.Data})
	}

	started := time.Now()
	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		logger.Error().Err(err).Str("model", c.name).Dur("elapsed", time.Since(started)).Msg("Gemini call failed")
		return "", apperrors.NewGenerationError(err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", apperrors.NewGenerationError(errors.New("model returned no text"))
	}

	ev := logger.Debug().Str("model", c.name).Dur("elapsed", time.Since(started))
	if resp.UsageMetadata != nil {
		ev = ev.Int32("promptTokens", resp.UsageMetadata.PromptTokenCount).
			Int32("candidateTokens", resp.UsageMetadata.CandidatesTokenCount)
	}
	ev.Msg("Gemini call completed")

	return text, nil
}

// responseText concatenates the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
