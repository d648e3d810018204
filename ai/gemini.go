package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// GeminiClient implements Completer against the Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     *logrus.Logger
}

// NewGeminiClient creates a Gemini-backed completer.
func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration, log *logrus.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to init AI client: %w", err)
	}
	return &GeminiClient{
		client:  client,
		model:   model,
		timeout: timeout,
		log:     log,
	}, nil
}

// Complete sends one generation request and returns the trimmed text reply.
// No retries: a failure surfaces immediately so the caller can degrade.
func (g *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	parts := []*genai.Part{{Text: req.Prompt}}
	for _, att := range req.Attachments {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: att.MIMEType,
				Data:     att.Data,
			},
		})
	}
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: parts,
		},
	}

	cfg := &genai.GenerateContentConfig{}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(req.Temperature)
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		g.log.WithError(err).WithField("model", g.model).Warn("AI generation failed")
		return "", classify(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		g.log.WithField("model", g.model).Warn("Empty response from AI")
		return "", ErrMalformed
	}
	return text, nil
}

// classify maps provider errors onto the package taxonomy.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: timeout: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
