package queryengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/genai"
)

// CompletionService provides an interface for synchronous prompt
// completion. Any provider taking a fixed system instruction, a user
// message and an output-length budget satisfies it; it also enables
// deterministic stubs in tests.
type CompletionService interface {
	Complete(ctx context.Context, system, prompt string, maxTokens int32) (string, error)
}

// GeminiCompletion is the concrete CompletionService backed by the
// Gemini API.
type GeminiCompletion struct {
	client *genai.Client
	model  string
}

// completionRetries is the number of retries after the first attempt.
// Transport failures back off exponentially; unusable responses are
// not retried.
const completionRetries = 2

// NewGeminiCompletion creates a Gemini-backed completion service.
// Credentials come from the environment (GEMINI_API_KEY / GOOGLE_API_KEY).
func NewGeminiCompletion(ctx context.Context, model string) (*GeminiCompletion, error) {
	if model == "" {
		model = DefaultModelName
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiCompletion{client: client, model: model}, nil
}

// Complete sends one user turn under the fixed system instruction and
// returns the raw generated text.
func (g *GeminiCompletion) Complete(ctx context.Context, system, prompt string, maxTokens int32) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		MaxOutputTokens:   maxTokens,
	}

	var text string
	op := func() error {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
		if err != nil {
			return err
		}
		if t := resp.Text(); t != "" {
			text = t
			return nil
		}
		return backoff.Permanent(errors.New("empty response from model"))
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), completionRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return "", err
	}
	return text, nil
}
