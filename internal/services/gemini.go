package services

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrEmptyGeneration is returned when the model answers without any text.
var ErrEmptyGeneration = errors.New("model returned no text")

// GeminiGenerator generates text with a Gemini model.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator builds a client for the Gemini API backend. Only APIKey
// and HTTPOptions are taken from cfg.
func NewGeminiGenerator(ctx context.Context, cfg genai.ClientConfig, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: cfg.HTTPOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := result.Text()
	if text == "" {
		return "", ErrEmptyGeneration
	}
	return text, nil
}
