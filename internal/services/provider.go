package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnshRaj112/mindjournal-backend/internal/models"
)

// Generator turns a prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// VideoSearcher finds videos matching a free-text query.
type VideoSearcher interface {
	Search(ctx context.Context, query string, maxResults int64) ([]models.Video, error)
}

// ProviderError is a structured error reported by a provider itself
// (bad key, quota, invalid argument) rather than a transport failure.
type ProviderError struct {
	Provider string
	Code     int
	Message  string
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Message
}

// ErrProviderNotConfigured is returned by providers whose API key is missing.
var ErrProviderNotConfigured = errors.New("provider not configured")

// Unconfigured stands in for a provider whose credentials are absent, so the
// server still starts and only the dependent endpoints fail.
type Unconfigured struct {
	Provider string
}

func (u Unconfigured) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("%s: %w", u.Provider, ErrProviderNotConfigured)
}

func (u Unconfigured) Search(context.Context, string, int64) ([]models.Video, error) {
	return nil, fmt.Errorf("%s: %w", u.Provider, ErrProviderNotConfigured)
}
