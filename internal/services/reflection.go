package services

import (
	"context"
	"fmt"

	"github.com/AnshRaj112/mindjournal-backend/internal/database"
	"github.com/AnshRaj112/mindjournal-backend/internal/models"
	"go.uber.org/zap"
)

const reflectionPrompt = `You are a supportive mental health companion. Analyze this journal entry and provide:
1. A brief reflection on the emotions expressed
2. One or two gentle suggestions for self-care or coping strategies
3. An encouraging message

Keep your response warm, supportive, and under 200 words.

Journal entry:
Title: %s
Mood: %s
Content: %s`

// ReflectionComposer asks the generator to reflect on a single journal and
// stores the answer as the journal's analysis.
type ReflectionComposer struct {
	store     database.JournalStore
	generator Generator
	logger    *zap.Logger
}

func NewReflectionComposer(store database.JournalStore, generator Generator, logger *zap.Logger) *ReflectionComposer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReflectionComposer{store: store, generator: generator, logger: logger}
}

// Analyze is owner-only, even for public journals. A previous analysis is
// kept when generation fails.
func (c *ReflectionComposer) Analyze(ctx context.Context, callerID, id string) (*models.Journal, error) {
	j, err := findOwnedJournal(ctx, c.store, callerID, id)
	if err != nil {
		return nil, err
	}

	analysis, err := c.generator.Generate(ctx, reflectionPromptFor(j))
	if err != nil {
		c.logger.Error("journal analysis failed", zap.String("journal_id", id), zap.Error(err))
		return nil, providerError(msgAnalysisFailed, err)
	}

	j.Analysis = &analysis
	if err := saveJournal(ctx, c.store, j); err != nil {
		c.logger.Error("failed to save journal analysis", zap.String("journal_id", id), zap.Error(err))
		return nil, err
	}
	return j, nil
}

func reflectionPromptFor(j *models.Journal) string {
	return fmt.Sprintf(reflectionPrompt, j.Title, j.Mood, j.Content)
}
