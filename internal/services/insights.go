package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AnshRaj112/mindjournal-backend/internal/database"
	"github.com/AnshRaj112/mindjournal-backend/internal/models"
	"go.uber.org/zap"
)

const (
	insightWindow      = 7 * 24 * time.Hour
	minInsightJournals = 2
	insightDateLayout  = "Mon Jan 02 2006"
	insightSeparator   = "\n\n---\n\n"
)

const insightsPrompt = `You are a supportive mental health companion. Analyze these journal entries from the past week and provide:

1. **Mood Patterns**: How has the person's mood changed throughout the week?
2. **Recurring Themes**: What topics or concerns keep coming up?
3. **Positive Observations**: What strengths or healthy behaviors do you notice?
4. **Gentle Suggestions**: 2-3 supportive suggestions for the coming week.
5. **Encouragement**: End with an encouraging message.

Keep your response warm, supportive, and under 300 words.

Journal entries from the past week:

`

// InsightComposer summarizes a user's past week of journals. Nothing it
// produces is persisted.
type InsightComposer struct {
	store     database.JournalStore
	generator Generator
	logger    *zap.Logger
	now       func() time.Time
}

func NewInsightComposer(store database.JournalStore, generator Generator, logger *zap.Logger) *InsightComposer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightComposer{store: store, generator: generator, logger: logger, now: time.Now}
}

func (c *InsightComposer) WeeklyInsights(ctx context.Context, callerID string) (*models.WeeklyInsights, error) {
	periodEnd := c.now().UTC()
	periodStart := periodEnd.Add(-insightWindow)

	storeCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	journals, err := c.store.ListByUser(storeCtx, callerID, periodStart)
	cancel()
	if err != nil {
		c.logger.Error("failed to load weekly journals", zap.String("user_id", callerID), zap.Error(err))
		return nil, storeError(err)
	}

	if len(journals) < minInsightJournals {
		return nil, validationError(msgNotEnoughJournals)
	}

	insights, err := c.generator.Generate(ctx, insightsPromptFor(journals))
	if err != nil {
		c.logger.Error("weekly insights failed", zap.String("user_id", callerID), zap.Error(err))
		return nil, providerError(msgInsightsFailed, err)
	}

	return &models.WeeklyInsights{
		Insights:     insights,
		JournalCount: len(journals),
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
	}, nil
}

func insightsPromptFor(journals []models.Journal) string {
	summaries := make([]string, 0, len(journals))
	for _, j := range journals {
		summaries = append(summaries, fmt.Sprintf("Date: %s\nMood: %s\nTitle: %s\nContent: %s",
			j.CreatedAt.UTC().Format(insightDateLayout), j.Mood, j.Title, j.Content))
	}
	return insightsPrompt + strings.Join(summaries, insightSeparator)
}
