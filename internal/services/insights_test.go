package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/AnshRaj112/mindjournal-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var insightsNow = time.Date(2025, time.March, 14, 18, 30, 0, 0, time.UTC)

func newTestInsightComposer(store *memoryStore, gen Generator) *InsightComposer {
	c := NewInsightComposer(store, gen, zap.NewNop())
	c.now = func() time.Time { return insightsNow }
	return c
}

func TestWeeklyInsightsNeedsTwoJournals(t *testing.T) {
	store := newMemoryStore()
	gen := &fakeGenerator{reply: "insights"}
	composer := newTestInsightComposer(store, gen)

	store.put(models.Journal{UserID: "u1", Title: "one", Content: "x", Mood: models.MoodGood, CreatedAt: insightsNow.Add(-time.Hour)})
	// Too old and someone else's: neither counts.
	store.put(models.Journal{UserID: "u1", Title: "old", Content: "x", Mood: models.MoodGood, CreatedAt: insightsNow.Add(-8 * 24 * time.Hour)})
	store.put(models.Journal{UserID: "u2", Title: "other", Content: "x", Mood: models.MoodGood, CreatedAt: insightsNow.Add(-time.Hour)})

	_, err := composer.WeeklyInsights(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "You need at least 2 journal entries from the past week to get insights.", err.(*Error).Message)
	assert.Empty(t, gen.prompts)

	store.put(models.Journal{UserID: "u1", Title: "two", Content: "y", Mood: models.MoodBad, CreatedAt: insightsNow.Add(-2 * time.Hour)})

	got, err := composer.WeeklyInsights(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "insights", got.Insights)
	assert.Equal(t, 2, got.JournalCount)
	assert.Equal(t, insightsNow, got.PeriodEnd)
	assert.Equal(t, insightsNow.Add(-7*24*time.Hour), got.PeriodStart)
}

func TestWeeklyInsightsPrompt(t *testing.T) {
	store := newMemoryStore()
	gen := &fakeGenerator{reply: "insights"}
	composer := newTestInsightComposer(store, gen)

	store.put(models.Journal{UserID: "u1", Title: "Older", Content: "first", Mood: models.MoodBad,
		CreatedAt: time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)})
	store.put(models.Journal{UserID: "u1", Title: "Newer", Content: "second", Mood: models.MoodGreat,
		CreatedAt: time.Date(2025, time.March, 13, 8, 0, 0, 0, time.UTC)})

	_, err := composer.WeeklyInsights(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)

	prompt := gen.prompts[0]
	assert.True(t, strings.HasPrefix(prompt, "You are a supportive mental health companion. Analyze these journal entries from the past week"))
	assert.Contains(t, prompt, "under 300 words")
	assert.True(t, strings.HasSuffix(prompt, "Journal entries from the past week:\n\n"+
		"Date: Thu Mar 13 2025\nMood: great\nTitle: Newer\nContent: second"+
		"\n\n---\n\n"+
		"Date: Mon Mar 10 2025\nMood: bad\nTitle: Older\nContent: first"))
}

func TestWeeklyInsightsIncludesWindowBoundary(t *testing.T) {
	store := newMemoryStore()
	composer := newTestInsightComposer(store, &fakeGenerator{reply: "ok"})

	store.put(models.Journal{UserID: "u1", Title: "edge", Content: "x", Mood: models.MoodOkay, CreatedAt: insightsNow.Add(-7 * 24 * time.Hour)})
	store.put(models.Journal{UserID: "u1", Title: "now", Content: "x", Mood: models.MoodOkay, CreatedAt: insightsNow})

	got, err := composer.WeeklyInsights(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.JournalCount)
}

func TestWeeklyInsightsProviderFailure(t *testing.T) {
	store := newMemoryStore()
	composer := newTestInsightComposer(store, &fakeGenerator{err: errBoom})

	for i := 0; i < 3; i++ {
		store.put(models.Journal{UserID: "u1", Title: "t", Content: "c", Mood: models.MoodOkay, CreatedAt: insightsNow.Add(-time.Duration(i+1) * time.Hour)})
	}

	_, err := composer.WeeklyInsights(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, KindProvider, KindOf(err))
	assert.Equal(t, "Failed to generate insights", err.(*Error).Message)
	assert.Zero(t, store.saves)
}

func TestWeeklyInsightsStoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.failWith = errBoom
	composer := newTestInsightComposer(store, &fakeGenerator{reply: "x"})

	_, err := composer.WeeklyInsights(context.Background(), "u1")
	assert.Equal(t, KindStore, KindOf(err))
}
