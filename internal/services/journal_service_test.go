package services

import (
	"context"
	"testing"

	"github.com/AnshRaj112/mindjournal-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJournalService() (*JournalService, *memoryStore, *journalCounter) {
	store := newMemoryStore()
	counter := &journalCounter{}
	return NewJournalService(store, counter, zap.NewNop()), store, counter
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc, _, counter := newTestJournalService()

	j, err := svc.Create(context.Background(), "u1", CreateJournalInput{Title: "  Morning  ", Content: "Slept well"})
	require.NoError(t, err)

	assert.NotEmpty(t, j.ID)
	assert.Equal(t, "u1", j.UserID)
	assert.Equal(t, "Morning", j.Title)
	assert.Equal(t, models.MoodOkay, j.Mood)
	assert.True(t, j.IsPrivate)
	assert.Nil(t, j.Analysis)
	assert.False(t, j.CreatedAt.IsZero())
	assert.Equal(t, 1, counter.n)
}

func TestCreateHonoursExplicitFields(t *testing.T) {
	svc, _, _ := newTestJournalService()

	j, err := svc.Create(context.Background(), "u1", CreateJournalInput{
		Title: "A", Content: "B", Mood: strPtr("terrible"), IsPrivate: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MoodTerrible, j.Mood)
	assert.False(t, j.IsPrivate)
}

func TestCreateValidation(t *testing.T) {
	svc, store, counter := newTestJournalService()
	ctx := context.Background()

	tests := []struct {
		name    string
		in      CreateJournalInput
		message string
	}{
		{"missing title", CreateJournalInput{Content: "B"}, "title is required"},
		{"blank title", CreateJournalInput{Title: "   ", Content: "B"}, "title is required"},
		{"missing content", CreateJournalInput{Title: "A"}, "content is required"},
		{"missing both", CreateJournalInput{}, "title is required; content is required"},
		{"unknown mood", CreateJournalInput{Title: "A", Content: "B", Mood: strPtr("ecstatic")}, msgInvalidMood},
		{"empty mood", CreateJournalInput{Title: "A", Content: "B", Mood: strPtr("")}, msgInvalidMood},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "u1", tt.in)
			assert.Equal(t, KindValidation, KindOf(err))

			var svcErr *Error
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, tt.message, svcErr.Message)
		})
	}
	assert.Empty(t, store.journals)
	assert.Zero(t, counter.n)
}

func TestCreateStoreFailure(t *testing.T) {
	svc, store, counter := newTestJournalService()
	store.failWith = errBoom

	_, err := svc.Create(context.Background(), "u1", CreateJournalInput{Title: "A", Content: "B"})
	assert.Equal(t, KindStore, KindOf(err))
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, counter.n)
}

func TestListMineOnlyReturnsOwnJournalsNewestFirst(t *testing.T) {
	svc, _, _ := newTestJournalService()
	ctx := context.Background()

	first, err := svc.Create(ctx, "u1", CreateJournalInput{Title: "first", Content: "x"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", CreateJournalInput{Title: "public", Content: "x", IsPrivate: boolPtr(false)})
	require.NoError(t, err)
	second, err := svc.Create(ctx, "u1", CreateJournalInput{Title: "second", Content: "x"})
	require.NoError(t, err)

	journals, err := svc.ListMine(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, journals, 2)
	assert.Equal(t, second.ID, journals[0].ID)
	assert.Equal(t, first.ID, journals[1].ID)

	empty, err := svc.ListMine(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGetByIDVisibility(t *testing.T) {
	svc, _, _ := newTestJournalService()
	ctx := context.Background()

	private, err := svc.Create(ctx, "u1", CreateJournalInput{Title: "secret", Content: "x"})
	require.NoError(t, err)
	public, err := svc.Create(ctx, "u1", CreateJournalInput{Title: "open", Content: "x", IsPrivate: boolPtr(false)})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, "u1", private.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Title)

	got, err = svc.GetByID(ctx, "u2", private.ID)
	assert.Nil(t, got)
	assert.Equal(t, KindForbidden, KindOf(err))

	got, err = svc.GetByID(ctx, "u2", public.ID)
	require.NoError(t, err)
	assert.Equal(t, "open", got.Title)
}

func TestGetByIDMissingIsNotFoundEvenForOwner(t *testing.T) {
	svc, _, _ := newTestJournalService()

	_, err := svc.GetByID(context.Background(), "u1", "does-not-exist")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestUpdateEmptyStringsMeanNoChange(t *testing.T) {
	svc, _, _ := newTestJournalService()
	ctx := context.Background()

	j, err := svc.Create(ctx, "u1", CreateJournalInput{Title: "A", Content: "B", Mood: strPtr("bad")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "u1", j.ID, UpdateJournalInput{
		Title: strPtr(""), Content: strPtr(""), Mood: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "A", updated.Title)
	assert.Equal(t, "B", updated.Content)
	assert.Equal(t, models.MoodBad, updated.Mood)
	assert.True(t, updated.IsPrivate)
}

func TestUpdateReplacesPresentFields(t *testing.T) {
	svc, store, _ := newTestJournalService()
	ctx := context.Background()

	j, err := svc.Create(ctx, "u1", CreateJournalInput{Title: "A", Content: "B"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "u1", j.ID, UpdateJournalInput{
		Title: strPtr(" New "), Content: strPtr("C"), Mood: strPtr("great"), IsPrivate: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "C", updated.Content)
	assert.Equal(t, models.MoodGreat, updated.Mood)
	assert.False(t, updated.IsPrivate)
	assert.True(t, updated.UpdatedAt.After(j.CreatedAt))

	stored, ok := store.get(j.ID)
	require.True(t, ok)
	assert.False(t, stored.IsPrivate)
	assert.Equal(t, "New", stored.Title)
}

func TestUpdateIsPrivateFalseAlwaysFlips(t *testing.T) {
	svc, _, _ := newTestJournalService()
	ctx := context.Background()

	j, err := svc.Create(ctx, "u1", CreateJournalInput{Title: "A", Content: "B"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "u1", j.ID, UpdateJournalInput{IsPrivate: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsPrivate)

	updated, err = svc.Update(ctx, "u1", j.ID, UpdateJournalInput{})
	require.NoError(t, err)
	assert.False(t, updated.IsPrivate, "omitted isPrivate must not reset visibility")
}

func TestUpdateNeverChangesOwner(t *testing.T) {
	svc, store, _ := newTestJournalService()
	ctx := context.Background()

	j, err := svc.Create(ctx, "u1", CreateJournalInput{Title: "A", Content: "B"})
	require.NoError(t, err)

	payloads := []UpdateJournalInput{
		{},
		{Title: strPtr("x")},
		{Content: strPtr("y"), Mood: strPtr("good"), IsPrivate: boolPtr(false)},
		{Title: strPtr(""), IsPrivate: boolPtr(true)},
	}
	for _, p := range payloads {
		updated, err := svc.Update(ctx, "u1", j.ID, p)
		require.NoError(t, err)
		assert.Equal(t, "u1", updated.UserID)
		stored, _ := store.get(j.ID)
		assert.Equal(t, "u1", stored.UserID)
	}
}

func TestUpdateErrors(t *testing.T) {
	svc, store, _ := newTestJournalService()
	ctx := context.Background()

	public, err := svc.Create(ctx, "u1", CreateJournalInput{Title: "A", Content: "B", IsPrivate: boolPtr(false)})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "u1", "missing", UpdateJournalInput{Title: strPtr("x")})
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = svc.Update(ctx, "u2", public.ID, UpdateJournalInput{Title: strPtr("x")})
	assert.Equal(t, KindForbidden, KindOf(err), "public journals are still owner-only for writes")

	_, err = svc.Update(ctx, "u1", public.ID, UpdateJournalInput{Title: strPtr("x"), Mood: strPtr("meh")})
	assert.Equal(t, KindValidation, KindOf(err))

	stored, _ := store.get(public.ID)
	assert.Equal(t, "A", stored.Title, "a rejected update must not be persisted")
}

func TestDelete(t *testing.T) {
	svc, store, _ := newTestJournalService()
	ctx := context.Background()

	j, err := svc.Create(ctx, "u1", CreateJournalInput{Title: "A", Content: "B", IsPrivate: boolPtr(false)})
	require.NoError(t, err)

	assert.Equal(t, KindForbidden, KindOf(svc.Delete(ctx, "u2", j.ID)))
	_, ok := store.get(j.ID)
	assert.True(t, ok)

	require.NoError(t, svc.Delete(ctx, "u1", j.ID))
	_, ok = store.get(j.ID)
	assert.False(t, ok)

	assert.Equal(t, KindNotFound, KindOf(svc.Delete(ctx, "u1", j.ID)))
}

func TestJournalLifecycleScenario(t *testing.T) {
	svc, _, _ := newTestJournalService()
	ctx := context.Background()

	j, err := svc.Create(ctx, "U1", CreateJournalInput{Title: "A", Content: "B", Mood: strPtr("bad"), IsPrivate: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, j.IsPrivate)
	assert.Nil(t, j.Analysis)

	_, err = svc.GetByID(ctx, "U2", j.ID)
	assert.Equal(t, KindForbidden, KindOf(err))

	_, err = svc.Update(ctx, "U1", j.ID, UpdateJournalInput{IsPrivate: boolPtr(false)})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, "U2", j.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)

	assert.Equal(t, KindForbidden, KindOf(svc.Delete(ctx, "U2", j.ID)))
	require.NoError(t, svc.Delete(ctx, "U1", j.ID))

	_, err = svc.GetByID(ctx, "U1", j.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}
