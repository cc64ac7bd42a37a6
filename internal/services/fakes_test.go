package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/AnshRaj112/mindjournal-backend/internal/database"
	"github.com/AnshRaj112/mindjournal-backend/internal/models"
)

// memoryStore is an in-memory database.JournalStore with a manual clock.
type memoryStore struct {
	mu       sync.Mutex
	journals map[string]models.Journal
	seq      int
	now      time.Time

	failWith error
	saves    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		journals: map[string]models.Journal{},
		now:      time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memoryStore) tick() time.Time {
	m.now = m.now.Add(time.Minute)
	return m.now
}

// put stores j as-is, keeping its CreatedAt.
func (m *memoryStore) put(j models.Journal) models.Journal {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	j.ID = fmt.Sprintf("j%d", m.seq)
	if j.UpdatedAt.IsZero() {
		j.UpdatedAt = j.CreatedAt
	}
	m.journals[j.ID] = j
	return j
}

func (m *memoryStore) Create(_ context.Context, j *models.Journal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.seq++
	j.ID = fmt.Sprintf("j%d", m.seq)
	j.CreatedAt = m.tick()
	j.UpdatedAt = j.CreatedAt
	m.journals[j.ID] = *j
	return nil
}

func (m *memoryStore) ListByUser(_ context.Context, userID string, since time.Time) ([]models.Journal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []models.Journal
	for _, j := range m.journals {
		if j.UserID == userID && !j.CreatedAt.Before(since) {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (m *memoryStore) FindByID(_ context.Context, id string) (*models.Journal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	j, ok := m.journals[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &j, nil
}

func (m *memoryStore) Save(_ context.Context, j *models.Journal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	stored, ok := m.journals[j.ID]
	if !ok {
		return database.ErrNotFound
	}
	m.saves++
	stored.Title = j.Title
	stored.Content = j.Content
	stored.Mood = j.Mood
	stored.Analysis = j.Analysis
	stored.IsPrivate = j.IsPrivate
	stored.UpdatedAt = m.tick()
	m.journals[j.ID] = stored
	j.UpdatedAt = stored.UpdatedAt
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.journals[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.journals, id)
	return nil
}

func (m *memoryStore) get(id string) (models.Journal, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.journals[id]
	return j, ok
}

// fakeGenerator records prompts and returns a canned reply or error.
type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

// fakeSearcher records queries and returns canned videos or an error.
type fakeSearcher struct {
	videos  []models.Video
	err     error
	queries []string
	max     int64
}

func (s *fakeSearcher) Search(_ context.Context, query string, maxResults int64) ([]models.Video, error) {
	s.queries = append(s.queries, query)
	s.max = maxResults
	if s.err != nil {
		return nil, s.err
	}
	return s.videos, nil
}

type countingRecorder struct {
	mu    sync.Mutex
	calls map[string]int
}

func (r *countingRecorder) ProviderCall(provider, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = map[string]int{}
	}
	r.calls[provider+"/"+outcome]++
}

func (r *countingRecorder) count(provider, outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[provider+"/"+outcome]
}

type journalCounter struct{ n int }

func (c *journalCounter) JournalCreated() { c.n++ }

var errBoom = errors.New("boom")

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool { return &b }
