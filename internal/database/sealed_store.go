package database

import (
	"context"
	"fmt"
	"time"

	"github.com/AnshRaj112/mindjournal-backend/internal/models"
	"github.com/AnshRaj112/mindjournal-backend/pkg/utils"
)

// JournalStore is the persistence contract shared by the Mongo and SQL repositories.
type JournalStore interface {
	Create(ctx context.Context, j *models.Journal) error
	ListByUser(ctx context.Context, userID string, since time.Time) ([]models.Journal, error)
	FindByID(ctx context.Context, id string) (*models.Journal, error)
	Save(ctx context.Context, j *models.Journal) error
	Delete(ctx context.Context, id string) error
}

// SealedJournalStore encrypts journal content and analysis before they reach
// the underlying store. Titles, moods and timestamps stay in the clear.
type SealedJournalStore struct {
	next   JournalStore
	sealer *utils.Sealer
}

func NewSealedJournalStore(next JournalStore, sealer *utils.Sealer) *SealedJournalStore {
	return &SealedJournalStore{next: next, sealer: sealer}
}

func (s *SealedJournalStore) Create(ctx context.Context, j *models.Journal) error {
	sealed, err := s.seal(*j)
	if err != nil {
		return err
	}
	if err := s.next.Create(ctx, &sealed); err != nil {
		return err
	}
	j.ID = sealed.ID
	j.CreatedAt = sealed.CreatedAt
	j.UpdatedAt = sealed.UpdatedAt
	return nil
}

func (s *SealedJournalStore) ListByUser(ctx context.Context, userID string, since time.Time) ([]models.Journal, error) {
	journals, err := s.next.ListByUser(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	for i := range journals {
		if err := s.open(&journals[i]); err != nil {
			return nil, err
		}
	}
	return journals, nil
}

func (s *SealedJournalStore) FindByID(ctx context.Context, id string) (*models.Journal, error) {
	j, err := s.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.open(j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *SealedJournalStore) Save(ctx context.Context, j *models.Journal) error {
	sealed, err := s.seal(*j)
	if err != nil {
		return err
	}
	if err := s.next.Save(ctx, &sealed); err != nil {
		return err
	}
	j.UpdatedAt = sealed.UpdatedAt
	return nil
}

func (s *SealedJournalStore) Delete(ctx context.Context, id string) error {
	return s.next.Delete(ctx, id)
}

func (s *SealedJournalStore) seal(j models.Journal) (models.Journal, error) {
	content, err := s.sealer.Seal(j.Content)
	if err != nil {
		return j, fmt.Errorf("failed to seal journal content: %w", err)
	}
	j.Content = content

	if j.Analysis != nil {
		analysis, err := s.sealer.Seal(*j.Analysis)
		if err != nil {
			return j, fmt.Errorf("failed to seal journal analysis: %w", err)
		}
		j.Analysis = &analysis
	}
	return j, nil
}

func (s *SealedJournalStore) open(j *models.Journal) error {
	content, err := s.sealer.Open(j.Content)
	if err != nil {
		return fmt.Errorf("failed to open journal %s: %w", j.ID, err)
	}
	j.Content = content

	if j.Analysis != nil {
		analysis, err := s.sealer.Open(*j.Analysis)
		if err != nil {
			return fmt.Errorf("failed to open journal %s analysis: %w", j.ID, err)
		}
		j.Analysis = &analysis
	}
	return nil
}
