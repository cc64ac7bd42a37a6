package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AnshRaj112/mindjournal-backend/internal/database"
	"github.com/AnshRaj112/mindjournal-backend/internal/models"
	"github.com/AnshRaj112/mindjournal-backend/pkg/utils"
	"go.uber.org/zap"
)

const storeTimeout = 5 * time.Second

// JournalCounter is notified after each journal is stored.
type JournalCounter interface {
	JournalCreated()
}

// CreateJournalInput carries the fields accepted when creating a journal.
// Nil Mood and IsPrivate fall back to their defaults.
type CreateJournalInput struct {
	Title     string
	Content   string
	Mood      *string
	IsPrivate *bool
}

// newJournalFields is what Create validates, after trimming and defaults.
type newJournalFields struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Mood    string `json:"mood" validate:"oneof=great good okay bad terrible"`
}

// UpdateJournalInput carries optional replacements. Title, Content and Mood
// are applied only when present and non-empty; IsPrivate whenever present.
type UpdateJournalInput struct {
	Title     *string
	Content   *string
	Mood      *string
	IsPrivate *bool
}

// JournalService implements the journal lifecycle with ownership and visibility rules.
type JournalService struct {
	store   database.JournalStore
	counter JournalCounter
	logger  *zap.Logger
}

func NewJournalService(store database.JournalStore, counter JournalCounter, logger *zap.Logger) *JournalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalService{store: store, counter: counter, logger: logger}
}

func (s *JournalService) Create(ctx context.Context, callerID string, in CreateJournalInput) (*models.Journal, error) {
	fields := newJournalFields{
		Title:   strings.TrimSpace(in.Title),
		Content: in.Content,
		Mood:    string(models.DefaultMood),
	}
	if in.Mood != nil {
		fields.Mood = *in.Mood
	}
	if err := utils.ValidateStruct(fields); err != nil {
		return nil, validationError(err.Error())
	}
	title, mood := fields.Title, models.Mood(fields.Mood)

	isPrivate := true
	if in.IsPrivate != nil {
		isPrivate = *in.IsPrivate
	}

	j := &models.Journal{
		UserID:    callerID,
		Title:     title,
		Content:   in.Content,
		Mood:      mood,
		IsPrivate: isPrivate,
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := s.store.Create(ctx, j); err != nil {
		s.logger.Error("failed to create journal", zap.String("user_id", callerID), zap.Error(err))
		return nil, storeError(err)
	}
	if s.counter != nil {
		s.counter.JournalCreated()
	}

	s.logger.Info("journal created", zap.String("journal_id", j.ID), zap.String("user_id", callerID))
	return j, nil
}

// ListMine returns the caller's journals, newest first. Other users' journals
// are never included, whatever their visibility.
func (s *JournalService) ListMine(ctx context.Context, callerID string) ([]models.Journal, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	journals, err := s.store.ListByUser(ctx, callerID, time.Time{})
	if err != nil {
		s.logger.Error("failed to list journals", zap.String("user_id", callerID), zap.Error(err))
		return nil, storeError(err)
	}
	if journals == nil {
		journals = []models.Journal{}
	}
	return journals, nil
}

func (s *JournalService) GetByID(ctx context.Context, callerID, id string) (*models.Journal, error) {
	j, err := findJournal(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	if !j.ReadableBy(callerID) {
		return nil, forbiddenError()
	}
	return j, nil
}

func (s *JournalService) Update(ctx context.Context, callerID, id string, in UpdateJournalInput) (*models.Journal, error) {
	j, err := findOwnedJournal(ctx, s.store, callerID, id)
	if err != nil {
		return nil, err
	}

	if in.Mood != nil && *in.Mood != "" {
		mood := models.Mood(*in.Mood)
		if !mood.Valid() {
			return nil, validationError(msgInvalidMood)
		}
		j.Mood = mood
	}
	if in.Title != nil {
		if title := strings.TrimSpace(*in.Title); title != "" {
			j.Title = title
		}
	}
	if in.Content != nil && *in.Content != "" {
		j.Content = *in.Content
	}
	if in.IsPrivate != nil {
		j.IsPrivate = *in.IsPrivate
	}

	if err := saveJournal(ctx, s.store, j); err != nil {
		s.logger.Error("failed to update journal", zap.String("journal_id", id), zap.Error(err))
		return nil, err
	}
	return j, nil
}

func (s *JournalService) Delete(ctx context.Context, callerID, id string) error {
	if _, err := findOwnedJournal(ctx, s.store, callerID, id); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return notFoundError()
		}
		s.logger.Error("failed to delete journal", zap.String("journal_id", id), zap.Error(err))
		return storeError(err)
	}

	s.logger.Info("journal deleted", zap.String("journal_id", id), zap.String("user_id", callerID))
	return nil
}

func findJournal(ctx context.Context, store database.JournalStore, id string) (*models.Journal, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	j, err := store.FindByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundError()
	}
	if err != nil {
		return nil, storeError(err)
	}
	return j, nil
}

// findOwnedJournal loads a journal the caller must own, whatever its visibility.
func findOwnedJournal(ctx context.Context, store database.JournalStore, callerID, id string) (*models.Journal, error) {
	j, err := findJournal(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if !j.OwnedBy(callerID) {
		return nil, forbiddenError()
	}
	return j, nil
}

func saveJournal(ctx context.Context, store database.JournalStore, j *models.Journal) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	err := store.Save(ctx, j)
	if errors.Is(err, database.ErrNotFound) {
		return notFoundError()
	}
	if err != nil {
		return storeError(err)
	}
	return nil
}
