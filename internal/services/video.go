package services

import (
	"context"
	"errors"
	"strings"

	"github.com/AnshRaj112/mindjournal-backend/internal/models"
	"go.uber.org/zap"
)

const (
	videoQuerySuffix = " mental health"
	videoMaxResults  = 12
)

// VideoLookup finds mental-health videos for a user query.
type VideoLookup struct {
	searcher VideoSearcher
	logger   *zap.Logger
}

func NewVideoLookup(searcher VideoSearcher, logger *zap.Logger) *VideoLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VideoLookup{searcher: searcher, logger: logger}
}

func (l *VideoLookup) Search(ctx context.Context, query string) ([]models.Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, validationError(msgQueryRequired)
	}

	videos, err := l.searcher.Search(ctx, query+videoQuerySuffix, videoMaxResults)
	if err != nil {
		var perr *ProviderError
		if errors.As(err, &perr) {
			return nil, &Error{Kind: KindValidation, Message: perr.Message, Err: err}
		}
		l.logger.Error("video search failed", zap.String("query", query), zap.Error(err))
		return nil, providerError(msgSearchFailed, err)
	}
	if videos == nil {
		videos = []models.Video{}
	}
	return videos, nil
}
