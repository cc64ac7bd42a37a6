package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnshRaj112/mindjournal-backend/internal/models"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeSearcher searches videos through the YouTube Data API v3.
type YouTubeSearcher struct {
	svc *youtube.Service
}

func NewYouTubeSearcher(ctx context.Context, opts ...option.ClientOption) (*YouTubeSearcher, error) {
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube client: %w", err)
	}
	return &YouTubeSearcher{svc: svc}, nil
}

func (y *YouTubeSearcher) Search(ctx context.Context, query string, maxResults int64) ([]models.Video, error) {
	resp, err := y.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, &ProviderError{Provider: "youtube", Code: apiErr.Code, Message: apiErr.Message}
		}
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	videos := make([]models.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		v := models.Video{}
		if item.Id != nil {
			v.ID = item.Id.VideoId
		}
		if s := item.Snippet; s != nil {
			v.Title = s.Title
			v.Description = s.Description
			v.ChannelTitle = s.ChannelTitle
			v.PublishedAt = s.PublishedAt
			if s.Thumbnails != nil && s.Thumbnails.Medium != nil {
				v.Thumbnail = s.Thumbnails.Medium.Url
			}
		}
		videos = append(videos, v)
	}
	return videos, nil
}
