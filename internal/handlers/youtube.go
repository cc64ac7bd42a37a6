package handlers

import (
	"net/http"

	"github.com/AnshRaj112/mindjournal-backend/internal/models"
	"github.com/AnshRaj112/mindjournal-backend/internal/services"
	"go.uber.org/zap"
)

type SearchVideosResponse struct {
	Videos []models.Video `json:"videos"`
}

type VideoHandler struct {
	videos *services.VideoLookup
	logger *zap.Logger
}

func NewVideoHandler(videos *services.VideoLookup, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{videos: videos, logger: logger}
}

// SearchVideos proxies a mental-health video search. GET /api/youtube/search?q=
func (h *VideoHandler) SearchVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.videos.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, SearchVideosResponse{Videos: videos})
}
