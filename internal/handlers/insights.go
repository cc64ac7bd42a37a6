package handlers

import (
	"net/http"

	"github.com/AnshRaj112/mindjournal-backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// InsightsHandler serves the AI reflection endpoints.
type InsightsHandler struct {
	reflections *services.ReflectionComposer
	insights    *services.InsightComposer
	logger      *zap.Logger
}

func NewInsightsHandler(reflections *services.ReflectionComposer, insights *services.InsightComposer, logger *zap.Logger) *InsightsHandler {
	return &InsightsHandler{reflections: reflections, insights: insights, logger: logger}
}

// AnalyzeJournal generates and stores a reflection for one journal. POST /api/journals/{id}/analyze
func (h *InsightsHandler) AnalyzeJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	journal, err := h.reflections.Analyze(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, journal)
}

// GetWeeklyInsights summarizes the caller's past week. POST /api/journals/insights
func (h *InsightsHandler) GetWeeklyInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	insights, err := h.insights.WeeklyInsights(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, insights)
}
