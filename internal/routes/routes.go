package routes

import (
	"net/http"

	"github.com/AnshRaj112/mindjournal-backend/internal/handlers"
	"github.com/go-chi/chi/v5"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Journals *handlers.JournalHandler
	Insights *handlers.InsightsHandler
	Videos   *handlers.VideoHandler
	// Auth guards every /api route.
	Auth func(http.Handler) http.Handler
}

func SetupRoutes(r chi.Router, h Handlers) {
	r.Route("/api", func(r chi.Router) {
		r.Use(h.Auth)

		// Journaling routes
		r.Route("/journals", func(r chi.Router) {
			r.Post("/", h.Journals.CreateJournal)
			r.Get("/", h.Journals.GetMyJournals)
			r.Post("/insights", h.Insights.GetWeeklyInsights)

			r.Get("/{id}", h.Journals.GetJournal)
			r.Put("/{id}", h.Journals.UpdateJournal)
			r.Delete("/{id}", h.Journals.DeleteJournal)
			r.Post("/{id}/analyze", h.Insights.AnalyzeJournal)
		})

		// Video search
		r.Get("/youtube/search", h.Videos.SearchVideos)
	})
}
