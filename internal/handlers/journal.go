package handlers

import (
	"net/http"

	"github.com/AnshRaj112/mindjournal-backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateJournalRequest is validated by the journal service.
type CreateJournalRequest struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Mood      *string `json:"mood"`
	IsPrivate *bool   `json:"isPrivate"`
}

// UpdateJournalRequest fields are all optional; an empty title, content or
// mood leaves the stored value unchanged.
type UpdateJournalRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Mood      *string `json:"mood"`
	IsPrivate *bool   `json:"isPrivate"`
}

// JournalHandler serves the journal CRUD endpoints.
type JournalHandler struct {
	journals *services.JournalService
	logger   *zap.Logger
}

func NewJournalHandler(journals *services.JournalService, logger *zap.Logger) *JournalHandler {
	return &JournalHandler{journals: journals, logger: logger}
}

// CreateJournal creates a journal owned by the caller. POST /api/journals
func (h *JournalHandler) CreateJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateJournalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	journal, err := h.journals.Create(r.Context(), userID, services.CreateJournalInput{
		Title:     req.Title,
		Content:   req.Content,
		Mood:      req.Mood,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, journal)
}

// GetMyJournals lists the caller's journals, newest first. GET /api/journals
func (h *JournalHandler) GetMyJournals(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	journals, err := h.journals.ListMine(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, journals)
}

// GetJournal returns one journal if the caller owns it or it is public. GET /api/journals/{id}
func (h *JournalHandler) GetJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	journal, err := h.journals.GetByID(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, journal)
}

// UpdateJournal applies a partial update. PUT /api/journals/{id}
func (h *JournalHandler) UpdateJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req UpdateJournalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	journal, err := h.journals.Update(r.Context(), userID, chi.URLParam(r, "id"), services.UpdateJournalInput{
		Title:     req.Title,
		Content:   req.Content,
		Mood:      req.Mood,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, journal)
}

// DeleteJournal permanently removes a journal. DELETE /api/journals/{id}
func (h *JournalHandler) DeleteJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.journals.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Journal deleted"})
}
