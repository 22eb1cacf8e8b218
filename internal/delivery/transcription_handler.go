package delivery

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voicescribe/internal/apperr"
	"github.com/Vovarama1992/voicescribe/internal/models"
	"github.com/Vovarama1992/voicescribe/internal/ports"
	"github.com/go-chi/chi/v5"
)

type TranscriptionHandler struct {
	repo   ports.TranscriptionRepository
	events ports.EventSink
	log    *logger.ZapLogger
}

func NewTranscriptionHandler(repo ports.TranscriptionRepository, events ports.EventSink, log *logger.ZapLogger) *TranscriptionHandler {
	return &TranscriptionHandler{repo: repo, events: events, log: log}
}

// POST /transcriptions — ручное создание записи
func (h *TranscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transcription string `json:"transcription"`
		WordCount     int    `json:"wordCount"`
		FileName      string `json:"fileName"`
		FileSize      int64  `json:"fileSize"`
		Type          string `json:"type"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.MissingInput("Invalid request body"))
		return
	}

	if req.Transcription == "" || req.FileName == "" || req.Type == "" {
		respondError(w, apperr.MissingInput("Missing required fields: transcription, fileName, type"))
		return
	}

	if !models.ValidType(req.Type) {
		respondError(w, apperr.MissingInput("Invalid type: must be recording or upload"))
		return
	}

	t := &models.Transcription{
		Text:      req.Transcription,
		WordCount: req.WordCount,
		FileName:  req.FileName,
		FileSize:  req.FileSize,
		Type:      req.Type,
	}

	saved, err := h.repo.Insert(r.Context(), t)
	if err != nil {
		respondError(w, apperr.PersistenceFailed("Failed to create transcription").WithCause(err))
		return
	}

	if h.events != nil {
		h.events.Publish(ports.RecordEvent{
			Kind:            "transcription.created",
			TranscriptionID: saved.ID,
			FileName:        saved.FileName,
			WordCount:       saved.WordCount,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"transcription": saved,
	})
}

// GET /transcriptions?limit=N
func (h *TranscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	list, err := h.repo.List(r.Context(), limit)
	if err != nil {
		respondError(w, apperr.PersistenceFailed("Failed to fetch transcriptions").WithCause(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"transcriptions": list,
	})
}

// GET /transcriptions/{id}
func (h *TranscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, apperr.PersistenceFailed("Failed to fetch transcription").WithCause(err))
		return
	}
	if t == nil {
		respondError(w, apperr.NotFound("Transcription"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"transcription": t,
	})
}

// PATCH /transcriptions/{id}
func (h *TranscriptionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Transcription *string `json:"transcription"`
		WordCount     *int    `json:"wordCount"`
		FileName      *string `json:"fileName"`
		FileSize      *int64  `json:"fileSize"`
		Type          *string `json:"type"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.MissingInput("Invalid request body"))
		return
	}

	if req.Type != nil && !models.ValidType(*req.Type) {
		respondError(w, apperr.MissingInput("Invalid type: must be recording or upload"))
		return
	}

	t, err := h.repo.Update(r.Context(), id, ports.TranscriptionUpdate{
		Text:      req.Transcription,
		WordCount: req.WordCount,
		FileName:  req.FileName,
		FileSize:  req.FileSize,
		Type:      req.Type,
	})
	if err != nil {
		respondError(w, apperr.PersistenceFailed("Failed to update transcription").WithCause(err))
		return
	}
	if t == nil {
		respondError(w, apperr.NotFound("Transcription"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"transcription": t,
	})
}

// DELETE /transcriptions/{id}
func (h *TranscriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ok, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		respondError(w, apperr.PersistenceFailed("Failed to delete transcription").WithCause(err))
		return
	}
	if !ok {
		respondError(w, apperr.NotFound("Transcription"))
		return
	}

	if h.events != nil {
		h.events.Publish(ports.RecordEvent{
			Kind:            "transcription.deleted",
			TranscriptionID: id,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Transcription deleted successfully",
	})
}

// GET /stats
func (h *TranscriptionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		respondError(w, apperr.PersistenceFailed("Failed to fetch stats").WithCause(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}

// GET /health
func (h *TranscriptionHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "health check: database unreachable",
			Error:   err,
		})
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"success":  false,
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"database": "connected",
	})
}
