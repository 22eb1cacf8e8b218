package delivery

import (
	"encoding/json"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voicescribe/internal/apperr"
	"github.com/Vovarama1992/voicescribe/internal/models"
	"github.com/Vovarama1992/voicescribe/internal/ports"
	"github.com/go-chi/chi/v5"
)

type PromptHandler struct {
	repo ports.EnhancedPromptRepository
	log  *logger.ZapLogger
}

func NewPromptHandler(repo ports.EnhancedPromptRepository, log *logger.ZapLogger) *PromptHandler {
	return &PromptHandler{repo: repo, log: log}
}

// POST /enhanced-prompts — явное сохранение результата enhance
func (h *PromptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TranscriptionID    string          `json:"transcriptionId"`
		EnhancedPrompt     string          `json:"enhancedPrompt"`
		Summary            string          `json:"summary"`
		OriginalText       string          `json:"originalText"`
		TargetAgent        string          `json:"targetAgent"`
		PromptStyle        string          `json:"promptStyle"`
		SuggestedFollowUps json.RawMessage `json:"suggestedFollowUps"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.MissingInput("Invalid request body"))
		return
	}

	if req.TranscriptionID == "" || req.EnhancedPrompt == "" || req.Summary == "" ||
		req.OriginalText == "" || req.TargetAgent == "" || req.PromptStyle == "" {
		respondError(w, apperr.MissingInput("Missing required fields"))
		return
	}

	p := &models.EnhancedPrompt{
		TranscriptionID: req.TranscriptionID,
		EnhancedText:    req.EnhancedPrompt,
		Summary:         req.Summary,
		OriginalText:    req.OriginalText,
		TargetAgent:     req.TargetAgent,
		PromptStyle:     req.PromptStyle,
		FollowUps:       coerceFollowUps(req.SuggestedFollowUps),
	}

	saved, err := h.repo.Insert(r.Context(), p)
	if err != nil {
		respondError(w, apperr.PersistenceFailed("Failed to create enhanced prompt").WithCause(err))
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "enhanced prompt saved",
		Fields: map[string]any{
			"id":              saved.ID,
			"transcriptionId": saved.TranscriptionID,
		},
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"enhancedPrompt": saved,
	})
}

// GET /enhanced-prompts?transcriptionId=...
func (h *PromptHandler) ListByTranscription(w http.ResponseWriter, r *http.Request) {
	transcriptionID := r.URL.Query().Get("transcriptionId")
	if transcriptionID == "" {
		respondError(w, apperr.MissingInput("Missing transcriptionId"))
		return
	}

	list, err := h.repo.ListByTranscription(r.Context(), transcriptionID)
	if err != nil {
		respondError(w, apperr.PersistenceFailed("Failed to fetch enhanced prompts").WithCause(err))
		return
	}
	if list == nil {
		list = []models.EnhancedPrompt{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"enhancedPrompts": list,
	})
}

// DELETE /enhanced-prompts/{id}
func (h *PromptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ok, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		respondError(w, apperr.PersistenceFailed("Failed to delete enhanced prompt").WithCause(err))
		return
	}
	if !ok {
		respondError(w, apperr.NotFound("Enhanced prompt"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Enhanced prompt deleted successfully",
	})
}

// coerceFollowUps: не массив строк → пустой список, как и в enhance-ответе
func coerceFollowUps(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
