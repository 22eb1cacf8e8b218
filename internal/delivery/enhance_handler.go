package delivery

import (
	"encoding/json"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voicescribe/internal/apperr"
	"github.com/Vovarama1992/voicescribe/internal/domain"
)

type EnhanceHandler struct {
	service *domain.EnhanceService
	log     *logger.ZapLogger
}

func NewEnhanceHandler(service *domain.EnhanceService, log *logger.ZapLogger) *EnhanceHandler {
	return &EnhanceHandler{service: service, log: log}
}

// POST /enhance-prompt
func (h *EnhanceHandler) Enhance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text        string `json:"text"`
		Language    string `json:"language"`
		TargetAgent string `json:"targetAgent"`
		PromptStyle string `json:"promptStyle"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.MissingInput("Invalid request body"))
		return
	}

	result, err := h.service.Enhance(r.Context(), req.Text, req.TargetAgent, req.PromptStyle)
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "enhancement request failed",
			Error:   err,
			Fields:  map[string]any{"targetAgent": req.TargetAgent, "promptStyle": req.PromptStyle},
		})
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":            true,
		"enhancedPrompt":     result.EnhancedPrompt,
		"summary":            result.Summary,
		"suggestedFollowUps": result.SuggestedFollowUps,
		"originalText":       result.OriginalText,
		"targetAgent":        result.TargetAgent,
		"promptStyle":        result.PromptStyle,
		"timestamp":          result.Timestamp,
	})
}
