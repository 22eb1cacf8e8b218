package delivery

import (
	"encoding/json"
	"net/http"

	"github.com/Vovarama1992/voicescribe/internal/apperr"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError — единый конверт {success:false, error:...},
// статус берётся из apperr.
func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, apperr.Status(err), map[string]any{
		"success": false,
		"error":   apperr.Message(err),
	})
}
