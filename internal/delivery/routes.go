package delivery

import (
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(
	r chi.Router,
	hTranscribe *TranscribeHandler,
	hEnhance *EnhanceHandler,
	hTranscriptions *TranscriptionHandler,
	hPrompts *PromptHandler,
) {
	// пайплайны
	r.Post("/transcribe", hTranscribe.Transcribe)
	r.Post("/enhance-prompt", hEnhance.Enhance)

	// transcription CRUD
	r.Post("/transcriptions", hTranscriptions.Create)
	r.Get("/transcriptions", hTranscriptions.List)
	r.Get("/transcriptions/{id}", hTranscriptions.Get)
	r.Patch("/transcriptions/{id}", hTranscriptions.Update)
	r.Delete("/transcriptions/{id}", hTranscriptions.Delete)

	// enhanced prompts
	r.Post("/enhanced-prompts", hPrompts.Create)
	r.Get("/enhanced-prompts", hPrompts.ListByTranscription)
	r.Delete("/enhanced-prompts/{id}", hPrompts.Delete)

	// служебное
	r.Get("/stats", hTranscriptions.Stats)
	r.Get("/health", hTranscriptions.Health)
}
