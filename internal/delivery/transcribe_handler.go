package delivery

import (
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voicescribe/internal/apperr"
	"github.com/Vovarama1992/voicescribe/internal/domain"
)

// лимит чтения тела чуть выше лимита файла, чтобы ошибка валидации
// была своя, а не обрыв от MaxBytesReader
const maxTranscribeBody = 52*1024*1024 + 1024*1024

type TranscribeHandler struct {
	service *domain.TranscribeService
	log     *logger.ZapLogger
}

func NewTranscribeHandler(service *domain.TranscribeService, log *logger.ZapLogger) *TranscribeHandler {
	return &TranscribeHandler{service: service, log: log}
}

// POST /transcribe — multipart, поле "audio"
func (h *TranscribeHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxTranscribeBody)

	file, header, err := r.FormFile("audio")
	if err != nil {
		respondError(w, apperr.MissingInput("No audio file provided"))
		return
	}
	defer file.Close()

	if err := domain.ValidateUpload(header.Filename, header.Size); err != nil {
		respondError(w, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, apperr.MissingInput("Failed to read audio file"))
		return
	}

	recordType := r.FormValue("type")

	t, err := h.service.Transcribe(r.Context(), header.Filename, data, recordType)
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "transcription request failed",
			Error:   err,
			Fields:  map[string]any{"fileName": header.Filename, "fileSize": header.Size},
		})
		respondError(w, err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "transcription done",
		Fields: map[string]any{
			"fileName":  t.FileName,
			"wordCount": t.WordCount,
		},
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"transcription": t.Text,
		"wordCount":     t.WordCount,
		"fileName":      t.FileName,
		"fileSize":      t.FileSize,
		"timestamp":     t.CreatedAt,
		"id":            t.ID,
	})
}
