package domain

import (
	"context"
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voicescribe/internal/apperr"
	"github.com/Vovarama1992/voicescribe/internal/models"
	"github.com/Vovarama1992/voicescribe/internal/ports"
	"github.com/Vovarama1992/voicescribe/internal/retry"
	"github.com/google/uuid"
)

const (
	maxAudioSize = 50 * 1024 * 1024
	minAudioSize = 500 // короче — это не речь, а щелчок мыши
)

var allowedExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".ogg":  true,
	".webm": true,
	".mp4":  true,
	".aac":  true,
}

type TranscribeService struct {
	speech ports.SpeechService
	repo   ports.TranscriptionRepository
	policy retry.Policy
	events ports.EventSink
	log    *logger.ZapLogger
}

func NewTranscribeService(
	speech ports.SpeechService,
	repo ports.TranscriptionRepository,
	policy retry.Policy,
	events ports.EventSink,
	log *logger.ZapLogger,
) *TranscribeService {
	if policy.RetryIf == nil {
		// auth-ошибки повторять бессмысленно
		policy.RetryIf = func(err error) bool {
			return !errors.Is(err, ports.ErrAuth) && retry.DefaultRetryIf(err)
		}
	}
	return &TranscribeService{
		speech: speech,
		repo:   repo,
		policy: policy,
		events: events,
		log:    log,
	}
}

// ValidateUpload проверяет файл в строгом порядке:
// наличие → расширение → верхний лимит → нижний лимит.
func ValidateUpload(fileName string, size int64) error {
	if fileName == "" {
		return apperr.MissingInput("No audio file provided")
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return apperr.UnsupportedFormat("Invalid audio format. Supported: WAV, MP3, M4A, OGG, WEBM, AAC")
	}

	if size > maxAudioSize {
		return apperr.PayloadTooLarge("File too large. Maximum size is 50MB")
	}

	if size < minAudioSize {
		return apperr.PayloadTooSmall("Audio file is too small. Please record at least 2-3 seconds.")
	}

	return nil
}

// Transcribe гонит аудио через распознавание с ретраем и сохраняет результат.
// Ошибка сохранения запрос не валит: текст уже есть, отдаём его с локальным id.
func (s *TranscribeService) Transcribe(
	ctx context.Context,
	fileName string,
	data []byte,
	recordType string,
) (*models.Transcription, error) {

	if err := ValidateUpload(fileName, int64(len(data))); err != nil {
		return nil, err
	}

	if !models.ValidType(recordType) {
		recordType = models.TypeRecording
	}

	audioBase64 := base64.StdEncoding.EncodeToString(data)

	text, err := retry.Do(ctx, s.policy, func() (string, error) {
		txt, _, err := s.speech.Recognize(ctx, audioBase64)
		return txt, err
	})
	if err != nil {
		return nil, classifyRecognizeError(err)
	}

	t := &models.Transcription{
		ID:        uuid.NewString(),
		Text:      text,
		WordCount: models.CountWords(text),
		FileName:  fileName,
		FileSize:  int64(len(data)),
		Type:      recordType,
		CreatedAt: time.Now().UTC(),
	}

	saved, err := s.repo.Insert(ctx, t)
	if err != nil {
		s.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "transcription not persisted, returning unsaved record",
			Error:   err,
			Fields:  map[string]any{"fileName": fileName},
		})
		return t, nil
	}

	if s.events != nil {
		s.events.Publish(ports.RecordEvent{
			Kind:            "transcription.created",
			TranscriptionID: saved.ID,
			FileName:        saved.FileName,
			WordCount:       saved.WordCount,
		})
	}

	return saved, nil
}

func classifyRecognizeError(err error) error {
	switch {
	case errors.Is(err, ports.ErrAuth):
		return apperr.Auth("Speech recognition service rejected the credentials").WithCause(err)
	case errors.Is(err, ports.ErrUnavailable):
		return apperr.ServiceUnavailable("Speech recognition service is temporarily unavailable. Please try again in a moment.").WithCause(err)
	default:
		return apperr.TranscriptionFailed("Transcription failed: " + err.Error()).WithCause(err)
	}
}
