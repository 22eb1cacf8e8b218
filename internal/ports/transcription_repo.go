package ports

import (
	"context"

	"github.com/Vovarama1992/voicescribe/internal/models"
)

// TranscriptionUpdate — частичное обновление: nil-поле = не трогать.
type TranscriptionUpdate struct {
	Text      *string
	WordCount *int
	FileName  *string
	FileSize  *int64
	Type      *string
}

type TranscriptionStats struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"byType"`
	Recent int            `json:"recent"` // за последние 24 часа
}

type TranscriptionRepository interface {
	Insert(ctx context.Context, t *models.Transcription) (*models.Transcription, error)
	GetByID(ctx context.Context, id string) (*models.Transcription, error)
	List(ctx context.Context, limit int) ([]models.Transcription, error)
	Update(ctx context.Context, id string, upd TranscriptionUpdate) (*models.Transcription, error)
	Delete(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (*TranscriptionStats, error)
	Ping(ctx context.Context) error
}
