package ports

import (
	"context"

	"github.com/Vovarama1992/voicescribe/internal/models"
)

type EnhancedPromptRepository interface {
	// Insert сохраняет промпт вместе с follow-up'ами одной транзакцией.
	Insert(ctx context.Context, p *models.EnhancedPrompt) (*models.EnhancedPrompt, error)
	GetByID(ctx context.Context, id string) (*models.EnhancedPrompt, error)
	ListByTranscription(ctx context.Context, transcriptionID string) ([]models.EnhancedPrompt, error)
	Delete(ctx context.Context, id string) (bool, error)
}
