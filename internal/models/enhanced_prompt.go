package models

import "time"

type EnhancedPrompt struct {
	ID              string    `db:"id" json:"id"`
	TranscriptionID string    `db:"transcription_id" json:"transcriptionId"`
	EnhancedText    string    `db:"enhanced_prompt" json:"enhancedPrompt"`
	Summary         string    `db:"summary" json:"summary"`
	OriginalText    string    `db:"original_text" json:"originalText"`
	TargetAgent     string    `db:"target_agent" json:"targetAgent"`
	PromptStyle     string    `db:"prompt_style" json:"promptStyle"`
	FollowUps       []string  `db:"-" json:"suggestedFollowUps"` // дочерняя таблица, порядок = порядок показа
	CreatedAt       time.Time `db:"created_at" json:"timestamp"`
}
