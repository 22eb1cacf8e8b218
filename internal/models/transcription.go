package models

import (
	"strings"
	"time"
)

const (
	TypeRecording = "recording"
	TypeUpload    = "upload"
)

type Transcription struct {
	ID        string    `db:"id" json:"id"`
	Text      string    `db:"transcription" json:"transcription"`
	WordCount int       `db:"word_count" json:"wordCount"`
	FileName  string    `db:"file_name" json:"fileName"`
	FileSize  int64     `db:"file_size" json:"fileSize"`
	Type      string    `db:"type" json:"type"` // "recording" или "upload"
	CreatedAt time.Time `db:"created_at" json:"timestamp"`
}

// CountWords считает слова по пробелам; пустой текст → 0.
func CountWords(text string) int {
	return len(strings.Fields(strings.TrimSpace(text)))
}

func ValidType(t string) bool {
	return t == TypeRecording || t == TypeUpload
}
