package ports

// RecordEvent уходит в ws-хаб, чтобы фронт держал свой кэш истории в актуальном виде.
type RecordEvent struct {
	Kind            string `json:"kind"` // "transcription.created" | "transcription.deleted"
	TranscriptionID string `json:"transcriptionId"`
	FileName        string `json:"fileName,omitempty"`
	WordCount       int    `json:"wordCount,omitempty"`
}

type EventSink interface {
	Publish(ev RecordEvent)
}
