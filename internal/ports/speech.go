package ports

import "context"

// SpeechService распознаёт речь: на входе base64 аудио, на выходе текст
// плюс сырой ответ сервиса (для логов).
type SpeechService interface {
	Recognize(ctx context.Context, audioBase64 string) (text string, raw []byte, err error)
}
