package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Vovarama1992/voicescribe/internal/ports"
)

type ZAISpeechService struct {
	cfg    ZAIConfig
	client *http.Client
}

func NewZAISpeechService(cfg ZAIConfig) ports.SpeechService {
	return &ZAISpeechService{
		cfg: cfg,
		// столько же, сколько фронт готов ждать транскрипцию
		client: &http.Client{Timeout: 90 * time.Second},
	}
}

type asrRequest struct {
	FileBase64 string `json:"file_base64"`
}

// asrResponse покрывает все формы ответа, которые отдаёт сервис.
// Поле с текстом выбирается строго по порядку объявления.
type asrResponse struct {
	Text          string `json:"text"`
	Result        string `json:"result"`
	Transcript    string `json:"transcript"`
	Transcription string `json:"transcription"`
	Error         struct {
		Message string `json:"message"`
	} `json:"error"`
}

// pickText — первый непустой вариант, иначе пустая строка.
func (r *asrResponse) pickText() string {
	for _, candidate := range []string{r.Text, r.Result, r.Transcript, r.Transcription} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func (s *ZAISpeechService) Recognize(ctx context.Context, audioBase64 string) (string, []byte, error) {
	if s.cfg.APIKey == "" {
		return "", nil, ports.ErrAuth
	}

	body, err := json.Marshal(asrRequest{FileBase64: audioBase64})
	if err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.cfg.BaseURL+"/audio/asr", bytes.NewReader(body))
	if err != nil {
		return "", nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		if IsTransportError(err) {
			return "", nil, fmt.Errorf("%w: %v", ports.ErrUnavailable, err)
		}
		return "", nil, fmt.Errorf("zai asr request: %w", err)
	}
	defer resp.Body.Close()

	rawResp, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", rawResp, ports.ErrAuth
	}
	if resp.StatusCode != http.StatusOK {
		return "", rawResp, fmt.Errorf("zai asr http %d", resp.StatusCode)
	}

	var parsed asrResponse
	_ = json.Unmarshal(rawResp, &parsed)

	if parsed.Error.Message != "" {
		return "", rawResp, fmt.Errorf("zai asr: %s", parsed.Error.Message)
	}

	return parsed.pickText(), rawResp, nil
}
