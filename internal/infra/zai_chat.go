package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Vovarama1992/voicescribe/internal/ports"
)

type ZAIChatService struct {
	cfg    ZAIConfig
	model  string
	client *http.Client
}

func NewZAIChatService(cfg ZAIConfig) ports.ChatService {
	model := "glm-4.5"
	return &ZAIChatService{
		cfg:    cfg,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// sanitize: убираем битый UTF-8 перед отправкой
func sanitize(s string) string {
	return strings.ToValidUTF8(s, "")
}

type chatRequest struct {
	Model       string              `json:"model"`
	Messages    []ports.ChatMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message ports.ChatMessage `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *ZAIChatService) Complete(ctx context.Context, messages []ports.ChatMessage, temperature float64) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ports.ErrAuth
	}

	for i := range messages {
		messages[i].Content = sanitize(messages[i].Content)
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		if IsTransportError(err) {
			return "", fmt.Errorf("%w: %v", ports.ErrUnavailable, err)
		}
		return "", fmt.Errorf("zai chat request: %w", err)
	}
	defer resp.Body.Close()

	rawResp, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ports.ErrAuth
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("zai chat http %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.Unmarshal(rawResp, &out); err != nil {
		return "", fmt.Errorf("zai chat: bad response json: %w", err)
	}

	if out.Error.Message != "" {
		return "", fmt.Errorf("zai chat: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("zai chat: empty choices")
	}

	return out.Choices[0].Message.Content, nil
}
