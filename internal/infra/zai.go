package infra

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/Vovarama1992/voicescribe/internal/ports"
)

const defaultZAIBaseURL = "https://api.z.ai/api/paas/v4"

type ZAIConfig struct {
	APIKey  string `json:"apiKey"`
	BaseURL string `json:"baseUrl"`
}

// LoadZAIConfig берёт ключ из ZAI_API_KEY; если пусто — читает json-файл
// .z-ai-config в корне проекта (или по пути из ZAI_CONFIG_FILE).
func LoadZAIConfig() (ZAIConfig, error) {
	cfg := ZAIConfig{
		APIKey:  strings.TrimSpace(os.Getenv("ZAI_API_KEY")),
		BaseURL: strings.TrimSpace(os.Getenv("ZAI_BASE_URL")),
	}

	if cfg.APIKey == "" {
		path := os.Getenv("ZAI_CONFIG_FILE")
		if path == "" {
			wd, _ := os.Getwd()
			path = filepath.Join(wd, ".z-ai-config")
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("zai config: no ZAI_API_KEY and no config file at %s: %w", path, err)
		}

		var fileCfg ZAIConfig
		if err := json.Unmarshal(raw, &fileCfg); err != nil {
			return cfg, fmt.Errorf("zai config: parse %s: %w", path, err)
		}

		cfg.APIKey = strings.TrimSpace(fileCfg.APIKey)
		if cfg.BaseURL == "" {
			cfg.BaseURL = strings.TrimSpace(fileCfg.BaseURL)
		}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultZAIBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.APIKey == "" {
		return cfg, ports.ErrAuth
	}
	return cfg, nil
}

// IsTransportError — сеть недоступна / connection refused / DNS.
// Такие ошибки ретраятся и после исчерпания попыток дают 503.
func IsTransportError(err error) bool {
	if err == nil {
		return false
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}
