package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voicescribe/internal/delivery"
	ws "github.com/Vovarama1992/voicescribe/internal/delivery/ws"
	"github.com/Vovarama1992/voicescribe/internal/domain"
	"github.com/Vovarama1992/voicescribe/internal/infra"
	"github.com/Vovarama1992/voicescribe/internal/retry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// ENV (.env не затирает уже выставленное окружение)
	_ = godotenv.Load()

	// LOGGER
	zcore, _ := zap.NewProduction()
	zl := logger.NewZapLogger(zcore.Sugar())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		panic("DATABASE_URL is not set")
	}

	// ZAI: без ключа стартуем, но каждый AI-запрос будет отдавать 401
	zaiCfg, err := infra.LoadZAIConfig()
	if err != nil {
		zl.Log(logger.LogEntry{
			Level:   "warn",
			Message: "zai credentials not configured, AI endpoints will fail",
			Error:   err,
		})
	}

	// POSTGRES
	ctx := context.Background()

	pool, err := infra.NewPgxPool(ctx, dsn)
	if err != nil {
		panic("cannot connect pgxpool: " + err.Error())
	}
	defer pool.Close()

	// WS HUB
	hub := ws.NewHub()

	// SERVICES
	transcriptionRepo := infra.NewPostgresTranscriptionRepo(pool)
	promptRepo := infra.NewPostgresPromptRepo(pool)

	speech := infra.NewZAISpeechService(zaiCfg)
	chat := infra.NewZAIChatService(zaiCfg)

	transcribeService := domain.NewTranscribeService(
		speech,
		transcriptionRepo,
		retry.Policy{MaxAttempts: 2, Delay: time.Second},
		hub,
		zl,
	)
	enhanceService := domain.NewEnhanceService(chat, zl)

	// HANDLERS
	hTranscribe := delivery.NewTranscribeHandler(transcribeService, zl)
	hEnhance := delivery.NewEnhanceHandler(enhanceService, zl)
	hTranscriptions := delivery.NewTranscriptionHandler(transcriptionRepo, hub, zl)
	hPrompts := delivery.NewPromptHandler(promptRepo, zl)

	// ROUTER
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(r, hTranscribe, hEnhance, hTranscriptions, hPrompts)

	r.Get("/ws", ws.WSHandler(hub))

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields:  map[string]any{"port": port},
	})

	if err := http.ListenAndServe(":"+port, r); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
