package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"careerpilot-backend/internal/ats"
	"careerpilot-backend/internal/chat"
	"careerpilot-backend/internal/history"
	"careerpilot-backend/internal/interview"
	"careerpilot-backend/internal/llm"
	"careerpilot-backend/internal/llm/gemini"
	"careerpilot-backend/internal/llm/openai"
	"careerpilot-backend/internal/market"
	"careerpilot-backend/internal/match"
	"careerpilot-backend/internal/services/health"
	"careerpilot-backend/internal/shared/config"
	"careerpilot-backend/internal/shared/server"
	"careerpilot-backend/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	HistoryRepo      history.Repo
	HistoryService   *history.Service
	ChatService      *chat.Service
	MarketService    *market.Service
	ATSService       *ats.Service
	InterviewService *interview.Service
	HealthService    *health.Service

	closers []io.Closer
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB

	if sqlDB != nil {
		app.HistoryRepo = &history.PGRepo{DB: sqlDB}
	} else {
		app.HistoryRepo = history.NewMemoryRepo()
	}
	app.HistoryService = history.NewService(app.HistoryRepo)

	// One client per feature area: each has its own API key and quota.
	chatClient, err := app.buildLLMClient(ctx, cfg, cfg.ChatAPIKey)
	if err != nil {
		return nil, fmt.Errorf("chat llm client: %w", err)
	}
	marketClient, err := app.buildLLMClient(ctx, cfg, cfg.MarketAPIKey)
	if err != nil {
		return nil, fmt.Errorf("market llm client: %w", err)
	}
	atsClient, err := app.buildLLMClient(ctx, cfg, cfg.ATSAPIKey)
	if err != nil {
		return nil, fmt.Errorf("ats llm client: %w", err)
	}
	interviewClient, err := app.buildLLMClient(ctx, cfg, cfg.InterviewAPIKey)
	if err != nil {
		return nil, fmt.Errorf("interview llm client: %w", err)
	}

	pipeline := match.NewPipeline(atsClient.completer, atsClient.embedder, cfg.LLMCallTimeout)

	app.ChatService = chat.NewService(chatClient.completer, cfg.LLMCallTimeout)
	app.MarketService = market.NewService(marketClient.completer, cfg.LLMCallTimeout)
	app.ATSService = ats.NewService(pipeline, atsClient.completer, cfg.LLMCallTimeout, app.HistoryService)
	app.InterviewService = interview.NewService(interviewClient.completer, cfg.LLMCallTimeout)
	app.HealthService = health.NewService(cfg.LLMModel)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		Health:           app.HealthService,
		ChatHandler:      chat.NewHandler(app.ChatService),
		MarketHandler:    market.NewHandler(app.MarketService),
		ATSHandler:       ats.NewHandler(app.ATSService),
		InterviewHandler: interview.NewHandler(app.InterviewService),
		HistoryHandler:   history.NewHandler(app.HistoryService),
	})

	return app, nil
}

// Close releases provider clients and the database pool.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type llmClient struct {
	completer llm.Completer
	embedder  llm.Embedder
}

// buildLLMClient returns the provider client for one feature area. A missing
// key yields placeholder capabilities so the server still boots and the
// other features keep working.
func (a *App) buildLLMClient(ctx context.Context, cfg config.Config, apiKey string) (llmClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		log.Printf("bootstrap: no api key for feature; llm calls will fail until configured")
		return llmClient{
			completer: llm.PlaceholderCompleter{},
			embedder:  llm.PlaceholderEmbedder{},
		}, nil
	}

	switch cfg.LLMProvider {
	case "openai":
		client, err := openai.NewClient(apiKey, cfg.LLMModel, cfg.EmbedModel, cfg.LLMCallTimeout)
		if err != nil {
			return llmClient{}, err
		}
		return llmClient{completer: client, embedder: client}, nil
	default:
		client, err := gemini.NewClient(ctx, apiKey, cfg.LLMModel, cfg.EmbedModel)
		if err != nil {
			return llmClient{}, err
		}
		a.closers = append(a.closers, client)
		return llmClient{completer: client, embedder: client}, nil
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; analysis history kept in memory")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; analysis history kept in memory: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; analysis history kept in memory: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
