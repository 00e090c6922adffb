package app

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"kbaudit/internal/config"
	"kbaudit/internal/kbclient"
	"kbaudit/internal/services"
	"kbaudit/internal/store"
	"kbaudit/internal/store/history"
	"kbaudit/internal/store/primary"
)

// App holds the initialized clients, stores and services shared by the CLI
// commands.
type App struct {
	Config *config.Config

	KBClient     *kbclient.Client
	HistoryStore store.RunHistoryStore
	JobClient    store.JobClient
	// DocumentStore is nil when database.kb.dsn is not configured; only the
	// approve and doctor commands need it.
	DocumentStore store.DocumentStore

	Reviewer        services.Reviewer // nil unless review is enabled
	AnalysisService *services.AnalysisService
	ReportService   *services.ReportService
	// ApprovalService is nil without a DocumentStore.
	ApprovalService *services.ApprovalService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	app.initKBClient()
	if err := app.initHistoryStore(); err != nil {
		return nil, err
	}
	if err := app.initDocumentStore(ctx); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	if err := app.initReviewer(); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	app.initJobClient()
	app.initServices()

	log.Debug("Application initialization complete.")
	return app, nil
}

// --- Private Helper Methods ---

func (a *App) initKBClient() {
	a.KBClient = kbclient.New(a.Config.Backend.BaseURL, a.Config.BackendTimeout())
}

func (a *App) initHistoryStore() error {
	hs, err := history.Open(a.Config.History.Path)
	if err != nil {
		return fmt.Errorf("init history store: %w", err)
	}
	a.HistoryStore = hs
	return nil
}

func (a *App) initDocumentStore(ctx context.Context) error {
	dsn := a.Config.Database.KB.DSN
	if dsn == "" {
		log.Debug("database.kb.dsn not configured, approve and doctor database checks are unavailable")
		return nil
	}
	ds, err := primary.NewDocumentStore(ctx, dsn)
	if err != nil {
		return fmt.Errorf("init KB document store: %w", err)
	}
	a.DocumentStore = ds
	return nil
}

func (a *App) initReviewer() error {
	cfg := a.Config
	if !cfg.Review.Enabled {
		return nil
	}
	if cfg.Review.OpenaiApiKey == "" {
		return fmt.Errorf("review is enabled but review.openai_api_key is not set")
	}
	client := openai.NewClient(cfg.Review.OpenaiApiKey)
	a.Reviewer = services.NewLLMReviewer(client, cfg.Review.Model)
	log.Infof("LLM review enabled (model: %s)", cfg.Review.Model)
	return nil
}

func (a *App) initJobClient() {
	// asynq connects lazily, so the client is always available; enqueueing
	// fails fast if Redis is down.
	a.JobClient = store.NewAsynqJobClient(asynq.RedisClientOpt{
		Addr:     a.Config.Redis.Address,
		Password: a.Config.Redis.Password,
		DB:       a.Config.Redis.DB,
	})
}

func (a *App) initServices() {
	cfg := a.Config
	a.AnalysisService = services.NewAnalysisService(a.KBClient, a.Reviewer, cfg.Delay())
	a.ReportService = services.NewReportService(cfg.Analysis.ReportPath, a.HistoryStore)
	if a.DocumentStore != nil {
		a.ApprovalService = services.NewApprovalService(a.DocumentStore, cfg.Approve.PerCompany)
	}
}

// Close releases all held resources.
func (a *App) Close() {
	if a.JobClient != nil {
		if err := a.JobClient.Close(); err != nil {
			log.Warnf("Error closing job client: %v", err)
		}
	}
	if a.DocumentStore != nil {
		a.DocumentStore.Close()
	}
	if a.HistoryStore != nil {
		if err := a.HistoryStore.Close(); err != nil {
			log.Warnf("Error closing history store: %v", err)
		}
	}
}

func (a *App) cleanupPartialInit() {
	a.Close()
}
