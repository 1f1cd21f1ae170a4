package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/healthsync/healthsync/internal/analyticsclient"
	"github.com/healthsync/healthsync/internal/api"
	"github.com/healthsync/healthsync/internal/api/handler"
	"github.com/healthsync/healthsync/internal/config"
	"github.com/healthsync/healthsync/internal/dashboard"
	"github.com/healthsync/healthsync/internal/langfuse"
	"github.com/healthsync/healthsync/internal/llm"
	"github.com/healthsync/healthsync/internal/logging"
	"github.com/healthsync/healthsync/internal/repository"
	"github.com/healthsync/healthsync/internal/seed"
	"github.com/healthsync/healthsync/internal/service"
	"github.com/healthsync/healthsync/internal/telemetry"
)

const (
	serviceName       = "healthsync"
	sessionTTL        = 2 * time.Hour
	sessionPruneEvery = 10 * time.Minute
	shutdownTimeout   = 15 * time.Second
)

func newServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, serviceName, logger)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	// Connect to database
	db, err := config.NewDatabase(cfg, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := config.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	logger.Info("database migration completed")

	if cfg.Seed {
		logger.Info("seeding database with sample data (SEED=true)")
		if err := seed.Run(ctx, db, logger); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	symptomRepo := repository.NewSymptomLogRepository(db)
	mealRepo := repository.NewMealLogRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	mealPlanRepo := repository.NewMealPlanRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo, logger)
	progressService := service.NewProgressService(progressRepo, userRepo)
	reportService := service.NewReportService(userRepo, progressRepo, mealRepo, symptomRepo)
	symptomService := service.NewSymptomService(symptomRepo, alertRepo, userRepo, logger)
	mealService := service.NewMealService(mealRepo, symptomRepo, userRepo)
	alertService := service.NewAlertService(alertRepo, progressRepo, symptomRepo, userRepo, logger)
	tipsService := service.NewTipsService(service.FileTips(cfg.TipsCatalogPath), logger)
	mealPlanService := service.NewMealPlanService(mealPlanRepo, userRepo, service.FileFoods(cfg.FoodCatalogPath), logger.Named("meal_plans"))

	model, err := llm.New(ctx, llm.Config{
		Provider:    cfg.LLMProvider,
		OpenAIKey:   cfg.OpenAIAPIKey,
		OpenAIModel: cfg.OpenAIConsultationModel,
		GeminiKey:   cfg.GeminiAPIKey,
		GeminiModel: cfg.GeminiModel,
	}, logger)
	if err != nil {
		logger.Warn("llm provider unavailable, using rule-based assistant", zap.Error(err))
		model = llm.NewRuleBased()
	}

	lf := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
		Async:       true,
	}, logger)
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lf.Close(cctx); err != nil {
			logger.Warn("langfuse flush failed", zap.Error(err))
		}
	}()

	prompt, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		PromptName:  cfg.ConsultationPromptName,
		PromptLabel: cfg.ConsultationPromptLabel,
		SavePath:    cfg.ConsultationPromptPath,
	}, logger)
	if err != nil {
		logger.Info("using built-in consultation prompt", zap.Error(err))
		prompt = langfuse.Prompt{Text: service.DefaultConsultationPrompt}
	}
	consultationService := service.NewConsultationService(model, reportService, lf, prompt.Text, logger)

	// Dashboard data comes from the remote analytics backend when one is
	// configured, otherwise from the in-process services.
	var source dashboard.Source = dashboard.NewLocalSource(progressService, reportService, mealService, symptomService)
	if cfg.AnalyticsBaseURL != "" {
		client, err := analyticsclient.New(analyticsclient.Config{
			BaseURL: cfg.AnalyticsBaseURL,
			Timeout: cfg.AnalyticsTimeout,
		}, logger)
		if err != nil {
			return fmt.Errorf("analytics client: %w", err)
		}
		source = client
		logger.Info("dashboard uses remote analytics", zap.String("base_url", cfg.AnalyticsBaseURL))
	}
	store := dashboard.NewStore(source, logger.Named("dashboard"))
	go pruneSessions(ctx, store, logger)

	// Setup router
	router := api.NewRouter(api.Handlers{
		User:         handler.NewUserHandler(userService),
		Progress:     handler.NewProgressHandler(progressService),
		Report:       handler.NewReportHandler(reportService),
		Symptom:      handler.NewSymptomHandler(symptomService),
		Meal:         handler.NewMealHandler(mealService),
		MealPlan:     handler.NewMealPlanHandler(mealPlanService),
		Alert:        handler.NewAlertHandler(alertService),
		Consultation: handler.NewConsultationHandler(tipsService, consultationService, logger),
		Dashboard:    handler.NewDashboardHandler(store, dashboard.NewFragments(source, logger), logger),
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}

func pruneSessions(ctx context.Context, store *dashboard.Store, logger *zap.Logger) {
	ticker := time.NewTicker(sessionPruneEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := store.Prune(now.Add(-sessionTTL)); n > 0 {
				logger.Info("pruned dashboard sessions", zap.Int("count", n))
			}
		}
	}
}
