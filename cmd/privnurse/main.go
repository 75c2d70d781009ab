package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/privnurse/privnurse/internal/ai"
	"github.com/privnurse/privnurse/internal/config"
	"github.com/privnurse/privnurse/internal/filestore"
	"github.com/privnurse/privnurse/internal/handler"
	"github.com/privnurse/privnurse/internal/job"
	"github.com/privnurse/privnurse/internal/middleware"
	"github.com/privnurse/privnurse/internal/pkg/logutil"
	"github.com/privnurse/privnurse/internal/repo"
	"github.com/privnurse/privnurse/internal/schedule"
	"github.com/privnurse/privnurse/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "privnurse",
		Short: "privnurse backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run privnurse server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logutil.Init(cfg.Log.Level, cfg.Log.Console)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			db, err := repo.Open(cfg.DB)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := repo.ApplyMigrations(db); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, db)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, db *sqlx.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("db_host", cfg.DB.Host),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("file_store", cfg.FileStore.Type),
	)

	userRepo := repo.NewUserRepo(db)
	patientRepo := repo.NewPatientRepo(db)
	historyRepo := repo.NewPatientHistoryRepo(db)
	consultationRepo := repo.NewConsultationRepo(db)
	dischargeRepo := repo.NewDischargeRepo(db)
	nursingRepo := repo.NewNursingRepo(db)
	labRepo := repo.NewLabRepo(db)
	aiModelRepo := repo.NewAIModelRepo(db)
	inferenceRepo := repo.NewInferenceRepo(db)
	auditRepo := repo.NewAuditRepo(db)

	providerArgs := cfg.AI.Data
	if providerArgs == nil {
		providerArgs = map[string]interface{}{
			"base_url":        cfg.Ollama.BaseURL,
			"timeout_seconds": cfg.Ollama.TimeoutSeconds,
		}
	}
	aiProvider, err := ai.NewProvider(cfg.AI.Provider, providerArgs)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	auditService := service.NewAuditService(auditRepo)
	authService := service.NewAuthService(userRepo, auditService, cfg.JWTSecret, time.Hour*time.Duration(cfg.JWTTTLHours))
	patientService := service.NewPatientService(patientRepo, historyRepo, auditService)
	consultationService := service.NewConsultationService(consultationRepo, patientRepo)
	dischargeService := service.NewDischargeService(dischargeRepo, patientRepo, auditService)
	nursingService := service.NewNursingService(nursingRepo, patientRepo)
	labService := service.NewLabService(labRepo, patientRepo)
	modelService := service.NewModelService(aiModelRepo)
	generationService := service.NewGenerationService(aiProvider, modelService, cfg.AI.MaxInputChars)
	confirmationService := service.NewConfirmationService(inferenceRepo, consultationRepo, modelService, auditService)
	transcribeService := service.NewTranscribeService(patientRepo, store, cfg.Audio)

	deps := handler.RouterDeps{
		Auth:            handler.NewAuthHandler(authService),
		Patients:        handler.NewPatientHandler(patientService),
		Consultations:   handler.NewConsultationHandler(consultationService),
		Discharges:      handler.NewDischargeHandler(dischargeService),
		Nursing:         handler.NewNursingHandler(nursingService),
		Labs:            handler.NewLabHandler(labService),
		AI:              handler.NewAIHandler(generationService, modelService, confirmationService),
		Audio:           handler.NewAudioHandler(transcribeService),
		JWTSecret:       []byte(cfg.JWTSecret),
		AudioRateWindow: time.Duration(cfg.Audio.RateWindowSeconds) * time.Second,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.CORS(cfg.CORSOrigins),
		gzip.Gzip(gzip.DefaultCompression),
	)
	handler.RegisterRoutes(engine.Group("/api/v1"), deps)

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewAuditCleanupJob(auditRepo, time.Duration(cfg.Jobs.AuditKeepDays)*24*time.Hour), "30 3 * * *"); err != nil {
		return err
	}
	if err := scheduler.AddJob(job.NewInferenceCleanupJob(inferenceRepo, time.Duration(cfg.Jobs.InferenceKeepDays)*24*time.Hour), "0 4 * * *"); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	scheduler.Start(ctx)
	defer scheduler.Stop()

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: engine}
	go func() {
		logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
