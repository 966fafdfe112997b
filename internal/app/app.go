package app

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/templui/proofstreak/internal/clock"
	"github.com/templui/proofstreak/internal/config"
	"github.com/templui/proofstreak/internal/db"
	"github.com/templui/proofstreak/internal/repository"
	"github.com/templui/proofstreak/internal/service"
	"github.com/templui/proofstreak/internal/storage"
	"github.com/templui/proofstreak/internal/verify"
	"github.com/templui/proofstreak/internal/worker"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	Clock               clock.Clock
	Storage             storage.Storage
	TokenService        *service.TokenService
	UserService         *service.UserService
	EmailService        *service.EmailService
	FileService         *service.FileService
	SubscriptionService *service.SubscriptionService
	GoalService         *service.GoalService
	SubmissionService   *service.SubmissionService
	DashboardService    *service.DashboardService
	ReminderWorker      *worker.ReminderWorker
}

func New(cfg *config.Config) (*App, error) {
	loc, err := clock.LoadLocation(cfg.AppTimezone)
	if err != nil {
		return nil, err
	}

	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = db.Close(database)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		_ = db.Close(database)
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return Wire(cfg, database, fileStorage, clock.New(loc), newVerifier(cfg)), nil
}

// Wire builds repositories, services and the worker around the given
// infrastructure.
func Wire(cfg *config.Config, database *sqlx.DB, fileStorage storage.Storage, clk clock.Clock, verifier verify.Verifier) *App {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	fileRepository := repository.NewFileRepository(database)
	subscriptionRepository := repository.NewSubscriptionRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	submissionRepository := repository.NewSubmissionRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	fileService := service.NewFileService(fileRepository, fileStorage, clk)
	subscriptionService := service.NewSubscriptionService(subscriptionRepository, clk)
	userService := service.NewUserService(userRepository, fileService, emailService, subscriptionService, clk)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry, clk)
	goalService := service.NewGoalService(
		goalRepository,
		submissionRepository,
		userRepository,
		fileService,
		subscriptionService,
		emailService,
		clk,
	)
	submissionService := service.NewSubmissionService(submissionRepository, goalRepository, fileService, verifier, clk)
	dashboardService := service.NewDashboardService(goalRepository, submissionRepository, clk)

	reminderWorker := worker.NewReminderWorker(
		goalRepository,
		submissionRepository,
		userRepository,
		emailService,
		goalService,
		clk,
		cfg.ReminderInterval,
	)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		Clock:               clk,
		Storage:             fileStorage,
		TokenService:        tokenService,
		UserService:         userService,
		EmailService:        emailService,
		FileService:         fileService,
		SubscriptionService: subscriptionService,
		GoalService:         goalService,
		SubmissionService:   submissionService,
		DashboardService:    dashboardService,
		ReminderWorker:      reminderWorker,
	}
}

// newVerifier builds the model fallback chain, or an auto-approver when
// verification is switched off.
func newVerifier(cfg *config.Config) verify.Verifier {
	if cfg.VerifyAutoApprove {
		slog.Warn("photo verification disabled, auto-approving proofs")
		return verify.AutoApprove()
	}

	verifiers := make([]verify.Verifier, 0, len(cfg.VerifyModels))
	for _, model := range cfg.VerifyModels {
		verifiers = append(verifiers, verify.NewOpenAIVerifier(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, model, cfg.VerifyTimeout))
	}
	slog.Info("photo verification enabled", "models", cfg.VerifyModels)
	return verify.NewChain(verifiers...)
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
