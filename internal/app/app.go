package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/khrees2412/talentmatch/internal/assessment"
	"github.com/khrees2412/talentmatch/internal/config"
	"github.com/khrees2412/talentmatch/internal/database"
	"github.com/khrees2412/talentmatch/internal/logger"
	"github.com/khrees2412/talentmatch/internal/matcher"
	"github.com/khrees2412/talentmatch/internal/metrics"
	"github.com/khrees2412/talentmatch/pkg/models"
	"go.uber.org/zap"
)

// Store is the persistence the app needs. database.Repository implements it.
type Store interface {
	GetProfile(id int) (*models.Profile, error)
	GetPosting(id int) (*models.Posting, error)
	GetAllProfiles() ([]*models.Profile, error)
	GetAllPostings() ([]*models.Posting, error)
	SaveAssessmentResult(r *models.AssessmentResult) error
	GetAssessmentResults(profileID int) ([]*models.AssessmentResult, error)
}

// App is the dependency container for the CLI and the HTTP server
type App struct {
	DB     *sql.DB
	Store  Store
	Config *config.Config
	Logger *zap.Logger
	Ranker *matcher.Ranker
	Grader *assessment.Grader

	now func() time.Time
}

// Options come from persistent CLI flags and override the config file.
type Options struct {
	ConfigPath string
	JSONLogs   bool
	Debug      bool
}

// NewApp loads configuration, opens the database and builds the ranker and grader.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	if err := config.Initialize(opts.ConfigPath); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := config.AppConfig

	log, err := logger.New(cfg.Log.JSON || opts.JSONLogs, cfg.Log.Debug || opts.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Initialize(cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a, err := New(cfg, database.Repository{}, log)
	if err != nil {
		database.Close()
		return nil, err
	}
	a.DB = database.DB

	log.Debug("app initialized",
		zap.String("config", config.GetConfigPath()),
		zap.String("database", cfg.Database.Path),
	)
	return a, nil
}

// New wires an App around an already opened store.
func New(cfg *config.Config, store Store, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	ranker, err := matcher.NewRanker(cfg.Matching,
		matcher.WithLogger(log.Named("matcher")),
		matcher.WithObserver(metrics.RankingObserver{}),
	)
	if err != nil {
		return nil, err
	}

	bank := assessment.DefaultBank()
	if cfg.Assessment.BankPath != "" {
		if bank, err = assessment.LoadBankFile(cfg.Assessment.BankPath); err != nil {
			return nil, err
		}
	}

	grader, err := assessment.NewGrader(bank, cfg.Assessment, assessment.WithGraderLogger(log.Named("assessment")))
	if err != nil {
		return nil, err
	}

	return &App{
		Store:  store,
		Config: cfg,
		Logger: log,
		Ranker: ranker,
		Grader: grader,
		now:    time.Now,
	}, nil
}

// Close closes all resources
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
