package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/gutbuster/internal/config"
	"github.com/riskibarqy/gutbuster/internal/domain/rating"
	"github.com/riskibarqy/gutbuster/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/gutbuster/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/gutbuster/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/gutbuster/internal/platform/id"
	"github.com/riskibarqy/gutbuster/internal/platform/logging"
	"github.com/riskibarqy/gutbuster/internal/usecase"
)

const (
	shortIDLength = 8
	dbPingTimeout = 5 * time.Second
)

// App owns the HTTP server, the background scheduler and the storage handle.
type App struct {
	Server    *http.Server
	scheduler *Scheduler
	closeDB   func() error
	logger    *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	store, closeDB, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	userSvc := usecase.NewUserService(store, logger.Named("users"))
	roomSvc := usecase.NewRoomService(store, cfg.CacheTTL, logger.Named("rooms"))
	eventSvc := usecase.NewEventService(
		store,
		usecase.NewFormatResolver(seed),
		rating.DefaultGlicko(),
		idgen.NewNanoGenerator(shortIDLength),
		logger.Named("events"),
	)
	eventSvc.SetRetryLimits(cfg.FormatRetryWorkers, cfg.FormatRetryBatch)
	ratingSvc := usecase.NewRatingService(store, logger.Named("ratings"))
	strikeSvc := usecase.NewStrikeService(store, logger.Named("strikes"))

	scheduler, err := NewScheduler(eventSvc, cfg.FormatRetryInterval, logger.Named("scheduler"))
	if err != nil {
		if closeDB != nil {
			_ = closeDB()
		}
		return nil, err
	}

	handler := httpapi.NewHandler(userSvc, roomSvc, eventSvc, ratingSvc, strikeSvc, logger.Named("http"))
	router := httpapi.NewRouter(handler, userSvc, logger.Named("http"), cfg.CORSAllowedOrigins, cfg.AdminToken)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		scheduler: scheduler,
		closeDB:   closeDB,
		logger:    logger,
	}, nil
}

// Start begins background jobs. The HTTP server is started by the caller.
func (a *App) Start() {
	a.scheduler.Start()
}

// Shutdown stops the server first so in-flight requests finish before the
// scheduler and the database handle go away.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if err := a.scheduler.Shutdown(); err != nil {
		errs = append(errs, fmt.Errorf("shutdown scheduler: %w", err))
	}
	if a.closeDB != nil {
		if err := a.closeDB(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

func openStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (usecase.Store, func() error, error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		return memory.NewStore(), nil, nil
	}

	db, err := postgres.Open(ctx, postgres.OpenOptions{
		DSN:                         cfg.DBURL,
		DisablePreparedBinaryResult: cfg.DBDisablePreparedBinary,
		MaxOpenConns:                cfg.DBMaxOpenConns,
		MaxIdleConns:                cfg.DBMaxIdleConns,
		ConnMaxLifetime:             cfg.DBConnMaxLifetime,
		PingTimeout:                 dbPingTimeout,
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info("database connected",
		"db_name", postgres.DatabaseName(cfg.DBURL),
		"max_open_conns", cfg.DBMaxOpenConns,
		"max_idle_conns", cfg.DBMaxIdleConns,
	)
	return postgres.NewStore(db, cfg.TxTimeout), db.Close, nil
}
