package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/pressly/goose/v3"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/config"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/handler"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/middleware"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/notification"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/repository"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/repository/memory"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/router"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/scheduler"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/service"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/service/ports"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/storage"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/logger"
)

const migrationsDir = "migrations"

type repos struct {
	events        ports.EventRepo
	saved         ports.SavedEventRepo
	users         ports.UserRepo
	notifications ports.NotificationRepo
	tokens        ports.PushTokenRepo
}

type App struct {
	cfg        *config.Config
	log        logger.Logger
	db         *dbpg.DB
	httpServer *http.Server
	scheduler  *scheduler.Scheduler
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	log, err := logger.InitLogger(
		cfg.Logger.LogEngine(),
		"CampusHub",
		cfg.Gin.Mode,
		logger.WithLevel(cfg.Logger.LogLevel()),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app.log = log

	r, err := app.initRepos()
	if err != nil {
		return nil, fmt.Errorf("init repositories: %w", err)
	}

	if err = app.initServices(r); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	return app, nil
}

// initRepos picks the storage engine once at startup. Everything above the
// ports only ever sees the interfaces.
func (a *App) initRepos() (*repos, error) {
	if a.cfg.Database.Engine == "memory" {
		a.log.Warn("using in-memory repositories, data will not survive a restart")
		store := memory.NewStore()
		return &repos{
			events:        store.Events(),
			saved:         store.SavedEvents(),
			users:         store.Users(),
			notifications: store.Notifications(),
			tokens:        store.PushTokens(),
		}, nil
	}

	if err := a.runMigrations(); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	if err := a.initDB(); err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}

	return &repos{
		events:        repository.NewEventRepo(a.db),
		saved:         repository.NewSavedEventRepo(a.db),
		users:         repository.NewUserRepo(a.db),
		notifications: repository.NewNotificationRepo(a.db),
		tokens:        repository.NewPushTokenRepo(a.db),
	}, nil
}

func (a *App) initDB() error {
	db, err := dbpg.New(
		a.cfg.Postgres.DSN(),
		nil,
		&dbpg.Options{
			MaxOpenConns: a.cfg.Postgres.MaxOpenConns,
			MaxIdleConns: a.cfg.Postgres.MaxIdleConns,
		},
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.Master.PingContext(context.Background()); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	a.db = db
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connected",
		logger.String("host", a.cfg.Postgres.Host),
		logger.Int("port", a.cfg.Postgres.Port),
		logger.String("database", a.cfg.Postgres.Database),
	)

	return nil
}

func (a *App) initObjectStore() (ports.ObjectStore, error) {
	if !a.cfg.Storage.Configured() {
		a.log.Warn("object storage is not configured, using in-memory store")
		return storage.NewMemory(a.cfg.Storage.Bucket), nil
	}

	store, err := storage.NewMinio(a.cfg.Storage, a.log)
	if err != nil {
		return nil, fmt.Errorf("init object store: %w", err)
	}

	return store, nil
}

func (a *App) initServices(r *repos) error {
	store, err := a.initObjectStore()
	if err != nil {
		return err
	}

	notifier, err := notification.NewTelegramNotifier(a.cfg.Telegram.BotToken, r.tokens, a.log)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}

	windows := service.Windows{
		DayMin:  a.cfg.Reminder.DayWindowMin,
		DayMax:  a.cfg.Reminder.DayWindowMax,
		HourMax: a.cfg.Reminder.HourWindowMax,
	}

	retentionService := service.NewRetentionService(r.events, store, a.cfg.Retention.Horizon, a.log)
	reminderService := service.NewReminderService(r.saved, r.notifications, notifier, windows, a.log)
	reconcilerService := service.NewReconcilerService(r.events, store, a.log)
	eventService := service.NewEventService(r.events, store, retentionService, notifier, a.log)
	savedService := service.NewSavedEventService(r.saved, r.events, a.log)
	userService := service.NewUserService(r.users)
	notificationService := service.NewNotificationService(r.notifications, r.tokens)

	a.scheduler = scheduler.New(
		reminderService,
		retentionService,
		a.cfg.Scheduler.Interval,
		a.log,
	)

	h := handler.NewHandler(
		eventService,
		savedService,
		userService,
		notificationService,
		reminderService,
		reconcilerService,
		store,
	)
	rt := router.InitRouter(
		a.cfg.Gin.Mode,
		h,
		middleware.Auth(a.cfg.Auth.JWTSecret),
		middleware.RequireAdmin(userService),
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.Recovery(a.log),
	)

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      rt,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.scheduler.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.LogAttrs(ctx, logger.InfoLevel, "HTTP server starting",
			logger.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "HTTP server stopped")

	if a.db != nil {
		if err := a.db.Master.Close(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connection closed")
	}

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "app stopped")

	return nil
}

func (a *App) runMigrations() error {
	db, err := sql.Open("postgres", a.cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	a.log.Info("migrations applied successfully")
	return nil
}
