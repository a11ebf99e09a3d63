// Package server initializes and runs the billing portal server: it opens
// the database, applies migrations, wires the services, and starts the HTTP
// endpoint together with the recurring-invoice timer loop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/billgate/internal/logging"
	"github.com/dmitrijs2005/billgate/internal/server/auditlog"
	"github.com/dmitrijs2005/billgate/internal/server/config"
	"github.com/dmitrijs2005/billgate/internal/server/documents"
	"github.com/dmitrijs2005/billgate/internal/server/httpapi"
	"github.com/dmitrijs2005/billgate/internal/server/invoices"
	"github.com/dmitrijs2005/billgate/internal/server/models"
	"github.com/dmitrijs2005/billgate/internal/server/recurring"
	"github.com/dmitrijs2005/billgate/internal/server/repomanager"
	"github.com/dmitrijs2005/billgate/internal/server/sharelinks"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	links     *sharelinks.Service
	invoices  *invoices.Service
	documents *documents.Service
	scheduler *recurring.Scheduler
	log       *auditlog.Store
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	invService := invoices.NewService(rm.Invoices(db))
	linkService := sharelinks.NewService(rm.ShareLinks(db), rm.Snapshots(db))
	store := auditlog.NewStore(rm.GenerationLog(db))
	scheduler := recurring.NewScheduler(rm.RecurringTemplates(db), invService, store, logger)
	docService := documents.NewService(cfg)

	return &App{
		config:    cfg,
		logger:    logger,
		db:        db,
		links:     linkService,
		invoices:  invService,
		documents: docService,
		scheduler: scheduler,
		log:       store,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewHTTPServer(app.config, app.logger, app.links, app.invoices,
		app.documents, app.scheduler, app.log)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startSchedulerLoop runs one automatic generation pass per configured
// interval until the context is cancelled. Every pass is logged through the
// audit store, including empty ones.
func (app *App) startSchedulerLoop(ctx context.Context) {

	ticker := time.NewTicker(app.config.RecurringRunInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			app.logger.Info(ctx, "Stopping scheduler loop...")
			return
		case <-ticker.C:
			if _, err := app.scheduler.Run(ctx, models.RunModeAuto); err != nil {
				app.logger.Error(ctx, "scheduler run failed", "error", err)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startSchedulerLoop(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
