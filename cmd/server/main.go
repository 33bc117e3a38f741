package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/patisserie-app/admin/internal/config"
	"github.com/patisserie-app/admin/internal/engine"
	"github.com/patisserie-app/admin/internal/schema"
	"github.com/patisserie-app/admin/internal/seed"
	"github.com/patisserie-app/admin/internal/server/handlers"
	"github.com/patisserie-app/admin/internal/server/router"
	"github.com/patisserie-app/admin/internal/store"
	"github.com/patisserie-app/admin/internal/store/firestore"
	"github.com/patisserie-app/admin/internal/store/memory"
	"github.com/patisserie-app/admin/internal/store/mongodb"
	"github.com/patisserie-app/admin/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	// The store adapter is built once here and handed to every consumer;
	// nothing else in the application holds backend state.
	documentStore, closeStore, err := newStore(cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init document store", zap.Error(err))
	}
	defer closeStore()

	registry := schema.NewRegistry()
	views := engine.MountAll(registry, documentStore, baseLogger.Named("engine"))
	generator := seed.New(documentStore, baseLogger.Named("seed"))

	crudHandler := handlers.NewCRUDHandler(views, baseLogger.Named("handlers.crud"))
	testDataHandler := handlers.NewTestDataHandler(generator, baseLogger.Named("handlers.testdata"))
	appHandler := handlers.NewAppHandler(baseLogger.Named("handlers.app"))
	ginEngine := router.New(crudHandler, testDataHandler, appHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      ginEngine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("store_backend", cfg.Store.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newStore builds the configured document store adapter and a close func.
func newStore(cfg *config.Config, baseLogger *zap.Logger) (store.DocumentStore, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendMongoDB:
		repo, err := mongodb.New(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, nil, err
		}
		closeStore := func() {
			if err := repo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}
		return repo, closeStore, nil
	case config.BackendFirestore:
		return firestore.New(cfg.Firestore), func() {}, nil
	default:
		baseLogger.Warn("using in-memory store, data will not survive a restart")
		return memory.New(), func() {}, nil
	}
}
