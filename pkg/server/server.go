package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/risk-flags/pkg/handlers/flags"
	riskflagsmiddleware "github.com/de-tools/risk-flags/pkg/server/middleware"
	"github.com/de-tools/risk-flags/pkg/services/rules"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Engine rules.Engine
	Logger zerolog.Logger
}

type UploadLimits struct {
	MaxBytes      int64
	RatePerSecond float64
	Burst         int
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Upload          UploadLimits
	Dependencies    Dependencies
}

// ConfigureRouter wires the upload pages and the JSON API.
func ConfigureRouter(config Config) *chi.Mux {
	logger := config.Dependencies.Logger
	flagsHandler := handlers.NewHandler(config.Dependencies.Engine, config.Upload.MaxBytes)
	uploadLimit := riskflagsmiddleware.RateLimit(config.Upload.RatePerSecond, config.Upload.Burst)

	router := chi.NewRouter()

	router.Use(riskflagsmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/", flagsHandler.Index)
	router.With(uploadLimit).Post("/submit", flagsHandler.Submit)
	router.Get("/result", flagsHandler.Result)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/rules", flagsHandler.ListRules)
		r.With(uploadLimit).Post("/evaluate", flagsHandler.Evaluate)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: shutdownTimeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start serves until the listener fails or the process receives SIGINT/SIGTERM.
func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
