package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/profile-print/internal/bootstrap"
	"github.com/janisto/profile-print/internal/config"
	"github.com/janisto/profile-print/internal/http/health"
	"github.com/janisto/profile-print/internal/http/v1/routes"
	"github.com/janisto/profile-print/internal/http/web"
	applog "github.com/janisto/profile-print/internal/platform/logging"
	appmiddleware "github.com/janisto/profile-print/internal/platform/middleware"
	"github.com/janisto/profile-print/internal/platform/respond"
	"github.com/janisto/profile-print/internal/service/document"
	"github.com/janisto/profile-print/internal/service/draft"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const apiPrefix = "/v1"

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}
	if err := run(); err != nil {
		applog.LogError(context.Background(), "server failed", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			applog.LogError(ctx, "draft store close error", err)
		}
	}()

	exporter, closeExporter := bootstrap.NewExporter(ctx, cfg)
	defer func() { _ = closeExporter() }()

	docs := document.NewService(store, exporter, bootstrap.DocumentOptions(cfg)...)

	respond.Install()
	router := newRouter(cfg, store, docs)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		// PDF rendering through a headless browser can take several seconds.
		WriteTimeout:   45 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening",
			zap.String("addr", srv.Addr),
			zap.String("draftStore", cfg.DraftStore),
			zap.String("exporter", cfg.Exporter),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		return err
	case <-stop:
		applog.LogInfo(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(ctx, "server exited")
	return nil
}

// newRouter assembles the middleware stack, the web pages, the health check and
// the versioned JSON API.
func newRouter(cfg *config.Config, store draft.Store, docs *document.Service) chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security(apiPrefix+"/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		// Without a trusted proxy, clients can spoof their IP address.
		chimiddleware.RealIP,
		// RequestSize limits request body size to prevent memory exhaustion from large payloads.
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(Version, cfg.DraftStore, cfg.Exporter, store))
	web.New(store, docs).Register(router)

	router.Route(apiPrefix, func(r chi.Router) {
		humaCfg := huma.DefaultConfig("Profile Print API", Version)
		humaCfg.DocsPath = "/api-docs"
		humaCfg.Servers = []*huma.Server{{URL: apiPrefix}}
		// Allow JSON fallback for wildcard Accept headers (e.g., */*) since Huma's
		// negotiation uses exact matching and doesn't interpret wildcards per
		// RFC 9110 section 12.5.1.
		api := humachi.New(r, humaCfg)
		addCBORContentTypes(api)
		routes.Register(api, store, docs)
	})

	return router
}

// addCBORContentTypes advertises CBOR next to JSON for every operation in the OpenAPI document.
func addCBORContentTypes(api huma.API) {
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)
}
