// Package bootstrap builds the draft store and exporter selected by configuration.
// The server and the CLI share it so both read and write the same slot.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/janisto/profile-print/internal/config"
	"github.com/janisto/profile-print/internal/platform/firebase"
	applog "github.com/janisto/profile-print/internal/platform/logging"
	"github.com/janisto/profile-print/internal/service/document"
	"github.com/janisto/profile-print/internal/service/draft"
)

// CloseFunc releases resources held by a backend.
type CloseFunc func() error

func noopClose() error { return nil }

// OpenStore opens the draft store named by cfg.DraftStore.
func OpenStore(ctx context.Context, cfg *config.Config) (draft.Store, CloseFunc, error) {
	switch cfg.DraftStore {
	case config.StoreMemory:
		return draft.NewMemoryStore(), noopClose, nil
	case config.StoreFile:
		return draft.NewFileStore(cfg.DraftDir), noopClose, nil
	case config.StoreRedis:
		store, err := draft.NewRedisStore(ctx, draft.RedisConfig{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.StoreFirestore:
		applog.SetProjectID(cfg.FirebaseProjectID)
		clients, err := firebase.InitializeClients(ctx, firebase.Config{
			ProjectID:                    cfg.FirebaseProjectID,
			GoogleApplicationCredentials: cfg.GoogleApplicationCredentials,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("firestore: %w", err)
		}
		return draft.NewFirestoreStore(clients.Firestore), clients.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown draft store %q", cfg.DraftStore)
	}
}

// NewExporter builds the exporter named by cfg.Exporter.
func NewExporter(ctx context.Context, cfg *config.Config) (document.Exporter, CloseFunc) {
	switch cfg.Exporter {
	case config.ExporterChromedp:
		applog.LogInfo(ctx, "using chromedp exporter", zap.Bool("remote", cfg.ChromeURL != ""))
		e := document.NewChromedpExporter(document.ChromedpConfig{
			RemoteURL: cfg.ChromeURL,
			NoSandbox: cfg.ChromeNoSandbox,
		})
		return e, e.Close
	default:
		return document.NewPrintViewExporter(cfg.PrintDelay), noopClose
	}
}

// DocumentOptions returns the document service options derived from cfg.
func DocumentOptions(cfg *config.Config) []document.Option {
	opts := []document.Option{document.WithDefaultLocale(cfg.DefaultLocale)}
	if cfg.DefaultTimeZone != nil {
		opts = append(opts, document.WithDefaultTimeZone(cfg.DefaultTimeZone))
	}
	return opts
}
