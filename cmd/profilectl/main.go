// Command profilectl validates, saves and renders profile drafts from the shell,
// using the same draft store and exporter configuration as the server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/janisto/profile-print/internal/bootstrap"
	"github.com/janisto/profile-print/internal/config"
	applog "github.com/janisto/profile-print/internal/platform/logging"
	"github.com/janisto/profile-print/internal/service/document"
	"github.com/janisto/profile-print/internal/service/draft"
)

func main() {
	err := newRootCmd().Execute()
	_ = applog.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds what the subcommands share once configuration is loaded.
type app struct {
	envFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "profilectl",
		Short:         "Profile Print command line tool",
		Long:          "Validates profile form values, manages the saved draft and renders printable profiles.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.envFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Path to a .env file (ignored when missing)")

	root.AddCommand(
		newValidateCmd(),
		newRenderCmd(a),
		newDraftCmd(a),
	)
	return root
}

// openStore opens the configured draft store.
func (a *app) openStore(ctx context.Context) (draft.Store, bootstrap.CloseFunc, error) {
	return bootstrap.OpenStore(ctx, a.cfg)
}

// documents builds a document service over the configured store and exporter.
func (a *app) documents(ctx context.Context, store draft.Store) (*document.Service, bootstrap.CloseFunc) {
	exporter, closeExporter := bootstrap.NewExporter(ctx, a.cfg)
	return document.NewService(store, exporter, bootstrap.DocumentOptions(a.cfg)...), closeExporter
}
