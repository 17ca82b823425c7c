package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/janisto/profile-print/internal/service/document"
	"github.com/janisto/profile-print/internal/service/draft"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		flags     draftFlags
		fromStore bool
		out       string
		locale    string
		timeZone  string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a printable profile",
		Long: "Renders the profile with the configured exporter (HTML print view or PDF) and writes it to a file.\n" +
			"Use --from-store to render the saved draft instead of form values.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, closeStore, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			docs, closeExporter := a.documents(ctx, store)
			defer func() { _ = closeExporter() }()

			rd := document.Reader{AcceptLanguage: locale, TimeZone: timeZone}
			var p *document.Presentation
			if fromStore {
				p, err = docs.PresentCurrent(ctx, rd)
				if errors.Is(err, draft.ErrNotFound) {
					return errors.New("no draft saved")
				}
			} else {
				in, inErr := flags.input(cmd)
				if inErr != nil {
					return inErr
				}
				d, errs := draft.Validate(in)
				if errs != nil {
					return printFieldErrors(cmd.ErrOrStderr(), errs)
				}
				p, err = docs.Present(ctx, d, rd)
			}
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = p.Filename
			}
			if err := os.WriteFile(path, p.Body, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d bytes)\n", path, p.ContentType, len(p.Body))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&fromStore, "from-store", false, "Render the saved draft")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (defaults to <name>-profile.<ext>)")
	cmd.Flags().StringVar(&locale, "locale", "", "Locale for the footer date, e.g. en-GB (defaults to DEFAULT_LOCALE)")
	cmd.Flags().StringVar(&timeZone, "time-zone", "", "IANA time zone for the footer date, e.g. Europe/Berlin (defaults to DEFAULT_TIME_ZONE)")
	for _, name := range draftFlagNames {
		cmd.MarkFlagsMutuallyExclusive("from-store", name)
	}
	return cmd
}
