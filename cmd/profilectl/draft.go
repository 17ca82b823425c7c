package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janisto/profile-print/internal/service/draft"
)

func newDraftCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Inspect or replace the saved draft",
	}
	cmd.AddCommand(newDraftShowCmd(a), newDraftSaveCmd(a))
	return cmd
}

func newDraftShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved draft as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, closeStore, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			d, err := store.Load(ctx)
			if errors.Is(err, draft.ErrNotFound) {
				return errors.New("no draft saved")
			}
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(d)
		},
	}
}

func newDraftSaveCmd(a *app) *cobra.Command {
	var flags draftFlags
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Validate and save a draft",
		Long:  "Validates form values and replaces the saved draft. Nothing is written when validation fails.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := flags.input(cmd)
			if err != nil {
				return err
			}
			d, errs := draft.Validate(in)
			if errs != nil {
				return printFieldErrors(cmd.ErrOrStderr(), errs)
			}

			ctx := cmd.Context()
			store, closeStore, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			if err := store.Save(ctx, d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved draft for %s\n", d.Name)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
