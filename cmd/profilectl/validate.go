package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janisto/profile-print/internal/service/draft"
)

func newValidateCmd() *cobra.Command {
	var flags draftFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate profile form values",
		Long:  "Checks form values against the same rules as the web form and the API. Nothing is saved.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := flags.input(cmd)
			if err != nil {
				return err
			}
			if _, errs := draft.Validate(in); errs != nil {
				return printFieldErrors(cmd.ErrOrStderr(), errs)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
