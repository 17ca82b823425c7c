package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/janisto/profile-print/internal/service/draft"
)

// draftFlags collects form values from flags or from a JSON file.
type draftFlags struct {
	file        string
	name        string
	email       string
	phoneNumber string
	position    string
	description string
}

// draftFlagNames lists every flag registered by draftFlags.
var draftFlagNames = []string{"file", "name", "email", "phone", "position", "description"}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Path to a draft JSON file (\"-\" reads stdin)")
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "Full name")
	cmd.Flags().StringVarP(&f.email, "email", "e", "", "Email address")
	cmd.Flags().StringVar(&f.phoneNumber, "phone", "", "Phone number")
	cmd.Flags().StringVar(&f.position, "position", "", "Current position")
	cmd.Flags().StringVar(&f.description, "description", "", "About text")
}

// input returns the raw form values. A file, when given, provides the base values
// and explicit flags override individual fields.
func (f *draftFlags) input(cmd *cobra.Command) (draft.Input, error) {
	var in draft.Input
	if f.file != "" {
		data, err := f.readFile(cmd.InOrStdin())
		if err != nil {
			return draft.Input{}, err
		}
		if err := json.Unmarshal(data, &in); err != nil {
			return draft.Input{}, fmt.Errorf("failed to parse draft JSON: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		in.Name = f.name
	}
	if flags.Changed("email") {
		in.Email = f.email
	}
	if flags.Changed("phone") {
		in.PhoneNumber = f.phoneNumber
	}
	if flags.Changed("position") {
		in.Position = f.position
	}
	if flags.Changed("description") {
		in.Description = f.description
	}
	return in, nil
}

func (f *draftFlags) readFile(stdin io.Reader) ([]byte, error) {
	if f.file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(f.file)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft file: %w", err)
	}
	return data, nil
}

// printFieldErrors writes one line per rejected field and returns an error for the exit code.
func printFieldErrors(w io.Writer, errs draft.FieldErrors) error {
	for _, e := range errs {
		fmt.Fprintf(w, "%s: %s\n", e.Field, e.Message)
	}
	return fmt.Errorf("validation failed for %d field(s)", len(errs))
}
