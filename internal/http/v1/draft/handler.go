package draft

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	applog "github.com/janisto/profile-print/internal/platform/logging"
	"github.com/janisto/profile-print/internal/platform/respond"
	draftsvc "github.com/janisto/profile-print/internal/service/draft"
)

// Register registers draft endpoints.
func Register(api huma.API, store draftsvc.Store) {
	huma.Register(api, huma.Operation{
		OperationID: "get-draft",
		Method:      http.MethodGet,
		Path:        "/draft",
		Summary:     "Get the saved draft",
		Description: "Returns the most recently saved profile draft.",
		Tags:        []string{"Draft"},
	}, func(ctx context.Context, _ *DraftGetInput) (*DraftGetOutput, error) {
		d, err := store.Load(ctx)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &DraftGetOutput{Body: toHTTPDraft(d)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "put-draft",
		Method:      http.MethodPut,
		Path:        "/draft",
		Summary:     "Save the draft",
		Description: "Validates the profile form values and replaces the saved draft. Nothing is written when validation fails.",
		Tags:        []string{"Draft"},
	}, func(ctx context.Context, input *DraftPutInput) (*DraftPutOutput, error) {
		d, errs := draftsvc.Validate(input.Body.Input())
		if errs != nil {
			return nil, ValidationError(ctx, errs)
		}
		if err := store.Save(ctx, d); err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &DraftPutOutput{Body: toHTTPDraft(&d)}, nil
	})
}

// ValidationError converts rejected form fields into a 422 envelope.
func ValidationError(ctx context.Context, errs draftsvc.FieldErrors) huma.StatusError {
	issues := make([]respond.FieldIssue, len(errs))
	for i, e := range errs {
		issues[i] = respond.FieldIssue{Field: e.Field, Issue: e.Message}
	}
	return respond.Validation(ctx, issues)
}

func mapServiceError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, draftsvc.ErrNotFound):
		return huma.Error404NotFound("draft not found")
	default:
		applog.LogError(ctx, "draft store failed", err)
		return huma.Error500InternalServerError("internal error")
	}
}
