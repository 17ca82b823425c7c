package document

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	draftapi "github.com/janisto/profile-print/internal/http/v1/draft"
	applog "github.com/janisto/profile-print/internal/platform/logging"
	docsvc "github.com/janisto/profile-print/internal/service/document"
	draftsvc "github.com/janisto/profile-print/internal/service/draft"
)

// Register registers document endpoints.
func Register(api huma.API, svc *docsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "create-document",
		Method:      http.MethodPost,
		Path:        "/documents",
		Summary:     "Render a profile document",
		Description: "Validates the form values and returns the printable profile. The saved draft is not changed.",
		Tags:        []string{"Documents"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Printable profile",
				Content: map[string]*huma.MediaType{
					"text/html":       {},
					"application/pdf": {},
				},
			},
		},
	}, func(ctx context.Context, input *DocumentCreateInput) (*DocumentOutput, error) {
		d, errs := draftsvc.Validate(input.Body.Input())
		if errs != nil {
			return nil, draftapi.ValidationError(ctx, errs)
		}
		p, err := svc.Present(ctx, d, input.reader())
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return toOutput(p), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-current-document",
		Method:      http.MethodGet,
		Path:        "/documents/current",
		Summary:     "Render the saved draft",
		Description: "Returns the printable profile for the saved draft.",
		Tags:        []string{"Documents"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Printable profile",
				Content: map[string]*huma.MediaType{
					"text/html":       {},
					"application/pdf": {},
				},
			},
		},
	}, func(ctx context.Context, input *DocumentCurrentInput) (*DocumentOutput, error) {
		p, err := svc.PresentCurrent(ctx, input.reader())
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return toOutput(p), nil
	})
}

func toOutput(p *docsvc.Presentation) *DocumentOutput {
	return &DocumentOutput{
		ContentType:        p.ContentType,
		ContentDisposition: p.ContentDisposition(),
		CacheControl:       "no-store",
		Body:               p.Body,
	}
}

func mapServiceError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, draftsvc.ErrNotFound):
		return huma.Error404NotFound("draft not found")
	case errors.Is(err, docsvc.ErrPresentationBlocked):
		return huma.Error503ServiceUnavailable("presentation surface unavailable")
	default:
		applog.LogError(ctx, "document presentation failed", err)
		return huma.Error500InternalServerError("failed to generate document")
	}
}
