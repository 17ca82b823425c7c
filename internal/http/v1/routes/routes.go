package routes

import (
	"github.com/danielgtaylor/huma/v2"

	documentapi "github.com/janisto/profile-print/internal/http/v1/document"
	draftapi "github.com/janisto/profile-print/internal/http/v1/draft"
	docsvc "github.com/janisto/profile-print/internal/service/document"
	draftsvc "github.com/janisto/profile-print/internal/service/draft"
)

// Register wires all versioned API routes into the provided API router.
func Register(api huma.API, store draftsvc.Store, docs *docsvc.Service) {
	draftapi.Register(api, store)
	documentapi.Register(api, docs)
}
