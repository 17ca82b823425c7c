package document

import (
	"context"
	"errors"
)

// Presentation errors
var (
	// ErrPresentationBlocked means no presentation surface could be obtained,
	// e.g. the browser used for PDF rendering is unreachable.
	ErrPresentationBlocked = errors.New("presentation surface unavailable")
	// ErrRenderFailed covers any other failure while producing the output.
	ErrRenderFailed = errors.New("document render failed")
)

// Content dispositions for a Presentation.
const (
	DispositionInline     = "inline"
	DispositionAttachment = "attachment"
)

// Presentation is the output handed back to the user.
type Presentation struct {
	ContentType string
	Disposition string
	Filename    string
	Body        []byte
}

// Exporter presents a built document to the user. Implementations never touch the
// draft store.
type Exporter interface {
	Present(ctx context.Context, doc *Document) (*Presentation, error)
}
