package document

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	applog "github.com/janisto/profile-print/internal/platform/logging"
)

// PrintViewExporter returns the document as an HTML page that opens the browser's
// print dialog on load. The user saves it as PDF from there.
type PrintViewExporter struct {
	formatter HTMLFormatter
	delay     time.Duration
}

// NewPrintViewExporter creates a print view exporter. A non-positive delay selects
// DefaultAutoPrintDelay.
func NewPrintViewExporter(delay time.Duration) *PrintViewExporter {
	if delay <= 0 {
		delay = DefaultAutoPrintDelay
	}
	return &PrintViewExporter{delay: delay}
}

func (e *PrintViewExporter) Present(ctx context.Context, doc *Document) (*Presentation, error) {
	view := *doc
	view.PrintAction = true
	view.AutoPrintDelay = e.delay

	body, err := e.formatter.Format(&view)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	applog.LogInfo(ctx, "print view rendered", zap.Int("bytes", len(body)))
	return &Presentation{
		ContentType: "text/html; charset=utf-8",
		Disposition: DispositionInline,
		Filename:    doc.Filename("html"),
		Body:        body,
	}, nil
}

// Compile-time interface check
var _ Exporter = (*PrintViewExporter)(nil)
