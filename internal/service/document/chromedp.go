package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	applog "github.com/janisto/profile-print/internal/platform/logging"
)

const defaultChromeTimeout = 30 * time.Second

// ChromedpConfig configures the headless browser used for PDF rendering.
type ChromedpConfig struct {
	// RemoteURL is the DevTools websocket URL of a running Chrome. When empty a
	// local browser is launched.
	RemoteURL string
	// Timeout bounds a single render. Zero selects 30s.
	Timeout time.Duration
	// NoSandbox runs Chrome without sandbox (required for Docker/root).
	NoSandbox bool
}

// ChromedpExporter renders documents to PDF through the Chrome DevTools Protocol.
type ChromedpExporter struct {
	formatter   HTMLFormatter
	timeout     time.Duration
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpExporter prepares the browser allocator. The browser itself starts
// lazily on the first render.
func NewChromedpExporter(cfg ChromedpConfig) *ChromedpExporter {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultChromeTimeout
	}

	e := &ChromedpExporter{timeout: timeout}
	if cfg.RemoteURL != "" {
		e.allocCtx, e.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return e
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	e.allocCtx, e.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return e
}

func (e *ChromedpExporter) Present(ctx context.Context, doc *Document) (*Presentation, error) {
	view := *doc
	view.PrintAction = false
	view.AutoPrintDelay = 0

	html, err := e.formatter.Format(&view)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	start := time.Now()
	pdf, err := e.render(ctx, string(html))
	if err != nil {
		applog.LogError(ctx, "pdf render failed", err)
		return nil, err
	}

	applog.LogInfo(ctx, "pdf rendered",
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)),
	)
	return &Presentation{
		ContentType: "application/pdf",
		Disposition: DispositionAttachment,
		Filename:    doc.Filename("pdf"),
		Body:        pdf,
	}, nil
}

func (e *ChromedpExporter) render(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	tabCtx, tabCancel := chromedp.NewContext(e.allocCtx)
	defer tabCancel()

	// The request context bounds the tab, not the shared allocator.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	// Running with no actions only starts the browser and opens a tab.
	if err := chromedp.Run(tabCtx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPresentationBlocked, err)
	}

	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: timed out after %v: %w", ErrRenderFailed, e.timeout, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("%w: generated PDF is empty", ErrRenderFailed)
	}
	return pdf, nil
}

// Close shuts down the browser allocator.
func (e *ChromedpExporter) Close() error {
	if e.allocCancel != nil {
		e.allocCancel()
	}
	return nil
}

// Compile-time interface check
var _ Exporter = (*ChromedpExporter)(nil)
