// Package printing converts HTML to PDF with headless Chrome.
package printing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"ledgerbook/internal/port"
)

// A4 in inches, the unit Chrome uses for paper size.
const (
	a4WidthIn  = 210 / 25.4
	a4HeightIn = 297 / 25.4
	marginIn   = 10 / 25.4
)

const defaultRenderTimeout = 60 * time.Second

// ChromeConfig configures the Chrome renderer.
type ChromeConfig struct {
	// RemoteURL points at a running Chrome DevTools endpoint. When empty a
	// local browser is launched on first use.
	RemoteURL string
	NoSandbox bool
	Timeout   time.Duration
}

// ChromeRenderer renders HTML pages to PDF.
type ChromeRenderer struct {
	cfg         ChromeConfig
	log         *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

var _ port.PDFRenderer = (*ChromeRenderer)(nil)

// NewChromeRenderer creates a renderer. The browser process is not started
// until the first render.
func NewChromeRenderer(cfg ChromeConfig, log *zap.Logger) *ChromeRenderer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRenderTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}

	r := &ChromeRenderer{cfg: cfg, log: log.Named("printing")}
	if cfg.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
	} else {
		r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), allocatorOptions(cfg)...)
	}
	return r
}

func allocatorOptions(cfg ChromeConfig) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	return opts
}

// RenderPDF loads html into a fresh tab and prints it on A4.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, html string, landscape bool) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, errors.New("printing: empty html")
	}
	start := time.Now()

	tabCtx, cancelTab := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			r.log.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, r.cfg.Timeout)
	defer cancelTimeout()

	// Stop the tab when the caller gives up.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthIn).
				WithPaperHeight(a4HeightIn).
				WithMarginTop(marginIn).
				WithMarginBottom(marginIn).
				WithMarginLeft(marginIn).
				WithMarginRight(marginIn).
				WithLandscape(landscape).
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
		r.log.Error("pdf render failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("printing: %w", err)
	}
	if len(pdf) == 0 {
		return nil, errors.New("printing: chrome returned an empty pdf")
	}

	r.log.Debug("pdf rendered", zap.Int("bytes", len(pdf)), zap.Duration("elapsed", time.Since(start)))
	return pdf, nil
}

// Close shuts down the browser.
func (r *ChromeRenderer) Close() {
	r.allocCancel()
}
