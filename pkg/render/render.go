// Package render turns composed markup into PDF bytes through a headless
// Chrome session driven over the DevTools protocol.
package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"golang.org/x/sync/semaphore"
)

// System renders markup into fixed-format document bytes. Implementations
// must fail loudly rather than return a malformed artifact.
type System interface {
	Render(ctx context.Context, markup string) ([]byte, error)
}

type chrome struct {
	allocOpts []chromedp.ExecAllocatorOption
	paperW    float64
	paperH    float64
	timeout   time.Duration
	sessions  *semaphore.Weighted
	logger    *slog.Logger
}

// New creates a Chrome-backed render system. The browser binary is resolved
// through the locator exactly once; a missing binary fails startup, not the
// first request.
func New(cfg *Config, locator BrowserLocator, logger *slog.Logger) (System, error) {
	binary, err := locator.Locate()
	if err != nil {
		return nil, err
	}

	opts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(binary),
	)
	if cfg.Mode == ModeStatic {
		// Packaged binaries typically run in containers without a sandbox user.
		opts = append(opts, chromedp.NoSandbox)
	}

	logger = logger.With("system", "render")
	logger.Info("browser resolved", "binary", binary, "mode", cfg.Mode)

	return &chrome{
		allocOpts: opts,
		paperW:    cfg.PaperWidth,
		paperH:    cfg.PaperHeight,
		timeout:   cfg.TimeoutDuration(),
		sessions:  semaphore.NewWeighted(int64(cfg.MaxSessions)),
		logger:    logger,
	}, nil
}

// Render prints the markup to PDF with the configured page size, zero
// margins, and background printing enabled. The browser session is released
// on every exit path.
func (c *chrome) Render(ctx context.Context, markup string) ([]byte, error) {
	if err := c.sessions.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: acquire session: %w", ErrRenderFailed, err)
	}
	defer c.sessions.Release(1)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.allocOpts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	start := time.Now()

	var pdf []byte
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL(markup)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(c.paperW).
				WithPaperHeight(c.paperH).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	if len(pdf) == 0 {
		return nil, ErrEmptyDocument
	}

	c.logger.Info(
		"document rendered",
		"bytes", len(pdf),
		"duration", time.Since(start),
	)

	return pdf, nil
}

func dataURL(markup string) string {
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(markup))
}
