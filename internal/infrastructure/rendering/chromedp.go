package rendering

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultChromeTimeout = 30 * time.Second
	defaultMarginMM      = 10.0
)

// ChromedpConfig contains configuration for the chromedp renderer
type ChromedpConfig struct {
	// DefaultTimeout for rendering operations
	DefaultTimeout time.Duration
	// RemoteURL is the URL of a remote Chrome/Chromium instance (optional)
	// If empty, chromedp will launch a new browser instance
	RemoteURL string
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
	// Logger for debug output
	Logger *zap.Logger
}

// ChromedpRenderer renders HTML to PDF using Chrome DevTools Protocol.
// It implements both the PDFRenderer and Measurer capabilities: the
// same layout engine that produces the final artifact is used as the
// measurement oracle, so the pagination decision observes exactly the
// geometry the final render will produce.
type ChromedpRenderer struct {
	config      *ChromedpConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer creates a new chromedp-based renderer
func NewChromedpRenderer(config *ChromedpConfig) (*ChromedpRenderer, error) {
	if config == nil {
		config = &ChromedpConfig{}
	}
	if config.DefaultTimeout == 0 {
		config.DefaultTimeout = defaultChromeTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &ChromedpRenderer{
		config: config,
		logger: logger,
	}
	r.initAllocator()
	return r, nil
}

// initAllocator initializes the Chrome allocator
func (r *ChromedpRenderer) initAllocator() {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("font-render-hinting", "none"),
	)

	if r.config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	if r.config.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), r.config.RemoteURL)
	} else {
		r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}
}

// contentExtentJS computes the maximum bottom edge over the rendered
// box tree below body. Iterating body's descendants excludes the
// html/body containers themselves, which always span the full page and
// would mask the real content extent. An empty tree yields zero.
const contentExtentJS = `(() => {
	let max = 0;
	for (const el of document.body.querySelectorAll('*')) {
		const r = el.getBoundingClientRect();
		const bottom = r.top + r.height + window.scrollY;
		if (bottom > max) max = bottom;
	}
	return max;
})()`

// Render converts a complete HTML document to PDF
func (r *ChromedpRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if req == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "render request is nil", nil)
	}
	if strings.TrimSpace(req.HTML) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}

	startTime := time.Now()

	var pdfData []byte
	err := r.run(ctx, req.Timeout, req.HTML,
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(mmToInches(PageWidthMM)).
				WithPaperHeight(mmToInches(PageHeightMM)).
				WithMarginTop(mmToInches(defaultMarginMM)).
				WithMarginRight(mmToInches(defaultMarginMM)).
				WithMarginBottom(mmToInches(defaultMarginMM)).
				WithMarginLeft(mmToInches(defaultMarginMM)).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	if len(pdfData) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	pageCount := estimatePageCount(pdfData)
	renderDuration := time.Since(startTime)

	r.logger.Info("PDF rendered",
		zap.Int("bytes", len(pdfData)),
		zap.Int("pages", pageCount),
		zap.Duration("duration", renderDuration))

	return &RenderResult{
		PDFData:        pdfData,
		PageCount:      pageCount,
		RenderDuration: renderDuration,
	}, nil
}

// Measure lays out a document shell and reports its page count and
// realized content extent in millimeters.
func (r *ChromedpRenderer) Measure(ctx context.Context, req *MeasureRequest) (*MeasureResult, error) {
	if req == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "measure request is nil", nil)
	}
	if strings.TrimSpace(req.HTML) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}

	// Lay the shell out at the printable content width so block flow
	// matches what PrintToPDF will produce.
	contentWidthPx := int64(MMToPx(PageWidthMM - 2*defaultMarginMM))
	contentHeightPx := int64(MMToPx(PageHeightMM - 2*defaultMarginMM))

	var bottomPx float64
	var pdfData []byte
	err := r.run(ctx, req.Timeout, req.HTML,
		chromedp.EmulateViewport(contentWidthPx, contentHeightPx),
		chromedp.Evaluate(contentExtentJS, &bottomPx),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(mmToInches(PageWidthMM)).
				WithPaperHeight(mmToInches(PageHeightMM)).
				WithMarginTop(mmToInches(defaultMarginMM)).
				WithMarginRight(mmToInches(defaultMarginMM)).
				WithMarginBottom(mmToInches(defaultMarginMM)).
				WithMarginLeft(mmToInches(defaultMarginMM)).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		return nil, NewRenderError(ErrCodeMeasureFailed, "layout measurement failed", err)
	}

	result := &MeasureResult{
		PageCount:       estimatePageCount(pdfData),
		ContentHeightMM: PxToMM(bottomPx),
	}

	r.logger.Debug("layout measured",
		zap.Int("pages", result.PageCount),
		zap.Float64("content_height_mm", result.ContentHeightMM))

	return result, nil
}

// run executes the common navigate/set-content prelude plus the given
// actions inside a fresh browser context.
func (r *ChromedpRenderer) run(ctx context.Context, timeout time.Duration, html string, actions ...chromedp.Action) error {
	if timeout == 0 {
		timeout = r.config.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	prelude := []chromedp.Action{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
	}

	err := chromedp.Run(browserCtx, append(prelude, actions...)...)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("rendering timed out after %v", timeout), err)
		}
		if ctx.Err() == context.Canceled {
			return NewRenderError(ErrCodeRenderTimeout, "rendering was cancelled", err)
		}
		r.logger.Error("chromedp execution failed", zap.Error(err))
		return NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}
	return nil
}

// Close releases resources held by the renderer
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

// mmToInches converts millimeters to inches (Chrome print units)
func mmToInches(mm float64) float64 {
	return mm / mmPerInch
}

// estimatePageCount estimates the page count from PDF data
// by counting page object markers in the document structure
func estimatePageCount(pdfData []byte) int {
	count := bytes.Count(pdfData, []byte("/Type /Page"))
	// Each page has one "/Type /Page" but the count also includes "/Type /Pages"
	// So we subtract the parent Pages object occurrences
	parentCount := bytes.Count(pdfData, []byte("/Type /Pages"))
	count = count - parentCount
	return max(count, 1)
}

// Ensure ChromedpRenderer implements both capabilities
var (
	_ PDFRenderer = (*ChromedpRenderer)(nil)
	_ Measurer    = (*ChromedpRenderer)(nil)
)
