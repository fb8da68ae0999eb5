package invoicing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/orderdocs/backend/internal/domain/order"
	"github.com/orderdocs/backend/internal/domain/shared"
	"github.com/orderdocs/backend/internal/infrastructure/calendar"
	"github.com/orderdocs/backend/internal/infrastructure/rendering"
	"github.com/orderdocs/backend/internal/infrastructure/storage"
)

// Notifier delivers a generated document to interested parties.
// Delivery is best-effort: failures are logged and never fail the
// pipeline.
type Notifier interface {
	NotifyOrderDocument(ctx context.Context, ord *order.Order, jalaliDate string, pdf []byte) error
}

// Options tunes a single generation run.
type Options struct {
	// SkipPackingSlip produces an invoice-only document, used by the
	// backup export where packing slips add no value.
	SkipPackingSlip bool
}

// Result reports a completed generation.
type Result struct {
	Path        string
	PDFData     []byte
	PageCount   int
	ForcedBreak bool
}

// ServiceParams collects the dependencies of Service. Notifier may be
// nil; Logger defaults to a no-op logger.
type ServiceParams struct {
	Templates *rendering.TemplateEngine
	Estimator *PaginationEstimator
	Renderer  rendering.PDFRenderer
	Store     storage.ArtifactStore
	Notifier  Notifier
	StoreInfo rendering.StoreInfo
	FontPath  string
	Logger    *zap.Logger
}

// Service generates, persists, and announces order documents.
type Service struct {
	templates *rendering.TemplateEngine
	estimator *PaginationEstimator
	renderer  rendering.PDFRenderer
	store     storage.ArtifactStore
	notifier  Notifier
	storeInfo rendering.StoreInfo
	fontPath  string
	logger    *zap.Logger
}

// NewService creates a document generation service.
func NewService(p ServiceParams) *Service {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		templates: p.Templates,
		estimator: p.Estimator,
		renderer:  p.Renderer,
		store:     p.Store,
		notifier:  p.Notifier,
		storeInfo: p.StoreInfo,
		fontPath:  p.FontPath,
		logger:    logger,
	}
}

// Generate runs the full pipeline for one order: localize, render the
// views, decide pagination, produce the PDF, persist it, and notify.
// Derived display fields are computed once, up front, and shared by
// both views; an unparseable creation date falls back to today.
func (s *Service) Generate(ctx context.Context, ord *order.Order, opts Options) (*Result, error) {
	if err := ord.Validate(); err != nil {
		return nil, err
	}

	date := calendar.FromOrderDate(ord.DateCreated)
	issuer := order.ResolveIssuer(ord.MetaData)
	data := &rendering.DocumentData{
		Order:      ord,
		Store:      s.storeInfo,
		JalaliDate: date.Display(),
		Issuer:     issuer.Display(),
	}

	css, err := s.templates.RenderStylesheet(&rendering.StylesheetData{FontPath: s.fontPath})
	if err != nil {
		return nil, shared.ErrRenderFailed.WithCause(err)
	}
	invoiceHTML, err := s.templates.RenderInvoice(data)
	if err != nil {
		return nil, shared.ErrRenderFailed.WithCause(err)
	}

	fragments := []string{invoiceHTML}
	forcedBreak := false
	if !opts.SkipPackingSlip {
		estimate, err := s.estimator.Estimate(ctx, s.templates.WrapDocument(css, invoiceHTML))
		if err != nil {
			return nil, shared.ErrRenderFailed.WithCause(err)
		}
		forcedBreak = estimate.ForcedBreak

		slipHTML, err := s.templates.RenderPackingSlip(&rendering.PackingSlipData{
			DocumentData:   *data,
			TotalItems:     ord.TotalItemCount(),
			ForcePageBreak: forcedBreak,
		})
		if err != nil {
			return nil, shared.ErrRenderFailed.WithCause(err)
		}
		fragments = append(fragments, slipHTML)

		s.logger.Debug("Pagination decided",
			zap.Int64("order_id", ord.ID),
			zap.Float64("content_height_mm", estimate.ContentHeightMM),
			zap.Bool("forced_break", forcedBreak))
	}

	renderResult, err := s.renderer.Render(ctx, &rendering.RenderRequest{
		HTML:  s.templates.WrapDocument(css, fragments...),
		Title: fmt.Sprintf("order-%d", ord.ID),
	})
	if err != nil {
		return nil, shared.ErrRenderFailed.WithCause(err)
	}

	storeResult, err := s.store.Store(ctx, &storage.Artifact{
		OrderID: ord.ID,
		Date:    date,
		PDFData: renderResult.PDFData,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	s.logger.Info("Generated order document",
		zap.Int64("order_id", ord.ID),
		zap.String("path", storeResult.Path),
		zap.Int("pages", renderResult.PageCount))

	if s.notifier != nil {
		if err := s.notifier.NotifyOrderDocument(ctx, ord, date.Display(), renderResult.PDFData); err != nil {
			s.logger.Warn("Document notification failed",
				zap.Int64("order_id", ord.ID),
				zap.Error(err))
		}
	}

	return &Result{
		Path:        storeResult.Path,
		PDFData:     renderResult.PDFData,
		PageCount:   renderResult.PageCount,
		ForcedBreak: forcedBreak,
	}, nil
}
