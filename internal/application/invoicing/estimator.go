// Package invoicing orchestrates the order-to-document pipeline:
// localize the order, render the invoice and packing-slip views, decide
// pagination, produce the PDF, and persist it.
package invoicing

import (
	"context"

	"github.com/orderdocs/backend/internal/infrastructure/rendering"
)

// pageBreakRatio is the share of an A4 page the invoice content may
// occupy before the packing slip is pushed to its own page. Content at
// exactly the threshold still shares the page.
const pageBreakRatio = 0.65

// PageEstimate is the pagination decision for an invoice shell.
type PageEstimate struct {
	// ContentHeightMM is the effective invoice height used for the
	// decision. When the invoice alone spills past one page the height
	// saturates to a full page, since the measured first-page extent no
	// longer represents the true content size.
	ContentHeightMM float64
	// PageCount is the number of pages the invoice alone produced.
	PageCount int
	// ForcedBreak reports whether the packing slip must start on a new
	// page.
	ForcedBreak bool
}

// PaginationEstimator decides packing-slip placement by measuring the
// invoice-only document shell.
type PaginationEstimator struct {
	measurer rendering.Measurer
}

// NewPaginationEstimator creates an estimator backed by the given
// layout measurer.
func NewPaginationEstimator(measurer rendering.Measurer) *PaginationEstimator {
	return &PaginationEstimator{measurer: measurer}
}

// Estimate measures the invoice-only shell and decides whether the
// packing slip needs a forced page break.
func (e *PaginationEstimator) Estimate(ctx context.Context, invoiceShell string) (*PageEstimate, error) {
	result, err := e.measurer.Measure(ctx, &rendering.MeasureRequest{HTML: invoiceShell})
	if err != nil {
		return nil, err
	}

	height := result.ContentHeightMM
	if result.PageCount > 1 {
		height = rendering.PageHeightMM
	}

	return &PageEstimate{
		ContentHeightMM: height,
		PageCount:       result.PageCount,
		ForcedBreak:     height > pageBreakRatio*rendering.PageHeightMM,
	}, nil
}
