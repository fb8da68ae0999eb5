// Package rendering turns order view-models into HTML fragments and
// renders the assembled document to PDF, including the layout
// measurement pass that drives pagination.
package rendering

import (
	"context"
	"time"
)

// A4 page geometry in millimeters. Chrome lays the page out at 96 dpi,
// so device pixels convert at 25.4 mm per inch.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
	pxPerInch    = 96.0
	mmPerInch    = 25.4
)

// PxToMM converts 96-dpi device pixels to millimeters.
func PxToMM(px float64) float64 {
	return px * mmPerInch / pxPerInch
}

// MMToPx converts millimeters to 96-dpi device pixels.
func MMToPx(mm float64) float64 {
	return mm * pxPerInch / mmPerInch
}

// RenderRequest contains the parameters for rendering HTML to PDF
type RenderRequest struct {
	// HTML is the complete document to render
	HTML string
	// Title for the PDF document metadata
	Title string
	// Timeout overrides the default rendering timeout
	Timeout time.Duration
}

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	// PDFData is the raw PDF file content
	PDFData []byte
	// PageCount is the number of pages in the PDF
	PageCount int
	// RenderDuration is how long the rendering took
	RenderDuration time.Duration
}

// MeasureRequest contains the parameters for measuring HTML content
type MeasureRequest struct {
	// HTML is the complete document shell whose content is measured
	HTML string
	// Timeout overrides the default rendering timeout
	Timeout time.Duration
}

// MeasureResult contains the realized layout of a document shell
type MeasureResult struct {
	// PageCount is the number of physical pages the shell produced
	PageCount int
	// ContentHeightMM is the extent of the rendered box tree on the
	// first page: the maximum bottom edge over all boxes below body,
	// excluding the full-page html/body containers themselves.
	ContentHeightMM float64
}

// PDFRenderer converts a finished document to its binary form.
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	// Close releases any resources held by the renderer
	Close() error
}

// Measurer reports the realized layout of a document shell without
// producing a deliverable artifact. It is deliberately narrow so the
// layout engine can be swapped or faked independently of PDFRenderer.
type Measurer interface {
	Measure(ctx context.Context, req *MeasureRequest) (*MeasureResult, error)
}

// RenderError represents an error during rendering or measurement
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeInvalidHTML   = "INVALID_HTML"
	ErrCodeMeasureFailed = "MEASURE_FAILED"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
