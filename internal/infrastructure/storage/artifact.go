// Package storage persists rendered order documents, partitioned by
// Jalali date so archives group naturally by local year and month.
package storage

import (
	"context"
	"fmt"

	"github.com/orderdocs/backend/internal/infrastructure/calendar"
)

// Artifact is a rendered document ready to be persisted.
type Artifact struct {
	OrderID int64
	Date    calendar.Date
	PDFData []byte
}

// StoreResult reports where an artifact was persisted.
type StoreResult struct {
	Path string
	Size int64
}

// ArtifactStore persists rendered documents. Storing the same order on
// the same date twice resolves to the same path and overwrites the
// previous document.
type ArtifactStore interface {
	Store(ctx context.Context, artifact *Artifact) (*StoreResult, error)
}

// ArtifactPath derives the storage path for an order document:
// <year>/<month>/<year>-<month>-<day>_<orderID>.pdf, with all date
// components taken from the order's Jalali creation date.
func ArtifactPath(orderID int64, date calendar.Date) string {
	return fmt.Sprintf("%s/%s/%s-%s-%s_%d.pdf",
		date.Year(), date.Month(),
		date.Year(), date.Month(), date.Day(),
		orderID)
}
