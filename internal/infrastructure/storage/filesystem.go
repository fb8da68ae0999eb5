package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DefaultBasePath is the output root used when no base path is configured.
const DefaultBasePath = "output"

// FilesystemStore persists artifacts on the local filesystem under a
// base directory.
type FilesystemStore struct {
	basePath string
	logger   *zap.Logger
}

// FilesystemStoreOption is a functional option for configuring FilesystemStore.
type FilesystemStoreOption func(*FilesystemStore)

// WithFilesystemLogger sets a custom logger for FilesystemStore.
func WithFilesystemLogger(logger *zap.Logger) FilesystemStoreOption {
	return func(s *FilesystemStore) {
		s.logger = logger
	}
}

// NewFilesystemStore creates a store rooted at basePath. An empty
// basePath falls back to DefaultBasePath.
func NewFilesystemStore(basePath string, opts ...FilesystemStoreOption) *FilesystemStore {
	if basePath == "" {
		basePath = DefaultBasePath
	}
	store := &FilesystemStore{
		basePath: basePath,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Store writes the artifact under the base directory, creating the
// year/month partition as needed. An existing file at the same path is
// overwritten, so regenerating an order replaces its document in place.
func (s *FilesystemStore) Store(ctx context.Context, artifact *Artifact) (*StoreResult, error) {
	if artifact == nil || len(artifact.PDFData) == 0 {
		return nil, fmt.Errorf("artifact data is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	relPath := ArtifactPath(artifact.OrderID, artifact.Date)
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(fullPath, artifact.PDFData, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write document: %w", err)
	}

	s.logger.Debug("Stored document",
		zap.Int64("order_id", artifact.OrderID),
		zap.String("path", fullPath),
		zap.Int("size", len(artifact.PDFData)))

	return &StoreResult{
		Path: fullPath,
		Size: int64(len(artifact.PDFData)),
	}, nil
}

// BasePath returns the store's root directory.
func (s *FilesystemStore) BasePath() string {
	return s.basePath
}

var _ ArtifactStore = (*FilesystemStore)(nil)
