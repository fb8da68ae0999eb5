// Command backup exports every order in the WooCommerce store as an
// invoice-only PDF and packs the result into a zip archive.
package main

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/orderdocs/backend/internal/application/invoicing"
	"github.com/orderdocs/backend/internal/infrastructure/config"
	"github.com/orderdocs/backend/internal/infrastructure/logger"
	"github.com/orderdocs/backend/internal/infrastructure/rendering"
	"github.com/orderdocs/backend/internal/infrastructure/storage"
	"github.com/orderdocs/backend/internal/infrastructure/woocommerce"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := woocommerce.NewClient(&woocommerce.Config{
		BaseURL:        cfg.WooCommerce.BaseURL,
		ConsumerKey:    cfg.WooCommerce.ConsumerKey,
		ConsumerSecret: cfg.WooCommerce.ConsumerSecret,
		TimeoutSeconds: cfg.WooCommerce.TimeoutSeconds,
	}, woocommerce.WithClientLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize woocommerce client", zap.Error(err))
	}

	renderer, err := rendering.NewChromedpRenderer(&rendering.ChromedpConfig{
		DefaultTimeout: cfg.Render.Timeout,
		RemoteURL:      cfg.Render.RemoteURL,
		NoSandbox:      cfg.Render.NoSandbox,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize renderer", zap.Error(err))
	}
	defer func() {
		_ = renderer.Close()
	}()

	templates, err := rendering.NewTemplateEngine()
	if err != nil {
		log.Fatal("Failed to parse document templates", zap.Error(err))
	}

	store := storage.NewFilesystemStore(cfg.Backup.OutputDir, storage.WithFilesystemLogger(log))
	service := invoicing.NewService(invoicing.ServiceParams{
		Templates: templates,
		Estimator: invoicing.NewPaginationEstimator(renderer),
		Renderer:  renderer,
		Store:     store,
		StoreInfo: rendering.StoreInfo{
			Name:    cfg.Store.Name,
			Phone:   cfg.Store.Phone,
			Address: cfg.Store.Address,
		},
		FontPath: cfg.Render.FontPath,
		Logger:   log,
	})

	log.Info("Fetching order history", zap.String("store", cfg.WooCommerce.BaseURL))
	orders, err := client.FetchAllOrders(ctx)
	if err != nil {
		log.Fatal("Failed to fetch orders", zap.Error(err))
	}
	log.Info("Fetched orders", zap.Int("count", len(orders)))

	generated, failed := 0, 0
	for i := range orders {
		if ctx.Err() != nil {
			log.Warn("Export interrupted", zap.Int("generated", generated))
			break
		}
		// packing slips add nothing to an archive export
		_, err := service.Generate(ctx, &orders[i], invoicing.Options{SkipPackingSlip: true})
		if err != nil {
			failed++
			log.Warn("Failed to generate document",
				zap.Int64("order_id", orders[i].ID),
				zap.Error(err))
			continue
		}
		generated++
	}
	log.Info("Export complete", zap.Int("generated", generated), zap.Int("failed", failed))

	if generated > 0 {
		if err := zipDirectory(cfg.Backup.OutputDir, cfg.Backup.ArchivePath); err != nil {
			log.Fatal("Failed to create archive", zap.Error(err))
		}
		log.Info("Archive written", zap.String("path", cfg.Backup.ArchivePath))
	}
}

// zipDirectory packs the contents of dir into a zip archive at dest.
func zipDirectory(dir, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	zw := zip.NewWriter(out)

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() {
			_ = f.Close()
		}()
		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		_ = zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return out.Close()
}
