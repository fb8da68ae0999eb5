package invoicing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdocs/backend/internal/domain/order"
	"github.com/orderdocs/backend/internal/domain/shared"
	"github.com/orderdocs/backend/internal/infrastructure/rendering"
	"github.com/orderdocs/backend/internal/infrastructure/storage"
)

type fakeRenderer struct {
	lastHTML string
	err      error
}

func (r *fakeRenderer) Render(ctx context.Context, req *rendering.RenderRequest) (*rendering.RenderResult, error) {
	r.lastHTML = req.HTML
	if r.err != nil {
		return nil, r.err
	}
	pages := 1
	if strings.Contains(req.HTML, "page-break") {
		pages = 2
	}
	return &rendering.RenderResult{PDFData: []byte("%PDF-1.4 fake"), PageCount: pages}, nil
}

func (r *fakeRenderer) Close() error { return nil }

type fakeStore struct {
	last *storage.Artifact
	err  error
}

func (s *fakeStore) Store(ctx context.Context, artifact *storage.Artifact) (*storage.StoreResult, error) {
	s.last = artifact
	if s.err != nil {
		return nil, s.err
	}
	return &storage.StoreResult{
		Path: storage.ArtifactPath(artifact.OrderID, artifact.Date),
		Size: int64(len(artifact.PDFData)),
	}, nil
}

type fakeNotifier struct {
	calls int
	pdf   []byte
	err   error
}

func (n *fakeNotifier) NotifyOrderDocument(ctx context.Context, ord *order.Order, jalaliDate string, pdf []byte) error {
	n.calls++
	n.pdf = pdf
	return n.err
}

type serviceFixture struct {
	service  *Service
	measurer *fakeMeasurer
	renderer *fakeRenderer
	store    *fakeStore
	notifier *fakeNotifier
}

func newFixture(t *testing.T, measured rendering.MeasureResult) *serviceFixture {
	t.Helper()

	templates, err := rendering.NewTemplateEngine()
	require.NoError(t, err)

	f := &serviceFixture{
		measurer: &fakeMeasurer{result: &measured},
		renderer: &fakeRenderer{},
		store:    &fakeStore{},
		notifier: &fakeNotifier{},
	}
	f.service = NewService(ServiceParams{
		Templates: templates,
		Estimator: NewPaginationEstimator(f.measurer),
		Renderer:  f.renderer,
		Store:     f.store,
		Notifier:  f.notifier,
		StoreInfo: rendering.StoreInfo{Name: "فروشگاه نمونه"},
	})
	return f
}

func sampleOrder() *order.Order {
	return &order.Order{
		ID:          7731,
		DateCreated: "2023-10-25T14:30:00",
		Total:       "125000",
		LineItems: []order.LineItem{
			{Name: "کتاب", Quantity: 2, Total: "50000"},
			{Name: "دفتر", Quantity: 1, Total: "75000"},
		},
	}
}

func TestGenerateSharedPage(t *testing.T) {
	f := newFixture(t, rendering.MeasureResult{PageCount: 1, ContentHeightMM: 120})

	result, err := f.service.Generate(context.Background(), sampleOrder(), Options{})
	require.NoError(t, err)

	assert.False(t, result.ForcedBreak)
	assert.Equal(t, "1402/08/1402-08-03_7731.pdf", result.Path)
	assert.NotEmpty(t, result.PDFData)

	// both fragments share one shell, no forced break
	assert.Contains(t, f.renderer.lastHTML, "فاکتور فروش")
	assert.Contains(t, f.renderer.lastHTML, "برگه بسته‌بندی")
	assert.NotContains(t, f.renderer.lastHTML, `<div class="page-break"></div>`)
	assert.Equal(t, 1, f.measurer.calls)
}

func TestGenerateForcedBreak(t *testing.T) {
	f := newFixture(t, rendering.MeasureResult{PageCount: 1, ContentHeightMM: 250})

	result, err := f.service.Generate(context.Background(), sampleOrder(), Options{})
	require.NoError(t, err)

	assert.True(t, result.ForcedBreak)
	assert.Contains(t, f.renderer.lastHTML, `<div class="page-break"></div>`)
}

func TestGenerateMultiPageInvoiceForcesBreak(t *testing.T) {
	// invoice alone spills past one page; measured height is stale
	f := newFixture(t, rendering.MeasureResult{PageCount: 2, ContentHeightMM: 30})

	result, err := f.service.Generate(context.Background(), sampleOrder(), Options{})
	require.NoError(t, err)
	assert.True(t, result.ForcedBreak)
}

func TestGenerateSkipPackingSlip(t *testing.T) {
	f := newFixture(t, rendering.MeasureResult{PageCount: 1, ContentHeightMM: 250})

	result, err := f.service.Generate(context.Background(), sampleOrder(), Options{SkipPackingSlip: true})
	require.NoError(t, err)

	assert.False(t, result.ForcedBreak)
	assert.Equal(t, 0, f.measurer.calls)
	assert.NotContains(t, f.renderer.lastHTML, "برگه بسته‌بندی")
}

func TestGenerateInvalidOrder(t *testing.T) {
	f := newFixture(t, rendering.MeasureResult{PageCount: 1, ContentHeightMM: 120})

	_, err := f.service.Generate(context.Background(), &order.Order{}, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrOrderInvalid))
	assert.Nil(t, f.store.last)
}

func TestGenerateUnparseableDateFallsBackToToday(t *testing.T) {
	f := newFixture(t, rendering.MeasureResult{PageCount: 1, ContentHeightMM: 120})

	ord := sampleOrder()
	ord.DateCreated = "not-a-date"

	result, err := f.service.Generate(context.Background(), ord, Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.Path, "_7731.pdf"))
}

func TestGenerateRenderFailure(t *testing.T) {
	f := newFixture(t, rendering.MeasureResult{PageCount: 1, ContentHeightMM: 120})
	f.renderer.err = errors.New("chrome crashed")

	_, err := f.service.Generate(context.Background(), sampleOrder(), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrRenderFailed))
}

func TestGenerateStoreFailure(t *testing.T) {
	f := newFixture(t, rendering.MeasureResult{PageCount: 1, ContentHeightMM: 120})
	f.store.err = errors.New("disk full")

	_, err := f.service.Generate(context.Background(), sampleOrder(), Options{})
	assert.Error(t, err)
	assert.Equal(t, 0, f.notifier.calls)
}

func TestGenerateNotifierFailureDoesNotFail(t *testing.T) {
	f := newFixture(t, rendering.MeasureResult{PageCount: 1, ContentHeightMM: 120})
	f.notifier.err = errors.New("telegram unreachable")

	result, err := f.service.Generate(context.Background(), sampleOrder(), Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Path)
	assert.Equal(t, 1, f.notifier.calls)
}

func TestGenerateNotifierReceivesPDF(t *testing.T) {
	f := newFixture(t, rendering.MeasureResult{PageCount: 1, ContentHeightMM: 120})

	result, err := f.service.Generate(context.Background(), sampleOrder(), Options{})
	require.NoError(t, err)
	assert.Equal(t, result.PDFData, f.notifier.pdf)
}
