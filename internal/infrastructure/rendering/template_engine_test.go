package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdocs/backend/internal/domain/order"
)

func testDocumentData() *DocumentData {
	return &DocumentData{
		Order: &order.Order{
			ID:                 7731,
			Total:              "125000",
			PaymentMethodTitle: "پرداخت آنلاین",
			Billing: order.Contact{
				FirstName: "سارا",
				LastName:  "محمدی",
				Phone:     "09120000000",
			},
			LineItems: []order.LineItem{
				{Name: "کتاب", Quantity: 2, Total: "50000"},
				{Name: "دفتر", Quantity: 1, Total: "75000"},
			},
		},
		Store:      StoreInfo{Name: "فروشگاه نمونه", Phone: "021-12345678"},
		JalaliDate: "1402/08/03",
		Issuer:     "مشتری (خرید آنلاین)",
	}
}

func TestRenderInvoice(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	html, err := engine.RenderInvoice(testDocumentData())
	require.NoError(t, err)

	assert.Contains(t, html, "فاکتور فروش")
	assert.Contains(t, html, "7731")
	assert.Contains(t, html, "1402/08/03")
	assert.Contains(t, html, "مشتری (خرید آنلاین)")
	assert.Contains(t, html, "125,000")
	assert.Contains(t, html, "کتاب")
	assert.Contains(t, html, "سارا محمدی")
}

func TestRenderInvoiceDefaultPaymentMethod(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	data := testDocumentData()
	data.Order.PaymentMethodTitle = ""

	html, err := engine.RenderInvoice(data)
	require.NoError(t, err)
	assert.Contains(t, html, "نامشخص")
}

func TestRenderInvoiceDeterministic(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	data := testDocumentData()
	first, err := engine.RenderInvoice(data)
	require.NoError(t, err)
	second, err := engine.RenderInvoice(data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderPackingSlip(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	tests := []struct {
		name           string
		forcePageBreak bool
	}{
		{name: "without forced break", forcePageBreak: false},
		{name: "with forced break", forcePageBreak: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := &PackingSlipData{
				DocumentData:   *testDocumentData(),
				TotalItems:     3,
				ForcePageBreak: tt.forcePageBreak,
			}

			html, err := engine.RenderPackingSlip(data)
			require.NoError(t, err)

			assert.Contains(t, html, "برگه بسته‌بندی")
			assert.Contains(t, html, "جمع اقلام: 3")
			if tt.forcePageBreak {
				assert.Contains(t, html, `<div class="page-break"></div>`)
			} else {
				assert.NotContains(t, html, "page-break")
			}
		})
	}
}

func TestRenderPackingSlipShippingAddress(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	data := &PackingSlipData{DocumentData: *testDocumentData(), TotalItems: 3}
	data.Order.Shipping = order.Contact{
		FirstName: "رضا",
		LastName:  "کریمی",
		Address1:  "خیابان ولیعصر",
		City:      "تهران",
	}

	html, err := engine.RenderPackingSlip(data)
	require.NoError(t, err)

	assert.Contains(t, html, "نیاز به ارسال")
	assert.Contains(t, html, "رضا کریمی")
	assert.Contains(t, html, "خیابان ولیعصر")
}

func TestRenderStylesheet(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	t.Run("without font", func(t *testing.T) {
		css, err := engine.RenderStylesheet(&StylesheetData{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(css, "<style>"))
		assert.Contains(t, css, "page-break-before: always")
		assert.NotContains(t, css, "@font-face")
	})

	t.Run("with font", func(t *testing.T) {
		css, err := engine.RenderStylesheet(&StylesheetData{FontPath: "fonts/Vazirmatn.woff2"})
		require.NoError(t, err)
		assert.Contains(t, css, "@font-face")
		assert.Contains(t, css, "Vazirmatn.woff2")
	})
}

func TestWrapDocument(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	doc := engine.WrapDocument("<style>body{}</style>", "<div>a</div>", "<div>b</div>")

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, `<meta charset="UTF-8">`)
	assert.Contains(t, doc, "<style>body{}</style>")
	assert.True(t, strings.Index(doc, "<div>a</div>") < strings.Index(doc, "<div>b</div>"))
	assert.True(t, strings.HasSuffix(doc, "</body></html>"))
}
