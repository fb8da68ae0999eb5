package rendering

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/orderdocs/backend/internal/domain/order"
)

// StoreInfo identifies the store on rendered documents.
type StoreInfo struct {
	Name    string
	Phone   string
	Address string
}

// DocumentData is the read-only view-model shared by the invoice and
// packing-slip views. Derived display fields (localized date, issuer)
// are attached exactly once, before either view is rendered; renders
// never write back into the order.
type DocumentData struct {
	Order      *order.Order
	Store      StoreInfo
	JalaliDate string
	Issuer     string
}

// PackingSlipData parameterizes the packing-slip view. TotalItems and
// ForcePageBreak are precomputed by the pipeline; the view itself never
// recomputes pagination.
type PackingSlipData struct {
	DocumentData
	TotalItems     int
	ForcePageBreak bool
}

// StylesheetData parameterizes the shared stylesheet.
type StylesheetData struct {
	FontPath string
}

// TemplateEngine renders the built-in document views with Go's
// html/template and a small formatting function map.
type TemplateEngine struct {
	templates *template.Template
}

// NewTemplateEngine parses the built-in document templates.
func NewTemplateEngine() (*TemplateEngine, error) {
	funcMap := template.FuncMap{
		"currency": FormatCurrency,
		"add1":     func(i int) int { return i + 1 },
		"trim":     strings.TrimSpace,
		"default": func(def string, v string) string {
			if strings.TrimSpace(v) == "" {
				return def
			}
			return v
		},
	}

	t := template.New("documents").Funcs(funcMap)
	for name, content := range map[string]string{
		"invoice":      invoiceTemplate,
		"packing_slip": packingSlipTemplate,
		"stylesheet":   stylesheetTemplate,
	} {
		var err error
		t, err = t.New(name).Parse(content)
		if err != nil {
			return nil, NewRenderError(ErrCodeInvalidHTML, "failed to parse template "+name, err)
		}
	}

	return &TemplateEngine{templates: t}, nil
}

// RenderInvoice renders the invoice view.
func (e *TemplateEngine) RenderInvoice(data *DocumentData) (string, error) {
	return e.execute("invoice", data)
}

// RenderPackingSlip renders the packing-slip view.
func (e *TemplateEngine) RenderPackingSlip(data *PackingSlipData) (string, error) {
	return e.execute("packing_slip", data)
}

// RenderStylesheet renders the shared stylesheet, wrapped in its
// <style> element so contextual escaping applies CSS rules.
func (e *TemplateEngine) RenderStylesheet(data *StylesheetData) (string, error) {
	return e.execute("stylesheet", data)
}

// WrapDocument assembles rendered fragments into a complete document
// shell carrying the shared stylesheet.
func (e *TemplateEngine) WrapDocument(styleBlock string, fragments ...string) string {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html><html><head><meta charset=\"UTF-8\">")
	buf.WriteString(styleBlock)
	buf.WriteString("</head><body>")
	for _, f := range fragments {
		buf.WriteString(f)
	}
	buf.WriteString("</body></html>")
	return buf.String()
}

func (e *TemplateEngine) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template "+name, err)
	}
	return buf.String(), nil
}
