package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdocs/backend/internal/application/webhook"
	"github.com/orderdocs/backend/internal/domain/shared"
	"github.com/orderdocs/backend/internal/interfaces/http/router"
)

type fakeProcessor struct {
	lastBody      []byte
	lastSignature string
	outcome       *webhook.Outcome
	err           error
}

func (p *fakeProcessor) Process(ctx context.Context, body []byte, signature string) (*webhook.Outcome, error) {
	p.lastBody = body
	p.lastSignature = signature
	if p.err != nil {
		return nil, p.err
	}
	return p.outcome, nil
}

func setupRouter(t *testing.T, processor *fakeProcessor) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	router.NewRouter(engine).
		Register(NewWebhookHandler(processor, nil)).
		Register(NewHealthHandler("test")).
		Setup()
	return engine
}

func postWebhook(engine *gin.Engine, body, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/order-created", strings.NewReader(body))
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHandleOrderWebhookDelivered(t *testing.T) {
	processor := &fakeProcessor{outcome: &webhook.Outcome{
		Status:  webhook.OutcomeDelivered,
		OrderID: 7731,
		Path:    "1402/08/1402-08-03_7731.pdf",
	}}
	engine := setupRouter(t, processor)

	w := postWebhook(engine, `{"id":7731}`, "sig-value")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, `{"id":7731}`, string(processor.lastBody))
	assert.Equal(t, "sig-value", processor.lastSignature)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "PDF generated for order 7731", resp["message"])
	assert.Equal(t, "1402/08/1402-08-03_7731.pdf", resp["path"])
	assert.NotContains(t, resp, "error")
	assert.NotContains(t, resp, "data")
}

func TestHandleOrderWebhookPing(t *testing.T) {
	processor := &fakeProcessor{outcome: &webhook.Outcome{
		Status:    webhook.OutcomePing,
		WebhookID: "12",
	}}
	engine := setupRouter(t, processor)

	w := postWebhook(engine, "webhook_id=12", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ping", resp["status"])
	assert.NotEmpty(t, resp["message"])
	assert.NotContains(t, resp, "path")
}

func TestHandleOrderWebhookErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "bad signature", err: shared.ErrSignatureInvalid, wantStatus: http.StatusUnauthorized, wantError: "Webhook signature verification failed"},
		{name: "malformed payload", err: shared.ErrPayloadMalformed, wantStatus: http.StatusBadRequest, wantError: "Payload could not be parsed as JSON or form data"},
		{name: "invalid order", err: shared.ErrOrderInvalid, wantStatus: http.StatusBadRequest, wantError: "Order payload has no identifier"},
		{name: "render failure", err: shared.ErrRenderFailed, wantStatus: http.StatusInternalServerError, wantError: "Document rendering failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := setupRouter(t, &fakeProcessor{err: tt.err})

			w := postWebhook(engine, `{}`, "")
			assert.Equal(t, tt.wantStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp["error"])
			assert.NotContains(t, resp, "status")
		})
	}
}

func TestHealth(t *testing.T) {
	engine := setupRouter(t, &fakeProcessor{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
