// Package handler contains the gin HTTP handlers.
package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/orderdocs/backend/internal/application/webhook"
	"github.com/orderdocs/backend/internal/domain/shared"
	"github.com/orderdocs/backend/internal/interfaces/http/dto"
)

// SignatureHeader is the WooCommerce delivery signature header.
const SignatureHeader = "X-WC-Webhook-Signature"

// WebhookProcessor handles one raw webhook delivery.
type WebhookProcessor interface {
	Process(ctx context.Context, body []byte, signature string) (*webhook.Outcome, error)
}

// WebhookHandler receives WooCommerce order deliveries.
type WebhookHandler struct {
	processor WebhookProcessor
	logger    *zap.Logger
}

// NewWebhookHandler creates a webhook handler.
func NewWebhookHandler(processor WebhookProcessor, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{
		processor: processor,
		logger:    logger,
	}
}

// RegisterRoutes registers the webhook endpoints.
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhook/order-created", h.HandleOrderWebhook)
}

// HandleOrderWebhook processes a WooCommerce delivery. The body is read
// raw so the signature check runs over the exact bytes sent, before any
// parsing.
func (h *WebhookHandler) HandleOrderWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		status, resp := dto.FromError(shared.ErrPayloadMalformed.WithCause(err))
		c.JSON(status, resp)
		return
	}

	outcome, err := h.processor.Process(c.Request.Context(), body, c.GetHeader(SignatureHeader))
	if err != nil {
		h.logger.Warn("Webhook processing failed", zap.Error(err))
		status, resp := dto.FromError(err)
		c.JSON(status, resp)
		return
	}

	if outcome.Status == webhook.OutcomePing {
		c.JSON(http.StatusOK, dto.NewPingAck())
		return
	}
	c.JSON(http.StatusOK, dto.NewDeliveredAck(outcome.OrderID, outcome.Path))
}
