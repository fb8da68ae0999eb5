package webhook

import (
	"context"

	"go.uber.org/zap"

	"github.com/orderdocs/backend/internal/application/invoicing"
	"github.com/orderdocs/backend/internal/domain/order"
	"github.com/orderdocs/backend/internal/domain/shared"
)

// DocumentGenerator produces and stores the document for an order event.
type DocumentGenerator interface {
	Generate(ctx context.Context, ord *order.Order, opts invoicing.Options) (*invoicing.Result, error)
}

// OutcomeStatus names how a delivery was handled.
type OutcomeStatus string

const (
	// OutcomePing acknowledges a handshake delivery.
	OutcomePing OutcomeStatus = "ping"
	// OutcomeDelivered reports a generated and stored document.
	OutcomeDelivered OutcomeStatus = "delivered"
)

// Outcome reports the result of processing one delivery.
type Outcome struct {
	Status    OutcomeStatus
	WebhookID string
	OrderID   int64
	Path      string
}

// Service is the ingestion gate for WooCommerce deliveries: it verifies
// the signature, classifies the payload, and hands order events to the
// document pipeline.
type Service struct {
	secret    string
	generator DocumentGenerator
	logger    *zap.Logger
}

// NewService creates the ingestion service. An empty secret disables
// signature verification.
func NewService(secret string, generator DocumentGenerator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		secret:    secret,
		generator: generator,
		logger:    logger,
	}
}

// Process handles one raw delivery. The signature is checked against
// the exact bytes received, before any parsing.
func (s *Service) Process(ctx context.Context, body []byte, signature string) (*Outcome, error) {
	if err := VerifySignature(s.secret, body, signature); err != nil {
		s.logger.Warn("Rejected delivery with bad signature")
		return nil, err
	}

	payload, err := Classify(body)
	if err != nil {
		return nil, err
	}

	switch payload.Kind {
	case PayloadPing:
		s.logger.Info("Acknowledged webhook handshake",
			zap.String("webhook_id", payload.WebhookID))
		return &Outcome{Status: OutcomePing, WebhookID: payload.WebhookID}, nil

	case PayloadOrder:
		result, err := s.generator.Generate(ctx, payload.Order, invoicing.Options{})
		if err != nil {
			return nil, err
		}
		return &Outcome{
			Status:  OutcomeDelivered,
			OrderID: payload.Order.ID,
			Path:    result.Path,
		}, nil

	default:
		return nil, shared.ErrPayloadMalformed
	}
}
