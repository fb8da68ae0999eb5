package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/orderdocs/backend/internal/domain/order"
	"github.com/orderdocs/backend/internal/infrastructure/rendering"
)

const (
	// defaultAPIBaseURL is the public Telegram Bot API endpoint.
	defaultAPIBaseURL = "https://api.telegram.org"
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 1 * 1024 * 1024
)

// BotConfig holds Telegram Bot API settings.
type BotConfig struct {
	Token          string
	GroupChatID    string
	APIBaseURL     string
	TimeoutSeconds int
}

// Validate checks that the configuration is complete.
func (c *BotConfig) Validate() error {
	if c == nil {
		return errors.New("telegram configuration is required")
	}
	if c.Token == "" {
		return errors.New("telegram bot token is required")
	}
	if c.GroupChatID == "" {
		return errors.New("telegram group chat id is required")
	}
	return nil
}

// BotNotifier sends generated documents through the Telegram Bot API.
// Every document goes to the configured group chat; the issuer
// additionally receives a personal copy when the directory maps their
// user ID to a chat.
type BotNotifier struct {
	config     *BotConfig
	httpClient *http.Client
	directory  ChatDirectory
	logger     *zap.Logger
}

// BotNotifierOption is a functional option for configuring BotNotifier.
type BotNotifierOption func(*BotNotifier)

// WithNotifierLogger sets a custom logger for BotNotifier.
func WithNotifierLogger(logger *zap.Logger) BotNotifierOption {
	return func(n *BotNotifier) {
		n.logger = logger
	}
}

// NewBotNotifier creates a notifier with the given configuration.
// directory may be nil, in which case personal copies are never sent.
func NewBotNotifier(config *BotConfig, directory ChatDirectory, opts ...BotNotifierOption) (*BotNotifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	n := &BotNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		directory: directory,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// NotifyOrderDocument sends the rendered document to the group chat and,
// when the issuer has a chat mapping, to the issuer directly. Group
// delivery failures are returned; personal delivery is best-effort and
// only logged, since a blocked bot or missing mapping must not fail the
// order pipeline.
func (n *BotNotifier) NotifyOrderDocument(ctx context.Context, ord *order.Order, jalaliDate string, pdf []byte) error {
	filename := fmt.Sprintf("order_%d.pdf", ord.ID)
	caption := buildCaption(ord, jalaliDate)

	if err := n.sendDocument(ctx, n.config.GroupChatID, caption, filename, pdf); err != nil {
		return fmt.Errorf("failed to send document to group: %w", err)
	}

	n.notifyIssuer(ctx, ord, caption, filename, pdf)
	return nil
}

// notifyIssuer delivers a personal copy to the order's issuer.
func (n *BotNotifier) notifyIssuer(ctx context.Context, ord *order.Order, caption, filename string, pdf []byte) {
	if n.directory == nil {
		return
	}

	target := order.ResolveNotifyTarget(ord.MetaData)
	if target == "" {
		return
	}

	chatID, ok := n.directory.ChatID(target)
	if !ok {
		n.logger.Debug("No telegram chat mapping for issuer",
			zap.Int64("order_id", ord.ID),
			zap.String("user_id", target))
		return
	}
	if chatID == n.config.GroupChatID {
		return
	}

	if err := n.sendDocument(ctx, chatID, caption, filename, pdf); err != nil {
		// The issuer may have blocked the bot or never started a chat.
		n.logger.Warn("Failed to send personal copy",
			zap.Int64("order_id", ord.ID),
			zap.String("chat_id", chatID),
			zap.Error(err))
	}
}

// sendDocument calls the Bot API sendDocument method with a multipart
// upload.
func (n *BotNotifier) sendDocument(ctx context.Context, chatID, caption, filename string, pdf []byte) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("chat_id", chatID); err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if caption != "" {
		if err := writer.WriteField("caption", caption); err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
	}
	part, err := writer.CreateFormFile("document", filename)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if _, err := part.Write(pdf); err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	url := n.apiURL("sendDocument")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call telegram API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		return fmt.Errorf("telegram API returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func (n *BotNotifier) apiURL(method string) string {
	base := n.config.APIBaseURL
	if base == "" {
		base = defaultAPIBaseURL
	}
	return fmt.Sprintf("%s/bot%s/%s", strings.TrimRight(base, "/"), n.config.Token, method)
}

// buildCaption composes the Persian summary attached to the document.
func buildCaption(ord *order.Order, jalaliDate string) string {
	issuer := order.ResolveIssuer(ord.MetaData)

	payment := ord.PaymentMethodTitle
	if payment == "" {
		payment = "نامشخص"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "سفارش شماره %d\n", ord.ID)
	if ord.RequiresShipping() {
		b.WriteString("⚠️ این سفارش نیاز به ارسال دارد\n")
	}
	fmt.Fprintf(&b, "تاریخ: %s\n", jalaliDate)
	if name := ord.Billing.FullName(); name != "" {
		fmt.Fprintf(&b, "مشتری: %s\n", name)
	}
	fmt.Fprintf(&b, "شیوه پرداخت: %s\n", payment)
	fmt.Fprintf(&b, "صادرکننده: %s\n", issuer.Display())
	fmt.Fprintf(&b, "مبلغ کل: %s تومان", rendering.FormatCurrency(ord.Total))
	if len(ord.LineItems) > 0 {
		b.WriteString("\n\nمحصولات:")
		for _, item := range ord.LineItems {
			fmt.Fprintf(&b, "\n▪️ %s (تعداد: %d)", item.Name, item.Quantity)
		}
	}
	return b.String()
}
