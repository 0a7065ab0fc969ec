package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/pkg/apperror"
	"chefdhundo-backend/pkg/cashfree"
	"chefdhundo-backend/pkg/logger"

	"github.com/google/uuid"
)

const (
	orderCurrency = "INR"
	minAmount     = 1

	// The gateway requires a phone; the identity provider does not give one.
	defaultCustomerPhone = "9999999999"

	fallbackAppURL = "https://chefdhundo.vercel.app"
)

// OrderGateway creates hosted checkout orders.
type OrderGateway interface {
	CreateOrder(ctx context.Context, order *cashfree.OrderRequest) (*cashfree.OrderResponse, error)
	Environment() cashfree.Environment
	Configured() bool
}

type PaymentConfig struct {
	AppURL        string
	WebhookSecret string
	VerifyWebhook bool
}

type PaymentUsecase interface {
	CreateOrder(ctx context.Context, identity domain.Identity, req *domain.OrderRequest) (*domain.Order, error)
	// VerifyNotification checks the webhook signature when verification
	// is enabled.
	VerifyNotification(timestamp string, body []byte, signature string) error
	// HandleNotification acknowledges a gateway notification. It records
	// a receipt but never changes any role.
	HandleNotification(ctx context.Context, n *domain.PaymentNotification) error
}

type paymentUsecase struct {
	gateway  OrderGateway
	receipts domain.PaymentReceiptRepository
	cfg      PaymentConfig
	now      func() time.Time
}

// NewPaymentUsecase wires the gateway. receipts may be nil.
func NewPaymentUsecase(gateway OrderGateway, receipts domain.PaymentReceiptRepository, cfg PaymentConfig) PaymentUsecase {
	return &paymentUsecase{gateway: gateway, receipts: receipts, cfg: cfg, now: time.Now}
}

// NewOrderID returns order_<unix ms>_<9 random chars>.
func NewOrderID(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("order_%d_%s", now.UnixMilli(), random[:9])
}

// appURL drops unusable values the way the storefront did.
func (u *paymentUsecase) appURL() string {
	url := strings.TrimRight(u.cfg.AppURL, "/")
	if url == "" || strings.Contains(url, "cashfree.com") {
		logger.Log.Warn("invalid app url, using fallback", "app_url", u.cfg.AppURL)
		return fallbackAppURL
	}
	return url
}

func (u *paymentUsecase) CreateOrder(ctx context.Context, identity domain.Identity, req *domain.OrderRequest) (*domain.Order, error) {
	if req.Amount < minAmount {
		return nil, apperror.BadRequest("Invalid amount. Amount must be at least ₹1.")
	}
	if !u.gateway.Configured() {
		return nil, apperror.New(http.StatusInternalServerError, "Payment gateway is not configured", cashfree.ErrNotConfigured)
	}

	appURL := u.appURL()
	if u.gateway.Environment() == cashfree.Production &&
		strings.HasPrefix(appURL, "http://") && strings.Contains(appURL, "localhost") {
		return nil, apperror.BadRequest("Production credentials detected but using HTTP URLs. Cashfree requires HTTPS in production.")
	}

	orderID := NewOrderID(u.now())
	customerID := identity.UserID
	if customerID == "" {
		customerID = orderID
	}

	order := &cashfree.OrderRequest{
		OrderID:       orderID,
		OrderAmount:   req.Amount,
		OrderCurrency: orderCurrency,
		CustomerDetails: cashfree.CustomerDetails{
			CustomerID:    customerID,
			CustomerName:  identity.Name,
			CustomerEmail: identity.Email,
			CustomerPhone: defaultCustomerPhone,
		},
		OrderMeta: cashfree.OrderMeta{
			ReturnURL: fmt.Sprintf("%s/payment/success?order_id=%s", appURL, orderID),
			NotifyURL: appURL + "/v1/payments/webhook",
		},
		OrderNote: "Upgrade to " + req.PlanName,
		OrderTags: map[string]string{
			"plan_type": req.PlanName,
			"plan_id":   req.PlanID,
		},
	}

	resp, err := u.gateway.CreateOrder(ctx, order)
	if err != nil {
		return nil, gatewayError(err)
	}

	logger.Log.Info("payment order created",
		"order_id", orderID, "amount", req.Amount, "plan", req.PlanName,
		"environment", string(u.gateway.Environment()))
	return &domain.Order{OrderID: orderID, PaymentSessionID: resp.PaymentSessionID}, nil
}

func gatewayError(err error) error {
	var apiErr *cashfree.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized:
			return apperror.New(http.StatusUnauthorized, "Authentication failed", err)
		case http.StatusBadRequest:
			return apperror.New(http.StatusBadRequest, "Invalid order request", err)
		}
	}
	return apperror.BadGateway("Failed to create payment order", err)
}

func (u *paymentUsecase) VerifyNotification(timestamp string, body []byte, signature string) error {
	if !u.cfg.VerifyWebhook {
		return nil
	}
	if err := cashfree.VerifySignature(timestamp, body, signature, u.cfg.WebhookSecret); err != nil {
		return apperror.New(http.StatusUnauthorized, "Invalid webhook signature", err)
	}
	return nil
}

func (u *paymentUsecase) HandleNotification(ctx context.Context, n *domain.PaymentNotification) error {
	attrs := []any{
		"order_id", n.OrderID,
		"amount", n.OrderAmount,
		"reference_id", n.ReferenceID,
		"status", n.TxStatus,
		"message", n.TxMsg,
		"time", n.TxTime,
	}
	switch n.TxStatus {
	case domain.TxSuccess:
		logger.Log.Info("payment successful", attrs...)
	case domain.TxFailed:
		logger.Log.Warn("payment failed", attrs...)
	case domain.TxPending:
		logger.Log.Info("payment pending", attrs...)
	default:
		logger.Log.Warn("payment notification with unknown status", attrs...)
	}

	if u.receipts == nil {
		return nil
	}
	receipt := &domain.PaymentReceipt{
		OrderID:     n.OrderID,
		Amount:      n.OrderAmount,
		ReferenceID: n.ReferenceID,
		Status:      n.TxStatus,
		Message:     n.TxMsg,
		ReportedAt:  n.TxTime,
		ReceivedAt:  u.now().UTC(),
	}
	// The notification is acknowledged even if the audit write fails.
	if err := u.receipts.Save(ctx, receipt); err != nil {
		logger.Log.Error("failed to record payment receipt", "order_id", n.OrderID, "error", err)
	}
	return nil
}
