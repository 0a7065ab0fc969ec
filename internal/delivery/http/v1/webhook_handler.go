package v1

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"chefdhundo-backend/internal/delivery/http/response"
	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/usecase"
	"chefdhundo-backend/pkg/apperror"
	"chefdhundo-backend/pkg/cashfree"
	"chefdhundo-backend/pkg/clerk"
	"chefdhundo-backend/pkg/logger"
	"chefdhundo-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody bounds the bodies read for signature checks.
const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	accountUC usecase.AccountUsecase
	paymentUC usecase.PaymentUsecase
	verifier  *clerk.Verifier
	secLog    *security.SecurityLogger
}

// NewWebhookHandler registers the server-to-server callbacks. verifier may
// be nil when no signing secret is configured; the identity callback then
// answers with a configuration error.
func NewWebhookHandler(public *gin.RouterGroup, accountUC usecase.AccountUsecase, paymentUC usecase.PaymentUsecase, verifier *clerk.Verifier, secLog *security.SecurityLogger) {
	handler := &WebhookHandler{
		accountUC: accountUC,
		paymentUC: paymentUC,
		verifier:  verifier,
		secLog:    secLog,
	}

	public.POST("/webhooks/clerk", handler.Clerk)
	public.POST("/payments/webhook", handler.Payment)
}

func readBody(c *gin.Context) ([]byte, error) {
	return io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
}

// Clerk godoc
// @Summary      Identity provider webhook
// @Description  Provisions a user record on user.created. Signed with Svix headers.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /webhooks/clerk [post]
func (h *WebhookHandler) Clerk(c *gin.Context) {
	if h.verifier == nil {
		c.Error(apperror.New(http.StatusInternalServerError, "Server configuration error", nil))
		return
	}

	body, err := readBody(c)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	if err := h.verifier.Verify(c.Request.Header, body); err != nil {
		h.secLog.LogWebhookRejected(c.Request.Context(), "clerk", c.ClientIP(), response.RequestID(c), err.Error())
		c.Error(apperror.Unauthorized("Invalid webhook signature"))
		return
	}

	var event clerk.Event
	if err := json.Unmarshal(body, &event); err != nil {
		c.Error(apperror.BadRequest("Invalid event payload"))
		return
	}

	user, err := h.accountUC.HandleEvent(c.Request.Context(), &event)
	if err != nil {
		c.Error(apperror.BadGateway("Failed to create user", err))
		return
	}
	if user == nil {
		response.Success(c, http.StatusOK, "Event ignored", nil)
		return
	}

	h.secLog.Log(c.Request.Context(), security.SecurityEvent{
		Event:        security.EventAccountProvisioned,
		SubjectType:  "email",
		SubjectValue: security.HashValue(user.Email),
		RequestID:    response.RequestID(c),
		Details:      map[string]interface{}{"record_id": user.ID},
	})
	response.Success(c, http.StatusOK, "User created", user)
}

// Payment godoc
// @Summary      Payment gateway notification
// @Description  Acknowledges a transaction notification. No role is changed.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        notification  body      domain.PaymentNotification  true  "Notification"
// @Success      200           {object}  response.Response
// @Failure      400           {object}  response.Response
// @Failure      401           {object}  response.Response
// @Router       /payments/webhook [post]
func (h *WebhookHandler) Payment(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	err = h.paymentUC.VerifyNotification(
		c.GetHeader(cashfree.HeaderTimestamp), body, c.GetHeader(cashfree.HeaderSignature))
	if err != nil {
		h.secLog.LogWebhookRejected(c.Request.Context(), "cashfree", c.ClientIP(), response.RequestID(c), "signature mismatch")
		c.Error(err)
		return
	}

	n, err := parseNotification(c.ContentType(), body)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid notification payload"))
		return
	}

	if err := h.paymentUC.HandleNotification(c.Request.Context(), n); err != nil {
		c.Error(err)
		return
	}

	h.secLog.Log(c.Request.Context(), security.SecurityEvent{
		Event:        security.EventPaymentNotified,
		SubjectType:  "order_id",
		SubjectValue: n.OrderID,
		RequestID:    response.RequestID(c),
		Details:      map[string]interface{}{"status": n.TxStatus},
	})
	response.Success(c, http.StatusOK, "Webhook received", nil)
}

// parseNotification accepts the JSON body or the legacy form post.
func parseNotification(contentType string, body []byte) (*domain.PaymentNotification, error) {
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		form, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, err
		}
		amount, _ := strconv.ParseFloat(form.Get("orderAmount"), 64)
		return &domain.PaymentNotification{
			OrderID:     form.Get("orderId"),
			OrderAmount: amount,
			ReferenceID: form.Get("referenceId"),
			TxStatus:    form.Get("txStatus"),
			TxMsg:       form.Get("txMsg"),
			TxTime:      form.Get("txTime"),
		}, nil
	}

	var n domain.PaymentNotification
	if err := json.Unmarshal(body, &n); err != nil {
		logger.Log.Warn("undecodable payment notification", "error", err)
		return nil, err
	}
	return &n, nil
}
