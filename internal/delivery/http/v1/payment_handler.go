package v1

import (
	"net/http"

	"chefdhundo-backend/internal/delivery/http/middleware"
	"chefdhundo-backend/internal/delivery/http/response"
	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/usecase"
	"chefdhundo-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentUC usecase.PaymentUsecase
}

func NewPaymentHandler(protected *gin.RouterGroup, paymentUC usecase.PaymentUsecase) {
	handler := &PaymentHandler{paymentUC: paymentUC}
	protected.POST("/payments/orders", handler.CreateOrder)
}

// CreateOrder godoc
// @Summary      Start a plan upgrade checkout
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        order  body      domain.OrderRequest  true  "Plan and amount"
// @Success      200    {object}  response.Response{data=domain.Order}
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      502    {object}  response.Response
// @Router       /payments/orders [post]
// @Security     BearerAuth
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req domain.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Missing required fields: amount and planName"))
		return
	}

	order, err := h.paymentUC.CreateOrder(c.Request.Context(), middleware.Identity(c), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Order created", order)
}
