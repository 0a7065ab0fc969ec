package v1

import (
	"errors"
	"net/http"

	"chefdhundo-backend/internal/delivery/http/response"
	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/pkg/apperror"
	"chefdhundo-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the public contact form route.
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{contactUC: contactUC}
	public.POST("/contact", handler.Submit)
}

// Submit godoc
// @Summary      Submit Contact Form
// @Description  Forwards a visitor message to the support inbox.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact form"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.Error(apperror.Validation(validation.FormatValidationErrors(err)))
			return
		}
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	// The usecase returns AppErrors for caller mistakes; anything else is
	// rendered as a generic 500 by ErrorHandler.
	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Your message has been sent successfully!", nil)
}
