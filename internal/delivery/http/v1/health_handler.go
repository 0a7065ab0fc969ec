package v1

import (
	"net/http"

	"chefdhundo-backend/internal/delivery/http/response"
	"chefdhundo-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(public *gin.RouterGroup, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	public.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Health check
// @Description  Reports which backing services are configured and reachable
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.healthUC.Check(c.Request.Context())
	message := "System operational"
	if status["status"] != "ok" {
		message = "System degraded"
	}
	response.Success(c, http.StatusOK, message, status)
}
