package v1

import (
	"net/http"

	"chefdhundo-backend/internal/delivery/http/middleware"
	"chefdhundo-backend/internal/delivery/http/response"
	"chefdhundo-backend/internal/usecase"
	"chefdhundo-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// BeginEditRequest opens an editor on one field of the own record.
type BeginEditRequest struct {
	Field string      `json:"field" binding:"required"`
	Value interface{} `json:"value"`
}

type CommitEditRequest struct {
	Field string `json:"field" binding:"required"`
}

type DashboardHandler struct {
	editUC usecase.EditUsecase
}

func NewDashboardHandler(protected *gin.RouterGroup, editUC usecase.EditUsecase) {
	handler := &DashboardHandler{editUC: editUC}

	edit := protected.Group("/dashboard/edit")
	{
		edit.GET("", handler.Session)
		edit.POST("", handler.Begin)
		edit.DELETE("", handler.Cancel)
		edit.POST("/commit", handler.Commit)
	}
}

// Session godoc
// @Summary      Current edit session
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.EditSession}
// @Router       /dashboard/edit [get]
// @Security     BearerAuth
func (h *DashboardHandler) Session(c *gin.Context) {
	session, err := h.editUC.Session(c.Request.Context(), middleware.Identity(c).Email)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Edit session", session)
}

// Begin godoc
// @Summary      Start editing a field
// @Description  Replaces any field already being edited
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        edit  body      BeginEditRequest  true  "Field and pending value"
// @Success      200   {object}  response.Response{data=domain.EditSession}
// @Failure      400   {object}  response.Response
// @Router       /dashboard/edit [post]
// @Security     BearerAuth
func (h *DashboardHandler) Begin(c *gin.Context) {
	var req BeginEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	session, err := h.editUC.BeginEdit(c.Request.Context(), middleware.Identity(c).Email, req.Field, req.Value)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Editing "+req.Field, session)
}

// Cancel godoc
// @Summary      Discard the pending edit
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /dashboard/edit [delete]
// @Security     BearerAuth
func (h *DashboardHandler) Cancel(c *gin.Context) {
	if err := h.editUC.CancelEdit(c.Request.Context(), middleware.Identity(c).Email); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Edit cancelled", nil)
}

// Commit godoc
// @Summary      Save the pending edit
// @Description  Sends the pending value as a one-field update. On failure the value stays pending.
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        commit  body      CommitEditRequest  true  "Field to save"
// @Success      200     {object}  response.Response{data=usecase.CommitResult}
// @Failure      400     {object}  response.Response
// @Failure      502     {object}  response.Response
// @Router       /dashboard/edit/commit [post]
// @Security     BearerAuth
func (h *DashboardHandler) Commit(c *gin.Context) {
	var req CommitEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	result, err := h.editUC.CommitEdit(c.Request.Context(), middleware.Identity(c).Email, req.Field)
	if err != nil {
		c.Error(err)
		return
	}

	message := "Nothing to save"
	if result.Committed {
		message = "Saved"
	}
	response.Success(c, http.StatusOK, message, result)
}
