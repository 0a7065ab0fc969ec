package v1

import (
	"net/http"

	"chefdhundo-backend/internal/delivery/http/middleware"
	"chefdhundo-backend/internal/delivery/http/response"
	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/usecase"
	"chefdhundo-backend/pkg/apperror"
	"chefdhundo-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	roleUC usecase.RoleUsecase
}

// MeResponse is the signed-in identity with its resolved role.
type MeResponse struct {
	UserID string           `json:"user_id"`
	Email  string           `json:"email"`
	Name   string           `json:"name"`
	State  domain.RoleState `json:"state"`
}

func NewAccountHandler(protected *gin.RouterGroup, roleUC usecase.RoleUsecase) {
	handler := &AccountHandler{roleUC: roleUC}

	protected.GET("/me", handler.Me)
	protected.POST("/me/signout", handler.SignOut)
	protected.GET("/users", handler.ListUsers)
}

// Me godoc
// @Summary      Current account
// @Description  Resolve the signed-in identity against the user directory
// @Tags         account
// @Produce      json
// @Success      200  {object}  response.Response{data=MeResponse}
// @Failure      401  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /me [get]
// @Security     BearerAuth
func (h *AccountHandler) Me(c *gin.Context) {
	identity := middleware.Identity(c)

	state, err := h.roleUC.Resolve(c.Request.Context(), identity)
	if err != nil {
		c.Error(apperror.BadGateway("Failed to fetch users", err))
		return
	}

	response.Success(c, http.StatusOK, "Current account", MeResponse{
		UserID: identity.UserID,
		Email:  identity.Email,
		Name:   identity.Name,
		State:  state,
	})
}

// SignOut godoc
// @Summary      Forget the resolved role
// @Tags         account
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.RoleState}
// @Router       /me/signout [post]
// @Security     BearerAuth
func (h *AccountHandler) SignOut(c *gin.Context) {
	identity := middleware.Identity(c)
	h.roleUC.Reset(identity)
	response.Success(c, http.StatusOK, "Signed out", h.roleUC.State(identity))
}

// ListUsers godoc
// @Summary      User directory
// @Description  Emails are masked unless the viewer has the pro role
// @Tags         account
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.User}
// @Failure      502  {object}  response.Response
// @Router       /users [get]
// @Security     BearerAuth
func (h *AccountHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()
	identity := middleware.Identity(c)

	users, err := h.roleUC.Users(ctx)
	if err != nil {
		c.Error(apperror.BadGateway("Failed to fetch users", err))
		return
	}

	// Emails stay masked unless the viewer resolves to pro.
	role := h.roleUC.State(identity).Role
	if state, err := h.roleUC.Resolve(ctx, identity); err == nil {
		role = state.Role
	} else {
		logger.Log.Warn("role resolution failed, masking emails", "user_id", identity.UserID, "error", err)
	}

	out := make([]domain.User, len(users))
	for i, u := range users {
		u.Email = domain.MaskEmail(u.Email, role)
		out[i] = u
	}
	response.Success(c, http.StatusOK, "Users", out)
}
