package v1

import (
	"net/http"
	"strconv"

	"chefdhundo-backend/internal/delivery/http/middleware"
	"chefdhundo-backend/internal/delivery/http/response"
	"chefdhundo-backend/internal/directory"
	"chefdhundo-backend/internal/usecase"
	"chefdhundo-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ChefHandler struct {
	directoryUC usecase.DirectoryUsecase
}

func NewChefHandler(protected *gin.RouterGroup, directoryUC usecase.DirectoryUsecase) {
	handler := &ChefHandler{directoryUC: directoryUC}

	chefs := protected.Group("/chefs")
	{
		chefs.GET("", handler.List)
		chefs.GET("/professions", handler.Professions)
	}
}

// List godoc
// @Summary      Browse chefs
// @Description  One page of the chef directory. Contact fields are masked unless the viewer has the pro role.
// @Tags         chefs
// @Produce      json
// @Param        search      query     string  false  "Case-insensitive search over name, email, mobile, job type and years"
// @Param        experience  query     string  false  "all, fresher, medium, high or pro"
// @Param        profession  query     string  false  "Job type or all"
// @Param        page        query     int     false  "1-based page, clamped to the last page"
// @Success      200  {object}  response.Response{data=usecase.ChefPage}
// @Failure      400  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /chefs [get]
// @Security     BearerAuth
func (h *ChefHandler) List(c *gin.Context) {
	experience, err := directory.ParseExperience(c.Query("experience"))
	if err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	q := directory.Query{
		Search:     c.Query("search"),
		Experience: experience,
		Profession: c.DefaultQuery("profession", directory.All),
		Page:       page,
	}

	result, err := h.directoryUC.ListChefs(c.Request.Context(), middleware.Identity(c), q)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Chefs", result)
}

// Professions godoc
// @Summary      Profession filter options
// @Tags         chefs
// @Produce      json
// @Success      200  {object}  response.Response{data=[]string}
// @Router       /chefs/professions [get]
// @Security     BearerAuth
func (h *ChefHandler) Professions(c *gin.Context) {
	professions, err := h.directoryUC.Professions(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Professions", professions)
}
