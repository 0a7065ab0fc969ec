package v1

import (
	"errors"
	"net/http"

	"chefdhundo-backend/internal/delivery/http/middleware"
	"chefdhundo-backend/internal/delivery/http/response"
	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/usecase"
	"chefdhundo-backend/pkg/apperror"
	"chefdhundo-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumeUC usecase.ResumeUsecase
	secLog   *security.SecurityLogger
}

func NewResumeHandler(protected *gin.RouterGroup, resumeUC usecase.ResumeUsecase, secLog *security.SecurityLogger) {
	handler := &ResumeHandler{resumeUC: resumeUC, secLog: secLog}

	resumes := protected.Group("/resumes")
	{
		resumes.POST("", handler.Submit)
		resumes.GET("/me", handler.GetOwn)
		resumes.PUT("/:id", handler.Update)
	}
}

// Submit godoc
// @Summary      Submit a resume
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        resume  body      domain.ResumeSubmission  true  "Resume form"
// @Success      201     {object}  response.Response{data=domain.Candidate}
// @Failure      400     {object}  response.Response
// @Failure      502     {object}  response.Response
// @Router       /resumes [post]
// @Security     BearerAuth
func (h *ResumeHandler) Submit(c *gin.Context) {
	var req domain.ResumeSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	candidate, err := h.resumeUC.Submit(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Resume submitted successfully", candidate)
}

// GetOwn godoc
// @Summary      Own resume
// @Description  The caller's own record, unmasked
// @Tags         resumes
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      404  {object}  response.Response
// @Router       /resumes/me [get]
// @Security     BearerAuth
func (h *ResumeHandler) GetOwn(c *gin.Context) {
	candidate, err := h.resumeUC.GetOwn(c.Request.Context(), middleware.Identity(c).Email)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume", candidate)
}

// Update godoc
// @Summary      Update own resume
// @Description  Partial update; only the fields present are changed
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        id     path      string                 true  "Record id"
// @Param        patch  body      domain.CandidatePatch  true  "Fields to change"
// @Success      200    {object}  response.Response{data=domain.Candidate}
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /resumes/{id} [put]
// @Security     BearerAuth
func (h *ResumeHandler) Update(c *gin.Context) {
	var patch domain.CandidatePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	identity := middleware.Identity(c)
	id := c.Param("id")

	candidate, err := h.resumeUC.UpdateOwn(c.Request.Context(), identity.Email, id, patch)
	if err != nil {
		if errors.Is(err, usecase.ErrNotOwner) {
			h.secLog.LogForbiddenRecord(c.Request.Context(), identity.Email, id, c.ClientIP(), response.RequestID(c))
		}
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume updated successfully", candidate)
}
