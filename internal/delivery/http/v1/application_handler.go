package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harisha-viswa/hiring-system/internal/delivery/http/response"
	"github.com/harisha-viswa/hiring-system/internal/domain"
	"github.com/harisha-viswa/hiring-system/pkg/apperror"
)

type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

// NewApplicationHandler registers the ledger routes on the candidate and
// recruiter groups.
func NewApplicationHandler(candidate *gin.RouterGroup, recruiter *gin.RouterGroup, appUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{appUC: appUC}

	candidate.POST("/candidates/jobs/:jobId/apply", handler.Apply)
	candidate.POST("/candidates/jobs/:jobId/cancel", handler.Cancel)
	candidate.GET("/candidates/applications", handler.ListMine)

	recruiter.GET("/recruiters/jobs/:jobId/applicants", handler.ListApplicants)
	recruiter.POST("/recruiters/jobs/:jobId/applicants/:candidateId/decision", handler.RecordDecision)
}

// Apply submits an application. The form carries the full contact snapshot
// and resume for this application; later profile edits do not touch what was
// submitted here.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	principalID := c.GetString(string(domain.KeyPrincipalID))

	jobID, err := parseJobID(c)
	if err != nil {
		c.Error(err)
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		c.Error(apperror.Validation("A resume PDF is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	app, err := h.appUC.Apply(c.Request.Context(), principalID, jobID, domain.ApplyInput{
		FullName:   c.PostForm("full_name"),
		Email:      c.PostForm("email"),
		Phone:      c.PostForm("phone"),
		ResumeName: fileHeader.Filename,
		Resume:     file,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

func (h *ApplicationHandler) Cancel(c *gin.Context) {
	principalID := c.GetString(string(domain.KeyPrincipalID))

	jobID, err := parseJobID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.appUC.Cancel(c.Request.Context(), principalID, jobID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application cancelled", nil)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	principalID := c.GetString(string(domain.KeyPrincipalID))

	apps, err := h.appUC.ListMyApplications(c.Request.Context(), principalID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application list", apps)
}

func (h *ApplicationHandler) ListApplicants(c *gin.Context) {
	recruiterID := c.GetString(string(domain.KeyPrincipalID))

	jobID, err := parseJobID(c)
	if err != nil {
		c.Error(err)
		return
	}

	apps, err := h.appUC.ListApplicantsForJob(c.Request.Context(), recruiterID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applicant list", apps)
}

type decisionRequest struct {
	Decision string `json:"decision" binding:"required"`
}

func (h *ApplicationHandler) RecordDecision(c *gin.Context) {
	recruiterID := c.GetString(string(domain.KeyPrincipalID))

	jobID, err := parseJobID(c)
	if err != nil {
		c.Error(err)
		return
	}
	candidateID := c.Param("candidateId")

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("A decision is required"))
		return
	}

	if err := h.appUC.RecordDecision(c.Request.Context(), recruiterID, jobID, candidateID, req.Decision); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Decision recorded", nil)
}
