package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harisha-viswa/hiring-system/internal/delivery/http/response"
	"github.com/harisha-viswa/hiring-system/internal/domain"
	"github.com/harisha-viswa/hiring-system/pkg/apperror"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(candidate *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidate.PUT("/candidates/me", handler.UpsertProfile)
	candidate.GET("/candidates/me", handler.GetProfile)
	candidate.GET("/candidates/resume", handler.DownloadResume)
}

// UpsertProfile creates or replaces the caller's candidate profile from a
// multipart form. The resume PDF is mandatory on every submission so the
// stored profile is always complete.
func (h *CandidateHandler) UpsertProfile(c *gin.Context) {
	principalID := c.GetString(string(domain.KeyPrincipalID))

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

	candidate, err := h.candidateUC.UpsertProfile(c.Request.Context(), principalID, domain.UpsertProfileInput{
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

	response.Success(c, http.StatusOK, "Profile saved", candidate)
}

func (h *CandidateHandler) GetProfile(c *gin.Context) {
	principalID := c.GetString(string(domain.KeyPrincipalID))

	candidate, err := h.candidateUC.ResolveCandidate(c.Request.Context(), principalID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile details", candidate)
}

func (h *CandidateHandler) DownloadResume(c *gin.Context) {
	principalID := c.GetString(string(domain.KeyPrincipalID))

	rc, err := h.candidateUC.OpenResume(c.Request.Context(), principalID)
	if err != nil {
		c.Error(err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}
