package v1

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/harisha-viswa/hiring-system/internal/delivery/http/response"
	"github.com/harisha-viswa/hiring-system/internal/domain"
	"github.com/harisha-viswa/hiring-system/pkg/apperror"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

// NewJobHandler registers the job catalog routes. Listing and detail are
// public; creation is recruiter-only.
func NewJobHandler(public *gin.RouterGroup, recruiter *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := public.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.GET("/:jobId", handler.GetDetails)
		jobs.GET("/:jobId/description", handler.DownloadDescription)
	}

	recruiter.POST("/jobs", handler.Create)
}

// Create handles a multipart form: posting fields plus the job-description
// PDF. The posting only exists once the PDF is durably stored.
func (h *JobHandler) Create(c *gin.Context) {
	recruiterID := c.GetString(string(domain.KeyPrincipalID))

	salary, err := strconv.ParseFloat(c.PostForm("salary"), 64)
	if err != nil {
		c.Error(apperror.Validation("Salary must be a number"))
		return
	}
	experience, err := strconv.Atoi(c.PostForm("experience_years"))
	if err != nil {
		c.Error(apperror.Validation("Experience years must be a whole number"))
		return
	}

	fileHeader, err := c.FormFile("job_description")
	if err != nil {
		c.Error(apperror.Validation("A job description PDF is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	job, err := h.jobUC.CreateJob(c.Request.Context(), recruiterID, domain.CreateJobInput{
		Role:            c.PostForm("role"),
		Location:        c.PostForm("location"),
		Salary:          salary,
		ExperienceYears: experience,
		DescriptionName: fileHeader.Filename,
		Description:     file,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created successfully", job)
}

func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUC.ListJobs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job list", jobs)
}

func (h *JobHandler) GetDetails(c *gin.Context) {
	jobID, err := parseJobID(c)
	if err != nil {
		c.Error(err)
		return
	}
	job, err := h.jobUC.GetJob(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job details", job)
}

// DownloadDescription streams the stored job-description PDF.
func (h *JobHandler) DownloadDescription(c *gin.Context) {
	jobID, err := parseJobID(c)
	if err != nil {
		c.Error(err)
		return
	}
	rc, err := h.jobUC.OpenJobDescription(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func parseJobID(c *gin.Context) (int64, error) {
	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		return 0, apperror.Validation("Invalid job ID")
	}
	return jobID, nil
}
