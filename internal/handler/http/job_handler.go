package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialjobs/workmatch/internal/domain/entity"
	"github.com/socialjobs/workmatch/internal/handler/http/dto"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

type JobHandler struct {
	jobUsecase usecasecontract.IJobUseCase
}

func NewJobHandler(jobUsecase usecasecontract.IJobUseCase) *JobHandler {
	return &JobHandler{jobUsecase: jobUsecase}
}

// CreateJob posts a new job for an approved employer.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	job, err := h.jobUsecase.CreateJob(c.Request.Context(), currentUserID(c), req.ToInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, job)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobUsecase.GetJob(c.Request.Context(), c.Param("jobID"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, job)
}

// ListOpenJobs serves the job board: open jobs only, newest first.
func (h *JobHandler) ListOpenJobs(c *gin.Context) {
	var q dto.JobListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return
	}
	if q.Page == 0 {
		q.Page = defaultPage
	}
	if q.PageSize == 0 {
		q.PageSize = defaultPageSize
	}

	jobs, total, err := h.jobUsecase.ListOpenJobs(c.Request.Context(), q.ToFilter())
	if err != nil {
		HandleError(c, err)
		return
	}
	if jobs == nil {
		jobs = []entity.Job{}
	}

	SuccessHandler(c, http.StatusOK, dto.JobListResponse{
		Jobs:       jobs,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: int((total + int64(q.PageSize) - 1) / int64(q.PageSize)),
	})
}

// ListEmployerJobs lists the caller's postings with their hire progress.
func (h *JobHandler) ListEmployerJobs(c *gin.Context) {
	jobs, err := h.jobUsecase.ListEmployerJobs(c.Request.Context(), currentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, jobs)
}

func (h *JobHandler) ListSavedJobs(c *gin.Context) {
	h.listMine(c, h.jobUsecase.ListSavedJobs)
}

func (h *JobHandler) ListAppliedJobs(c *gin.Context) {
	h.listMine(c, h.jobUsecase.ListAppliedJobs)
}

func (h *JobHandler) ListAcceptedJobs(c *gin.Context) {
	h.listMine(c, h.jobUsecase.ListAcceptedJobs)
}

func (h *JobHandler) ListWorkedJobs(c *gin.Context) {
	h.listMine(c, h.jobUsecase.ListWorkedJobs)
}

func (h *JobHandler) listMine(c *gin.Context, list func(context.Context, string) ([]*entity.Job, error)) {
	jobs, err := list(c.Request.Context(), currentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, jobs)
}
