package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialjobs/workmatch/internal/handler/http/dto"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// LifecycleHandler exposes the worker and employer transitions on a job.
type LifecycleHandler struct {
	lifecycle usecasecontract.IJobLifecycleUseCase
}

func NewLifecycleHandler(lifecycle usecasecontract.IJobLifecycleUseCase) *LifecycleHandler {
	return &LifecycleHandler{lifecycle: lifecycle}
}

func (h *LifecycleHandler) SaveJob(c *gin.Context) {
	jobID := c.Param("jobID")
	if err := h.lifecycle.SaveJob(c.Request.Context(), currentUserID(c), jobID); err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.SavedResponse{JobID: jobID, Saved: true})
}

func (h *LifecycleHandler) UnsaveJob(c *gin.Context) {
	jobID := c.Param("jobID")
	if err := h.lifecycle.UnsaveJob(c.Request.Context(), currentUserID(c), jobID); err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.SavedResponse{JobID: jobID, Saved: false})
}

// ToggleSavedJob flips the saved state the client last displayed.
func (h *LifecycleHandler) ToggleSavedJob(c *gin.Context) {
	var req dto.ToggleSavedRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	jobID := c.Param("jobID")
	saved, err := h.lifecycle.ToggleSavedJob(c.Request.Context(), currentUserID(c), jobID, req.CurrentlySaved)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.SavedResponse{JobID: jobID, Saved: saved})
}

// ApplyToJob answers 201 for a new application and 200 when the caller had
// already applied.
func (h *LifecycleHandler) ApplyToJob(c *gin.Context) {
	jobID := c.Param("jobID")
	result, err := h.lifecycle.ApplyToJob(c.Request.Context(), currentUserID(c), jobID)
	if err != nil {
		HandleError(c, err)
		return
	}
	status := http.StatusCreated
	if result == usecasecontract.ApplyResultAlreadyApplied {
		status = http.StatusOK
	}
	SuccessHandler(c, status, dto.ApplyResponse{JobID: jobID, Result: string(result)})
}

func (h *LifecycleHandler) WithdrawApplication(c *gin.Context) {
	if err := h.lifecycle.WithdrawApplication(c.Request.Context(), currentUserID(c), c.Param("jobID")); err != nil {
		HandleError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Application withdrawn")
}

func (h *LifecycleHandler) SetHired(c *gin.Context) {
	var req dto.SetHiredRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	result, err := h.lifecycle.SetHired(c.Request.Context(), currentUserID(c), c.Param("jobID"), c.Param("applicantID"), *req.Hired)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, result)
}

func (h *LifecycleHandler) ToggleFullyStaffed(c *gin.Context) {
	state, err := h.lifecycle.ToggleFullyStaffed(c.Request.Context(), currentUserID(c), c.Param("jobID"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, state)
}

func (h *LifecycleHandler) MarkCompleted(c *gin.Context) {
	job, err := h.lifecycle.MarkCompleted(c.Request.Context(), currentUserID(c), c.Param("jobID"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, job)
}

func (h *LifecycleHandler) JobProgress(c *gin.Context) {
	progress, err := h.lifecycle.JobProgress(c.Request.Context(), c.Param("jobID"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, progress)
}
