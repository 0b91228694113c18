package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialjobs/workmatch/internal/domain/entity"
	handler "github.com/socialjobs/workmatch/internal/handler/http"
	dto "github.com/socialjobs/workmatch/internal/handler/http/dto"
	mocks "github.com/socialjobs/workmatch/internal/handler/http/mocks"
	"github.com/socialjobs/workmatch/internal/usecase"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

func setupLifecycleRouter(h *handler.LifecycleHandler, userID string) *gin.Engine {
	r := gin.New()
	g := r.Group("/", withUser(userID))
	g.POST("/jobs/:jobID/save", h.SaveJob)
	g.DELETE("/jobs/:jobID/save", h.UnsaveJob)
	g.POST("/jobs/:jobID/save/toggle", h.ToggleSavedJob)
	g.POST("/jobs/:jobID/apply", h.ApplyToJob)
	g.DELETE("/jobs/:jobID/apply", h.WithdrawApplication)
	g.PUT("/jobs/:jobID/applicants/:applicantID/hired", h.SetHired)
	g.POST("/jobs/:jobID/fully-staffed/toggle", h.ToggleFullyStaffed)
	g.POST("/jobs/:jobID/complete", h.MarkCompleted)
	g.GET("/jobs/:jobID/progress", h.JobProgress)
	return r
}

func TestApplyToJob(t *testing.T) {
	uc := mocks.NewMockLifecycleUsecase()
	r := setupLifecycleRouter(handler.NewLifecycleHandler(uc), "worker-1")

	w := doJSON(r, "POST", "/jobs/job-1/apply", nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "worker-1", uc.LastUserID)
	assert.Equal(t, "job-1", uc.LastJobID)
	assert.Contains(t, w.Body.String(), `"result":"applied"`)
}

func TestApplyToJob_AlreadyApplied(t *testing.T) {
	uc := mocks.NewMockLifecycleUsecase()
	uc.ApplyResult = usecasecontract.ApplyResultAlreadyApplied
	r := setupLifecycleRouter(handler.NewLifecycleHandler(uc), "worker-1")

	w := doJSON(r, "POST", "/jobs/job-1/apply", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already_applied")
}

func TestApplyToJob_ClosedJob(t *testing.T) {
	uc := mocks.NewMockLifecycleUsecase()
	uc.Err = fmt.Errorf("job no longer accepts applications: %w", usecase.ErrInvalidState)
	r := setupLifecycleRouter(handler.NewLifecycleHandler(uc), "worker-1")

	w := doJSON(r, "POST", "/jobs/job-1/apply", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWithdrawApplication_Hired(t *testing.T) {
	uc := mocks.NewMockLifecycleUsecase()
	uc.Err = fmt.Errorf("hired applicants cannot withdraw: %w", usecase.ErrInvalidState)
	r := setupLifecycleRouter(handler.NewLifecycleHandler(uc), "worker-1")

	w := doJSON(r, "DELETE", "/jobs/job-1/apply", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestToggleSavedJob(t *testing.T) {
	uc := mocks.NewMockLifecycleUsecase()
	r := setupLifecycleRouter(handler.NewLifecycleHandler(uc), "worker-1")

	w := doJSON(r, "POST", "/jobs/job-1/save/toggle", dto.ToggleSavedRequest{CurrentlySaved: true})

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.SavedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Saved)
	assert.Equal(t, "job-1", resp.JobID)
}

func TestUnsaveJob(t *testing.T) {
	r := setupLifecycleRouter(handler.NewLifecycleHandler(mocks.NewMockLifecycleUsecase()), "worker-1")

	w := doJSON(r, "DELETE", "/jobs/job-1/save", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"saved":false`)
}

func TestSetHired(t *testing.T) {
	uc := mocks.NewMockLifecycleUsecase()
	r := setupLifecycleRouter(handler.NewLifecycleHandler(uc), "employer-1")

	w := doJSON(r, "PUT", "/jobs/job-1/applicants/worker-9/hired", map[string]bool{"hired": true})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "worker-9", uc.LastApplicantID)
	assert.True(t, uc.LastHired)
	var resp usecasecontract.HireResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.HiredCount)
	assert.Equal(t, 50, resp.Progress)
}

func TestSetHired_MissingFlag(t *testing.T) {
	uc := mocks.NewMockLifecycleUsecase()
	r := setupLifecycleRouter(handler.NewLifecycleHandler(uc), "employer-1")

	w := doJSON(r, "PUT", "/jobs/job-1/applicants/worker-9/hired", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, uc.LastJobID)
}

func TestSetHired_NotOwner(t *testing.T) {
	uc := mocks.NewMockLifecycleUsecase()
	uc.Err = usecase.ErrForbidden
	r := setupLifecycleRouter(handler.NewLifecycleHandler(uc), "someone-else")

	w := doJSON(r, "PUT", "/jobs/job-1/applicants/worker-9/hired", map[string]bool{"hired": false})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestToggleFullyStaffed_ReportsHireNumbers(t *testing.T) {
	r := setupLifecycleRouter(handler.NewLifecycleHandler(mocks.NewMockLifecycleUsecase()), "employer-1")

	w := doJSON(r, "POST", "/jobs/job-1/fully-staffed/toggle", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var state entity.StaffingState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.True(t, state.IsFullyStaffed)
	assert.Equal(t, 1, state.HiredCount)
	assert.Equal(t, 2, state.WorkersNeeded)
}

func TestMarkCompleted_Twice(t *testing.T) {
	uc := mocks.NewMockLifecycleUsecase()
	r := setupLifecycleRouter(handler.NewLifecycleHandler(uc), "employer-1")

	w := doJSON(r, "POST", "/jobs/job-1/complete", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	uc.Err = fmt.Errorf("job already completed: %w", usecase.ErrInvalidState)
	w = doJSON(r, "POST", "/jobs/job-1/complete", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestJobProgress_NotFound(t *testing.T) {
	uc := mocks.NewMockLifecycleUsecase()
	uc.Err = fmt.Errorf("job: %w", usecase.ErrNotFound)
	r := setupLifecycleRouter(handler.NewLifecycleHandler(uc), "")

	w := doJSON(r, "GET", "/jobs/missing/progress", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
