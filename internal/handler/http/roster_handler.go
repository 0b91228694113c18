package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialjobs/workmatch/internal/domain/entity"
	"github.com/socialjobs/workmatch/internal/handler/http/dto"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

type RosterHandler struct {
	roster usecasecontract.IRosterUseCase
}

func NewRosterHandler(roster usecasecontract.IRosterUseCase) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// ListApplicants is visible to the job's employer only.
func (h *RosterHandler) ListApplicants(c *gin.Context) {
	entries, err := h.roster.ListApplicants(c.Request.Context(), currentUserID(c), c.Param("jobID"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, nonNilEntries(entries))
}

func (h *RosterHandler) HiredCount(c *gin.Context) {
	jobID := c.Param("jobID")
	n, err := h.roster.HiredCount(c.Request.Context(), jobID)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.HiredCountResponse{JobID: jobID, HiredCount: n})
}

// CoWorkers lists the other hired workers of a job the caller was hired on.
func (h *RosterHandler) CoWorkers(c *gin.Context) {
	entries, err := h.roster.CoWorkers(c.Request.Context(), currentUserID(c), c.Param("jobID"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, nonNilEntries(entries))
}

func nonNilEntries(entries []*entity.RosterEntry) []*entity.RosterEntry {
	if entries == nil {
		return []*entity.RosterEntry{}
	}
	return entries
}
