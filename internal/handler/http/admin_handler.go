package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialjobs/workmatch/internal/handler/http/dto"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// AdminHandler serves the deletion review queue and employer approvals.
type AdminHandler struct {
	deletionUsecase usecasecontract.IDeletionUseCase
	employerUsecase usecasecontract.IEmployerUseCase
}

func NewAdminHandler(deletionUsecase usecasecontract.IDeletionUseCase, employerUsecase usecasecontract.IEmployerUseCase) *AdminHandler {
	return &AdminHandler{deletionUsecase: deletionUsecase, employerUsecase: employerUsecase}
}

func (h *AdminHandler) ListPendingDeletions(c *gin.Context) {
	users, err := h.deletionUsecase.ListPendingDeletions(c.Request.Context(), currentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponses(users))
}

// ApproveDeletion runs the deletion workflow and reports where it stopped.
func (h *AdminHandler) ApproveDeletion(c *gin.Context) {
	wf, err := h.deletionUsecase.ApproveDeletion(c.Request.Context(), currentUserID(c), c.Param("userID"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, wf)
}

func (h *AdminHandler) RejectDeletion(c *gin.Context) {
	if err := h.deletionUsecase.RejectDeletion(c.Request.Context(), currentUserID(c), c.Param("userID")); err != nil {
		HandleError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Deletion request rejected")
}

func (h *AdminHandler) GetArchive(c *gin.Context) {
	archived, err := h.deletionUsecase.GetArchive(c.Request.Context(), currentUserID(c), c.Param("userID"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, archived)
}

func (h *AdminHandler) ListPendingEmployers(c *gin.Context) {
	users, err := h.employerUsecase.ListPendingEmployers(c.Request.Context(), currentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponses(users))
}

func (h *AdminHandler) ApproveEmployer(c *gin.Context) {
	user, err := h.employerUsecase.ApproveEmployer(c.Request.Context(), currentUserID(c), c.Param("userID"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

func (h *AdminHandler) RejectEmployer(c *gin.Context) {
	user, err := h.employerUsecase.RejectEmployer(c.Request.Context(), currentUserID(c), c.Param("userID"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}
