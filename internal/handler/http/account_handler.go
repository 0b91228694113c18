package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialjobs/workmatch/internal/handler/http/dto"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// AccountHandler serves the requests a user files about their own account.
type AccountHandler struct {
	employerUsecase usecasecontract.IEmployerUseCase
	deletionUsecase usecasecontract.IDeletionUseCase
}

func NewAccountHandler(employerUsecase usecasecontract.IEmployerUseCase, deletionUsecase usecasecontract.IDeletionUseCase) *AccountHandler {
	return &AccountHandler{employerUsecase: employerUsecase, deletionUsecase: deletionUsecase}
}

// RequestEmployerRole puts the caller in the employer approval queue.
func (h *AccountHandler) RequestEmployerRole(c *gin.Context) {
	user, err := h.employerUsecase.RequestEmployerRole(c.Request.Context(), currentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusAccepted, dto.ToUserResponse(*user))
}

// RequestDeletion files an account deletion request for admin review.
func (h *AccountHandler) RequestDeletion(c *gin.Context) {
	var req dto.DeletionRequest
	// the body is optional
	if c.Request.ContentLength > 0 {
		if err := BindAndValidate(c, &req); err != nil {
			return
		}
	}

	if err := h.deletionUsecase.RequestDeletion(c.Request.Context(), currentUserID(c), req.Reason); err != nil {
		HandleError(c, err)
		return
	}
	MessageHandler(c, http.StatusAccepted, "Deletion request submitted")
}
