package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialjobs/workmatch/internal/handler/http/dto"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// NotificationHandler serves the user inbox and the admin broadcast console.
type NotificationHandler struct {
	notifications usecasecontract.INotificationUseCase
}

func NewNotificationHandler(notifications usecasecontract.INotificationUseCase) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) ListInbox(c *gin.Context) {
	items, err := h.notifications.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, items)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	n, err := h.notifications.UnreadCount(c.Request.Context(), currentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.CountResponse{Count: n})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notifications.MarkRead(c.Request.Context(), currentUserID(c), c.Param("notificationID")); err != nil {
		HandleError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Notification marked as read")
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	n, err := h.notifications.MarkAllRead(c.Request.Context(), currentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.CountResponse{Count: n})
}

// Broadcast fans an admin message out to every user.
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req dto.BroadcastRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	b, err := h.notifications.Broadcast(c.Request.Context(), currentUserID(c), req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, b)
}

func (h *NotificationHandler) ListBroadcasts(c *gin.Context) {
	items, err := h.notifications.ListBroadcasts(c.Request.Context(), currentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, items)
}

func (h *NotificationHandler) EditBroadcast(c *gin.Context) {
	var req dto.BroadcastRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	b, err := h.notifications.EditNotification(c.Request.Context(), currentUserID(c), c.Param("broadcastID"), req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, b)
}

func (h *NotificationHandler) DeleteBroadcast(c *gin.Context) {
	if err := h.notifications.DeleteNotification(c.Request.Context(), currentUserID(c), c.Param("broadcastID")); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearHistory deletes a batch of broadcasts and their inbox copies.
func (h *NotificationHandler) ClearHistory(c *gin.Context) {
	var req dto.ClearHistoryRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	n, err := h.notifications.ClearHistory(c.Request.Context(), currentUserID(c), req.BroadcastIDs)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ClearHistoryResponse{Deleted: n})
}
