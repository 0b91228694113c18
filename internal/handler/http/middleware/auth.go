package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/socialjobs/workmatch/internal/domain/entity"
	"github.com/socialjobs/workmatch/internal/handler/http/dto"
	"github.com/socialjobs/workmatch/internal/usecase"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// Context keys set by AuthMiddleWare.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// accessTokenParam carries the token for browser WebSocket clients, which
// cannot set an Authorization header.
const accessTokenParam = "access_token"

// AuthMiddleWare resolves the bearer token to a live user and stores its id
// and role on the context.
func AuthMiddleWare(userUsecase usecasecontract.IUserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "missing or malformed authorization header"})
			return
		}

		user, err := userUsecase.Authenticate(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			msg := "invalid or expired token"
			if errors.Is(err, usecase.ErrBackendUnavailable) {
				status = http.StatusServiceUnavailable
				msg = "service temporarily unavailable"
			}
			c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: msg})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, string(user.Role))
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if t := c.Query(accessTokenParam); t != "" {
			return t, true
		}
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// AdminOnly rejects callers whose role is not admin. It must run after
// AuthMiddleWare. The use cases check the role again against the store.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != string(entity.UserRoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "admin access required"})
			return
		}
		c.Next()
	}
}
