package middleware

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap-api/internal/api/handler/v1/response"
)

type AdminChecker interface {
	IsAdmin(ctx context.Context, id uint) (bool, error)
}

// RequireAdmin guards moderation routes. It must run after VerifyJWT.
func RequireAdmin(checker AdminChecker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := ctx.Value(ContextKeyUserID).(uint)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

			return
		}

		isAdmin, err := checker.IsAdmin(ctx.Request.Context(), userID)
		if err != nil {
			err = fmt.Errorf("middleware.RequireAdmin -> checker.IsAdmin -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))

			return
		}

		if !isAdmin {
			response.RenderErr(ctx, response.ErrPermissionDenied("Admin access required"))

			return
		}

		ctx.Next()
	}
}
