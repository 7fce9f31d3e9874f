package v1

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap-api/internal/api/middleware"
)

var errMissingUserID = errors.New("user ID is missing from the request context")

// getUserIDFromContext reads the authenticated user's ID set by the JWT
// middleware.
func getUserIDFromContext(ctx *gin.Context) (uint, error) {
	userID, ok := ctx.Value(middleware.ContextKeyUserID).(uint)
	if !ok {
		return 0, errMissingUserID
	}

	return userID, nil
}
