package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int `json:"-"`

	Message string `json:"message"`

	err error
}

func (e *Err) Error() string {
	return e.Message
}

func NewErr(statusCode int, message string, err error) *Err {
	return &Err{
		StatusCode: statusCode,
		Message:    message,
		err:        err,
	}
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, err.Error(), err)
}

func ErrUnauthorized(message string) *Err {
	return NewErr(http.StatusUnauthorized, message, nil)
}

func ErrWrongCredentials(err error) *Err {
	return NewErr(http.StatusBadRequest, "Invalid email or password", err)
}

func ErrPermissionDenied(message string) *Err {
	return NewErr(http.StatusForbidden, message, nil)
}

func ErrNotFound(resource, key string, value any) *Err {
	message := fmt.Sprintf("%v not found with %v %v", resource, key, value)

	return NewErr(http.StatusNotFound, message, nil)
}

func ErrDuplicateEmail(err error) *Err {
	return NewErr(http.StatusConflict, "Email is already registered", err)
}

func ErrInternalServerError(err error) *Err {
	return NewErr(http.StatusInternalServerError, "Server error", err)
}

// RenderErr writes the error response. Internals are logged with the wrapped
// cause but only the generic message leaves the server.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode == http.StatusInternalServerError {
		zap.L().Error("server error",
			zap.String("path", ctx.FullPath()),
			zap.Error(err.err),
		)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}
