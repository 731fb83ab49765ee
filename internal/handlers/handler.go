package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"spaceHub/internal/errs"
	"spaceHub/internal/models"
	"spaceHub/internal/msgs"
	"spaceHub/internal/utils"
)

// statusFor maps the first error's kind to the response status.
func statusFor(errors []error) int {
	if len(errors) == 0 {
		return http.StatusInternalServerError
	}
	switch errs.KindOf(errors[0]) {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindUnauthorized:
		return http.StatusUnauthorized
	case errs.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// publicErrors logs internal errors and replaces them with errs.ErrInternal so driver and
// storage details never reach clients.
func publicErrors(ctx *gin.Context, errors []error) []error {
	out := make([]error, 0, len(errors))
	internal := false
	for _, err := range errors {
		if errs.KindOf(err) != errs.KindInternal {
			out = append(out, err)
			continue
		}
		slog.ErrorContext(ctx.Request.Context(), "request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		if !internal {
			out = append(out, errs.ErrInternal)
			internal = true
		}
	}
	return out
}

func abortWithErrors(ctx *gin.Context, errors []error) {
	ctx.AbortWithStatusJSON(statusFor(errors), models.Response{
		Success: false,
		Message: msgs.MsgOperationFailed,
		Errors:  publicErrors(ctx, errors),
	})
}

func abortWithError(ctx *gin.Context, err error) {
	abortWithErrors(ctx, []error{err})
}

func respond(ctx *gin.Context, status int, message string, data interface{}) {
	ctx.JSON(status, models.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondOK(ctx *gin.Context, data interface{}) {
	respond(ctx, http.StatusOK, msgs.MsgOperationSuccessful, data)
}

// pathID reads a numeric path parameter, aborting with 400 when it is malformed.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParseID(ctx.Param(name))
	if !ok {
		abortWithError(ctx, errs.ErrInvalidParams)
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body, aborting with 400 on malformed input.
func bindJSON(ctx *gin.Context, body interface{}) bool {
	if err := ctx.ShouldBindJSON(body); err != nil {
		slog.DebugContext(ctx.Request.Context(), "request body binding failed", "error", err)
		abortWithError(ctx, errs.ErrInvalidRequestBody)
		return false
	}
	return true
}
