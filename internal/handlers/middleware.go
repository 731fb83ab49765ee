package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"spaceHub/internal/errs"
	"spaceHub/internal/models"
	"spaceHub/internal/msgs"
	"spaceHub/internal/services"
	"spaceHub/internal/utils"
)

// MustAuthenticateMiddleware requires a valid "Authorization: Bearer <token>" header and
// stores the caller's identity on the context.
func MustAuthenticateMiddleware(authService *services.AuthenticationService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		jwtToken := utils.BearerToken(ctx.GetHeader("Authorization"))
		if jwtToken == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: msgs.MsgYouMustLoginFirst,
				Errors:  []error{errs.ErrUnauthorized},
			})
			return
		}

		claims, err := authService.VerifyToken(jwtToken)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: msgs.MsgYouMustLoginFirst,
				Errors:  []error{errs.ErrInvalidToken},
			})
			return
		}

		ctx.Set(utils.ContextUserID, claims.ID)
		ctx.Set(utils.ContextUserEmail, claims.Email)
		ctx.Set(utils.ContextUsername, claims.Username)
		ctx.Next()
	}
}

// RecoveryMiddleware turns panics into the generic 500 envelope.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(ctx *gin.Context, recovered interface{}) {
		slog.ErrorContext(ctx.Request.Context(), "panic recovered",
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"panic", recovered,
		)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgSomethingWentWrong,
			Errors:  []error{errs.ErrInternal},
		})
	})
}

// RequestLogger logs one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()
		slog.InfoContext(ctx.Request.Context(), "request",
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
			"user_id", utils.GetUserIdFromContext(ctx),
		)
	}
}
