package httphelper

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/ogsmod/modtool/pkg/json"
	sloggin "github.com/samber/slog-gin"
)

func recoveryHandler() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		slog.Error("Recovery error:", slog.String("err", fmt.Sprintf("%v", err)))

		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Something went wrong",
		})
	})
}

func errorHandler() gin.HandlerFunc {
	// To conform to rfc9457, we need to set the content-type. Calling ctx.JSON() would use the default application/json
	// content type.
	abort := func(ctx *gin.Context, apiError APIError) {
		ctx.Header("Content-Type", problemContentType)
		ctx.Status(apiError.Status)

		body, err := json.Encode(apiError)
		if err != nil {
			ctx.Abort()

			return
		}

		_, _ = ctx.Writer.Write(body)
	}

	return func(ctx *gin.Context) {
		ctx.Next()

		err := ctx.Errors.Last()
		if err == nil {
			return
		}

		ctx.Abort()

		var apiError APIError
		if errors.As(err, &apiError) {
			abort(ctx, apiError)
			if hub := sentrygin.GetHubFromContext(ctx); hub != nil {
				hub.WithScope(func(scope *sentry.Scope) {
					scope.SetExtra("title", apiError.Title)
					scope.SetExtra("detail", apiError.Detail)
					hub.CaptureException(apiError)
				})
			}
		} else {
			abort(ctx, NewAPIError(http.StatusInternalServerError, ErrInternal))
			if hub := sentrygin.GetHubFromContext(ctx); hub != nil {
				hub.WithScope(func(scope *sentry.Scope) {
					scope.SetLevel(sentry.LevelWarning)
					hub.CaptureException(err)
				})
			}
		}

		slog.Error("Error in http handler",
			slog.String("method", ctx.Request.Method),
			slog.String("path", ctx.Request.URL.Path),
			slog.String("error", err.Error()))
	}
}

func useSentry(engine *gin.Engine, version string) {
	engine.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	engine.Use(func(ctx *gin.Context) {
		if hub := sentrygin.GetHubFromContext(ctx); hub != nil {
			hub.Scope().SetTag("version", version)
		}

		ctx.Next()
	})
}

func useSloggin(engine *gin.Engine, level slog.Level) {
	engine.Use(sloggin.NewWithConfig(slog.Default(), sloggin.Config{
		DefaultLevel:     level,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	}))
}
