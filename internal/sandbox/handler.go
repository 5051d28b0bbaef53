package sandbox

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ogsmod/modtool/internal/api"
	"github.com/ogsmod/modtool/internal/httphelper"
	"github.com/ogsmod/modtool/internal/moderation"
)

// BasePath is the prefix all sandbox routes are served under.
const BasePath = "/api/v1"

type handler struct {
	store *Store
}

// NewHandler registers the sandbox routes. When token is non-empty every request must carry it as a bearer token.
func NewHandler(engine *gin.Engine, store *Store, token string) {
	handler := &handler{store: store}

	apiGrp := engine.Group(BasePath)
	{
		authed := apiGrp.Use(requireToken(token))
		authed.POST("/moderation/annul", handler.onAnnul())
		authed.GET("/moderation/incidents", handler.onIncidents())
		authed.GET("/games/:game_id", handler.onGame())
	}
}

func requireToken(token string) gin.HandlerFunc {
	expected := []byte("Bearer " + token)

	return func(ctx *gin.Context) {
		if token == "" {
			ctx.Next()

			return
		}

		if subtle.ConstantTimeCompare([]byte(ctx.GetHeader("Authorization")), expected) != 1 {
			httphelper.SetError(ctx, httphelper.NewAPIErrorf(http.StatusUnauthorized, httphelper.ErrPermissionDenied,
				"Missing or invalid token"))
			ctx.Abort()

			return
		}

		ctx.Next()
	}
}

func (h *handler) onAnnul() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		req, ok := httphelper.BindJSON[moderation.AnnulRequest](ctx)
		if !ok {
			return
		}

		if len(req.Games) == 0 {
			httphelper.SetError(ctx, httphelper.NewAPIErrorf(http.StatusBadRequest, httphelper.ErrBadRequest,
				"games cannot be empty"))

			return
		}

		if strings.TrimSpace(req.ModerationNote) == "" {
			httphelper.SetError(ctx, httphelper.NewAPIErrorf(http.StatusBadRequest, httphelper.ErrBadRequest,
				"moderation_note cannot be empty"))

			return
		}

		ctx.JSON(http.StatusOK, h.store.Annul(req))
	}
}

func (h *handler) onGame() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		gameID, idFound := httphelper.GetInt64Param(ctx, "game_id")
		if !idFound {
			return
		}

		game, errGame := h.store.Game(gameID)
		if errGame != nil {
			if errors.Is(errGame, ErrGameNotFound) {
				httphelper.SetError(ctx, httphelper.NewAPIErrorf(http.StatusNotFound, httphelper.ErrNotFound,
					"No game with id %d", gameID))

				return
			}

			httphelper.SetError(ctx, httphelper.NewAPIError(http.StatusInternalServerError, errors.Join(errGame, httphelper.ErrInternal)))

			return
		}

		ctx.JSON(http.StatusOK, game)
	}
}

func (h *handler) onIncidents() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var query api.IncidentQuery
		if !httphelper.BindQuery(ctx, &query) {
			return
		}

		if query.Type != "" {
			if _, errType := moderation.ParseReportType(string(query.Type)); errType != nil {
				httphelper.SetError(ctx, httphelper.NewAPIErrorf(http.StatusBadRequest, errors.Join(errType, httphelper.ErrBadRequest),
					"Unknown report type: %s", query.Type))

				return
			}
		}

		ctx.JSON(http.StatusOK, h.store.Incidents(query))
	}
}
