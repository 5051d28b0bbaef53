package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/ogsmod/modtool/internal/httphelper"
	"github.com/ogsmod/modtool/internal/moderation"
)

// GameDetail is the game resource as served by games/{id}. Only the fields moderation needs are decoded.
type GameDetail struct {
	ID       int64              `json:"id"`
	Name     string             `json:"name"`
	Players  moderation.Players `json:"players"`
	Annulled bool               `json:"annulled"`
}

// EngineConfig converts the game resource into the engine configuration used by the moderation workflow.
func (g GameDetail) EngineConfig() moderation.EngineConfig {
	return moderation.EngineConfig{
		GameID:  g.ID,
		Players: g.Players,
	}
}

type IncidentQuery struct {
	Type     moderation.ReportType `url:"type,omitempty"      schema:"type"`
	Page     int                   `url:"page,omitempty"      schema:"page"`
	PageSize int                   `url:"page_size,omitempty" schema:"page_size"`
}

// Incident is a single report filed against a player.
type Incident struct {
	ID         int64                 `json:"id"`
	Type       moderation.ReportType `json:"type"`
	GameID     int64                 `json:"game_id"`
	ReporterID int64                 `json:"reporter_id"`
	ReportedID int64                 `json:"reported_id"`
	Note       string                `json:"note"`
	Created    time.Time             `json:"created"`
}

// Annul requests the games be annulled, or restored when req.Annul is false.
func (c *Client) Annul(ctx context.Context, req moderation.AnnulRequest) (moderation.AnnulResult, error) {
	return request[moderation.AnnulResult](ctx, c, http.MethodPost, "moderation/annul", nil, req)
}

// Game fetches a single game.
func (c *Client) Game(ctx context.Context, gameID int64) (GameDetail, error) {
	if gameID <= 0 {
		return GameDetail{}, moderation.ErrInvalidGame
	}

	return request[GameDetail](ctx, c, http.MethodGet, "games/"+strconv.FormatInt(gameID, 10), nil, nil)
}

// Incidents lists reports, optionally filtered by type. moderation.ReportAll matches every type.
func (c *Client) Incidents(ctx context.Context, filter IncidentQuery) ([]Incident, error) {
	if filter.Type == moderation.ReportAll {
		filter.Type = ""
	}

	values, errValues := query.Values(filter)
	if errValues != nil {
		return nil, errors.Join(errValues, httphelper.ErrRequestCreate)
	}

	return request[[]Incident](ctx, c, http.MethodGet, "moderation/incidents", values, nil)
}
