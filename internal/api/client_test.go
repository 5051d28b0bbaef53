package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ogsmod/modtool/internal/api"
	"github.com/ogsmod/modtool/internal/httphelper"
	"github.com/ogsmod/modtool/internal/moderation"
	"github.com/ogsmod/modtool/internal/sandbox"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

func newSandbox(t *testing.T) (*sandbox.Store, *api.Client) {
	t.Helper()

	store := sandbox.NewStore()
	sandbox.Seed(store)

	server := httptest.NewServer(sandbox.NewRouter(store, sandbox.Opts{Token: testToken}))
	t.Cleanup(server.Close)

	client, errClient := api.New(api.Opts{BaseURL: server.URL + sandbox.BasePath, Token: testToken})
	require.NoError(t, errClient)

	return store, client
}

func TestNewInvalidBaseURL(t *testing.T) {
	for _, baseURL := range []string{"", "ftp://example.com/api", "example.com/api", "http://", "://bad"} {
		_, errClient := api.New(api.Opts{BaseURL: baseURL})
		require.ErrorIs(t, errClient, api.ErrInvalidBaseURL, baseURL)
	}
}

func TestClientAnnul(t *testing.T) {
	store, client := newSandbox(t)

	result, errAnnul := client.Annul(t.Context(), moderation.AnnulRequest{
		Games:          []int64{1001},
		Annul:          true,
		ModerationNote: "player 101 stalled",
	})
	require.NoError(t, errAnnul)
	require.Empty(t, result.Failed)
	require.Equal(t, []string{"player 101 stalled"}, store.Notes(1001))

	game, errGame := store.Game(1001)
	require.NoError(t, errGame)
	require.True(t, game.Annulled)

	locked, errLocked := client.Annul(t.Context(), moderation.AnnulRequest{
		Games:          []int64{sandbox.LockedGameID},
		ModerationNote: "restore",
	})
	require.NoError(t, errLocked)
	require.Equal(t, []int64{sandbox.LockedGameID}, locked.Failed)
}

func TestClientGame(t *testing.T) {
	_, client := newSandbox(t)

	game, errGame := client.Game(t.Context(), 1002)
	require.NoError(t, errGame)
	require.Equal(t, moderation.EngineConfig{
		GameID: 1002,
		Players: moderation.Players{
			Black: moderation.Player{ID: 103, Username: "komi"},
			White: moderation.Player{ID: 104, Username: "tengen"},
		},
	}, game.EngineConfig())

	_, errMissing := client.Game(t.Context(), 4040)
	require.ErrorIs(t, errMissing, httphelper.ErrRequestInvalidCode)

	var apiErr httphelper.APIError
	require.ErrorAs(t, errMissing, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, httphelper.ErrNotFound.Error(), apiErr.Title)
	require.Equal(t, "No game with id 4040", apiErr.Detail)

	_, errInvalid := client.Game(t.Context(), 0)
	require.ErrorIs(t, errInvalid, moderation.ErrInvalidGame)
}

func TestClientIncidents(t *testing.T) {
	_, client := newSandbox(t)

	all, errAll := client.Incidents(t.Context(), api.IncidentQuery{Type: moderation.ReportAll})
	require.NoError(t, errAll)
	require.Len(t, all, 4)

	escaping, errEscaping := client.Incidents(t.Context(), api.IncidentQuery{Type: moderation.ReportEscaping})
	require.NoError(t, errEscaping)
	require.Len(t, escaping, 1)
	require.Equal(t, sandbox.LockedGameID, escaping[0].GameID)

	paged, errPaged := client.Incidents(t.Context(), api.IncidentQuery{Page: 2, PageSize: 3})
	require.NoError(t, errPaged)
	require.Len(t, paged, 1)

	_, errBogus := client.Incidents(t.Context(), api.IncidentQuery{Type: "bogus"})
	require.ErrorIs(t, errBogus, httphelper.ErrRequestInvalidCode)
}

func TestClientUnauthorized(t *testing.T) {
	store := sandbox.NewStore()
	server := httptest.NewServer(sandbox.NewRouter(store, sandbox.Opts{Token: testToken}))
	t.Cleanup(server.Close)

	client, errClient := api.New(api.Opts{BaseURL: server.URL + sandbox.BasePath, Token: "wrong"})
	require.NoError(t, errClient)

	_, errAnnul := client.Annul(t.Context(), moderation.AnnulRequest{Games: []int64{1}, ModerationNote: "x"})

	var apiErr httphelper.APIError
	require.ErrorAs(t, errAnnul, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, httphelper.ErrPermissionDenied.Error(), apiErr.Title)
}

func TestClientRequestShape(t *testing.T) {
	var (
		gotBody    string
		gotHeaders http.Header
		gotPath    string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotHeaders = r.Header.Clone()
		gotPath = r.URL.Path

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"failed":[]}`))
	}))
	t.Cleanup(server.Close)

	client, errClient := api.New(api.Opts{BaseURL: server.URL + "/api/v1", Token: "secret", UserAgent: "modtool-test"})
	require.NoError(t, errClient)

	_, errAnnul := client.Annul(t.Context(), moderation.AnnulRequest{Games: []int64{5}, Annul: true, ModerationNote: "player 1 escaped"})
	require.NoError(t, errAnnul)

	require.Equal(t, "/api/v1/moderation/annul", gotPath)
	require.JSONEq(t, `{"games":[5],"annul":true,"moderation_note":"player 1 escaped"}`, gotBody)
	require.Equal(t, "Bearer secret", gotHeaders.Get("Authorization"))
	require.Equal(t, "modtool-test", gotHeaders.Get("User-Agent"))
	require.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
}

func TestClientErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/games/1":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("<html>not json</html>"))
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream unavailable\n"))
		}
	}))
	t.Cleanup(server.Close)

	client, errClient := api.New(api.Opts{BaseURL: server.URL})
	require.NoError(t, errClient)

	_, errDecode := client.Game(t.Context(), 1)
	require.ErrorIs(t, errDecode, httphelper.ErrRequestDecode)

	_, errPlain := client.Game(t.Context(), 2)
	require.ErrorIs(t, errPlain, httphelper.ErrRequestInvalidCode)

	var apiErr httphelper.APIError
	require.ErrorAs(t, errPlain, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
	require.Equal(t, "Bad Gateway", apiErr.Title)
	require.Equal(t, "upstream unavailable", apiErr.Detail)
	require.Equal(t, "/games/2", apiErr.Instance)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, errCancelled := client.Game(ctx, 1)
	require.ErrorIs(t, errCancelled, httphelper.ErrRequestPerform)
	require.True(t, errors.Is(errCancelled, context.Canceled))
}
