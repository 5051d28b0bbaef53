package sandbox

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogsmod/modtool/internal/httphelper"
	"github.com/ogsmod/modtool/pkg/log"
)

var ErrServe = errors.New("sandbox server failed")

type Opts struct {
	ListenAddr        string
	Token             string
	HTTPLogEnabled    bool
	LogLevel          log.Level
	SentryDSN         string
	Version           string
	CORSOrigins       []string
	PrometheusEnabled bool
}

// NewRouter creates a router serving the sandbox routes backed by store.
func NewRouter(store *Store, opts Opts) *gin.Engine {
	router := httphelper.CreateRouter(httphelper.RouterOpts{
		HTTPLogEnabled:    opts.HTTPLogEnabled,
		LogLevel:          opts.LogLevel,
		Mode:              gin.ReleaseMode,
		SentryDSN:         opts.SentryDSN,
		Version:           opts.Version,
		CORSOrigins:       opts.CORSOrigins,
		PrometheusEnabled: opts.PrometheusEnabled,
	})

	NewHandler(router, store, opts.Token)

	return router
}

// Serve runs the sandbox until ctx is cancelled.
func Serve(ctx context.Context, store *Store, opts Opts) error {
	httpServer := httphelper.NewServer(opts.ListenAddr, NewRouter(store, opts))

	go func() {
		<-ctx.Done()

		slog.Info("Shutting down sandbox")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		if errShutdown := httpServer.Shutdown(shutdownCtx); errShutdown != nil { //nolint:contextcheck
			slog.Error("Error shutting down sandbox", log.ErrAttr(errShutdown))
		}
	}()

	slog.Info("Starting sandbox", slog.String("address", opts.ListenAddr), slog.String("base_path", BasePath))

	errServe := httpServer.ListenAndServe()
	if errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
		return errors.Join(errServe, ErrServe)
	}

	<-ctx.Done()

	return nil
}
