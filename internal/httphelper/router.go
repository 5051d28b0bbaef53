package httphelper

import (
	"log/slog"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ogsmod/modtool/pkg/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOpts struct {
	HTTPLogEnabled    bool
	LogLevel          log.Level
	Mode              string
	SentryDSN         string
	Version           string
	CORSOrigins       []string
	PrometheusEnabled bool
}

// CreateRouter constructs a new router using gin.Engine with the provided RouterOpts.
func CreateRouter(opts RouterOpts) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(recoveryHandler())
	engine.Use(errorHandler())

	if opts.HTTPLogEnabled {
		useSloggin(engine, log.ToSlogLevel(opts.LogLevel))
	}

	if opts.SentryDSN != "" {
		useSentry(engine, opts.Version)
	}

	if len(opts.CORSOrigins) > 0 {
		useCors(engine, opts.CORSOrigins, opts.Version)
	}

	if opts.PrometheusEnabled {
		usePrometheus(engine)
	}

	return engine
}

func useCors(engine *gin.Engine, origins []string, version string) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = origins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.ExposeHeaders = append(corsConfig.ExposeHeaders, "Modtool-Version")
	corsConfig.AllowWildcard = true

	engine.Use(cors.New(corsConfig))
	engine.Use(func(ctx *gin.Context) {
		ctx.Header("Modtool-Version", version)
		ctx.Next()
	})

	slog.Debug("CORS enabled", slog.Any("origins", origins))
}

// usePrometheus instruments every route and serves the default registry on /metrics. Only one instrumented
// router may exist per process since the collectors are registered globally.
func usePrometheus(engine *gin.Engine) {
	prom := ginprom.New(func(prom *ginprom.Prometheus) {
		prom.Namespace = "modtool"
		prom.Subsystem = "sandbox"
	})
	engine.Use(prom.Instrument())
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
