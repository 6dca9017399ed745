package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/config"
)

// CORS configures cross-origin access for the rep app and office portal.
// Origins come from config; with none configured, development allows any
// origin so local front-end work is not blocked, while other environments
// deny all cross-origin requests.
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	isDev := environment == "development" || environment == "local" || environment == ""

	switch {
	case hasWildcardOrigin(cfg.AllowedOrigins):
		if !isDev {
			logger.Warn("CORS wildcard origin outside development",
				zap.String("environment", environment))
		}
		options.AllowOriginFunc = allowAnyOrigin

	case len(cfg.AllowedOrigins) > 0:
		options.AllowedOrigins = cfg.AllowedOrigins
		logger.Info("CORS origins configured",
			zap.Strings("origins", cfg.AllowedOrigins))

	case isDev:
		options.AllowOriginFunc = allowAnyOrigin
		logger.Info("CORS allowing all origins in development")

	default:
		// An empty AllowedOrigins list makes the library default to "*",
		// so denial has to go through AllowOriginFunc.
		options.AllowOriginFunc = func(r *http.Request, origin string) bool {
			return false
		}
		logger.Warn("CORS has no allowed origins, denying all cross-origin requests",
			zap.String("environment", environment))
	}

	return cors.Handler(options)
}

func hasWildcardOrigin(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func allowAnyOrigin(r *http.Request, origin string) bool {
	return origin != ""
}
