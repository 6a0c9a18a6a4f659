package cors

import (
	"net/http"
	"strings"

	corsutil "github.com/NYCU-SDC/summer/pkg/cors"
	"go.uber.org/zap"
)

type Middleware struct {
	logger       *zap.Logger
	allowOrigins []string
}

// NewMiddleware normalizes the configured origins: blanks are dropped and a
// trailing slash is removed, since browsers never send one in Origin.
func NewMiddleware(logger *zap.Logger, allowOrigins []string) Middleware {
	origins := make([]string, 0, len(allowOrigins))
	for _, origin := range allowOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" {
			continue
		}
		if origin == "*" {
			logger.Warn("CORS allows every origin, survey endpoints accept submissions from any site")
		}
		origins = append(origins, origin)
	}

	logger.Info("CORS middleware initialized", zap.Strings("allow_origins", origins))
	return Middleware{
		logger:       logger,
		allowOrigins: origins,
	}
}

func (m Middleware) HandlerFunc(next http.HandlerFunc) http.HandlerFunc {
	return corsutil.CORSMiddleware(next, m.logger, m.allowOrigins)
}

// PreflightHandler answers OPTIONS requests for routes that are registered
// for a single method only.
func (m Middleware) PreflightHandler() http.HandlerFunc {
	return m.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func (m Middleware) AllowOrigins() []string {
	return m.allowOrigins
}
