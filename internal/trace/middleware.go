package trace

import (
	"net/http"

	"NYCU-SDC/photo-survey-backend/internal/fingerprint"

	traceutil "github.com/NYCU-SDC/summer/pkg/trace"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Middleware struct {
	logger *zap.Logger
	debug  bool
}

func NewMiddleware(logger *zap.Logger, debug bool) *Middleware {
	return &Middleware{
		logger: logger,
		debug:  debug,
	}
}

func (m Middleware) TraceMiddleWare(next http.HandlerFunc) http.HandlerFunc {
	return traceutil.TraceMiddleware(next, m.logger)
}

func (m Middleware) RecoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return traceutil.RecoverMiddleware(next, m.logger, m.debug)
}

// ClientMiddleware tags the request span with the client address and user
// agent the fingerprint resolver will see. It must run inside TraceMiddleWare.
func (m Middleware) ClientMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		span := oteltrace.SpanFromContext(r.Context())
		span.SetAttributes(
			attribute.String("client.address", fingerprint.ClientIP(r)),
			attribute.String("user_agent.original", r.UserAgent()),
		)

		next(w, r)
	}
}
