package fingerprint

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	UnknownIP = "unknown"

	SessionCookieName = "sessionId"
)

// Visitor is what the survey pipeline knows about the submitter.
type Visitor struct {
	Fingerprint string
	IP          string
	UserAgent   string
}

type Resolver struct {
	logger *zap.Logger
}

func NewResolver(logger *zap.Logger) *Resolver {
	return &Resolver{
		logger: logger,
	}
}

// Resolve combines the client-supplied fingerprint with the capture context of
// the request. When the client did not send a fingerprint one is derived from
// the user agent, the client IP and the session cookie.
func (r *Resolver) Resolve(req *http.Request, submitted string) Visitor {
	visitor := Visitor{
		Fingerprint: strings.TrimSpace(submitted),
		IP:          ClientIP(req),
		UserAgent:   req.UserAgent(),
	}

	if visitor.Fingerprint == "" {
		sessionID := uuid.New().String()
		cookie, err := req.Cookie(SessionCookieName)
		if err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		}

		visitor.Fingerprint = fmt.Sprintf("%s-%s-%s", visitor.UserAgent, visitor.IP, sessionID)
		r.logger.Debug("No fingerprint submitted, derived one from request", zap.String("ip", visitor.IP))
	}

	return visitor
}

// ClientIP returns the first address in X-Forwarded-For, falling back to
// X-Real-IP and finally to "unknown".
func ClientIP(req *http.Request) string {
	forwarded := req.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}

	realIP := strings.TrimSpace(req.Header.Get("X-Real-IP"))
	if realIP != "" {
		return realIP
	}

	return UnknownIP
}
