package fingerprint

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolver_Resolve(t *testing.T) {
	testCases := []struct {
		name      string
		submitted string
		setup     func(r *http.Request)
		validate  func(t *testing.T, v Visitor)
	}{
		{
			name:      "Submitted fingerprint is kept",
			submitted: "abc",
			setup: func(r *http.Request) {
				r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
				r.Header.Set("User-Agent", "test-agent")
			},
			validate: func(t *testing.T, v Visitor) {
				require.Equal(t, "abc", v.Fingerprint)
				require.Equal(t, "203.0.113.7", v.IP)
				require.Equal(t, "test-agent", v.UserAgent)
			},
		},
		{
			name:      "Missing headers fall back to unknown IP",
			submitted: " abc ",
			setup:     func(r *http.Request) {},
			validate: func(t *testing.T, v Visitor) {
				require.Equal(t, "abc", v.Fingerprint)
				require.Equal(t, UnknownIP, v.IP)
			},
		},
		{
			name:      "X-Real-IP is used when X-Forwarded-For is absent",
			submitted: "abc",
			setup: func(r *http.Request) {
				r.Header.Set("X-Real-IP", "198.51.100.2")
			},
			validate: func(t *testing.T, v Visitor) {
				require.Equal(t, "198.51.100.2", v.IP)
			},
		},
		{
			name:      "Empty fingerprint is derived from session cookie",
			submitted: "",
			setup: func(r *http.Request) {
				r.Header.Set("X-Forwarded-For", "203.0.113.7")
				r.Header.Set("User-Agent", "test-agent")
				r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "session-1"})
			},
			validate: func(t *testing.T, v Visitor) {
				require.Equal(t, "test-agent-203.0.113.7-session-1", v.Fingerprint)
			},
		},
		{
			name:      "Empty fingerprint without cookie gets a random session",
			submitted: "",
			setup: func(r *http.Request) {
				r.Header.Set("User-Agent", "test-agent")
			},
			validate: func(t *testing.T, v Visitor) {
				require.True(t, strings.HasPrefix(v.Fingerprint, "test-agent-unknown-"))
				require.Greater(t, len(v.Fingerprint), len("test-agent-unknown-"))
			},
		},
	}

	resolver := NewResolver(zap.NewNop())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/survey/user", nil)
			tc.setup(r)

			tc.validate(t, resolver.Resolve(r, tc.submitted))
		})
	}
}
