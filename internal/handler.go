package internal

import (
	"context"
)

type contextKey string

var (
	VariantContextKey     contextKey = "survey-variant"
	FingerprintContextKey contextKey = "survey-fingerprint"
)

// WithSubmission stores the survey variant and visitor fingerprint on the context
// so that loggers derived further down the call chain carry them.
func WithSubmission(ctx context.Context, variant, fingerprint string) context.Context {
	ctx = context.WithValue(ctx, VariantContextKey, variant)
	return context.WithValue(ctx, FingerprintContextKey, fingerprint)
}
