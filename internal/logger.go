package internal

import (
	"context"

	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"go.uber.org/zap"
)

// WithContext parses the context and adds the survey variant and fingerprint to the logger if available
func WithContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	logger = logutil.WithContext(ctx, logger)
	if ctx == nil {
		return logger
	}

	variant, ok := ctx.Value(VariantContextKey).(string)
	if ok && variant != "" {
		logger = logger.With(zap.String("variant", variant))
	}

	fingerprint, ok := ctx.Value(FingerprintContextKey).(string)
	if ok && fingerprint != "" {
		logger = logger.With(zap.String("fingerprint", fingerprint))
	}

	return logger
}
