package setup

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewTestLogger builds the logger shared by integration tests. TEST_LOG_LEVEL
// accepts any zap level name and defaults to debug.
func NewTestLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()

	level := zapcore.DebugLevel
	if value := os.Getenv("TEST_LOG_LEVEL"); value != "" {
		parsed, err := zapcore.ParseLevel(value)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.CallerKey = "caller"

	return cfg.Build(zap.Fields(zap.String("suite", "integration")))
}
