package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	configutil "github.com/NYCU-SDC/summer/pkg/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"

	MailProviderSMTP   = "smtp"
	MailProviderResend = "resend"
)

var (
	ErrDatabaseURLRequired  = errors.New("database_url is required")
	ErrMongoURLRequired     = errors.New("mongo_url is required")
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
	ErrUnknownMailProvider  = errors.New("unknown mail provider")
)

type Config struct {
	Debug            bool     `yaml:"debug"              envconfig:"DEBUG"`
	Host             string   `yaml:"host"               envconfig:"HOST"`
	Port             string   `yaml:"port"               envconfig:"PORT"`
	AllowOrigins     []string `yaml:"allow_origins"      envconfig:"ALLOW_ORIGINS"`
	SiteName         string   `yaml:"site_name"          envconfig:"SITE_NAME"`
	OtelCollectorUrl string   `yaml:"otel_collector_url" envconfig:"OTEL_COLLECTOR_URL"`

	StorageDriver   string `yaml:"storage_driver"   envconfig:"STORAGE_DRIVER"`
	DatabaseURL     string `yaml:"database_url"     envconfig:"DATABASE_URL"`
	MigrationSource string `yaml:"migration_source" envconfig:"MIGRATION_SOURCE"`
	MongoURL        string `yaml:"mongo_url"        envconfig:"MONGO_URL"`
	MongoDatabase   string `yaml:"mongo_database"   envconfig:"MONGO_DATABASE"`

	SlackWebhookURL string        `yaml:"slack_webhook_url" envconfig:"SLACK_WEBHOOK_URL"`
	NotifyWorkers   int           `yaml:"notify_workers"    envconfig:"NOTIFY_WORKERS"`
	NotifyQueueSize int           `yaml:"notify_queue_size" envconfig:"NOTIFY_QUEUE_SIZE"`
	NotifyTimeout   time.Duration `yaml:"notify_timeout"    envconfig:"NOTIFY_TIMEOUT"`

	MailProvider string `yaml:"mail_provider"  envconfig:"MAIL_PROVIDER"`
	MailName     string `yaml:"mail_name"      envconfig:"MAIL_NAME"`
	MailUser     string `yaml:"mail_user"      envconfig:"MAIL_USER"`
	SMTPHost     string `yaml:"smtp_host"      envconfig:"SMTP_HOST"`
	SMTPPort     int    `yaml:"smtp_port"      envconfig:"SMTP_PORT"`
	SMTPUser     string `yaml:"smtp_user"      envconfig:"SMTP_USER"`
	SMTPPassword string `yaml:"smtp_password"  envconfig:"SMTP_PASSWORD"`
	ResendAPIKey string `yaml:"resend_api_key" envconfig:"RESEND_API_KEY"`
	ResendFrom   string `yaml:"resend_from"    envconfig:"RESEND_FROM"`
}

type LogBuffer struct {
	buffer []logEntry
}

type logEntry struct {
	msg  string
	err  error
	meta map[string]string
}

func NewConfigLogger() *LogBuffer {
	return &LogBuffer{}
}

func (cl *LogBuffer) Warn(msg string, err error, meta map[string]string) {
	cl.buffer = append(cl.buffer, logEntry{msg: msg, err: err, meta: meta})
}

func (cl *LogBuffer) FlushToZap(logger *zap.Logger) {
	for _, e := range cl.buffer {
		var fields []zap.Field
		if e.err != nil {
			fields = append(fields, zap.Error(e.err))
		}
		for k, v := range e.meta {
			fields = append(fields, zap.String(k, v))
		}
		logger.Warn(e.msg, fields...)
	}
	cl.buffer = nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DatabaseURL == "" {
			return ErrDatabaseURLRequired
		}
	case StorageDriverMongo:
		if c.MongoURL == "" {
			return ErrMongoURLRequired
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.StorageDriver)
	}

	switch c.MailProvider {
	case MailProviderSMTP, MailProviderResend:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMailProvider, c.MailProvider)
	}

	return nil
}

// MailConfigured reports whether the selected mail provider has the settings
// it needs to send anything. The contact endpoint answers with a send failure
// otherwise.
func (c *Config) MailConfigured() bool {
	if c.MailUser == "" {
		return false
	}

	switch c.MailProvider {
	case MailProviderSMTP:
		return c.SMTPHost != "" && c.SMTPPort != 0 && c.SMTPUser != "" && c.SMTPPassword != ""
	case MailProviderResend:
		return c.ResendAPIKey != "" && c.ResendFrom != ""
	}
	return false
}

func Default() *Config {
	return &Config{
		Debug:            false,
		Host:             "localhost",
		Port:             "8080",
		AllowOrigins:     []string{"http://localhost:3000"},
		SiteName:         "Photo Survey",
		OtelCollectorUrl: "",
		StorageDriver:    StorageDriverPostgres,
		DatabaseURL:      "",
		MigrationSource:  "file://internal/database/migrations",
		MongoDatabase:    "photo_survey",
		NotifyWorkers:    2,
		NotifyQueueSize:  64,
		NotifyTimeout:    10 * time.Second,
		MailProvider:     MailProviderSMTP,
		SMTPPort:         465,
	}
}

func Load() (Config, *LogBuffer) {
	logger := NewConfigLogger()

	config := Default()

	var err error

	config, err = FromFile("config.yaml", config, logger)
	if err != nil {
		logger.Warn("Failed to load config from file", err, map[string]string{"path": "config.yaml"})
	}

	config, err = FromEnv(config, logger)
	if err != nil {
		logger.Warn("Failed to load config from env", err, map[string]string{"path": ".env"})
	}

	config, err = FromFlags(config)
	if err != nil {
		logger.Warn("Failed to load config from flags", err, map[string]string{"path": "flags"})
	}

	return *config, logger
}

func FromFile(filePath string, config *Config, logger *LogBuffer) (*Config, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return config, err
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			logger.Warn("Failed to close config file", err, map[string]string{"path": filePath})
		}
	}(file)

	fileConfig := Config{}
	if err := yaml.NewDecoder(file).Decode(&fileConfig); err != nil {
		return config, err
	}

	return configutil.Merge[Config](config, &fileConfig)
}

func FromEnv(config *Config, logger *LogBuffer) (*Config, error) {
	if err := godotenv.Overload(); err != nil {
		if os.IsNotExist(err) {
			logger.Warn("No .env file found", err, map[string]string{"path": ".env"})
		} else {
			return config, err
		}
	}

	envConfig := &Config{
		Debug:            os.Getenv("DEBUG") == "true",
		Host:             os.Getenv("HOST"),
		Port:             os.Getenv("PORT"),
		AllowOrigins:     splitList(os.Getenv("ALLOW_ORIGINS")),
		SiteName:         os.Getenv("SITE_NAME"),
		OtelCollectorUrl: os.Getenv("OTEL_COLLECTOR_URL"),
		StorageDriver:    os.Getenv("STORAGE_DRIVER"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		MigrationSource:  os.Getenv("MIGRATION_SOURCE"),
		MongoURL:         os.Getenv("MONGO_URL"),
		MongoDatabase:    os.Getenv("MONGO_DATABASE"),
		SlackWebhookURL:  os.Getenv("SLACK_WEBHOOK_URL"),
		NotifyWorkers:    envInt("NOTIFY_WORKERS", logger),
		NotifyQueueSize:  envInt("NOTIFY_QUEUE_SIZE", logger),
		NotifyTimeout:    envDuration("NOTIFY_TIMEOUT", logger),
		MailProvider:     os.Getenv("MAIL_PROVIDER"),
		MailName:         os.Getenv("MAIL_NAME"),
		MailUser:         os.Getenv("MAIL_USER"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         envInt("SMTP_PORT", logger),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		ResendAPIKey:     os.Getenv("RESEND_API_KEY"),
		ResendFrom:       os.Getenv("RESEND_FROM"),
	}

	return configutil.Merge[Config](config, envConfig)
}

func FromFlags(config *Config) (*Config, error) {
	flagConfig := &Config{}

	flag.BoolVar(&flagConfig.Debug, "debug", false, "debug mode")
	flag.StringVar(&flagConfig.Host, "host", "", "host")
	flag.StringVar(&flagConfig.Port, "port", "", "port")
	flag.StringVar(&flagConfig.StorageDriver, "storage_driver", "", "storage driver (postgres or mongo)")
	flag.StringVar(&flagConfig.DatabaseURL, "database_url", "", "database url")
	flag.StringVar(&flagConfig.MigrationSource, "migration_source", "", "migration source")
	flag.StringVar(&flagConfig.MongoURL, "mongo_url", "", "mongo url")
	flag.StringVar(&flagConfig.OtelCollectorUrl, "otel_collector_url", "", "OpenTelemetry collector URL")
	flag.StringVar(&flagConfig.SlackWebhookURL, "slack_webhook_url", "", "Slack incoming webhook URL")
	flag.StringVar(&flagConfig.MailProvider, "mail_provider", "", "mail provider (smtp or resend)")

	flag.Parse()

	return configutil.Merge[Config](config, flagConfig)
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func envInt(key string, logger *LogBuffer) int {
	value := os.Getenv(key)
	if value == "" {
		return 0
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		logger.Warn("Ignoring invalid integer in env", err, map[string]string{"key": key})
		return 0
	}
	return parsed
}

func envDuration(key string, logger *LogBuffer) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return 0
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		logger.Warn("Ignoring invalid duration in env", err, map[string]string{"key": key})
		return 0
	}
	return parsed
}
