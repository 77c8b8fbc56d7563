package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Agent     AgentConfig     `yaml:"agent"`
	Calendar  CalendarConfig  `yaml:"calendar"`
	Notifier  NotifierConfig  `yaml:"notifier"`
	Inbound   InboundConfig   `yaml:"inbound"`
	Notes     NotesConfig     `yaml:"notes"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN               string        `yaml:"dsn"                 env:"DATABASE_DSN"                 env-required:"true"`
	MaxConns          int32         `yaml:"max_conns"           env:"DATABASE_MAX_CONNS"           env-default:"25"`
	MinConns          int32         `yaml:"min_conns"           env:"DATABASE_MIN_CONNS"           env-default:"5"`
	MaxConnLifetime   time.Duration `yaml:"max_conn_lifetime"   env:"DATABASE_MAX_CONN_LIFETIME"   env-default:"1h"`
	MaxConnIdleTime   time.Duration `yaml:"max_conn_idle_time"  env:"DATABASE_MAX_CONN_IDLE_TIME"  env-default:"30m"`
	HealthCheckPeriod time.Duration `yaml:"health_check_period" env:"DATABASE_HEALTH_CHECK_PERIOD" env-default:"1m"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"         env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"daybook"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"   env:"AUTH_ACCESS_TOKEN_TTL"   env-default:"24h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"10"`
}

// AgentConfig holds settings for the natural-language command agent.
type AgentConfig struct {
	APIKey             string        `yaml:"api_key"               env:"ANTHROPIC_API_KEY"            env-required:"true"`
	Model              string        `yaml:"model"                 env:"AGENT_MODEL"                  env-default:"claude-sonnet-4-5"`
	MaxTokens          int           `yaml:"max_tokens"            env:"AGENT_MAX_TOKENS"             env-default:"2048"`
	MaxToolRounds      int           `yaml:"max_tool_rounds"       env:"AGENT_MAX_TOOL_ROUNDS"        env-default:"8"`
	RequestTimeout     time.Duration `yaml:"request_timeout"       env:"AGENT_REQUEST_TIMEOUT"        env-default:"90s"`
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute" env:"AGENT_RATE_LIMIT_PER_MINUTE"  env-default:"20"`
}

// CalendarConfig holds settings for the external calendar tool bridge.
type CalendarConfig struct {
	BridgeURL      string        `yaml:"bridge_url"      env:"CALENDAR_BRIDGE_URL"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"CALENDAR_REQUEST_TIMEOUT" env-default:"15s"`
	ToolCacheTTL   time.Duration `yaml:"tool_cache_ttl"  env:"CALENDAR_TOOL_CACHE_TTL"  env-default:"5m"`
	ToolCacheSize  int           `yaml:"tool_cache_size" env:"CALENDAR_TOOL_CACHE_SIZE" env-default:"256"`
}

// Enabled reports whether a calendar bridge is configured at all.
func (c CalendarConfig) Enabled() bool {
	return c.BridgeURL != ""
}

// NotifierConfig holds delivery-service webhook settings for reminders.
type NotifierConfig struct {
	EmailWebhookURL string        `yaml:"email_webhook_url" env:"NOTIFIER_EMAIL_WEBHOOK_URL"`
	PushWebhookURL  string        `yaml:"push_webhook_url"  env:"NOTIFIER_PUSH_WEBHOOK_URL"`
	RequestTimeout  time.Duration `yaml:"request_timeout"   env:"NOTIFIER_REQUEST_TIMEOUT"   env-default:"10s"`
}

// InboundConfig holds settings for the inbound email webhook.
// An empty token disables the endpoint.
type InboundConfig struct {
	Token string `yaml:"token" env:"INBOUND_TOKEN"`
}

// NotesConfig holds note lifecycle settings.
type NotesConfig struct {
	TrashRetentionDays int `yaml:"trash_retention_days" env:"NOTES_TRASH_RETENTION_DAYS" env-default:"30"`
}

// SchedulerConfig holds reminder dispatcher settings.
type SchedulerConfig struct {
	Enabled   bool          `yaml:"enabled"    env:"SCHEDULER_ENABLED"    env-default:"true"`
	Interval  time.Duration `yaml:"interval"   env:"SCHEDULER_INTERVAL"   env-default:"30s"`
	BatchSize int           `yaml:"batch_size" env:"SCHEDULER_BATCH_SIZE" env-default:"50"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
