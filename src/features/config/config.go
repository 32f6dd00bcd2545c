package config

// Config holds the application configuration.
type Config struct {
	Server   Server   `yaml:"server"`
	Logger   Logger   `yaml:"logger"`
	Telegram Telegram `yaml:"telegram"`
	Provider Provider `yaml:"provider"`
	Client   Client   `yaml:"client"`
}

// Server holds the configuration for the Fiber server.
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port" validate:"required"`
}

// Logger holds the configuration for the app logging.
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

type Telegram struct {
	Enabled      bool     `yaml:"enabled"`
	Token        string   `yaml:"token"`
	AllowedUsers []string `yaml:"allowedUsers"`
}

// Provider holds the configuration for the upstream lyrics provider.
type Provider struct {
	BaseURL   string `yaml:"base_url" validate:"required,url"`
	UserAgent string `yaml:"user_agent" validate:"required"`
}

// Client holds the request-orchestration knobs: caching, rate limiting and
// per-call timeouts around provider calls.
type Client struct {
	EnableCache          bool `yaml:"enable_cache"`
	CacheTTLMs           int  `yaml:"cache_ttl_ms" validate:"min=0"`
	EnableRateLimit      bool `yaml:"enable_rate_limit"`
	MaxRequestsPerMinute int  `yaml:"max_requests_per_minute" validate:"min=1"`
	RequestTimeoutMs     int  `yaml:"request_timeout_ms" validate:"min=1"`
}
