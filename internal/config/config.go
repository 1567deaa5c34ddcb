package config

import (
	"fmt"
	"strings"

	"github.com/Netflix/go-env"
)

type Config struct {
	SlackToken         string `env:"SLACK_TOKEN"`
	SlackSigningSecret string `env:"SLACK_SIGNING_SECRET,required=true"`
	SlackAPIURL        string `env:"SLACK_API_URL"`
	TodoChannel        string `env:"SLACK_TODO_CHANNEL,default=general"`

	MongoURI          string `env:"MONGODB_URI,required=true"`
	DBName            string `env:"DB_NAME,default=slackbridge"`
	MongoTransactions bool   `env:"MONGODB_TRANSACTIONS,default=false"`

	SecretKey      string `env:"SECRET_KEY,required=true"`
	SecureCookies  bool   `env:"SECURE_COOKIES,default=false"`
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS,default=*"`

	Port      int    `env:"PORT,default=8080"`
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`
}

// Load reads the configuration from the process environment.
// A .env file, if any, must be loaded by the caller beforehand.
func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Origins splits CORS_ALLOWED_ORIGINS into its entries.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// CORSCredentials reports whether cross-origin requests may carry cookies.
// Never with a wildcard, where any site would be trusted.
func (c *Config) CORSCredentials() bool {
	for _, o := range c.Origins() {
		if o == "*" {
			return false
		}
	}
	return true
}

// DevMode reports whether outbound Slack calls are replaced by log lines.
func (c *Config) DevMode() bool {
	return strings.TrimSpace(c.SlackToken) == ""
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// SlackConfig is the subset used by commands that only talk to Slack.
type SlackConfig struct {
	SlackToken  string `env:"SLACK_TOKEN"`
	SlackAPIURL string `env:"SLACK_API_URL"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=json"`
}

func LoadSlack() (*SlackConfig, error) {
	var cfg SlackConfig
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load slack config: %w", err)
	}
	return &cfg, nil
}

func (c *SlackConfig) DevMode() bool {
	return strings.TrimSpace(c.SlackToken) == ""
}
