package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Env            string        `env:"ENV" envDefault:"development"`
	Port           string        `env:"PORT" envDefault:"8080"`
	JWTSecret      string        `env:"JWT_SECRET,required"`
	MongoURI       string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase  string        `env:"MONGODB_DATABASE" envDefault:"roommatch"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Chat settings. AdminAliases are the identifiers a user may type to
	// reach support; they all resolve to the single admin account.
	AdminAliases []string      `env:"ADMIN_ALIASES" envSeparator:"," envDefault:"admin,admin@roommatch.pk,support@roommatch.pk"`
	AdminEmail   string        `env:"ADMIN_EMAIL" envDefault:"admin@roommatch.pk"`
	AdminName    string        `env:"ADMIN_NAME" envDefault:"RoomMatch Support"`
	PollInterval time.Duration `env:"CHAT_POLL_INTERVAL" envDefault:"5s"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// IsAdminAlias reports whether identifier denotes the support account.
// Matching is case-insensitive and ignores surrounding whitespace.
func (c *Config) IsAdminAlias(identifier string) bool {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	for _, alias := range c.AdminAliases {
		if strings.ToLower(strings.TrimSpace(alias)) == identifier {
			return true
		}
	}
	return false
}
