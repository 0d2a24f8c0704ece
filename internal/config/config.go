package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        int
	GinMode     string
	TLSCertFile string
	TLSKeyFile  string
	LogLevel    string

	OrganizationName string
	OrganizationID   string
	AccountID        string
	TargetGroup      string
	Debug            bool

	// BearerToken is the service credential for device, analytics and
	// application metadata calls. It is never taken from the end user.
	BearerToken string

	AccessBaseURL   string
	APIBaseURL      string
	UpstreamTimeout time.Duration
	IdentityRetries int

	CORSOrigin         string
	RateLimitPerMinute int

	Theme Theme
}

type Theme struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
}

const defaultAPIBaseURL = "https://api.cloudflare.com/client/v4"

type Env interface {
	Getenv(key string) string
}

type osEnv struct{}

func (osEnv) Getenv(key string) string { return os.Getenv(key) }

func LoadConfig() (Config, error) {
	return LoadConfigFromEnv(osEnv{})
}

func LoadConfigFromEnv(env Env) (Config, error) {
	cfg := Config{
		Port:               3000,
		GinMode:            "release",
		LogLevel:           "info",
		APIBaseURL:         defaultAPIBaseURL,
		UpstreamTimeout:    10 * time.Second,
		IdentityRetries:    1,
		CORSOrigin:         "*",
		RateLimitPerMinute: 60,
		Theme: Theme{
			PrimaryColor:   "#3498db",
			SecondaryColor: "#2ecc71",
		},
	}

	if raw := env.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT")
		}
		cfg.Port = port
	}

	if raw := env.Getenv("GIN_MODE"); raw != "" {
		cfg.GinMode = raw
	}
	if raw := env.Getenv("LOG_LEVEL"); raw != "" {
		cfg.LogLevel = raw
	}

	cfg.TLSCertFile = env.Getenv("TLS_CERT_FILE")
	cfg.TLSKeyFile = env.Getenv("TLS_KEY_FILE")

	cfg.OrganizationName = env.Getenv("ORGANIZATION_NAME")
	if cfg.OrganizationName == "" {
		return Config{}, fmt.Errorf("ORGANIZATION_NAME is required")
	}
	cfg.AccountID = env.Getenv("ACCOUNT_ID")
	if cfg.AccountID == "" {
		return Config{}, fmt.Errorf("ACCOUNT_ID is required")
	}
	cfg.BearerToken = env.Getenv("BEARER_TOKEN")
	if cfg.BearerToken == "" {
		return Config{}, fmt.Errorf("BEARER_TOKEN is required")
	}

	cfg.OrganizationID = env.Getenv("ORGANIZATION_ID")
	cfg.TargetGroup = env.Getenv("TARGET_GROUP")
	cfg.Debug = strings.EqualFold(env.Getenv("DEBUG"), "true")

	cfg.AccessBaseURL = fmt.Sprintf("https://%s.cloudflareaccess.com", cfg.OrganizationName)
	if raw := env.Getenv("ACCESS_BASE_URL"); raw != "" {
		cfg.AccessBaseURL = strings.TrimRight(raw, "/")
	}
	if raw := env.Getenv("API_BASE_URL"); raw != "" {
		cfg.APIBaseURL = strings.TrimRight(raw, "/")
	}

	if raw := env.Getenv("UPSTREAM_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("invalid UPSTREAM_TIMEOUT_SECONDS")
		}
		cfg.UpstreamTimeout = time.Duration(seconds) * time.Second
	}

	if raw := env.Getenv("IDENTITY_RETRIES"); raw != "" {
		retries, err := strconv.Atoi(raw)
		if err != nil || retries < 0 {
			return Config{}, fmt.Errorf("invalid IDENTITY_RETRIES")
		}
		cfg.IdentityRetries = retries
	}

	if raw := env.Getenv("CORS_ORIGIN"); raw != "" {
		cfg.CORSOrigin = raw
	}

	if raw := env.Getenv("RATE_LIMIT_PER_MINUTE"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE")
		}
		cfg.RateLimitPerMinute = limit
	}

	if raw := env.Getenv("THEME_PRIMARY_COLOR"); raw != "" {
		cfg.Theme.PrimaryColor = raw
	}
	if raw := env.Getenv("THEME_SECONDARY_COLOR"); raw != "" {
		cfg.Theme.SecondaryColor = raw
	}

	return cfg, nil
}
