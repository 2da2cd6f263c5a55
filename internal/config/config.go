package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/idna"
)

var (
	// ErrMissingToken is returned when STRAPI_SEEDER_TOKEN is not set.
	ErrMissingToken = errors.New("STRAPI_SEEDER_TOKEN is missing, check your .env file")
	// ErrInvalidBaseURL is returned when STRAPI_URL cannot be used as an API base.
	ErrInvalidBaseURL = errors.New("invalid STRAPI_URL")
)

// RequiredRoles lists the role names every seeded environment must provide.
var RequiredRoles = []string{"Authenticated", "Author", "Admin"}

const defaultBaseURL = "http://localhost:1337"

// RateLimitConfig indicates how many requests are allowed within a given interval.
// The zero value disables limiting.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Enabled reports whether the limit should be enforced.
func (r RateLimitConfig) Enabled() bool {
	return r.Requests > 0 && r.Interval > 0
}

// LogConfig selects logger level and output format.
type LogConfig struct {
	Level  string
	Format string
}

// StubConfig holds settings for the local CMS stub server.
type StubConfig struct {
	Port      string
	JWTSecret string
	TokenTTL  time.Duration
	Roles     []string
	RateLimit RateLimitConfig
}

// Config aggregates the settings shared by every seeding command.
type Config struct {
	BaseURL     string
	Token       string
	HTTPTimeout time.Duration
	RateLimit   RateLimitConfig
	Concurrency int
	Log         LogConfig
	Stub        StubConfig
}

// Load reads configuration from environment variables and applies defaults.
// It fails before anything else when the admin token is absent.
func Load() (*Config, error) {
	token := strings.TrimSpace(os.Getenv("STRAPI_SEEDER_TOKEN"))
	if token == "" {
		return nil, ErrMissingToken
	}

	baseURL, err := normalizeBaseURL(getEnv("STRAPI_URL", defaultBaseURL))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BaseURL:     baseURL,
		Token:       token,
		HTTPTimeout: parseDuration(getEnv("STRAPI_HTTP_TIMEOUT", "30s"), 30*time.Second),
		Log:         LoadLogConfig(),
		Stub: StubConfig{
			Port:      getEnv("STUB_PORT", "1337"),
			JWTSecret: getEnv("STUB_JWT_SECRET", "dev-secret"),
			TokenTTL:  parseDuration(getEnv("STUB_JWT_TTL", "24h"), 24*time.Hour),
			Roles:     splitList(getEnv("STUB_ROLES", "Public,Authenticated,Author,Admin")),
		},
	}

	concurrency, err := strconv.Atoi(getEnv("SEED_CONCURRENCY", "1"))
	if err != nil || concurrency < 1 {
		return nil, fmt.Errorf("invalid SEED_CONCURRENCY value: %q", os.Getenv("SEED_CONCURRENCY"))
	}
	cfg.Concurrency = concurrency

	rl, err := parseRateLimit(os.Getenv("SEED_RATE_LIMIT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_RATE_LIMIT value: %w", err)
	}
	cfg.RateLimit = rl

	stubRL, err := parseRateLimit(os.Getenv("STUB_RATE_LIMIT"))
	if err != nil {
		return nil, fmt.Errorf("invalid STUB_RATE_LIMIT value: %w", err)
	}
	cfg.Stub.RateLimit = stubRL

	return cfg, nil
}

// LoadLogConfig reads the logger settings alone. It never fails, so a logger
// is available to report configuration errors.
func LoadLogConfig() LogConfig {
	return LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "text"),
	}
}

// Headers returns the default headers sent with authorized requests.
func (c *Config) Headers() map[string]string {
	return map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + c.Token,
	}
}

func normalizeBaseURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidBaseURL, u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidBaseURL)
	}

	asciiHost, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if port := u.Port(); port != "" {
		u.Host = asciiHost + ":" + port
	} else {
		u.Host = asciiHost
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return RateLimitConfig{}, nil
	}

	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
