package website

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/jub0bs/cors"
)

// Environment variables with defaults
type ServerEnvironment struct {
	Environment       string        `env:"ENVIRONMENT,default=dev"`
	Host              string        `env:"HOST,default=0.0.0.0"`
	Port              int           `env:"PORT,default=3000"`
	PublicBaseURL     string        `env:"PUBLIC_BASE_URL"` // base url for canonical links (defaults to Host/Port values outside prod)
	LogLevel          string        `env:"LOG_LEVEL,default=debug"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	AppOrigin         string        `env:"APP_ORIGIN"` // origin of the unobits application backend (defaults to origin.Fallback)
	APITimeout        time.Duration `env:"API_TIMEOUT,default=10s"`
	DatabaseURL       string        `env:"DATABASE_URL"` // contact form submissions are only logged when not set
	AllowedOrigins    []string      `env:"ALLOWED_ORIGINS,separator=|"`
	MaxAPIRequestSize int64         `env:"MAX_API_REQUEST_SIZE,default=65536"` // 64KB
	RateLimitRPS      int32         `env:"RATE_LIMIT_RPS,default=20"`
	RateLimitBurst    int32         `env:"RATE_LIMIT_BURST,default=40"`
}

// CORSConfigs holds the CORS middleware instances for the endpoints that accept cross-site requests
type CORSConfigs struct {
	Public    *cors.Middleware
	Protected *cors.Middleware
}

const (
	// Operational timeouts
	ServerShutdownTimeout = 10 * time.Second
	DatabasePingTimeout   = 5 * time.Second

	// CORS settings
	CORSMaxAgeInSeconds = 86400 // 24 hours

	DefaultAPIRequestSize = 64 * 1024
)

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"prod":    true,
	"staging": true,
}

// NewServerConfig loads environment variables and returns the validated server config and CORS middleware
func NewServerConfig() (*ServerEnvironment, *CORSConfigs, error) {
	var cfg ServerEnvironment

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	// default to host/port if not set (must be set for production - checked in validateConfig)
	if cfg.Environment != "prod" && cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, nil, err
	}

	corsConfigs, err := createCORSConfigs(&cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("CORS configuration failed: %w", err)
	}

	return &cfg, corsConfigs, nil
}

// validateConfig checks the env values and applies defaults that depend on the environment
func validateConfig(cfg *ServerEnvironment) error {
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid ENVIRONMENT: %s", cfg.Environment)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	if cfg.ReadTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return fmt.Errorf("READ_TIMEOUT, WRITE_TIMEOUT and IDLE_TIMEOUT must be positive")
	}

	if cfg.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %v", cfg.APITimeout)
	}

	if cfg.MaxAPIRequestSize < 1 {
		return fmt.Errorf("MAX_API_REQUEST_SIZE must be at least 1")
	}

	if cfg.RateLimitRPS < 1 || cfg.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be at least 1")
	}

	if cfg.Environment == "prod" && cfg.PublicBaseURL == "" {
		return fmt.Errorf("PUBLIC_BASE_URL is required in %s environment", cfg.Environment)
	}
	if cfg.PublicBaseURL != "" {
		if _, err := url.ParseRequestURI(cfg.PublicBaseURL); err != nil {
			return fmt.Errorf("PUBLIC_BASE_URL is not a valid URL: %s", cfg.PublicBaseURL)
		}
	}

	cfg.AppOrigin = strings.TrimSpace(cfg.AppOrigin)
	if cfg.AppOrigin != "" {
		if err := ValidateOrigin(cfg.AppOrigin, cfg.Environment); err != nil {
			return err
		}
	}

	if cfg.Environment == "prod" || cfg.Environment == "staging" {
		if len(cfg.AllowedOrigins) == 0 {
			return fmt.Errorf("ALLOWED_ORIGINS must be set in %v", cfg.Environment)
		}
		if cfg.AllowedOrigins[0] == "*" {
			return fmt.Errorf("ALLOWED_ORIGINS must not be set to '*' in %v", cfg.Environment)
		}
	}

	// default to all origins when not in prod/staging
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return nil
}

// ValidateOrigin checks that an application origin is an absolute http(s) URL without a path.
// Production origins must use https.
func ValidateOrigin(origin, environment string) error {
	u, err := url.ParseRequestURI(origin)
	if err != nil {
		return fmt.Errorf("APP_ORIGIN is not a valid URL: %s", origin)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("APP_ORIGIN does not include a valid scheme (http or https): %s", origin)
	}

	if u.Hostname() == "" {
		return fmt.Errorf("APP_ORIGIN does not include a host: %s", origin)
	}

	if u.Path != "" && u.Path != "/" {
		return fmt.Errorf("APP_ORIGIN should not include a path: %s", origin)
	}

	if environment == "prod" && u.Scheme != "https" {
		return fmt.Errorf("APP_ORIGIN must use https in production: %s", origin)
	}

	return nil
}

// createCORSConfigs creates the CORS configurations based on the server config
func createCORSConfigs(cfg *ServerEnvironment) (*CORSConfigs, error) {
	origins := make([]string, len(cfg.AllowedOrigins))
	for i, origin := range cfg.AllowedOrigins {
		origins[i] = strings.TrimSpace(origin)
	}

	publicConfig := cors.Config{
		Origins: []string{"*"},
		Methods: []string{
			http.MethodGet,
			http.MethodHead,
		},
		RequestHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Requested-With",
		},
		MaxAgeInSeconds: CORSMaxAgeInSeconds,
	}

	publicMiddleware, err := cors.NewMiddleware(publicConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create public CORS middleware: %w", err)
	}

	protectedConfig := cors.Config{
		Origins: origins,
		Methods: []string{
			http.MethodPost,
		},
		RequestHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Requested-With",
		},
		MaxAgeInSeconds: CORSMaxAgeInSeconds,
	}

	protectedMiddleware, err := cors.NewMiddleware(protectedConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create protected CORS middleware: %w", err)
	}

	return &CORSConfigs{
		Public:    publicMiddleware,
		Protected: protectedMiddleware,
	}, nil
}
