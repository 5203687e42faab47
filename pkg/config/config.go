package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the vendor portal backend.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL" env-default:""` // Auto-derived from Port if empty
	Version  string `yaml:"-"`                                      // Set at load time, not from config

	// Authentication configuration
	Auth AuthConfig `yaml:"auth"`

	// OAuth configuration (Google is the single external identity provider)
	OAuth OAuthConfig `yaml:"oauth"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Object storage configuration (job photo bucket)
	Storage StorageConfig `yaml:"storage"`

	// Description assistant configuration (optional)
	Assistant AssistantConfig `yaml:"assistant"`

	// MigrationsPath is the directory containing SQL migrations.
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	// AdminEmailsStr is a comma-separated allow-list of administrator email
	// addresses. Any authenticated identity whose email is not on the list is
	// classified as a vendor. Membership is checked case-insensitively.
	AdminEmailsStr string `yaml:"admin_emails" env:"ADMIN_EMAILS" env-default:"sulthanlukman@gmail.com,wahyudin.airkon@gmail.com,bayf52@gmail.com"`

	// AdminEmails is the parsed, normalized form of AdminEmailsStr.
	AdminEmails []string `yaml:"-"`

	// TokenSecret signs the session JWT issued after OAuth completion.
	TokenSecret string `yaml:"-" env:"TOKEN_SECRET"` // Secret - not in YAML

	// SessionSecret signs the portal-preference/OAuth-state cookie.
	SessionSecret string `yaml:"-" env:"SESSION_SECRET"` // Secret - not in YAML

	// TokenTTLHours is the session JWT lifetime in hours.
	TokenTTLHours int `yaml:"token_ttl_hours" env:"TOKEN_TTL_HOURS" env-default:"24"`

	// EnableVerification controls whether Google ID token signatures are
	// validated against Google's JWKS. Set to false for local development.
	EnableVerification bool `yaml:"enable_verification" env:"AUTH_ENABLE_VERIFICATION" env-default:"true"`

	// CookieDomain is the domain for auth cookies (optional).
	// If empty, it will be auto-derived from BaseURL.
	CookieDomain string `yaml:"cookie_domain" env:"COOKIE_DOMAIN" env-default:""`
}

// OAuthConfig holds Google OAuth client configuration.
type OAuthConfig struct {
	ClientID     string `yaml:"client_id" env:"GOOGLE_CLIENT_ID" env-default:""`
	ClientSecret string `yaml:"-" env:"GOOGLE_CLIENT_SECRET"` // Secret - not in YAML
	// RedirectURL is the registered OAuth callback. Auto-derived from BaseURL
	// if empty.
	RedirectURL string `yaml:"redirect_url" env:"GOOGLE_REDIRECT_URL" env-default:""`
}

// IsConfigured returns true if a Google OAuth client is configured.
func (c *OAuthConfig) IsConfigured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"portal"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"vendor_portal"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// URL builds a postgres connection URL from the configuration.
func (c *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Database,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// StorageConfig holds object storage (S3-compatible) configuration for
// job photos.
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint" env:"STORAGE_ENDPOINT" env-default:"localhost:9000"`
	AccessKey string `yaml:"access_key" env:"STORAGE_ACCESS_KEY" env-default:""`
	SecretKey string `yaml:"-" env:"STORAGE_SECRET_KEY"` // Secret - not in YAML
	Bucket    string `yaml:"bucket" env:"STORAGE_BUCKET" env-default:"job-photos"`
	UseSSL    bool   `yaml:"use_ssl" env:"STORAGE_USE_SSL" env-default:"false"`
	// PublicBaseURL is the externally reachable base URL used to resolve
	// stored object paths into displayable photo URLs. Auto-derived from
	// Endpoint if empty.
	PublicBaseURL string `yaml:"public_base_url" env:"STORAGE_PUBLIC_BASE_URL" env-default:""`
}

// AssistantConfig holds the generative-text backend used to clean up job
// descriptions. The assistant is optional; when unconfigured the description
// is passed through unchanged.
type AssistantConfig struct {
	BaseURL string `yaml:"base_url" env:"ASSISTANT_BASE_URL" env-default:""`
	Model   string `yaml:"model" env:"ASSISTANT_MODEL" env-default:""`
	APIKey  string `yaml:"-" env:"ASSISTANT_API_KEY"` // Secret - not in YAML
}

// IsAvailable returns true if the assistant backend is configured.
func (c *AssistantConfig) IsAvailable() bool {
	return c.BaseURL != "" && c.Model != ""
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.parseComplexFields(); err != nil {
		return nil, fmt.Errorf("failed to parse config fields: %w", err)
	}

	// Auto-derive BaseURL from Port if not explicitly set
	if cfg.BaseURL == "" {
		cfg.BaseURL = (&url.URL{
			Scheme: "http",
			Host:   "localhost:" + cfg.Port,
		}).String()
	}

	// Auto-derive the OAuth redirect URL from BaseURL if not explicitly set
	if cfg.OAuth.RedirectURL == "" {
		cfg.OAuth.RedirectURL = strings.TrimSuffix(cfg.BaseURL, "/") + "/api/auth/callback"
	}

	// Auto-derive the storage public base URL from the endpoint if not set
	if cfg.Storage.PublicBaseURL == "" {
		scheme := "http"
		if cfg.Storage.UseSSL {
			scheme = "https"
		}
		cfg.Storage.PublicBaseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Storage.Endpoint, cfg.Storage.Bucket)
	}

	if cfg.Auth.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET environment variable is required")
	}
	if cfg.Auth.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}

	return cfg, nil
}

// parseComplexFields handles fields that need post-processing after loading.
func (c *Config) parseComplexFields() error {
	c.Auth.AdminEmails = parseAdminEmails(c.Auth.AdminEmailsStr)
	if len(c.Auth.AdminEmails) == 0 {
		return fmt.Errorf("admin_emails must contain at least one address")
	}
	return nil
}

// parseAdminEmails splits and normalizes the comma-separated allow-list.
func parseAdminEmails(s string) []string {
	var emails []string
	for _, part := range strings.Split(s, ",") {
		email := strings.ToLower(strings.TrimSpace(part))
		if email != "" {
			emails = append(emails, email)
		}
	}
	return emails
}
