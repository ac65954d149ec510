package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAssignComment = "Contact information processed and user assigned automatically."
	defaultCloseComment  = "Welcome email sent. This ticket has been solved and closed."
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Zendesk  ZendeskConfig
	Pipeline PipelineConfig
	Extract  ExtractConfig
	Redis    RedisConfig
	Lock     LockConfig
	Auth     AuthConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// ZendeskConfig holds the helpdesk API location and credentials.
type ZendeskConfig struct {
	Domain         string
	Email          string
	APIToken       string
	TimeoutSeconds int
	WebhookSecret  string
}

// PipelineConfig holds the fixed identifiers the ticket pipeline works with.
type PipelineConfig struct {
	TargetTag     string
	MacroID       string
	TargetGroupID int64
	AssignComment string
	CloseComment  string
}

// ExtractConfig tunes contact extraction.
type ExtractConfig struct {
	ExcludedDomains []string
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LockConfig configures per-ticket locking.
type LockConfig struct {
	TTLSeconds int
}

// AuthConfig defines admin token parameters. An empty secret disables admin auth.
type AuthConfig struct {
	JWTSecret       string
	TokenTTLMinutes int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ints := &intReader{}
	auth, err := LoadAuth()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "contact-bridge"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", getEnv("PORT", "3000")),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: ints.read("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Zendesk: ZendeskConfig{
			Domain:         strings.TrimRight(os.Getenv("ZENDESK_DOMAIN"), "/"),
			Email:          os.Getenv("ZENDESK_EMAIL"),
			APIToken:       os.Getenv("ZENDESK_API_TOKEN"),
			TimeoutSeconds: ints.read("ZENDESK_TIMEOUT_SECONDS", 20),
			WebhookSecret:  os.Getenv("ZENDESK_WEBHOOK_SECRET"),
		},
		Pipeline: PipelineConfig{
			TargetTag:     getEnv("PIPELINE_TARGET_TAG", "ev_new_message"),
			MacroID:       os.Getenv("PIPELINE_MACRO_ID"),
			AssignComment: getEnv("PIPELINE_ASSIGN_COMMENT", defaultAssignComment),
			CloseComment:  getEnv("PIPELINE_CLOSE_COMMENT", defaultCloseComment),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       ints.read("REDIS_DB", 0),
		},
		Lock: LockConfig{
			TTLSeconds: ints.read("LOCK_TTL_SECONDS", 120),
		},
		Auth: auth,
	}
	if err := ints.err(); err != nil {
		return nil, err
	}

	var missing []string
	if cfg.Zendesk.Domain == "" {
		missing = append(missing, "ZENDESK_DOMAIN")
	}
	if cfg.Zendesk.Email == "" {
		missing = append(missing, "ZENDESK_EMAIL")
	}
	if cfg.Zendesk.APIToken == "" {
		missing = append(missing, "ZENDESK_API_TOKEN")
	}
	if cfg.Pipeline.MacroID == "" {
		missing = append(missing, "PIPELINE_MACRO_ID")
	}
	groupID := os.Getenv("PIPELINE_TARGET_GROUP_ID")
	if groupID == "" {
		missing = append(missing, "PIPELINE_TARGET_GROUP_ID")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}

	cfg.Pipeline.TargetGroupID, err = strconv.ParseInt(groupID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PIPELINE_TARGET_GROUP_ID: %w", err)
	}

	if raw := os.Getenv("EXTRACT_EXCLUDED_DOMAINS"); raw != "" {
		cfg.Extract.ExcludedDomains = splitList(raw)
	} else {
		cfg.Extract.ExcludedDomains, err = DefaultExcludedDomains(cfg.Zendesk.Domain, cfg.Zendesk.Email)
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// LoadAuth reads only the admin token settings.
func LoadAuth() (AuthConfig, error) {
	_ = godotenv.Load()
	ints := &intReader{}
	cfg := AuthConfig{
		JWTSecret:       os.Getenv("ADMIN_JWT_SECRET"),
		TokenTTLMinutes: ints.read("ADMIN_TOKEN_TTL_MINUTES", 60),
	}
	return cfg, ints.err()
}

// DefaultExcludedDomains returns the helpdesk host, zendesk.com and the mail
// domain of the API account, which is the organisation's own staff domain.
func DefaultExcludedDomains(domain, accountEmail string) ([]string, error) {
	u, err := url.Parse(domain)
	if err != nil {
		return nil, fmt.Errorf("invalid ZENDESK_DOMAIN: %w", err)
	}
	if u.Hostname() == "" {
		return nil, errors.New("invalid ZENDESK_DOMAIN: missing host")
	}

	candidates := []string{strings.ToLower(u.Hostname()), "zendesk.com"}
	if at := strings.LastIndex(accountEmail, "@"); at >= 0 {
		candidates = append(candidates, strings.ToLower(strings.TrimSpace(accountEmail[at+1:])))
	}

	domains := make([]string, 0, len(candidates))
	for _, d := range candidates {
		if d != "" && !slices.Contains(domains, d) {
			domains = append(domains, d)
		}
	}
	return domains, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the outbound API timeout.
func (z ZendeskConfig) Timeout() time.Duration {
	if z.TimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(z.TimeoutSeconds) * time.Second
}

// TTL returns the lock lease duration.
func (l LockConfig) TTL() time.Duration {
	if l.TTLSeconds <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(l.TTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// intReader parses integer settings and remembers every malformed one.
type intReader struct {
	invalid []string
}

func (r *intReader) read(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		r.invalid = append(r.invalid, key)
		return fallback
	}
	return parsed
}

func (r *intReader) err() error {
	if len(r.invalid) == 0 {
		return nil
	}
	return fmt.Errorf("invalid integer settings: %s", strings.Join(r.invalid, ", "))
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
