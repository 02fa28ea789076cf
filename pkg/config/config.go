package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Stripe       StripeConfig
	Sendgrid     SendgridConfig
	RateLimit    RateLimitConfig
	Cache        CacheConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env           string `envconfig:"STONEFRONT_APP_ENV" required:"true"`
	Port          string `envconfig:"STONEFRONT_APP_PORT" default:"8080"`
	LogLevel      string `envconfig:"STONEFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack  bool   `envconfig:"STONEFRONT_LOG_WARN_STACK" default:"false"`
	PublicBaseURL string `envconfig:"STONEFRONT_PUBLIC_BASE_URL" default:"http://localhost:8080"`
	FrontendURL   string `envconfig:"STONEFRONT_FRONTEND_URL" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// AbsoluteURL joins a relative asset path onto the public base URL. Paths
// that are already absolute are returned untouched.
func (a AppConfig) AbsoluteURL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := strings.TrimRight(a.PublicBaseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

type DBConfig struct {
	DSN    string `envconfig:"STONEFRONT_DB_DSN"`
	Driver string `envconfig:"STONEFRONT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STONEFRONT_DB_HOST"`
	LegacyPort     int    `envconfig:"STONEFRONT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STONEFRONT_DB_USER"`
	LegacyPassword string `envconfig:"STONEFRONT_DB_PASSWORD"`
	LegacyName     string `envconfig:"STONEFRONT_DB_NAME"`
	LegacySSLMode  string `envconfig:"STONEFRONT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STONEFRONT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STONEFRONT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STONEFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STONEFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STONEFRONT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STONEFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STONEFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STONEFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STONEFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STONEFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STONEFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STONEFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STONEFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"STONEFRONT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"STONEFRONT_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"STONEFRONT_JWT_EXPIRATION_MINUTES" default:"60"`
}

type StripeConfig struct {
	APIKey        string `envconfig:"STONEFRONT_STRIPE_SECRET_KEY"`
	WebhookSecret string `envconfig:"STONEFRONT_STRIPE_WEBHOOK_SECRET"`
	Env           string `envconfig:"STONEFRONT_STRIPE_ENV" default:"test"`
	Currency      string `envconfig:"STONEFRONT_STRIPE_CURRENCY" default:"gbp"`
	SuccessURL    string `envconfig:"STONEFRONT_STRIPE_SUCCESS_URL"`
	CancelURL     string `envconfig:"STONEFRONT_STRIPE_CANCEL_URL"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type SendgridConfig struct {
	APIKey      string `envconfig:"STONEFRONT_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"STONEFRONT_SENDGRID_FROM_EMAIL"`
	FromName    string `envconfig:"STONEFRONT_SENDGRID_FROM_NAME" default:"Stonefront"`
	AdminEmail  string `envconfig:"STONEFRONT_ADMIN_EMAIL"`
	AdminBCC    string `envconfig:"STONEFRONT_ADMIN_BCC_EMAIL"`
}

type RateLimitConfig struct {
	EnquiryWindow   time.Duration `envconfig:"STONEFRONT_RATE_LIMIT_ENQUIRY_WINDOW" default:"60s"`
	EnquiryLimit    int           `envconfig:"STONEFRONT_RATE_LIMIT_ENQUIRY_LIMIT" default:"1"`
	ReviewWindow    time.Duration `envconfig:"STONEFRONT_RATE_LIMIT_REVIEW_WINDOW" default:"60s"`
	ReviewLimit     int           `envconfig:"STONEFRONT_RATE_LIMIT_REVIEW_LIMIT" default:"1"`
	WriteBurst      int           `envconfig:"STONEFRONT_RATE_LIMIT_WRITE_BURST" default:"20"`
	WritePerSecond  float64       `envconfig:"STONEFRONT_RATE_LIMIT_WRITE_PER_SECOND" default:"5"`
	WebhookEventTTL time.Duration `envconfig:"STONEFRONT_WEBHOOK_EVENT_TTL" default:"168h"`
}

type CacheConfig struct {
	UserDetailsTTL time.Duration `envconfig:"STONEFRONT_CACHE_USER_DETAILS_TTL" default:"300s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STONEFRONT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
