package initializers

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const devJWTSecret = "dev-secret-key"

type Config struct {
	Port            string        `mapstructure:"PORT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	ClientURL       string        `mapstructure:"CLIENT_URL"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	DBDriver    string `mapstructure:"DB_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	JWTSecret    string        `mapstructure:"JWT_SECRET"`
	JWTExpiresIn time.Duration `mapstructure:"JWT_EXPIRES_IN"`

	PortOneAPIKey    string        `mapstructure:"PORTONE_REST_API_KEY"`
	PortOneAPISecret string        `mapstructure:"PORTONE_REST_API_SECRET"`
	PortOneBaseURL   string        `mapstructure:"PORTONE_API_URL"`
	PaymentTimeout   time.Duration `mapstructure:"PAYMENT_TIMEOUT"`

	ShippingFee           int64 `mapstructure:"SHIPPING_FEE"`
	FreeShippingThreshold int64 `mapstructure:"FREE_SHIPPING_THRESHOLD"`

	SMTPAddress       string `mapstructure:"SMTP_ADDRESS"`
	SMTPHost          string `mapstructure:"FROM_EMAIL_SMTP"`
	FromEmail         string `mapstructure:"FROM_EMAIL"`
	FromEmailPassword string `mapstructure:"FROM_EMAIL_PASSWORD"`

	S3Bucket string `mapstructure:"AWS_S3_BUCKET"`
}

var defaults = map[string]any{
	"PORT":                    "5002",
	"LOG_LEVEL":               "info",
	"CLIENT_URL":              "",
	"SHUTDOWN_TIMEOUT":        "10s",
	"DB_DRIVER":               "mysql",
	"DATABASE_URL":            "",
	"JWT_SECRET":              "",
	"JWT_EXPIRES_IN":          "1h",
	"PORTONE_REST_API_KEY":    "",
	"PORTONE_REST_API_SECRET": "",
	"PORTONE_API_URL":         "https://api.iamport.kr",
	"PAYMENT_TIMEOUT":         "10s",
	"SHIPPING_FEE":            0,
	"FREE_SHIPPING_THRESHOLD": 0,
	"SMTP_ADDRESS":            "",
	"FROM_EMAIL_SMTP":         "",
	"FROM_EMAIL":              "",
	"FROM_EMAIL_PASSWORD":     "",
	"AWS_S3_BUCKET":           "",
}

// LoadConfig reads the configuration from the environment. Every key has a
// default so that Unmarshal sees it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set, using the development key. SET JWT_SECRET IN PRODUCTION!")
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.JWTExpiresIn <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRES_IN must be positive, got %s", cfg.JWTExpiresIn)
	}
	if cfg.ShippingFee < 0 || cfg.FreeShippingThreshold < 0 {
		return nil, fmt.Errorf("SHIPPING_FEE and FREE_SHIPPING_THRESHOLD must not be negative")
	}
	return &cfg, nil
}

// AllowedOrigins splits CLIENT_URL on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ClientURL, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
