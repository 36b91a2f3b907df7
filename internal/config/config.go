package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode string
	Port    string
	JWT     JWTConfig
	Cookie  CookieConfig
	Mpesa   MpesaConfig
	Sweep   SweepConfig
}

// JWTConfig holds access token configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// MpesaConfig holds payment gateway configuration. Credentials are always
// supplied from the environment, never compiled in.
type MpesaConfig struct {
	BaseURL        string
	ShortCode      string
	Passkey        string
	ConsumerKey    string
	ConsumerSecret string
	CallbackURL    string
	Timeout        time.Duration
}

// SweepConfig holds background sweeper configuration
type SweepConfig struct {
	// OverdueSpec is the cron spec for the daily overdue-contribution sweep
	OverdueSpec string
	// ExpirySpec is the cron spec for expiring stale pending payments
	ExpirySpec string
	// PaymentTTL is how long an STK push may stay pending before expiry
	PaymentTTL time.Duration
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "3000"),
		JWT:     loadJWTConfig(appMode),
		Cookie:  loadCookieConfig(appMode),
		Mpesa:   loadMpesaConfig(),
		Sweep:   loadSweepConfig(),
	}
	return config, nil
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "60"))

	return JWTConfig{
		Secret:          getEnv(prefix+"JWT_SECRET", "default_secret"),
		AccessTokenMins: accessMins,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadMpesaConfig loads payment gateway config
func loadMpesaConfig() MpesaConfig {
	timeoutSecs, _ := strconv.Atoi(getEnv("MPESA_TIMEOUT_SECONDS", "10"))

	return MpesaConfig{
		BaseURL:        getEnv("MPESA_BASE_URL", "https://sandbox.safaricom.co.ke"),
		ShortCode:      getEnv("MPESA_SHORT_CODE", ""),
		Passkey:        getEnv("MPESA_PASSKEY", ""),
		ConsumerKey:    getEnv("MPESA_CONSUMER_KEY", ""),
		ConsumerSecret: getEnv("MPESA_CONSUMER_SECRET", ""),
		CallbackURL:    getEnv("MPESA_CALLBACK_URL", ""),
		Timeout:        time.Duration(timeoutSecs) * time.Second,
	}
}

// loadSweepConfig loads background sweeper config
func loadSweepConfig() SweepConfig {
	ttlMins, _ := strconv.Atoi(getEnv("PAYMENT_PENDING_TTL_MINUTES", "120"))

	return SweepConfig{
		OverdueSpec: getEnv("OVERDUE_SWEEP_CRON", "30 8 * * *"),
		ExpirySpec:  getEnv("PAYMENT_EXPIRY_CRON", "*/15 * * * *"),
		PaymentTTL:  time.Duration(ttlMins) * time.Minute,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://app.smartchama.co.ke"
	}
	return origins
}
