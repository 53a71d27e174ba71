package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Database DatabaseConfig
	Session  SessionConfig
	Telegram TelegramConfig
	Locale   LocaleConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// BackendConfig points at the subscription REST API the mini app renders.
type BackendConfig struct {
	BaseURL             string
	Timeout             time.Duration
	BreakerMaxFailures  int
	BreakerResetTimeout time.Duration
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// ActionLogRetention bounds how long action logs are kept; zero keeps them forever.
	ActionLogRetention time.Duration
}

type SessionConfig struct {
	CookieName    string
	TokenDuration time.Duration
	PrivateKey    *rsa.PrivateKey
	PublicKey     *rsa.PublicKey
	Issuer        string
}

type TelegramConfig struct {
	BotToken         string
	InitDataMaxAge   time.Duration
	AllowQueryUserID bool
}

type LocaleConfig struct {
	Language       string
	CurrencySymbol string
}

type SecurityConfig struct {
	RateLimitPerSecond int
	RateLimitBurst     int
}

func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			Environment:  getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Backend: BackendConfig{
			BaseURL:             strings.TrimRight(getEnv("BACKEND_API_URL", "http://localhost:8000/api"), "/"),
			Timeout:             getDurationEnv("BACKEND_TIMEOUT", 10*time.Second),
			BreakerMaxFailures:  getIntEnv("BACKEND_BREAKER_MAX_FAILURES", 5),
			BreakerResetTimeout: getDurationEnv("BACKEND_BREAKER_RESET_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Driver:             getEnv("DB_DRIVER", DriverSQLite),
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", "subsmanager"),
			Password:           getEnv("DB_PASSWORD", "subsmanager"),
			Name:               getEnv("DB_NAME", "subsmanager_miniapp"),
			SSLMode:            getEnv("DB_SSL_MODE", "disable"),
			SQLitePath:         getEnv("DB_SQLITE_PATH", "miniapp.db"),
			MaxConnections:     getIntEnv("DB_MAX_CONNECTIONS", 10),
			MaxIdleConns:       getIntEnv("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime:    getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ActionLogRetention: getDurationEnv("ACTION_LOG_RETENTION", 30*24*time.Hour),
		},
		Session: SessionConfig{
			CookieName:    getEnv("SESSION_COOKIE_NAME", "miniapp_session"),
			TokenDuration: getDurationEnv("SESSION_TOKEN_DURATION", 12*time.Hour),
			Issuer:        getEnv("SESSION_ISSUER", "subsmanager-miniapp"),
		},
		Telegram: TelegramConfig{
			BotToken:         getEnv("BOT_TOKEN", ""),
			InitDataMaxAge:   getDurationEnv("TELEGRAM_INIT_DATA_MAX_AGE", 24*time.Hour),
			AllowQueryUserID: getBoolEnv("ALLOW_QUERY_USER_ID", false),
		},
		Locale: LocaleConfig{
			Language:       getEnv("LOCALE", "ru-RU"),
			CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₽"),
		},
		Security: SecurityConfig{
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 10),
			RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 20),
		},
	}

	if config.IsProduction() && config.Telegram.BotToken == "" {
		return nil, errors.New("BOT_TOKEN must be set in production environments")
	}
	if config.IsProduction() && config.Telegram.AllowQueryUserID {
		slog.Warn("ALLOW_QUERY_USER_ID is enabled in production; query identities bypass host verification")
	}

	var err error
	config.Session.PrivateKey, config.Session.PublicKey, err = config.loadSessionKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to load session keys: %w", err)
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// loadSessionKeys returns the RS256 keypair used for session cookies.
// SESSION_PRIVATE_KEY/SESSION_PUBLIC_KEY (base64 PEM) win in every environment;
// outside production a fresh keypair is generated when they are absent.
func (c *Config) loadSessionKeys() (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privateKeyB64 := os.Getenv("SESSION_PRIVATE_KEY")
	publicKeyB64 := os.Getenv("SESSION_PUBLIC_KEY")

	if privateKeyB64 != "" && publicKeyB64 != "" {
		slog.Info("loading session keypair from environment")
		return loadKeysFromEnvVars(privateKeyB64, publicKeyB64)
	}

	if c.IsProduction() {
		return nil, nil, errors.New("SESSION_PRIVATE_KEY and SESSION_PUBLIC_KEY must be set in production environments")
	}

	slog.Info("generating ephemeral session keypair; sessions will not survive restarts")
	return GenerateRSAKeyPair()
}

func loadKeysFromEnvVars(privateKeyB64, publicKeyB64 string) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privateKeyBytes, err := base64.StdEncoding.DecodeString(privateKeyB64)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode SESSION_PRIVATE_KEY: %w", err)
	}

	publicKeyBytes, err := base64.StdEncoding.DecodeString(publicKeyB64)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode SESSION_PUBLIC_KEY: %w", err)
	}

	privateKey, err := loadRSAPrivateKey(privateKeyBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	publicKey, err := loadRSAPublicKey(publicKeyBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	return privateKey, publicKey, nil
}

// GenerateRSAKeyPair generates a new RSA key pair
func GenerateRSAKeyPair() (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate RSA key pair: %w", err)
	}

	return privateKey, &privateKey.PublicKey, nil
}

func loadRSAPrivateKey(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing the key")
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err == nil {
		return privateKey, nil
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("not an RSA private key")
	}

	return rsaKey, nil
}

func loadRSAPublicKey(pemData []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing the key")
	}

	publicKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	rsaPublicKey, ok := publicKey.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("not an RSA public key")
	}

	return rsaPublicKey, nil
}
