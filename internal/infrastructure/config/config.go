package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Programmer60/BorrowEase-sub002/pkg/kafka"
	"github.com/Programmer60/BorrowEase-sub002/pkg/postgres"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Telemetry TelemetryConfig
	Auth      AuthConfig
	TLS       TLSConfig
	Risk      RiskConfig
	Redis     RedisConfig
	LogLevel  string
	LogFormat string
	Kafka     kafka.Config
	DB        postgres.Config
	HTTPPort  int
	GRPCPort  int
	// GRPCReflection exposes the reflection service; off in production.
	GRPCReflection bool
}

func (c Config) HTTPAddr() string { return fmt.Sprintf(":%d", c.HTTPPort) }
func (c Config) GRPCAddr() string { return fmt.Sprintf(":%d", c.GRPCPort) }

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Disabled turns the score cache off entirely.
	Disabled bool
}

type AuthConfig struct {
	JWTSecret        string
	JWTPublicKeyFile string
	Issuer           string
}

type TLSConfig struct {
	CertFile     string
	KeyFile      string
	ClientCAFile string
}

// Enabled reports whether the gRPC listener should serve TLS.
func (c TLSConfig) Enabled() bool { return c.CertFile != "" && c.KeyFile != "" }

type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
	SampleRatio  float64
	Insecure     bool
}

type RiskConfig struct {
	DefaultModel  string
	ModelsFile    string
	MinRateBps    int
	MaxRateBps    int
	ScoreCacheTTL time.Duration
}

// Validate reports every missing or inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.DB.Password == "" {
		errs = append(errs, errors.New("DB_PASSWORD environment variable is required"))
	}
	if c.Auth.JWTSecret == "" && c.Auth.JWTPublicKeyFile == "" {
		errs = append(errs, errors.New("one of JWT_SECRET or JWT_PUBLIC_KEY_FILE is required"))
	}
	if len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS must list at least one broker"))
	}
	if c.Risk.MinRateBps <= 0 || c.Risk.MaxRateBps < c.Risk.MinRateBps {
		errs = append(errs, fmt.Errorf("invalid rate band [%d, %d] bps", c.Risk.MinRateBps, c.Risk.MaxRateBps))
	}
	if c.Risk.ScoreCacheTTL <= 0 {
		errs = append(errs, errors.New("SCORE_CACHE_TTL must be positive"))
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLE_RATIO must be in [0,1], got %v", c.Telemetry.SampleRatio))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	return errors.Join(errs...)
}

// Load reads configuration from environment variables with defaults. A .env
// file in the working directory, if present, is loaded first without
// overriding variables already set.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8090),
		GRPCPort: getEnvInt("GRPC_PORT", 9090),

		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		DB: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "riskd"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "borrowease_risk"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 20)), //nolint:gosec // bounded by env config
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),  //nolint:gosec // bounded by env config
		},
		Kafka: kafka.Config{
			Brokers:       getEnvList("KAFKA_BROKERS", "localhost:9092"),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
			TLS:           getEnvBool("KAFKA_TLS", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Disabled: getEnvBool("SCORE_CACHE_DISABLED", false),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("JWT_SECRET", ""),
			JWTPublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
			Issuer:           getEnv("JWT_ISSUER", "borrowease"),
		},
		TLS: TLSConfig{
			CertFile:     getEnv("TLS_CERT_FILE", ""),
			KeyFile:      getEnv("TLS_KEY_FILE", ""),
			ClientCAFile: getEnv("TLS_CLIENT_CA_FILE", ""),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "riskd"),
			SampleRatio:  getEnvFloat("OTEL_SAMPLE_RATIO", 0.1),
			Insecure:     getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
		Risk: RiskConfig{
			DefaultModel:  getEnv("RISK_DEFAULT_MODEL", "comprehensive"),
			ModelsFile:    getEnv("RISK_MODELS_FILE", ""),
			MinRateBps:    getEnvInt("RISK_MIN_RATE_BPS", 800),
			MaxRateBps:    getEnvInt("RISK_MAX_RATE_BPS", 1800),
			ScoreCacheTTL: getEnvDuration("SCORE_CACHE_TTL", 15*time.Minute),
		},
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvList(key, defaultVal string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultVal), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
