package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bibbank/treasury/pkg/money"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	HTTPPort  int
	GRPCPort  int
	DB        DBConfig
	Kafka     KafkaConfig
	Telemetry TelemetryConfig
	Treasury  TreasuryConfig
	TLS       TLSConfig

	// SnapshotFile, when set, serves investments and rates from a YAML
	// snapshot instead of PostgreSQL.
	SnapshotFile   string
	GRPCReflection bool
	LogLevel       string
	LogFormat      string
}

// DBConfig holds database connection parameters.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// KafkaConfig holds Kafka broker configuration.
type KafkaConfig struct {
	// Enabled false logs events instead of publishing them.
	Enabled bool

	Brokers       []string
	ClientID      string
	TLS           bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}

// TelemetryConfig holds OpenTelemetry configuration.
type TelemetryConfig struct {
	// OTLPEndpoint empty disables trace export.
	OTLPEndpoint string
	OTLPInsecure bool
	ServiceName  string
	SampleRatio  float64
}

// TreasuryConfig holds accrual and reporting settings.
type TreasuryConfig struct {
	// ReportingCurrency is the default portfolio target currency; empty reports natively.
	ReportingCurrency  string
	AllowNegativeRates bool
}

// TLSConfig holds the gRPC server certificate. Both paths empty serves plaintext.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether a certificate is configured.
func (c TLSConfig) Enabled() bool {
	return c.CertFile != "" || c.KeyFile != ""
}

// Validate checks required configuration values.
func (c Config) Validate() error {
	var errs []error
	if c.SnapshotFile == "" && c.DB.Password == "" {
		errs = append(errs, errors.New("DB_PASSWORD environment variable is required"))
	}
	if c.Treasury.ReportingCurrency != "" {
		if _, err := money.NewCurrency(c.Treasury.ReportingCurrency); err != nil {
			errs = append(errs, fmt.Errorf("REPORTING_CURRENCY: %w", err))
		}
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("OTEL_TRACES_SAMPLE_RATIO must be within [0, 1], got %v", c.Telemetry.SampleRatio))
	}
	return errors.Join(errs...)
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8090),
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "treasury"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "treasury"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 20)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
		},
		Kafka: KafkaConfig{
			Enabled:       getEnvBool("KAFKA_ENABLED", true),
			Brokers:       getEnvList("KAFKA_BROKERS", "localhost:9092"),
			ClientID:      getEnv("KAFKA_CLIENT_ID", "treasury-service"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			OTLPInsecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName:  "treasury-service",
			SampleRatio:  getEnvFloat("OTEL_TRACES_SAMPLE_RATIO", 1),
		},
		Treasury: TreasuryConfig{
			ReportingCurrency:  strings.ToUpper(getEnv("REPORTING_CURRENCY", "")),
			AllowNegativeRates: getEnvBool("ALLOW_NEGATIVE_RATES", false),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		SnapshotFile:   getEnv("SNAPSHOT_FILE", ""),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
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

// getEnvList splits a comma-separated value, dropping empty entries.
func getEnvList(key, defaultVal string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultVal), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
