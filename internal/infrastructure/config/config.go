package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ServiceName identifies the service in logs, traces and health checks.
const ServiceName = "diapredict-risk"

// Config holds all configuration for the risk service.
type Config struct {
	HTTPPort string `mapstructure:"http_port" validate:"required,numeric"`
	GRPCPort string `mapstructure:"grpc_port" validate:"required,numeric"`

	ModelPath        string `mapstructure:"model_path"          validate:"required"`
	ModelSourceURL   string `mapstructure:"model_source_url"    validate:"omitempty,url"`
	ModelS3Endpoint  string `mapstructure:"model_s3_endpoint"`
	ModelS3AccessKey string `mapstructure:"model_s3_access_key"`
	ModelS3SecretKey string `mapstructure:"model_s3_secret_key"`
	ModelS3UseSSL    bool   `mapstructure:"model_s3_use_ssl"`

	DatabaseURL   string `mapstructure:"database_url"`
	MigrationsDir string `mapstructure:"migrations_dir"`
	KafkaBrokers  string `mapstructure:"kafka_brokers"`
	KafkaTopic    string `mapstructure:"kafka_topic" validate:"required"`
	KafkaTLS      bool   `mapstructure:"kafka_tls"`

	KafkaSASLMechanism string `mapstructure:"kafka_sasl_mechanism" validate:"omitempty,oneof=PLAIN SCRAM-SHA-256 SCRAM-SHA-512"`
	KafkaSASLUsername  string `mapstructure:"kafka_sasl_username"`
	KafkaSASLPassword  string `mapstructure:"kafka_sasl_password"`

	GRPCTLSCertFile string `mapstructure:"grpc_tls_cert_file" validate:"required_with=GRPCTLSKeyFile"`
	GRPCTLSKeyFile  string `mapstructure:"grpc_tls_key_file"  validate:"required_with=GRPCTLSCertFile"`
	GRPCReflection  bool   `mapstructure:"grpc_reflection"`

	OTLPEndpoint string `mapstructure:"otel_exporter_otlp_endpoint"`
	Environment  string `mapstructure:"environment" validate:"required"`
	LogLevel     string `mapstructure:"log_level"   validate:"oneof=debug info warn warning error"`
	LogFormat    string `mapstructure:"log_format"  validate:"oneof=json text"`
	LogFile      string `mapstructure:"log_file"`
}

var defaults = map[string]any{
	"http_port":                   "5000",
	"grpc_port":                   "8090",
	"model_path":                  "diabetes_risk_model.json",
	"model_source_url":            "",
	"model_s3_endpoint":           "",
	"model_s3_access_key":         "",
	"model_s3_secret_key":         "",
	"model_s3_use_ssl":            true,
	"database_url":                "",
	"migrations_dir":              "migrations",
	"kafka_brokers":               "",
	"kafka_topic":                 "diapredict.risk.events",
	"kafka_tls":                   false,
	"kafka_sasl_mechanism":        "",
	"kafka_sasl_username":         "",
	"kafka_sasl_password":         "",
	"grpc_tls_cert_file":          "",
	"grpc_tls_key_file":           "",
	"grpc_reflection":             false,
	"otel_exporter_otlp_endpoint": "",
	"environment":                 "development",
	"log_level":                   "info",
	"log_format":                  "json",
	"log_file":                    "",
}

// Load reads configuration from environment variables with sensible defaults.
// When CONFIG_FILE is set, the YAML file it names is read first and
// environment variables override it.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return nil, fmt.Errorf("config validation failed: %s", strings.Join(fields, ", "))
		}
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// Brokers splits KafkaBrokers into addresses. Empty means publishing is disabled.
func (c *Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// TLSEnabled reports whether the gRPC server should serve TLS.
func (c *Config) TLSEnabled() bool {
	return c.GRPCTLSCertFile != "" && c.GRPCTLSKeyFile != ""
}

// IsDevelopment reports whether the service runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
