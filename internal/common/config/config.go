// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Proposal      ProposalConfig          `mapstructure:"proposal"`
	Mail          MailConfig              `mapstructure:"mail"`
	Export        ExportConfig            `mapstructure:"export"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
	Logging       LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	UsePlaintext   bool   `mapstructure:"use_plaintext"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	RegistryPath   string `mapstructure:"registry_path"`
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig backs the export idempotency store. An empty address disables it.
type RedisConfig struct {
	Address   string `mapstructure:"address"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // zero: proposal failures are not retried
}

// --- Proposal ---

type ProposalConfig struct {
	Locale          string            `mapstructure:"locale"`
	Currency        string            `mapstructure:"currency"`
	DateLayout      string            `mapstructure:"date_layout"`
	DefaultApproach string            `mapstructure:"default_approach"`
	Contingency     ContingencyConfig `mapstructure:"contingency"`
	// CatalogPath replaces the embedded catalog with a file when set.
	CatalogPath string `mapstructure:"catalog_path"`
}

type ContingencyConfig struct {
	Default int `mapstructure:"default"`
	Min     int `mapstructure:"min"`
	Max     int `mapstructure:"max"`
	Step    int `mapstructure:"step"`
}

type MailConfig struct {
	SenderName    string `mapstructure:"sender_name"`
	SenderAddress string `mapstructure:"sender_address"`
}

// --- Export ---

const (
	SinkLocal = "local"
	SinkS3    = "s3"
)

type ExportConfig struct {
	Sink                  string   `mapstructure:"sink"`
	OutputDir             string   `mapstructure:"output_dir"`
	ClipboardFallbackFile string   `mapstructure:"clipboard_fallback_file"`
	IdempotencyTTL        int      `mapstructure:"idempotency_ttl"` // seconds
	S3                    S3Config `mapstructure:"s3"`
}

func (e ExportConfig) IdempotencyTTLDuration() time.Duration {
	return time.Duration(e.IdempotencyTTL) * time.Second
}

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Prefix          string `mapstructure:"prefix"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
}

// --- Observability ---

type ObservabilityConfig struct {
	MetricsAddress string        `mapstructure:"metrics_address"`
	Tracing        TracingConfig `mapstructure:"tracing"`
}

type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	ServiceName    string  `mapstructure:"service_name"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
