package config

import "time"

type Config struct {
	AppName    string `env:"APP_NAME" env-default:"fern-api"`
	Port       int    `env:"PORT" env-default:"3004"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs bool   `env:"PRETTY_LOGS" env-default:"false"`

	// Source instance (workflows are read from here)
	SourceBaseURL      string        `env:"SOURCE_BASE_URL" env-default:""`
	SourceAPIKey       string        `env:"SOURCE_API_KEY" env-default:""`
	SourceAPIKeyHeader string        `env:"SOURCE_API_KEY_HEADER" env-default:"X-API-Key"`
	SourceTimeout      time.Duration `env:"SOURCE_TIMEOUT" env-default:"30s"`

	// Target instance (workflows are written here)
	TargetBaseURL      string        `env:"TARGET_BASE_URL" env-default:""`
	TargetAPIKey       string        `env:"TARGET_API_KEY" env-default:""`
	TargetAPIKeyHeader string        `env:"TARGET_API_KEY_HEADER" env-default:"X-API-Key"`
	TargetTimeout      time.Duration `env:"TARGET_TIMEOUT" env-default:"30s"`

	// Validation
	InternalIDPattern string `env:"INTERNAL_ID_PATTERN" env-default:""`
	StrictValidation  bool   `env:"STRICT_VALIDATION" env-default:"false"`
	MaxDuplicates     int    `env:"MAX_DUPLICATES" env-default:"100"`
	ValidationLogPath string `env:"VALIDATION_LOG_PATH" env-default:""`

	// Transfer
	DefaultParallelism int    `env:"DEFAULT_PARALLELISM" env-default:"3"`
	ReportOutputDir    string `env:"REPORT_OUTPUT_DIR" env-default:"reports"`
	PluginDir          string `env:"PLUGIN_DIR" env-default:""`

	// Kafka Producer (transfer lifecycle events)
	KafkaBrokers        []string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaTransferTopic  string   `env:"KAFKA_TRANSFER_TOPIC" env-default:"transfer-events"`
	KafkaProducerEnable bool     `env:"KAFKA_PRODUCER_ENABLED" env-default:"false"`
	KafkaBatchSize      int      `env:"KAFKA_BATCH_SIZE" env-default:"100"`
	KafkaBatchTimeout   int      `env:"KAFKA_BATCH_TIMEOUT_MS" env-default:"100"`
	KafkaRequiredAcks   int      `env:"KAFKA_REQUIRED_ACKS" env-default:"1"`
}
