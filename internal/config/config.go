package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Blob     BlobConfig     `mapstructure:"blob"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	Study    StudyConfig    `mapstructure:"study"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// BlobConfig contains settings for the object store that holds cached
// audio assets.
type BlobConfig struct {
	Endpoint  string `mapstructure:"endpoint"   validate:"required"`
	AccessKey string `mapstructure:"access_key" validate:"required"`
	SecretKey string `mapstructure:"secret_key" validate:"required"`
	Bucket    string `mapstructure:"bucket"     validate:"required"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// LLMConfig contains all settings for the generative model integration.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	TextModel    string `mapstructure:"text_model"     validate:"required"`
	SpeechModel  string `mapstructure:"speech_model"   validate:"required"`
	VoiceName    string `mapstructure:"voice_name"     validate:"required"`

	// MaxRetries is the number of additional attempts made after a
	// transient speech synthesis failure.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=0,lte=5"`

	// RetryDelaySeconds is the fixed delay between speech retries.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=0,lte=30"`
}

// StudyConfig contains tunables for study queue construction.
type StudyConfig struct {
	CatalogPath string `mapstructure:"catalog_path" validate:"required"`

	// DefaultQueueSize is used when a queue request does not specify a count.
	DefaultQueueSize int `mapstructure:"default_queue_size" validate:"required,gt=0"`

	// MaxQueueSize caps the count a single queue request may ask for.
	MaxQueueSize int `mapstructure:"max_queue_size" validate:"required,gt=0"`
}
