package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Payment     PaymentConfig     `mapstructure:"payment"`
	Delivery    DeliveryConfig    `mapstructure:"delivery"`
	Admin       AdminConfig       `mapstructure:"admin"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Kafka       KafkaConfig       `mapstructure:"kafka"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
	Transaction TransactionConfig `mapstructure:"transaction"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	Mode              string        `mapstructure:"mode"`              // gin mode: debug, release, test
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	AllowedOrigins    []string      `mapstructure:"allowedOrigins"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"`    // seconds
	SlowThreshold   time.Duration `mapstructure:"slowThreshold"` // milliseconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// PaymentConfig configures the Flutterwave client and webhook verification
type PaymentConfig struct {
	BaseURL       string        `mapstructure:"baseURL"`
	SecretKey     string        `mapstructure:"secretKey"`
	WebhookSecret string        `mapstructure:"webhookSecret"`
	BVN           string        `mapstructure:"bvn"`
	DefaultEmail  string        `mapstructure:"defaultEmail"` // used when a customer gives none
	Timeout       time.Duration `mapstructure:"timeout"`      // seconds
}

// DeliveryConfig configures the Amigo data API client
type DeliveryConfig struct {
	BaseURL string        `mapstructure:"baseURL"`
	APIKey  string        `mapstructure:"apiKey"`
	Timeout time.Duration `mapstructure:"timeout"` // seconds
}

// AdminConfig holds the admin account and token signing secret
type AdminConfig struct {
	Email        string        `mapstructure:"email"`
	PasswordHash string        `mapstructure:"passwordHash"` // bcrypt, see `sauki hash-secret`
	TokenSecret  string        `mapstructure:"tokenSecret"`
	TokenTTL     time.Duration `mapstructure:"tokenTTL"` // minutes
}

// RedisConfig configures the admin session store
type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"keyPrefix"`
}

// KafkaConfig configures the lifecycle event publisher
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"` // seconds
}

// TelemetryConfig configures metrics and tracing
type TelemetryConfig struct {
	MetricsEnabled bool    `mapstructure:"metricsEnabled"`
	TracingEnabled bool    `mapstructure:"tracingEnabled"`
	OTLPEndpoint   string  `mapstructure:"otlpEndpoint"`
	Insecure       bool    `mapstructure:"insecure"`
	ServiceName    string  `mapstructure:"serviceName"`
	SampleRatio    float64 `mapstructure:"sampleRatio"`
}

// TransactionConfig contains transaction lifecycle settings
type TransactionConfig struct {
	TrackLimit int  `mapstructure:"trackLimit"`
	SeedPlans  bool `mapstructure:"seedPlans"` // seed default plans on startup
}

// IsProduction reports whether the production profile is active
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}
