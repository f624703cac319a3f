package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override, e.g. SAUKI_PAYMENT_SECRETKEY
const EnvPrefix = "SAUKI"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// secretEnv maps conventional secret variable names onto config keys
var secretEnv = map[string]string{
	"SAUKI_DB_HOST":             "database.host",
	"SAUKI_DB_PORT":             "database.port",
	"SAUKI_DB_USERNAME":         "database.username",
	"SAUKI_DB_PASSWORD":         "database.password",
	"SAUKI_DB_NAME":             "database.database",
	"SAUKI_DB_SSL_MODE":         "database.sslMode",
	"FLW_SECRET_KEY":            "payment.secretKey",
	"FLW_WEBHOOK_SECRET":        "payment.webhookSecret",
	"FLW_BVN":                   "payment.bvn",
	"AMIGO_API_KEY":             "delivery.apiKey",
	"AMIGO_BASE_URL":            "delivery.baseURL",
	"SAUKI_ADMIN_EMAIL":         "admin.email",
	"SAUKI_ADMIN_PASSWORD_HASH": "admin.passwordHash",
	"SAUKI_ADMIN_TOKEN_SECRET":  "admin.tokenSecret",
	"SAUKI_REDIS_ADDR":          "redis.addr",
	"SAUKI_REDIS_PASSWORD":      "redis.password",
	"SAUKI_KAFKA_BROKERS":       "kafka.brokers",
	"SAUKI_OTLP_ENDPOINT":       "telemetry.otlpEndpoint",
}

// LoadConfig loads configuration from .env, configs/<env>.yaml and SAUKI_* overrides
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		fmt.Printf("Warning: no %s.yaml found, using defaults and environment\n", env)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

func loadDotEnvFile() error {
	var lastError error
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}
	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.readTimeout", 15)
	v.SetDefault("server.writeTimeout", 60) // delivery runs inside the webhook request
	v.SetDefault("server.idleTimeout", 60)
	v.SetDefault("server.readHeaderTimeout", 10)
	v.SetDefault("server.shutdownTimeout", 10)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1)      // seconds
	v.SetDefault("database.slowThreshold", 500) // milliseconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	v.SetDefault("payment.baseURL", "https://api.flutterwave.com")
	v.SetDefault("payment.defaultEmail", "customer@saukimart.ng")
	v.SetDefault("payment.timeout", 20)

	v.SetDefault("delivery.baseURL", "https://amigo.ng/api")
	v.SetDefault("delivery.timeout", 30)

	v.SetDefault("admin.tokenTTL", 720) // minutes

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.keyPrefix", "sauki:session:")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.topic", "sauki.transactions")
	v.SetDefault("kafka.writeTimeout", 5)

	v.SetDefault("telemetry.metricsEnabled", true)
	v.SetDefault("telemetry.tracingEnabled", false)
	v.SetDefault("telemetry.serviceName", "sauki-backend")
	v.SetDefault("telemetry.sampleRatio", 1.0)

	v.SetDefault("transaction.trackLimit", 10)
	v.SetDefault("transaction.seedPlans", true)
}

// getEnvironment reads SAUKI_ENV, defaulting to development
func getEnvironment() string {
	env := os.Getenv("SAUKI_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides lets the conventional secret variables override file values
func processEnvOverrides(v *viper.Viper) {
	for name, key := range secretEnv {
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if key == "kafka.brokers" {
			v.Set(key, strings.Split(value, ","))
			continue
		}
		v.Set(key, value)
	}

	if port := os.Getenv("PORT"); port != "" {
		v.Set("server.port", port)
	}
}

// processDurations converts raw numeric duration fields into real durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second
	config.Database.SlowThreshold = time.Duration(config.Database.SlowThreshold) * time.Millisecond

	config.Payment.Timeout = time.Duration(config.Payment.Timeout) * time.Second
	config.Delivery.Timeout = time.Duration(config.Delivery.Timeout) * time.Second
	config.Admin.TokenTTL = time.Duration(config.Admin.TokenTTL) * time.Minute
	config.Kafka.WriteTimeout = time.Duration(config.Kafka.WriteTimeout) * time.Second
}
