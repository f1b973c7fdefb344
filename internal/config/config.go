package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Mongo         MongoConfig
	JWT           JWTConfig
	Cookie        CookieConfig
	ResetPassword ResetPasswordConfig
	SMTP          SMTPConfig
	Cloudinary    CloudinaryConfig
	Upload        UploadConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	Design        DesignConfig
	RateLimit     RateLimitConfig
	CORS          CORSConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	MaxBodyBytes int64
}

func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

type DatabaseConfig struct {
	Driver   string // "postgres" or "mongo"
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	// Pool sizing applies to both drivers.
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

func (j JWTConfig) Expiry() time.Duration {
	return time.Duration(j.ExpiryHours) * time.Hour
}

type CookieConfig struct {
	ExpireDays int
}

type ResetPasswordConfig struct {
	TokenTTL        time.Duration
	PublicBaseURL   string
	CleanupInterval time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// CloudinaryConfig selects the hosted object store. An empty CloudName
// falls back to the in-memory store.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// MaxUploadAttempts bounds UPLOAD_MAX_ATTEMPTS. The backoff doubles per
// attempt, so larger values only add hours of waiting.
const MaxUploadAttempts = 10

type UploadConfig struct {
	MaxAttempts    int
	BaseBackoff    time.Duration
	AttemptTimeout time.Duration
}

type RedisConfig struct {
	Addr               string
	Password           string
	DB                 int
	ProductCacheTTL    time.Duration
	OrphanSweepEvery   time.Duration
	OrphanSweepBatches int
}

type KafkaConfig struct {
	Brokers []string
}

type DesignConfig struct {
	APIURL            string
	APIKey            string
	Model             string
	Size              string
	GenerationTimeout time.Duration
	ProxyTimeout      time.Duration
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
	AuthRPS      float64 // login, register and forgot password
	AuthBurst    int
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "4000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("MAX_BODY_BYTES", 50<<20)

	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "ecommerce")

	viper.SetDefault("JWT_EXPIRY_HOURS", 24*5)
	viper.SetDefault("COOKIE_EXPIRE", 5)
	viper.SetDefault("RESET_PASSWORD_TTL", 15*time.Minute)
	viper.SetDefault("RESET_TOKEN_CLEANUP_INTERVAL", time.Hour)

	viper.SetDefault("SMTP_PORT", 587)

	viper.SetDefault("UPLOAD_MAX_ATTEMPTS", 3)
	viper.SetDefault("UPLOAD_BASE_BACKOFF", 2*time.Second)
	viper.SetDefault("UPLOAD_ATTEMPT_TIMEOUT", 5*time.Minute)

	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("PRODUCT_CACHE_TTL", 5*time.Minute)
	viper.SetDefault("ORPHAN_SWEEP_INTERVAL", 10*time.Minute)
	viper.SetDefault("ORPHAN_SWEEP_BATCH", 50)

	viper.SetDefault("DESIGN_MODEL", "dall-e-3")
	viper.SetDefault("DESIGN_SIZE", "1024x1024")
	viper.SetDefault("DESIGN_GENERATION_TIMEOUT", 60*time.Second)
	viper.SetDefault("DESIGN_PROXY_TIMEOUT", 30*time.Second)

	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 20)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)
	viper.SetDefault("RATE_LIMIT_AUTH_RPS", 1)
	viper.SetDefault("RATE_LIMIT_AUTH_BURST", 5)

	viper.SetDefault("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"})
	viper.SetDefault("CORS_ALLOW_CREDENTIALS", true)
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("ENVIRONMENT"),
			MaxBodyBytes: viper.GetInt64("MAX_BODY_BYTES"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),

			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: viper.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("MONGO_URI"),
			Database: viper.GetString("MONGO_DATABASE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Cookie: CookieConfig{
			ExpireDays: viper.GetInt("COOKIE_EXPIRE"),
		},
		ResetPassword: ResetPasswordConfig{
			TokenTTL:        viper.GetDuration("RESET_PASSWORD_TTL"),
			PublicBaseURL:   viper.GetString("PUBLIC_BASE_URL"),
			CleanupInterval: viper.GetDuration("RESET_TOKEN_CLEANUP_INTERVAL"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASSWORD"),
			From:     viper.GetString("SMTP_FROM"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: viper.GetString("CLOUDINARY_NAME"),
			APIKey:    viper.GetString("CLOUDINARY_API_KEY"),
			APISecret: viper.GetString("CLOUDINARY_API_SECRET"),
		},
		Upload: UploadConfig{
			MaxAttempts:    viper.GetInt("UPLOAD_MAX_ATTEMPTS"),
			BaseBackoff:    viper.GetDuration("UPLOAD_BASE_BACKOFF"),
			AttemptTimeout: viper.GetDuration("UPLOAD_ATTEMPT_TIMEOUT"),
		},
		Redis: RedisConfig{
			Addr:               viper.GetString("REDIS_ADDR"),
			Password:           viper.GetString("REDIS_PASSWORD"),
			DB:                 viper.GetInt("REDIS_DB"),
			ProductCacheTTL:    viper.GetDuration("PRODUCT_CACHE_TTL"),
			OrphanSweepEvery:   viper.GetDuration("ORPHAN_SWEEP_INTERVAL"),
			OrphanSweepBatches: viper.GetInt("ORPHAN_SWEEP_BATCH"),
		},
		Kafka: KafkaConfig{
			Brokers: viper.GetStringSlice("KAFKA_BROKERS"),
		},
		Design: DesignConfig{
			APIURL:            viper.GetString("API_URL"),
			APIKey:            viper.GetString("API_KEY"),
			Model:             viper.GetString("DESIGN_MODEL"),
			Size:              viper.GetString("DESIGN_SIZE"),
			GenerationTimeout: viper.GetDuration("DESIGN_GENERATION_TIMEOUT"),
			ProxyTimeout:      viper.GetDuration("DESIGN_PROXY_TIMEOUT"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
			AuthRPS:      viper.GetFloat64("RATE_LIMIT_AUTH_RPS"),
			AuthBurst:    viper.GetInt("RATE_LIMIT_AUTH_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
	}

	return config, nil
}

// Validate reports configuration that would make the server unusable.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT secret is missing. Please set JWT_SECRET environment variable")
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" || c.Database.DBName == "" {
			return errors.New("database configuration is missing. Please set DB_HOST and DB_NAME environment variables")
		}
	case "mongo":
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("mongo configuration is missing. Please set MONGO_URI and MONGO_DATABASE environment variables")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.Upload.MaxAttempts < 1 || c.Upload.MaxAttempts > MaxUploadAttempts {
		return fmt.Errorf("UPLOAD_MAX_ATTEMPTS must be between 1 and %d", MaxUploadAttempts)
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
