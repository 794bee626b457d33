package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config/local.yaml"

type HTTPServer struct {
	Addr            string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type Catalog struct {
	DataPath string `yaml:"DATA_PATH" env:"CATALOG_DATA_PATH" env-default:""`
	PageSize int    `yaml:"PAGE_SIZE" env:"CATALOG_PAGE_SIZE" env-default:"12"`
	MaxPrice int64  `yaml:"MAX_PRICE" env:"CATALOG_MAX_PRICE" env-default:"500000"`
}

type Session struct {
	Backend      string        `yaml:"BACKEND" env:"SESSION_BACKEND" env-default:"memory"`
	TTL          time.Duration `yaml:"TTL" env:"SESSION_TTL" env-default:"24h"`
	CookieName   string        `yaml:"COOKIE_NAME" env:"SESSION_COOKIE_NAME" env-default:"storefront_session"`
	CookieSecure bool          `yaml:"COOKIE_SECURE" env:"SESSION_COOKIE_SECURE" env-default:"false"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-default:""`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-default:""`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-default:"storefront"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"5m"`
}

// Auth selects where accounts live: "memory" keeps them for the process
// lifetime, "postgres" uses the Database section.
type Auth struct {
	Backend string `yaml:"BACKEND" env:"AUTH_BACKEND" env-default:"memory"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15s"`
}

type Security struct {
	JWTKey         string `yaml:"JWT_KEY" env:"JWT_KEY" env-default:"change-me-in-production"`
	JWTExpiryHours int    `yaml:"JWT_EXPIRY_HOURS" env:"JWT_EXPIRY_HOURS" env-default:"24"`
}

type Reviews struct {
	MaxPhotos        int    `yaml:"MAX_PHOTOS" env:"REVIEW_MAX_PHOTOS" env-default:"5"`
	MaxPhotoBytes    int64  `yaml:"MAX_PHOTO_BYTES" env:"REVIEW_MAX_PHOTO_BYTES" env-default:"5242880"`
	MaxUploadBytes   int64  `yaml:"MAX_UPLOAD_BYTES" env:"REVIEW_MAX_UPLOAD_BYTES" env-default:"67108864"`
	EncodeWorkers    int    `yaml:"ENCODE_WORKERS" env:"REVIEW_ENCODE_WORKERS" env-default:"3"`
	DefaultAuthor    string `yaml:"DEFAULT_AUTHOR" env:"REVIEW_DEFAULT_AUTHOR" env-default:"Anonymous User"`
	MaxCommentLength int    `yaml:"MAX_COMMENT_LENGTH" env:"REVIEW_MAX_COMMENT_LENGTH" env-default:"2000"`
}

type Otel struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"storefront-demo"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT" env-default:""`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"10m"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	LogLevel     string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	HTTPServer   `yaml:"http_server"`
	Catalog      Catalog      `yaml:"catalog"`
	Session      Session      `yaml:"session"`
	RedisConnect RedisConnect `yaml:"redis"`
	Database     Database     `yaml:"database"`
	Auth         Auth         `yaml:"auth"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Security     Security     `yaml:"security"`
	Reviews      Reviews      `yaml:"reviews"`
	Otel         Otel         `yaml:"otel"`
	Cache        CacheConfig  `yaml:"cache"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the YAML config file")

		flag.Parse()

		configPath = *flags

	}

	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not load config: %s", err.Error())
	}

	return cfg

}

// LoadConfigFromPath reads the YAML file at path, applies environment
// overrides and checks the values the service cannot start without.
func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {

	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("catalog page size must be positive, got %d", c.Catalog.PageSize)
	}

	switch c.Session.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}

	switch c.Auth.Backend {
	case "memory", "postgres":
	default:
		return fmt.Errorf("unknown auth backend %q", c.Auth.Backend)
	}

	if c.Reviews.MaxPhotos <= 0 || c.Reviews.MaxPhotos > models.MaxPhotosPerReview {
		return fmt.Errorf("reviews max photos must be between 1 and %d, got %d", models.MaxPhotosPerReview, c.Reviews.MaxPhotos)
	}

	if c.Reviews.MaxPhotoBytes <= 0 {
		return fmt.Errorf("reviews max photo bytes must be positive, got %d", c.Reviews.MaxPhotoBytes)
	}

	if minUpload := int64(c.Reviews.MaxPhotos) * c.Reviews.MaxPhotoBytes; c.Reviews.MaxUploadBytes < minUpload {
		return fmt.Errorf("reviews max upload bytes must be at least %d, got %d", minUpload, c.Reviews.MaxUploadBytes)
	}

	return nil
}

// UsesRedis reports whether any component needs a Redis connection.
func (c *Config) UsesRedis() bool {
	return c.Session.Backend == "redis"
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	if r.Username == "" && r.Password == "" {
		return fmt.Sprintf("redis://%s:%s/%d", r.Host, r.Port, r.DB)
	}

	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}
