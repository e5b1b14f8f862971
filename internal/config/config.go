package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	MediaDisk  = "disk"
	MediaMinio = "minio"

	defaultMaxUploadBytes = 10 << 20
)

type Config struct {
	Port           string   `yaml:"port"`
	Storage        string   `yaml:"storage"`
	JWTSecret      string   `yaml:"jwtSecret"`
	CORSOrigin     string   `yaml:"corsOrigin"`
	LogLevel       string   `yaml:"logLevel"`
	LogFormat      string   `yaml:"logFormat"`
	MaxUploadBytes int64    `yaml:"maxUploadBytes"`
	Database       Database `yaml:"database"`
	Media          Media    `yaml:"media"`
}

type Database struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN собирает строку подключения для postgres
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type Media struct {
	Driver string `yaml:"driver"`
	// disk
	Dir     string `yaml:"dir"`
	BaseURL string `yaml:"baseURL"`
	// minio / S3-совместимое хранилище
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"useSSL"`
	PublicURL string `yaml:"publicURL"`
}

// LoadEnv подгружает .env в окружение процесса (если файл есть)
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Info().Msg(".env file not found")
	}
}

func Default() Config {
	return Config{
		Port:           "3001",
		Storage:        StorageMemory,
		CORSOrigin:     "http://localhost:3000",
		LogLevel:       "info",
		LogFormat:      "json",
		MaxUploadBytes: defaultMaxUploadBytes,
		Database: Database{
			Host:    "localhost",
			Port:    "5432",
			SSLMode: "disable",
		},
		Media: Media{
			Driver:  MediaDisk,
			Dir:     "uploads",
			BaseURL: "/uploads",
			Bucket:  "storyline",
		},
	}
}

// Load собирает конфиг: значения по умолчанию, затем YAML файл (если задан),
// затем переменные окружения
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	switch c.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage type: %s", c.Storage)
	}
	switch c.Media.Driver {
	case MediaDisk:
	case MediaMinio:
		if c.Media.Endpoint == "" || c.Media.Bucket == "" {
			return errors.New("minio media driver needs endpoint and bucket")
		}
	default:
		return fmt.Errorf("unknown media driver: %s", c.Media.Driver)
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("max upload bytes must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Port, "PORT")
	setString(&cfg.Storage, "STORAGE")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.CORSOrigin, "CORS_ORIGIN")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			cfg.MaxUploadBytes = n
		}
	}

	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")

	setString(&cfg.Media.Driver, "MEDIA_DRIVER")
	setString(&cfg.Media.Dir, "MEDIA_DIR")
	setString(&cfg.Media.BaseURL, "MEDIA_BASE_URL")
	setString(&cfg.Media.Endpoint, "MINIO_ENDPOINT")
	setString(&cfg.Media.AccessKey, "MINIO_ACCESS_KEY")
	setString(&cfg.Media.SecretKey, "MINIO_SECRET_KEY")
	setString(&cfg.Media.Bucket, "MINIO_BUCKET")
	setString(&cfg.Media.PublicURL, "MINIO_PUBLIC_URL")
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.Media.UseSSL = b
		}
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
