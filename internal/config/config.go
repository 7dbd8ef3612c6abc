// Package config предоставляет структуры и функции для загрузки конфигурации.
//
// Источник: YAML-файл из CONFIG_PATH, если переменная задана, иначе
// переменные окружения (в том числе из .env), как это принято для функций платформы.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"APP_ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"DATABASE_URL"`
	MigrateOnStart          bool   `yaml:"migrate_on_start" env:"MIGRATE_ON_START" env-default:"true"`
	IdentityProvider        `yaml:"identity_provider"`
	IdentityToken           `yaml:"identity_token"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	HTTPServer              `yaml:"http_server"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	RateLimit   float64       `yaml:"rate_limit" env:"HTTP_RATE_LIMIT" env-default:"20"`
	RateBurst   int           `yaml:"rate_burst" env:"HTTP_RATE_BURST" env-default:"40"`
}

// IdentityProvider: доступ к admin API провайдера личностей.
type IdentityProvider struct {
	APIURL           string        `yaml:"api_url" env:"NETLIFY_API_URL" env-default:"https://api.netlify.com/api/v1"`
	AdminAccessToken string        `yaml:"admin_access_token" env:"NETLIFY_ADMIN_ACCESS_TOKEN"`
	SiteID           string        `yaml:"site_id" env:"SITE_ID"`
	Timeout          time.Duration `yaml:"timeout" env:"NETLIFY_API_TIMEOUT" env-default:"10s"`
}

// IdentityToken: секрет для проверки подписи токена личности.
type IdentityToken struct {
	JWTSecretKey string `yaml:"jwt_secret_key" env:"IDENTITY_JWT_SECRET"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кеш профилей.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT"`
	ProfileTTL   time.Duration `yaml:"profile_ttl" env:"REDIS_PROFILE_TTL" env-default:"10m"`
}

// RabbitMQ: очередь событий для ручной сверки. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL      string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string `yaml:"exchange" env:"RABBITMQ_EXCHANGE" env-default:"profiles"`
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из CONFIG_PATH или из окружения.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("file: %s - does not exist", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MissingIdentityProvider возвращает имена незаполненных настроек провайдера.
func (c *Config) MissingIdentityProvider() []string {
	var missing []string
	if strings.TrimSpace(c.AdminAccessToken) == "" {
		missing = append(missing, "NETLIFY_ADMIN_ACCESS_TOKEN")
	}
	if strings.TrimSpace(c.SiteID) == "" {
		missing = append(missing, "SITE_ID")
	}
	return missing
}

// String не выводит секреты.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"IdentityProvider:\n"+
			"  APIURL: %s\n"+
			"  SiteID: %s\n"+
			"  AdminAccessToken: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"RabbitMQ:\n"+
			"  URL: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n",
		c.Env,
		mask(c.StorageConnectionString),
		c.APIURL,
		c.SiteID,
		mask(c.AdminAccessToken),
		c.AddressRedis,
		c.DB,
		mask(c.RabbitMQ.URL),
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
	)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
