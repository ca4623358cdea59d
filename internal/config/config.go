// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	SiteURL                 string `yaml:"site_url"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	SMTP                    `yaml:"smtp"`
	JWTToken                `yaml:"jwttoken"`
	PaymentProvider         `yaml:"payment_provider"`
	AddressNormalizer       `yaml:"address_normalizer"`
	AccountLifecycle        `yaml:"account_lifecycle"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"localhost:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// RabbitMQ структура для настройки подключения к брокеру сообщений
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"rabbitmq_url"`
	RabbitMQMaxRetries int           `yaml:"rabbitmq_max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"rabbitmq_retry_delay" env-default:"3s"`
}

// SMTP структура для настройки отправки почты
type SMTP struct {
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort string `yaml:"smtp_port" env-default:"587"`
	SMTPUser string `yaml:"smtp_user"`
	SMTPPass string `yaml:"smtp_pass"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// PaymentProvider структура с ключами платежного провайдера
type PaymentProvider struct {
	ProviderSecretKey    string `yaml:"provider_secret_key"`
	ProviderWebhookKey   string `yaml:"provider_webhook_key"`
	UpgradeCostInDollars string `yaml:"upgrade_cost_in_dollars" env-default:"$36"`
}

// AddressNormalizer структура с ключами сервиса нормализации адресов
type AddressNormalizer struct {
	NormalizerAuthID    string `yaml:"normalizer_auth_id"`
	NormalizerAuthToken string `yaml:"normalizer_auth_token"`
}

// AccountLifecycle структура с порогами ночных задач жизненного цикла
type AccountLifecycle struct {
	PremiumDurationMonths       int           `yaml:"premium_duration_months" env-default:"12"`
	FirstAlertBeforeExpiration  int           `yaml:"first_alert_before_expiration" env-default:"30"`
	SecondAlertBeforeExpiration int           `yaml:"second_alert_before_expiration" env-default:"15"`
	FinalAlertBeforeExpiration  int           `yaml:"final_alert_before_expiration" env-default:"5"`
	ConfirmationLimit           int           `yaml:"confirmation_limit" env-default:"5"`
	ConfirmationTTL             time.Duration `yaml:"confirmation_ttl" env-default:"24h"`
}

// MustLoad функция для загрузки конфига, путь к файлу берется из переменной
// окружения CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
