package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envFile = "config.env"

// RateProviderConfig конфигурация cmd/rate-provider.
type RateProviderConfig struct {
	HTTPPort   string `envconfig:"APP_PORT" default:"8080"`
	SwaggerURL string `envconfig:"SWAGGER_URL" default:"http://localhost:8080/swagger/doc.json"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile    string `envconfig:"LOG_FILE" default:"rate-provider.log"`
	Source     SourceConfig
	Kafka      KafkaProducerConfig
}

// ConverterConfig конфигурация консольного конвертера cmd/converter.
type ConverterConfig struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE" default:"converter.log"`

	// Embedded поднимает RateProvider в процессе вместо обращения к RATE_PROVIDER_URL.
	Embedded        bool          `envconfig:"CONVERTER_EMBEDDED" default:"false"`
	ProviderURL     string        `envconfig:"RATE_PROVIDER_URL" default:"http://localhost:8080"`
	ProviderTimeout time.Duration `envconfig:"RATE_PROVIDER_TIMEOUT" default:"0s"`

	BaseCurrency   string `envconfig:"DEFAULT_BASE_CURRENCY" default:"USD"`
	TargetCurrency string `envconfig:"DEFAULT_TARGET_CURRENCY" default:"KRW"`

	Source  SourceConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
}

// RateHistoryConfig конфигурация cmd/rate-history.
type RateHistoryConfig struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE" default:"rate-history.log"`
	Kafka    KafkaConsumerConfig
	MongoDB  MongoDBConfig
}

type SourceConfig struct {
	URLTemplate string        `envconfig:"RATE_SOURCE_URL" default:"https://finance.naver.com/marketindex/exchangeDailyQuote.naver?marketindexCd=FX_%s%s&page=1"`
	Timeout     time.Duration `envconfig:"RATE_SOURCE_TIMEOUT" default:"0s"`
	CacheTTL    time.Duration `envconfig:"RATE_CACHE_TTL" default:"5m"`
}

type KafkaProducerConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"rate-fetched"`
	Enabled bool     `envconfig:"KAFKA_ENABLED" default:"false"`
}

type KafkaConsumerConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"rate-fetched"`
	GroupID string   `envconfig:"KAFKA_GROUP_ID" default:"rate-history"`
	Workers int      `envconfig:"KAFKA_WORKERS" default:"5"`
}

type MongoDBConfig struct {
	URI        string        `envconfig:"MONGO_URI" required:"true"`
	Database   string        `envconfig:"MONGO_DATABASE" default:"currency_converter"`
	Collection string        `envconfig:"MONGO_COLLECTION" default:"rate_history"`
	Timeout    time.Duration `envconfig:"MONGO_TIMEOUT" default:"10s"`
}

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type StorageConfig struct {
	Driver     string `envconfig:"STORAGE_DRIVER" default:"memory"`
	Migrations string `envconfig:"MIGRATIONS_PATH" default:"migrations"`
}

type DBConfig struct {
	Host     string `envconfig:"POSTGRES_HOST"     default:"localhost"`
	Port     string `envconfig:"POSTGRES_PORT"     default:"5432"`
	User     string `envconfig:"POSTGRES_USER"     default:"postgres"`
	Password string `envconfig:"POSTGRES_PASSWORD"`
	DBName   string `envconfig:"POSTGRES_DB"       default:"currency_converter"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE"  default:"disable"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	Prefix   string        `envconfig:"REDIS_PREFIX" default:"currency-converter:"`
	Timeout  time.Duration `envconfig:"REDIS_TIMEOUT" default:"5s"`
}

func NewRateProviderConfig() (*RateProviderConfig, error) {
	var cfg RateProviderConfig
	if err := load(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func NewConverterConfig() (*ConverterConfig, error) {
	var cfg ConverterConfig
	if err := load(&cfg); err != nil {
		return nil, err
	}

	switch cfg.Storage.Driver {
	case StorageMemory, StoragePostgres, StorageRedis:
	default:
		return nil, fmt.Errorf("неизвестный STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
	return &cfg, nil
}

func NewRateHistoryConfig() (*RateHistoryConfig, error) {
	var cfg RateHistoryConfig
	if err := load(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func load(cfg any) error {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("warning: не удалось загрузить файл %s, используются только системные переменные окружения: %v", envFile, err)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("ошибка парсинга конфигурации: %w", err)
	}
	return nil
}

func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func (d *DBConfig) MigrationURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}
