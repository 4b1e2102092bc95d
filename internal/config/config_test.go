package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateProviderConfig_Defaults(t *testing.T) {
	cfg, err := NewRateProviderConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.Source.CacheTTL)
	assert.Zero(t, cfg.Source.Timeout)
	assert.Contains(t, cfg.Source.URLTemplate, "marketindexCd=FX_%s%s")
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "rate-fetched", cfg.Kafka.Topic)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
}

func TestNewRateProviderConfig_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("RATE_CACHE_TTL", "30s")
	t.Setenv("RATE_SOURCE_TIMEOUT", "3s")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := NewRateProviderConfig()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.Source.CacheTTL)
	assert.Equal(t, 3*time.Second, cfg.Source.Timeout)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
}

func TestNewConverterConfig(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		wantErr bool
	}{
		{"default memory", "", false},
		{"postgres", StoragePostgres, false},
		{"redis", StorageRedis, false},
		{"unknown", "sqlite", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.driver != "" {
				t.Setenv("STORAGE_DRIVER", tt.driver)
			}

			cfg, err := NewConverterConfig()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.driver == "" {
				assert.Equal(t, StorageMemory, cfg.Storage.Driver)
			} else {
				assert.Equal(t, tt.driver, cfg.Storage.Driver)
			}
			assert.Equal(t, "USD", cfg.BaseCurrency)
			assert.Equal(t, "KRW", cfg.TargetCurrency)
			assert.Equal(t, "currency-converter:", cfg.Redis.Prefix)
		})
	}
}

func TestNewRateHistoryConfig_RequiresMongoURI(t *testing.T) {
	_, err := NewRateHistoryConfig()
	assert.Error(t, err)

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	cfg, err := NewRateHistoryConfig()

	require.NoError(t, err)
	assert.Equal(t, "rate_history", cfg.MongoDB.Collection)
	assert.Equal(t, "rate-history", cfg.Kafka.GroupID)
	assert.Equal(t, 5, cfg.Kafka.Workers)
}

func TestDBConfig_URLs(t *testing.T) {
	d := DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "cc", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=cc sslmode=disable", d.DSN())
	assert.Equal(t, "postgres://u:p@db:5432/cc?sslmode=disable", d.MigrationURL())
}
