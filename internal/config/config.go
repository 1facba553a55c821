package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the connection string for GORM's postgres driver.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// DatabaseURL returns the URL form used by the migration tool.
func (d DatabaseConfig) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// KafkaConfig holds Kafka broker settings.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// RedisConfig holds Redis connection and cache settings.
type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	SearchTTLSecs int
}

// ServiceConfig holds all configuration for the rental service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	DBConfig    DatabaseConfig
	KafkaConfig KafkaConfig
	RedisConfig RedisConfig
}

// Load reads configuration from RENTAL_-prefixed environment variables.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("RENTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "rental")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_GROUP_PREFIX", "gearshare-")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_SEARCH_TTL_SECONDS", 60)

	cfg := &ServiceConfig{
		Port:   ":" + strings.TrimPrefix(v.GetString("SERVICE_PORT"), ":"),
		AppEnv: v.GetString("APP_ENV"),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:     strings.Split(v.GetString("KAFKA_BROKERS"), ","),
			GroupPrefix: v.GetString("KAFKA_GROUP_PREFIX"),
		},
		RedisConfig: RedisConfig{
			Addr:          v.GetString("REDIS_ADDR"),
			Password:      v.GetString("REDIS_PASSWORD"),
			DB:            v.GetInt("REDIS_DB"),
			SearchTTLSecs: v.GetInt("REDIS_SEARCH_TTL_SECONDS"),
		},
	}

	if cfg.DBConfig.DBName == "" {
		return nil, fmt.Errorf("database name must not be empty")
	}
	return cfg, nil
}
