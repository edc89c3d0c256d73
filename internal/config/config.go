package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Redis      RedisConfig      `toml:"redis"`
	Kafka      KafkaConfig      `toml:"kafka"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	Scheduling SchedulingConfig `toml:"scheduling"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	MaxTxRetries    int    `toml:"max_tx_retries"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig кэш конфигурации расписаний для advisory-проверок
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// TTL время жизни записи кэша
func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

// KafkaConfig публикация событий о подтверждённых бронированиях
type KafkaConfig struct {
	Enabled      bool   `toml:"enabled"`
	Brokers      string `toml:"brokers"` // через запятую
	Topic        string `toml:"topic"`
	WriteTimeout int    `toml:"write_timeout"` // секунды
}

// BrokerList список брокеров без пустых значений
func (k KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// RateLimitConfig ограничение частоты advisory-проверок на клиента
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// SchedulingConfig значения по умолчанию для пулов без сохранённых настроек
type SchedulingConfig struct {
	Timezone           string `toml:"timezone"`
	BufferMinutes      int    `toml:"buffer_minutes"`
	MinLeadTimeMinutes int    `toml:"min_lead_time_minutes"`
	AdvanceBookingDays int    `toml:"advance_booking_days"`
	PoolSize           int    `toml:"pool_size"`
	CapacityMode       string `toml:"capacity_mode"` // catalog | pool
}

// Location часовой пояс расписаний
func (s SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// Settings настройки по умолчанию в domain представлении
func (s SchedulingConfig) Settings() domain.SchedulingSettings {
	return domain.SchedulingSettings{
		BufferMinutes:      s.BufferMinutes,
		PoolSize:           s.PoolSize,
		CapacityMode:       domain.CapacityMode(s.CapacityMode),
		MinLeadTimeMinutes: s.MinLeadTimeMinutes,
		AdvanceBookingDays: s.AdvanceBookingDays,
		Timezone:           s.Timezone,
	}
}

// Load читает конфигурацию из TOML файла и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.MaxTxRetries == 0 {
		c.Database.MaxTxRetries = 3
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "reservation_service"
	}

	if c.Redis.TTLSeconds == 0 {
		c.Redis.TTLSeconds = 60
	}

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "reservation.committed.v1"
	}
	if c.Kafka.WriteTimeout == 0 {
		c.Kafka.WriteTimeout = 5
	}

	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}

	if c.Scheduling.Timezone == "" {
		c.Scheduling.Timezone = "UTC"
	}
	if c.Scheduling.MinLeadTimeMinutes == 0 {
		c.Scheduling.MinLeadTimeMinutes = 60
	}
	if c.Scheduling.PoolSize == 0 {
		c.Scheduling.PoolSize = 1
	}
	if c.Scheduling.CapacityMode == "" {
		c.Scheduling.CapacityMode = "catalog"
	}
}

// Validate проверяет невозможные значения
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Kafka.Enabled && len(c.Kafka.BrokerList()) == 0 {
		return fmt.Errorf("%w: kafka.brokers is required when kafka is enabled", ErrInvalidConfig)
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: rate_limit values must not be negative", ErrInvalidConfig)
	}
	if c.Scheduling.BufferMinutes < 0 || c.Scheduling.MinLeadTimeMinutes < 0 || c.Scheduling.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: scheduling minutes and days must not be negative", ErrInvalidConfig)
	}
	if c.Scheduling.PoolSize < 0 {
		return fmt.Errorf("%w: scheduling.pool_size must not be negative", ErrInvalidConfig)
	}
	if c.Scheduling.CapacityMode != "catalog" && c.Scheduling.CapacityMode != "pool" {
		return fmt.Errorf("%w: scheduling.capacity_mode must be catalog or pool, got %q", ErrInvalidConfig, c.Scheduling.CapacityMode)
	}
	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}
