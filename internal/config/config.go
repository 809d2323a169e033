package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig             `toml:"server"`
	Database DatabaseConfig           `toml:"database"`
	Logs     LogsConfig               `toml:"logs"`
	Metrics  MetricsConfig            `toml:"metrics"`
	Notifier NotifierConfig           `toml:"notifier"`
	Booking  BookingConfig            `toml:"booking"`
	Stations map[string]StationConfig `toml:"stations"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// NotifierConfig настройки уведомлений агентов (Telegram Bot API)
type NotifierConfig struct {
	Enabled  bool   `toml:"enabled"`
	BotToken string `toml:"bot_token"`
}

// BookingConfig настройки бронирования
type BookingConfig struct {
	// DaysAhead на сколько дней вперёд предлагается запись
	DaysAhead int `toml:"days_ahead"`
}

// StationConfig конфигурация станции СТО
// Цены заданы строками и валидируются при старте (см. internal/stations)
type StationConfig struct {
	Name                string            `toml:"name"`
	Address             string            `toml:"address"`
	WorkingHoursStart   string            `toml:"working_hours_start"`
	WorkingHoursEnd     string            `toml:"working_hours_end"`
	SlotDurationMinutes int               `toml:"slot_duration_minutes"`
	SlotsPerHour        int               `toml:"slots_per_hour"`
	Prices              map[string]string `toml:"prices"`
	DefectPrices        map[string]string `toml:"defect_prices"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if c.Logs.File == "" {
		return fmt.Errorf("logs.file is required")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("metrics.path is required when metrics are enabled")
	}
	if c.Notifier.Enabled && c.Notifier.BotToken == "" {
		return fmt.Errorf("notifier.bot_token is required when notifier is enabled")
	}
	if len(c.Stations) == 0 {
		return fmt.Errorf("at least one station must be configured")
	}
	for id, station := range c.Stations {
		if station.Name == "" {
			return fmt.Errorf("stations.%s: name is required", id)
		}
		if len(station.Prices) == 0 {
			return fmt.Errorf("stations.%s: at least one category price is required", id)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Booking.DaysAhead == 0 {
		c.Booking.DaysAhead = 7
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "sto-booking-service"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
}
