package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/voidfloat/FLT-SchedulingService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Schedule ScheduleConfig `toml:"schedule"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig настройки расписания центра
// Рабочие часы, шаг сетки слотов и буфер уборки настраиваются здесь,
// а не зашиваются в код
type ScheduleConfig struct {
	OpenHour              int      `toml:"open_hour"`
	CloseHour             int      `toml:"close_hour"`
	SlotIntervalMinutes   int      `toml:"slot_interval_minutes"`
	DefaultCleanupMinutes int      `toml:"default_cleanup_minutes"`
	Timezone              string   `toml:"timezone"`
	BlockingStatuses      []string `toml:"blocking_statuses"`
}

// ToDomain конвертирует настройки расписания в domain модель
// При пустых значениях используются дефолты
func (c ScheduleConfig) ToDomain() (domain.ScheduleConfig, error) {
	result := domain.DefaultScheduleConfig()

	if c.OpenHour > 0 {
		result.OpenHour = c.OpenHour
	}
	if c.CloseHour > 0 {
		result.CloseHour = c.CloseHour
	}
	if c.SlotIntervalMinutes > 0 {
		result.SlotIntervalMinutes = c.SlotIntervalMinutes
	}
	if c.DefaultCleanupMinutes > 0 {
		result.DefaultCleanupMinutes = c.DefaultCleanupMinutes
	}

	if c.Timezone != "" {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return result, fmt.Errorf("config: invalid timezone %q: %w", c.Timezone, err)
		}
		result.Location = loc
	}

	if len(c.BlockingStatuses) > 0 {
		statuses := make([]domain.AppointmentStatus, 0, len(c.BlockingStatuses))
		for _, s := range c.BlockingStatuses {
			status := domain.AppointmentStatus(s)
			valid := false
			for _, v := range domain.ValidAppointmentStatuses {
				if status == v {
					valid = true
					break
				}
			}
			if !valid {
				return result, fmt.Errorf("config: invalid blocking status %q", s)
			}
			statuses = append(statuses, status)
		}
		result.BlockingStatuses = statuses
	}

	if result.OpenHour >= result.CloseHour {
		return result, fmt.Errorf("config: open_hour (%d) must be before close_hour (%d)",
			result.OpenHour, result.CloseHour)
	}

	return result, nil
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "flt-scheduling-service"
	}
}
