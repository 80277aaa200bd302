package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// EnvDevelopment окружение разработки: .env подгружается, логи в текстовом формате
	EnvDevelopment = "development"
	// EnvProduction боевое окружение
	EnvProduction = "production"

	// UsersBackendPostgres хранение пользователей в Postgres
	UsersBackendPostgres = "postgres"
	// UsersBackendMongo хранение пользователей в MongoDB
	UsersBackendMongo = "mongo"
)

// Переменные окружения, перекрывающие значения из файла
const (
	EnvKeyDBPassword    = "DB_PASSWORD"
	EnvKeyTelegramToken = "TELEGRAM_TOKEN"
	EnvKeyMongoURI      = "MONGO_URI"
	EnvKeyLogLevel      = "LOG_LEVEL"
)

// Config конфигурация сервиса
type Config struct {
	App      AppConfig      `toml:"app"`
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Slots    SlotsConfig    `toml:"slots"`
	Reminder ReminderConfig `toml:"reminder"`
	Telegram TelegramConfig `toml:"telegram"`
	Users    UsersConfig    `toml:"users"`
}

// AppConfig общие параметры приложения
type AppConfig struct {
	Env      string `toml:"env"`
	Timezone string `toml:"timezone"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к Postgres
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

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SlotsConfig сетка временных слотов, общая для всех категорий
type SlotsConfig struct {
	Open            string `toml:"open"`
	Close           string `toml:"close"`
	IntervalMinutes int    `toml:"interval_minutes"`
}

// ReminderConfig параметры рассылки напоминаний (в секундах)
type ReminderConfig struct {
	Enabled       bool `toml:"enabled"`
	PeriodSeconds int  `toml:"period_seconds"`
	LeadSeconds   int  `toml:"lead_seconds"`
	WindowSeconds int  `toml:"window_seconds"`
}

// Period период запуска сканирования
func (r ReminderConfig) Period() time.Duration {
	return time.Duration(r.PeriodSeconds) * time.Second
}

// Lead за сколько до визита отправляется напоминание
func (r ReminderConfig) Lead() time.Duration {
	return time.Duration(r.LeadSeconds) * time.Second
}

// Window ширина окна сканирования
func (r ReminderConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// TelegramConfig параметры бота для отправки напоминаний
type TelegramConfig struct {
	Token string `toml:"token"`
}

// UsersConfig выбор хранилища пользователей
type UsersConfig struct {
	Backend         string `toml:"backend"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDB         string `toml:"mongo_db"`
	MongoCollection string `toml:"mongo_collection"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию,
// переменные окружения и проверяет результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := loadDotEnv(cfg.App.Env); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		App: AppConfig{
			Env:      EnvProduction,
			Timezone: "UTC",
		},
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "reservation",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "reservation-service",
		},
		Slots: SlotsConfig{
			Open:            "09:00",
			Close:           "21:00",
			IntervalMinutes: 60,
		},
		Reminder: ReminderConfig{
			Enabled:       true,
			PeriodSeconds: 3600,
			LeadSeconds:   24 * 3600,
			WindowSeconds: 3600,
		},
		Users: UsersConfig{
			Backend:         UsersBackendPostgres,
			MongoDB:         "reservation",
			MongoCollection: "users",
		},
	}
}

// IsDevelopment возвращает true для окружения разработки
func (c *Config) IsDevelopment() bool {
	return c.App.Env == EnvDevelopment
}

// Location возвращает часовой пояс сервиса
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

// Validate проверяет конфигурацию и возвращает все найденные ошибки
func (c *Config) Validate() error {
	var errs []error

	if c.App.Env != EnvDevelopment && c.App.Env != EnvProduction {
		errs = append(errs, fmt.Errorf("app.env must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.App.Env))
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("app.timezone: %w", err))
	}
	if c.Server.HTTPPort <= 0 {
		errs = append(errs, errors.New("server.http_port must be positive"))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		errs = append(errs, errors.New("database.host and database.dbname are required"))
	}
	if c.Slots.IntervalMinutes <= 0 {
		errs = append(errs, errors.New("slots.interval_minutes must be positive"))
	}
	if c.Reminder.Enabled {
		if c.Reminder.PeriodSeconds <= 0 {
			errs = append(errs, errors.New("reminder.period_seconds must be positive"))
		}
		if c.Reminder.WindowSeconds < 0 || c.Reminder.LeadSeconds < 0 {
			errs = append(errs, errors.New("reminder.lead_seconds and reminder.window_seconds must not be negative"))
		}
	}
	switch c.Users.Backend {
	case UsersBackendPostgres:
	case UsersBackendMongo:
		if c.Users.MongoURI == "" {
			errs = append(errs, fmt.Errorf("users.mongo_uri (or %s) is required for mongo backend", EnvKeyMongoURI))
		}
	default:
		errs = append(errs, fmt.Errorf("users.backend must be %q or %q, got %q", UsersBackendPostgres, UsersBackendMongo, c.Users.Backend))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvKeyDBPassword)); v != "" {
		c.Database.Password = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvKeyTelegramToken)); v != "" {
		c.Telegram.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvKeyMongoURI)); v != "" {
		c.Users.MongoURI = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvKeyLogLevel)); v != "" {
		c.Logs.Level = strings.ToLower(v)
	}
}

// .env читается только в окружении разработки
func loadDotEnv(appEnv string) error {
	if appEnv != EnvDevelopment {
		return nil
	}

	if err := godotenv.Load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load .env: %w", err)
	}
	return nil
}
