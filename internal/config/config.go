package config

import (
	"fmt"
	"time"

	cleanenvport "github.com/wb-go/wbf/config/cleanenv-port"
	"github.com/wb-go/wbf/logger"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"    validate:"required"`
	Logger    LoggerConfig    `yaml:"logger"    validate:"required"`
	Gin       GinConfig       `yaml:"gin"       validate:"required"`
	Database  DatabaseConfig  `yaml:"database"  validate:"required"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Scheduler SchedulerConfig `yaml:"scheduler" validate:"required"`
	Reminder  ReminderConfig  `yaml:"reminder"  validate:"required"`
	Retention RetentionConfig `yaml:"retention" validate:"required"`
	Auth      AuthConfig      `yaml:"auth"      validate:"required"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Storage   StorageConfig   `yaml:"storage"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"          env:"SERVER_ADDR"          env-default:":8080" validate:"required"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"SERVER_READ_TIMEOUT"  env-default:"10s"   validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"10s"   validate:"gt=0"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  env:"SERVER_IDLE_TIMEOUT"  env-default:"60s"   validate:"gt=0"`
}

type LoggerConfig struct {
	Engine string `yaml:"engine" env:"LOG_ENGINE" env-default:"slog" validate:"required,oneof=slog zap zerolog logrus"`
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info" validate:"required,oneof=debug info warn error"`
}

func (c LoggerConfig) LogLevel() logger.Level {
	switch c.Level {
	case "debug":
		return logger.DebugLevel
	case "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}

func (c LoggerConfig) LogEngine() logger.Engine {
	return logger.Engine(c.Engine)
}

type GinConfig struct {
	Mode string `yaml:"mode" env:"GIN_MODE" env-default:"debug" validate:"required,oneof=debug release test"`
}

// DatabaseConfig selects the repository implementation at process start.
// The in-memory engine backs local runs without Postgres; services never
// branch on which one is wired in.
type DatabaseConfig struct {
	Engine string `yaml:"engine" env:"DB_ENGINE" env-default:"postgres" validate:"required,oneof=postgres memory"`
}

type PostgresConfig struct {
	Host            string        `yaml:"host"              env:"DB_HOST"              env-default:"localhost"  validate:"required"`
	Port            int           `yaml:"port"              env:"DB_PORT"              env-default:"5432"       validate:"required,min=1,max=65535"`
	User            string        `yaml:"user"              env:"DB_USER"              env-default:"postgres"   validate:"required"`
	Password        string        `yaml:"password"          env:"DB_PASSWORD"          env-default:"postgres"   validate:"required"`
	Database        string        `yaml:"database"          env:"DB_NAME"              env-default:"campushub"  validate:"required"`
	SSLMode         string        `yaml:"sslmode"           env:"DB_SSLMODE"           env-default:"disable"    validate:"required,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int           `yaml:"max_open_conns"    env:"DB_MAX_OPEN_CONNS"    env-default:"10"         validate:"min=1"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    env:"DB_MAX_IDLE_CONNS"    env-default:"5"          validate:"min=1"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"5m"         validate:"gt=0"`
}

func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval" env:"SCHEDULER_INTERVAL" env-default:"10m" validate:"required,gt=0"`
}

// ReminderConfig carries the notification window bounds. The defaults are
// calibrated to hour-granular event times and a sub-hourly sweep interval;
// changing them changes user-visible reminder timing.
type ReminderConfig struct {
	DayWindowMin  time.Duration `yaml:"day_window_min"  env:"REMINDER_DAY_WINDOW_MIN"  env-default:"23h"   validate:"gt=0"`
	DayWindowMax  time.Duration `yaml:"day_window_max"  env:"REMINDER_DAY_WINDOW_MAX"  env-default:"25h"   validate:"gt=0"`
	HourWindowMax time.Duration `yaml:"hour_window_max" env:"REMINDER_HOUR_WINDOW_MAX" env-default:"1h30m" validate:"gt=0"`
}

type RetentionConfig struct {
	Horizon time.Duration `yaml:"horizon" env:"RETENTION_HORIZON" env-default:"168h" validate:"gt=0"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" validate:"required"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN" env-default:""`
}

type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"   env:"STORAGE_ENDPOINT"   env-default:""`
	AccessKey string `yaml:"access_key" env:"STORAGE_ACCESS_KEY" env-default:""`
	SecretKey string `yaml:"secret_key" env:"STORAGE_SECRET_KEY" env-default:""`
	Bucket    string `yaml:"bucket"     env:"STORAGE_BUCKET"     env-default:"event-assets"`
	UseSSL    bool   `yaml:"use_ssl"    env:"STORAGE_USE_SSL"    env-default:"false"`
}

func (s *StorageConfig) Configured() bool {
	return s.Endpoint != ""
}

func MustLoad() *Config {
	var cfg Config
	if err := cleanenvport.Load(&cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return &cfg
}
