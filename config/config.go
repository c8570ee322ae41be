package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the server settings
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	RedisAddr     string // Empty selects the in-memory store
	RedisPassword string
	RedisDB       int
	StoragePrefix string

	AgendaTeacher  string
	ReportRows     int
	ReportPageSize int
	ReportSeed     int64 // 0 seeds from the clock
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("storage_prefix", "")
	v.SetDefault("agenda_teacher", "Sarah Jenkins")
	v.SetDefault("report_rows", 240)
	v.SetDefault("report_page_size", 5)
	v.SetDefault("report_seed", 0)
	return v
}

// LoadConfig reads defaults, an optional .env file and the process environment
func LoadConfig() (*Config, error) {
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		env = "development"
	}

	// load .env.<env> or .env if present (ignore if absent)
	for _, path := range []string{".env." + env, ".env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return nil, fmt.Errorf("config: load %s: %w", path, err)
			}
			break
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		}
	}

	v := newViper()
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	level, err := ParseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:           v.GetString("port"),
		Environment:    v.GetString("env"),
		LogLevel:       level,
		RedisAddr:      v.GetString("redis_addr"),
		RedisPassword:  v.GetString("redis_password"),
		RedisDB:        v.GetInt("redis_db"),
		StoragePrefix:  v.GetString("storage_prefix"),
		AgendaTeacher:  v.GetString("agenda_teacher"),
		ReportRows:     v.GetInt("report_rows"),
		ReportPageSize: v.GetInt("report_page_size"),
		ReportSeed:     v.GetInt64("report_seed"),
	}

	if cfg.ReportRows < 0 {
		return nil, fmt.Errorf("config: report_rows must not be negative, got %d", cfg.ReportRows)
	}
	if cfg.ReportPageSize <= 0 {
		return nil, fmt.Errorf("config: report_page_size must be positive, got %d", cfg.ReportPageSize)
	}
	return cfg, nil
}

// ParseLevel maps a level name onto slog levels
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: invalid log_level %q: %w", s, err)
	}
	return level, nil
}
