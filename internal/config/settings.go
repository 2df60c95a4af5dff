package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/spf13/viper"
)

// Setting keys shared by flags, environment and config file
const (
	KeyTables       = "tables"
	KeyJurisdiction = "jurisdiction"
	KeyYear         = "year"
	KeyFormat       = "format"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
	KeyServerAddr   = "server.addr"
)

// Settings are the CLI defaults resolved from flags, CADPAY_* environment
// variables and the optional config file
type Settings struct {
	TablesPath   string
	Jurisdiction string
	Year         int
	Format       string
	LogLevel     string
	LogFormat    string
	ServerAddr   string
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyJurisdiction, "ON")
	v.SetDefault(KeyFormat, "console")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyServerAddr, ":8080")
}

// ReadSettings reads the config file (explicit path, or config.yaml under
// $HOME/.config/cadpay or the working directory) and environment into v
func ReadSettings(v *viper.Viper, cfgFile string) (Settings, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "cadpay"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("CADPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return Settings{
		TablesPath:   v.GetString(KeyTables),
		Jurisdiction: v.GetString(KeyJurisdiction),
		Year:         v.GetInt(KeyYear),
		Format:       v.GetString(KeyFormat),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		ServerAddr:   v.GetString(KeyServerAddr),
	}, nil
}

// Tables returns the override table file when one is configured, otherwise
// the built-in tables
func (s Settings) Tables() (domain.TaxTables, error) {
	if s.TablesPath == "" {
		return DefaultTables()
	}
	return NewTableLoader().LoadFromFile(s.TablesPath)
}

// TaxYear returns the configured year, or the latest year in tables when
// none is set
func (s Settings) TaxYear(tables domain.TaxTables) domain.TaxYear {
	if s.Year == 0 {
		return tables.Latest()
	}
	return domain.TaxYear(s.Year)
}

// SlogLevel maps the configured level name onto slog
func (s Settings) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", s.LogLevel)
	}
}
