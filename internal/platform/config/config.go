package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Config struct {
	DataDir string      `mapstructure:"-" yaml:"data_dir"`
	Store   StoreConfig `mapstructure:"store" yaml:"store"`
	Log     LogConfig   `mapstructure:"log" yaml:"log"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	// Path is the JSON document for the file driver or the database file for sqlite.
	Path string `mapstructure:"path" yaml:"path"`
	DSN  string `mapstructure:"dsn" yaml:"dsn,omitempty"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// DefaultDataDir is ~/.worktime, or ./.worktime when the home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".worktime"
	}
	return filepath.Join(home, ".worktime")
}

func New(dataDir string) (Config, error) {
	return Load(dataDir, "")
}

// Load resolves configuration from defaults, an optional YAML file and
// WORKTIME_* environment variables, in increasing precedence. Without an
// explicit file, config.yaml inside dataDir is read when present.
func Load(dataDir, file string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	v := viper.New()
	v.SetDefault("store.driver", DriverFile)
	v.SetDefault("store.path", "")
	v.SetDefault("store.dsn", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", filepath.Join(dataDir, "worktime.log"))

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dataDir)
	}
	v.SetEnvPrefix("WORKTIME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{DataDir: dataDir}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.DataDir = dataDir
	if cfg.Store.Path == "" {
		switch cfg.Store.Driver {
		case DriverSQLite:
			cfg.Store.Path = filepath.Join(dataDir, "worktime.db")
		default:
			cfg.Store.Path = filepath.Join(dataDir, "store.json")
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverFile, DriverSQLite:
	case DriverMySQL:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("store.dsn is required for the mysql driver")
		}
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level %q", c.Log.Level)
	}
	return nil
}
