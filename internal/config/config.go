// Package config loads CLI settings from config.yaml, a .env file and
// PORTFOLIO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/storage"
)

// EnvPrefix is prepended to every environment variable.
const EnvPrefix = "PORTFOLIO"

// DefaultStorageDir holds the cache when nothing else is configured.
const DefaultStorageDir = ".portfolio"

// Config is the resolved CLI configuration.
type Config struct {
	Storage struct {
		Driver string `mapstructure:"driver"`
		Dir    string `mapstructure:"dir"`
		Path   string `mapstructure:"path"`
		Format string `mapstructure:"format"`
	} `mapstructure:"storage"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
		TLS      bool   `mapstructure:"tls"`
		Prefix   string `mapstructure:"prefix"`
	} `mapstructure:"redis"`
	Render struct {
		Escape       string `mapstructure:"escape"`
		Appearance   string `mapstructure:"appearance"`
		MarkdownBio  bool   `mapstructure:"markdown_bio"`
		TemplatesDir string `mapstructure:"templates_dir"`
	} `mapstructure:"render"`
	Log struct {
		Env string `mapstructure:"env"`
	} `mapstructure:"log"`
	Export struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"export"`
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile names an explicit YAML file. When blank, config.yaml is
	// looked up in SearchPaths (default ".") and may be absent.
	ConfigFile  string
	SearchPaths []string
	// EnvFile is loaded with godotenv before reading the environment.
	// Existing variables win. Defaults to ".env"; a missing file is fine.
	EnvFile string
	Logger  logging.Logger
}

var envBindings = map[string]string{
	"storage.driver":       "STORAGE_DRIVER",
	"storage.dir":          "STORAGE_DIR",
	"storage.path":         "STORAGE_PATH",
	"storage.format":       "STORAGE_FORMAT",
	"redis.addr":           "REDIS_ADDR",
	"redis.password":       "REDIS_PASSWORD",
	"redis.db":             "REDIS_DB",
	"redis.tls":            "REDIS_TLS",
	"redis.prefix":         "REDIS_PREFIX",
	"render.escape":        "RENDER_ESCAPE",
	"render.appearance":    "RENDER_APPEARANCE",
	"render.markdown_bio":  "RENDER_MARKDOWN_BIO",
	"render.templates_dir": "RENDER_TEMPLATES_DIR",
	"log.env":              "LOG_ENV",
	"export.dir":           "EXPORT_DIR",
}

// Load resolves the configuration. Precedence: environment, then config
// file, then defaults.
func Load(opts Options) (Config, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		logger.Debug("env file not loaded", zap.String("file", envFile), zap.Error(err))
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", opts.ConfigFile, err)
		}
	} else {
		paths := opts.SearchPaths
		if len(paths) == 0 {
			paths = []string{"."}
		}
		for _, path := range paths {
			v.AddConfigPath(path)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: read config.yaml: %w", err)
			}
			logger.Debug("config.yaml not found, using env and defaults")
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, EnvPrefix+"_"+env); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("config loaded", zap.String("file", used))
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", storage.DriverFile)
	v.SetDefault("storage.dir", defaultStorageDir())
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.format", string(storage.FormatJSON))
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.tls", false)
	v.SetDefault("redis.prefix", "")
	v.SetDefault("render.escape", "escape")
	v.SetDefault("render.appearance", "light")
	v.SetDefault("render.markdown_bio", false)
	v.SetDefault("render.templates_dir", "")
	v.SetDefault("log.env", "production")
	v.SetDefault("export.dir", ".")
}

func defaultStorageDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "go-portfolio")
	}
	return DefaultStorageDir
}

// StorageConfig maps the loaded settings onto the storage registry config.
func (c Config) StorageConfig() (storage.Config, error) {
	format, err := storage.ParseFormat(c.Storage.Format)
	if err != nil {
		return storage.Config{}, err
	}
	return storage.Config{
		Driver: c.Storage.Driver,
		Dir:    c.Storage.Dir,
		Path:   c.Storage.Path,
		Format: format,
		Redis: storage.RedisConfig{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			UseTLS:   c.Redis.TLS,
			Prefix:   c.Redis.Prefix,
			Format:   format,
		},
	}, nil
}
