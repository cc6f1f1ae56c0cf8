package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Face    FaceConfig    `mapstructure:"face"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type FaceConfig struct {
	ModelsDir        string  `mapstructure:"models_dir"`
	DefaultThreshold float64 `mapstructure:"default_threshold"`
	UseCNN           bool    `mapstructure:"use_cnn"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Addr is the listen address for fiber.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// env names that do not follow the dotted key convention
var envAliases = map[string]string{
	"server.port":            "PORT",
	"server.host":            "HOST",
	"face.models_dir":        "FACE_MODELS_DIR",
	"face.default_threshold": "FACE_DEFAULT_THRESHOLD",
	"face.use_cnn":           "FACE_USE_CNN",
	"log.level":              "LOG_LEVEL",
	"metrics.enabled":        "METRICS_ENABLED",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5001)
	v.SetDefault("face.models_dir", "./models")
	v.SetDefault("face.default_threshold", 0.6)
	v.SetDefault("face.use_cnn", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.enabled", true)
}

// Load builds the configuration once from defaults, an optional config.yaml
// found in configPaths, and the environment. Environment wins.
func Load(configPaths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Face.DefaultThreshold < 0 {
		return fmt.Errorf("default threshold must not be negative, got %v", c.Face.DefaultThreshold)
	}
	return nil
}
