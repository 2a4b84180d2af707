package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type GymConfig struct {
	// Timezone decides what "today" means for period anchoring and
	// coupon windows.
	Timezone string `mapstructure:"timezone"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Gym      GymConfig      `mapstructure:"gym"`
	Log      LogConfig      `mapstructure:"log"`
}

// Load reads configuration from an optional muscleup.yaml plus
// MUSCLEUP_* environment variables (MUSCLEUP_DATABASE_DSN and so on).
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=postgres dbname=muscleup port=5432 sslmode=disable")
	v.SetDefault("gym.timezone", "America/Mexico_City")
	v.SetDefault("log.level", "info")

	v.SetConfigName("muscleup")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/muscleup")

	v.SetEnvPrefix("MUSCLEUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewLocation resolves the configured gym time zone.
func NewLocation(cfg Config) (*time.Location, error) {
	return time.LoadLocation(cfg.Gym.Timezone)
}

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewLocation),
)
