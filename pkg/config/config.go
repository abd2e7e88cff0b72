// Package config loads ServerSettings from an optional YAML file layered
// under VITAMINE_-prefixed environment variables and defaults, the same
// viper layering firestige-Otus uses for its own settings.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ServerSettings holds every tunable the server reads at startup.
type ServerSettings struct {
	ListenAddress     string        `mapstructure:"listen_address"`
	MaxViewDistance   int           `mapstructure:"max_view_distance"`
	ServerBrand       string        `mapstructure:"server_brand"`
	TickPeriod        time.Duration `mapstructure:"tick_period"`
	KeepAliveInterval time.Duration `mapstructure:"keep_alive_interval"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	LogLevel          string        `mapstructure:"log_level"`
}

func setDefaults() {
	viper.SetDefault("listen_address", ":25565")
	viper.SetDefault("max_view_distance", 32)
	viper.SetDefault("server_brand", "github.com/mgrech/vitamine")
	viper.SetDefault("tick_period", time.Second)
	viper.SetDefault("keep_alive_interval", 5*time.Second)
	viper.SetDefault("read_timeout", 10*time.Second)
	viper.SetDefault("log_level", "info")
}

// Load builds ServerSettings from defaults, an optional YAML file at path,
// and VITAMINE_-prefixed environment variables, in that increasing order
// of precedence. cmd/server binds cobra flags onto viper.GetViper() via
// viper.BindPFlag before calling Load, so flags take the highest
// precedence of all. A missing config file is not an error.
func Load(path string) (ServerSettings, error) {
	setDefaults()

	viper.SetEnvPrefix("VITAMINE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return ServerSettings{}, err
		}
	}

	var s ServerSettings
	if err := viper.Unmarshal(&s); err != nil {
		return ServerSettings{}, err
	}
	return s, nil
}

// ParsedLogLevel resolves the configured level string to a logrus.Level.
func (s ServerSettings) ParsedLogLevel() (logrus.Level, error) {
	return logrus.ParseLevel(s.LogLevel)
}
