package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	logcfg "github.com/ncobase/pagelink/logging/logger/config"
	"github.com/ncobase/pagelink/validator"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PAGELINK_CLIENT_TOKEN
const EnvPrefix = "PAGELINK"

// Config represents the configuration implementation.
type Config struct {
	AppName  string
	RunMode  string
	Client   *Client
	Logger   *logcfg.Config
	Observes *Observes
	Viper    *viper.Viper
}

// LoadConfig loads the configuration from configPath, or from the first
// config.yaml found in the default locations when configPath is empty.
// A missing file in the default locations is not an error; environment
// variables and defaults still apply.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/pagelink")
		v.AddConfigPath("$HOME/.pagelink")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return FromViper(v), nil
}

// FromViper builds the configuration from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		AppName:  getStringOrDefault(v, "app_name", "pagelink"),
		RunMode:  getStringOrDefault(v, "run_mode", "release"),
		Client:   getClientConfig(v),
		Logger:   logcfg.GetConfig(v),
		Observes: getObservesConfig(v),
		Viper:    v,
	}
}

// Validate checks the sections that must be usable before any request is made.
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.New("client configuration is missing")
	}
	if err := validator.Validate(c.Client); err != nil {
		return fmt.Errorf("invalid client configuration: %w", err)
	}
	if c.Logger != nil {
		if err := validator.Validate(c.Logger); err != nil {
			return fmt.Errorf("invalid logger configuration: %w", err)
		}
	}
	return nil
}

// Watch reloads the configuration whenever its file changes and hands the
// new value to callback. Invalid reloads are reported through onError.
func (c *Config) Watch(callback func(*Config), onError func(error)) {
	c.Viper.OnConfigChange(func(fsnotify.Event) {
		next := FromViper(c.Viper)
		if err := next.Validate(); err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		callback(next)
	})
	c.Viper.WatchConfig()
}
