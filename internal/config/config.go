// Package config reads the service configuration.
//
// Values come from the environment first, then from an optional config
// file. A .env file in the working directory is loaded into the
// environment before anything is read.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	APIURL           *url.URL
	GinMode          string
	LogFormat        string
	CorsAllowOrigins []string
	EnablePprof      bool
	DataDir          string
	DBPath           string
	AMQPURL          string
	AMQPExchange     string
	CurrencyLocale   string
	CurrencySymbol   string
	Port             string
}

var (
	ErrAPIURLNotSet = errors.New("environment variable API_URL must be set")
	ErrAPIURLParse  = errors.New("environment variable API_URL must be a valid URL")
)

// New returns a viper instance with all defaults set and environment
// variables bound.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("gin_mode", "release")
	v.SetDefault("data_dir", "data")
	v.SetDefault("db_path", "")
	v.SetDefault("amqp_exchange", "ledger")
	v.SetDefault("currency_locale", "en-AU")
	v.SetDefault("currency_symbol", "$")
	v.SetDefault("port", "8080")
	v.SetDefault("enable_pprof", false)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// AllKeys only lists keys that are bound or have a default
	for _, key := range []string{"api_url", "log_format", "cors_allow_origins", "amqp_url"} {
		_ = v.BindEnv(key)
	}

	return v
}

// Load reads the configuration. configFile is optional, an empty string
// skips the config file.
func Load(configFile string) (Config, error) {
	// .env is optional, the environment is enough in production
	_ = godotenv.Load()

	v := New()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper builds the Config from a viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	apiURL := v.GetString("api_url")
	if apiURL == "" {
		return Config{}, ErrAPIURLNotSet
	}

	u, err := url.Parse(apiURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, ErrAPIURLParse
	}

	// Trailing slashes break the link generation
	u.Path = strings.TrimSuffix(u.Path, "/")

	c := Config{
		APIURL:         u,
		GinMode:        v.GetString("gin_mode"),
		LogFormat:      v.GetString("log_format"),
		EnablePprof:    v.GetBool("enable_pprof"),
		DataDir:        v.GetString("data_dir"),
		DBPath:         v.GetString("db_path"),
		AMQPURL:        v.GetString("amqp_url"),
		AMQPExchange:   v.GetString("amqp_exchange"),
		CurrencyLocale: v.GetString("currency_locale"),
		CurrencySymbol: v.GetString("currency_symbol"),
		Port:           v.GetString("port"),
	}

	for _, origin := range strings.Split(v.GetString("cors_allow_origins"), " ") {
		if origin != "" {
			c.CorsAllowOrigins = append(c.CorsAllowOrigins, origin)
		}
	}

	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "ledger.db")
	}

	return c, nil
}
