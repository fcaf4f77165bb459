package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// App holds the process-level settings of the report binaries.
type App struct {
	DBDriver      string   `mapstructure:"db_driver"`
	DBDSN         string   `mapstructure:"db_dsn"`
	ProvidersFile string   `mapstructure:"providers_file"`
	DefaultUnit   string   `mapstructure:"default_unit"`
	AMQPURL       string   `mapstructure:"amqp_url"`
	AMQPExchange  string   `mapstructure:"amqp_exchange"`
	SMTPAddr      string   `mapstructure:"smtp_addr"`
	SMTPFrom      string   `mapstructure:"smtp_from"`
	SMTPTo        []string `mapstructure:"smtp_to"`
}

// LoadApp reads the application config from path, falling back to
// defaults and REVPULSE_* environment variables. A missing file is not
// an error; a malformed one is.
func LoadApp(path string) (*App, error) {
	v := viper.New()
	v.SetDefault("db_driver", "sqlite3")
	v.SetDefault("db_dsn", "revenue-pulse.db")
	v.SetDefault("providers_file", "providers.ini")
	v.SetDefault("default_unit", "usd")
	v.SetDefault("amqp_exchange", "revenue-reports")
	v.SetEnvPrefix("REVPULSE")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var app App
	if err := v.Unmarshal(&app); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &app, nil
}
