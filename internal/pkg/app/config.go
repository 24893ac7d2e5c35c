package app

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/nil-go/konf"
	"github.com/nil-go/konf/provider/file"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "USERLIST_"

type WebConfig struct {
	Host         string        `konf:"host"          env:"HOST"`
	Port         string        `konf:"port"          env:"PORT"`
	ReadTimeout  time.Duration `konf:"read_timeout"  env:"READ_TIMEOUT"`
	WriteTimeout time.Duration `konf:"write_timeout" env:"WRITE_TIMEOUT"`
	HtmxURL      string        `konf:"htmx_url"      env:"HTMX_URL"`
}

func (c WebConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type DBConfig struct {
	DriverName       string `konf:"driver_name"       env:"DRIVER_NAME"`
	ConnectionString string `konf:"connection_string" env:"CONNECTION_STRING"`
	Migrations       string `konf:"migrations"        env:"MIGRATIONS"`
}

type LoggingConfig struct {
	Level int `konf:"level" env:"LEVEL"`
}

type KafkaConfig struct {
	Addresses []string `konf:"addresses" env:"ADDRESSES" envSeparator:","`
	Topic     string   `konf:"topic"     env:"TOPIC"`
}

func (c KafkaConfig) Enabled() bool {
	return len(c.Addresses) > 0 && c.Topic != ""
}

type NonceConfig struct {
	Secret   string        `konf:"secret"   env:"SECRET"`
	Lifetime time.Duration `konf:"lifetime" env:"LIFETIME"`
}

type ListConfig struct {
	Language string `konf:"language" env:"LANGUAGE"`
}

type ClientConfig struct {
	BaseURL         string        `konf:"base_url"          env:"BASE_URL"`
	Timeout         time.Duration `konf:"timeout"           env:"TIMEOUT"`
	MaxRequestFails uint32        `konf:"max_request_fails" env:"MAX_REQUEST_FAILS"`
}

type Config struct {
	Web     WebConfig     `konf:"web"     envPrefix:"WEB_"`
	DB      DBConfig      `konf:"db"      envPrefix:"DB_"`
	Logging LoggingConfig `konf:"logging" envPrefix:"LOGGING_"`
	Kafka   KafkaConfig   `konf:"kafka"   envPrefix:"KAFKA_"`
	Nonce   NonceConfig   `konf:"nonce"   envPrefix:"NONCE_"`
	List    ListConfig    `konf:"list"    envPrefix:"LIST_"`
	Client  ClientConfig  `konf:"client"  envPrefix:"CLIENT_"`
}

func DefaultConfig() Config {
	return Config{
		Web: WebConfig{
			Host:         "0.0.0.0",
			Port:         "8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			HtmxURL:      "https://unpkg.com/htmx.org@2.0.4",
		},
		DB: DBConfig{
			DriverName:       "sqlite3",
			ConnectionString: "users.db",
			Migrations:       "migrations/sqlite3",
		},
		Nonce: NonceConfig{
			Lifetime: 24 * time.Hour,
		},
		List: ListConfig{
			Language: "en",
		},
		Client: ClientConfig{
			BaseURL:         "http://localhost:8080",
			Timeout:         5 * time.Second,
			MaxRequestFails: 3,
		},
	}
}

// ReadLocalConfig reads the YAML file at path over the defaults, then applies
// USERLIST_ environment overrides.
func ReadLocalConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path != "" {
		loader := konf.New()
		err := loader.Load(file.New(path, file.WithUnmarshal(yaml.Unmarshal)))
		if err != nil {
			return Config{}, errors.Wrap(err, "load config file")
		}

		err = loader.Unmarshal("", &config)
		if err != nil {
			return Config{}, errors.Wrap(err, "unmarshal config")
		}
	}

	err := env.ParseWithOptions(&config, env.Options{Prefix: EnvPrefix})
	if err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}

	return config, nil
}
