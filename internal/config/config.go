// Package config предоставляет загрузку конфигурации приложения.
//
// Значения собираются слоями: значения по умолчанию, необязательный YAML-файл
// (CONFIG_PATH или config.yaml) и переменные окружения с наивысшим приоритетом.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar задаёт переменную окружения с путём к YAML-файлу.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths перечисляет пути поиска файла конфигурации по порядку.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// Config содержит все параметры конфигурации приложения.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Dataset       DatasetConfig       `koanf:"dataset"`
	Elasticsearch ElasticsearchConfig `koanf:"elasticsearch"`
	Postgres      PostgresConfig      `koanf:"postgres"`
	Forecast      ForecastConfig      `koanf:"forecast"`
	Logging       LoggingConfig       `koanf:"logging"`
}

// ServerConfig содержит параметры HTTP сервера.
type ServerConfig struct {
	Port            string        `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	AllowedOrigin   string        `koanf:"allowed_origin"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"` // запросов в окно на IP, 0 отключает
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// DatasetConfig описывает источник набора данных о районах.
type DatasetConfig struct {
	Path string `koanf:"path"`
}

// ElasticsearchConfig содержит параметры индекса районов.
type ElasticsearchConfig struct {
	URL         string `koanf:"url"`
	Index       string `koanf:"index"`
	MappingPath string `koanf:"mapping_path"`
}

// PostgresConfig содержит параметры подключения к PostgreSQL.
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DB       string `koanf:"db"`
	SSLMode  string `koanf:"sslmode"`
}

// DSN возвращает строку подключения в формате lib/pq.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DB, p.SSLMode)
}

// ForecastConfig содержит параметры сервиса прогноза цен.
type ForecastConfig struct {
	URL           string        `koanf:"url"`
	Timeout       time.Duration `koanf:"timeout"`
	DefaultMonths int           `koanf:"default_months"`
}

// LoggingConfig содержит параметры логирования.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			AllowedOrigin:   "*",
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
		},
		Dataset: DatasetConfig{
			Path: "data/updated_dataset.csv",
		},
		Elasticsearch: ElasticsearchConfig{
			URL:         "http://localhost:9200",
			Index:       "neighborhoods",
			MappingPath: "migrations/elasticsearch_mapping.json",
		},
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "nestnav_user",
			Password: "nestnav_pass",
			DB:       "nestnav",
			SSLMode:  "disable",
		},
		Forecast: ForecastConfig{
			URL:           "http://127.0.0.1:5001",
			Timeout:       10 * time.Second,
			DefaultMonths: 12,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// envMappings сопоставляет плоские имена переменных окружения путям конфигурации.
var envMappings = map[string]string{
	"app_port":            "server.port",
	"allowed_origin":      "server.allowed_origin",
	"rate_limit_reqs":     "server.rate_limit_reqs",
	"rate_limit_window":   "server.rate_limit_window",
	"dataset_path":        "dataset.path",
	"elasticsearch_url":   "elasticsearch.url",
	"elasticsearch_index": "elasticsearch.index",
	"es_mapping_path":     "elasticsearch.mapping_path",
	"postgres_host":       "postgres.host",
	"postgres_port":       "postgres.port",
	"postgres_user":       "postgres.user",
	"postgres_password":   "postgres.password",
	"postgres_db":         "postgres.db",
	"postgres_sslmode":    "postgres.sslmode",
	"forecast_url":        "forecast.url",
	"forecast_timeout":    "forecast.timeout",
	"log_level":           "logging.level",
	"log_format":          "logging.format",
}

// envTransformFunc переводит имя переменной окружения в путь koanf.
// Неизвестные переменные отбрасываются.
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}

// Load загружает конфигурацию из значений по умолчанию, файла и окружения.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Validate проверяет обязательные параметры.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if c.Dataset.Path == "" {
		errs = append(errs, errors.New("dataset.path is required"))
	}
	if c.Forecast.URL == "" {
		errs = append(errs, errors.New("forecast.url is required"))
	}
	if c.Forecast.DefaultMonths < 1 {
		errs = append(errs, errors.New("forecast.default_months must be positive"))
	}
	if c.Server.RateLimitReqs < 0 {
		errs = append(errs, errors.New("server.rate_limit_reqs must not be negative"))
	}
	return errors.Join(errs...)
}
