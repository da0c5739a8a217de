package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config agrupa todo lo que el servicio lee al arrancar.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	DB      DBConfig      `yaml:"db"`
	Log     LogConfig     `yaml:"log"`
	DogAPI  DogAPIConfig  `yaml:"dog_api"`
	Billing BillingConfig `yaml:"billing"`
}

type HTTPConfig struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type DBConfig struct {
	// Vacío => store in-memory (modo dev).
	DSN string `yaml:"dsn"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

type DogAPIConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

type BillingConfig struct {
	DefaultPerDayRate int64 `yaml:"default_per_day_rate"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:         "8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "kennel-console",
		},
		DogAPI: DogAPIConfig{
			BaseURL: "https://api.thedogapi.com",
			Timeout: 5 * time.Second,
		},
		Billing: BillingConfig{
			DefaultPerDayRate: 400,
		},
	}
}

// Load arma la config en capas: defaults, YAML opcional, .env opcional y env vars.
// path vacío o inexistente no es error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// sin archivo => defaults
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	// .env solo en dev; godotenv no pisa variables ya seteadas.
	_ = godotenv.Load()

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		c.HTTP.Port = v
	}
	if v := strings.TrimSpace(os.Getenv("DB_DSN")); v != "" {
		c.DB.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		c.Log.Format = v
	}
	if v := strings.TrimSpace(os.Getenv("APP_NAME")); v != "" {
		c.Log.App = v
	}
	if v := strings.TrimSpace(os.Getenv("DOG_API_URL")); v != "" {
		c.DogAPI.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("DOG_API_KEY")); v != "" {
		c.DogAPI.APIKey = v
	}

	if v := strings.TrimSpace(os.Getenv("DEFAULT_PER_DAY_RATE")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("config: DEFAULT_PER_DAY_RATE must be a positive integer, got %q", v)
		}
		c.Billing.DefaultPerDayRate = n
	}
	if v := strings.TrimSpace(os.Getenv("HTTP_READ_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: HTTP_READ_TIMEOUT: %w", err)
		}
		c.HTTP.ReadTimeout = d
	}
	if v := strings.TrimSpace(os.Getenv("HTTP_WRITE_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: HTTP_WRITE_TIMEOUT: %w", err)
		}
		c.HTTP.WriteTimeout = d
	}
	return nil
}

// Addr devuelve la dirección de escucha (":8080").
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.HTTP.Port, ":")
}
