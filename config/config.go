package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration parses time.Duration strings ("15s", "1m") from YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

type Config struct {
	Application struct {
		Name        string   `yaml:"name"`
		Environment string   `yaml:"environment"`
		Port        int      `yaml:"port"`
		Debug       bool     `yaml:"debug"`
		Timeout     Duration `yaml:"timeout"`
	} `yaml:"application"`

	CORS struct {
		AllowedOrigins   []string `yaml:"allowed_origins"`
		AllowedMethods   []string `yaml:"allowed_methods"`
		AllowedHeaders   []string `yaml:"allowed_headers"`
		ExposedHeaders   []string `yaml:"exposed_headers"`
		MaxAge           int      `yaml:"max_age"`
		AllowCredentials bool     `yaml:"allow_credentials"`
	} `yaml:"cors"`

	Stripe struct {
		BaseURL       string `yaml:"base_url"`
		Currency      string `yaml:"currency"`
		SecretKey     string `yaml:"-"`
		WebhookSecret string `yaml:"-"`
	} `yaml:"stripe"`

	EventStore struct {
		BaseURL    string `yaml:"base_url"`
		ServiceKey string `yaml:"-"`
	} `yaml:"event_store"`

	Kafka struct {
		BootstrapServers      string `yaml:"bootstrap_servers"`
		RegistrationPaidTopic string `yaml:"registration_paid_topic"`
		SASLUsername          string `yaml:"-"`
		SASLPassword          string `yaml:"-"`
	} `yaml:"kafka"`

	Monitoring struct {
		OTLPEndpoint string `yaml:"otlp_endpoint"`
	} `yaml:"monitoring"`
}

var (
	c    *Config
	once sync.Once
)

// Get loads the configuration once and returns it. The YAML file path comes
// from APP_CONFIG (default config.yaml); secrets are never read from the
// file, only from the environment.
func Get() *Config {
	once.Do(func() {
		cfg := defaults()

		path := os.Getenv("APP_CONFIG")
		if path == "" {
			path = "config.yaml"
		}

		if buff, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(buff, cfg); err != nil {
				panic(fmt.Errorf("config: parsing %s: %w", path, err))
			}
		}

		applyEnv(cfg)

		c = cfg
	})

	return c
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Application.Name = "eventlynk-backend"
	cfg.Application.Environment = "development"
	cfg.Application.Port = 8080
	cfg.Application.Timeout = Duration(15 * time.Second)
	cfg.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.CORS.AllowedHeaders = []string{"Content-Type", "Authorization", "Stripe-Signature"}
	cfg.Stripe.BaseURL = "https://api.stripe.com"
	cfg.Stripe.Currency = "usd"
	cfg.Kafka.RegistrationPaidTopic = "registration-paid"
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Application.Port = port
		}
	}
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		cfg.Stripe.SecretKey = v
	}
	if v := os.Getenv("STRIPE_WEBHOOK_SECRET"); v != "" {
		cfg.Stripe.WebhookSecret = v
	}
	if v := os.Getenv("EVENT_STORE_URL"); v != "" {
		cfg.EventStore.BaseURL = v
	}
	if v := os.Getenv("EVENT_STORE_SERVICE_KEY"); v != "" {
		cfg.EventStore.ServiceKey = v
	}
	if v := os.Getenv("KAFKA_BOOTSTRAP_SERVERS"); v != "" {
		cfg.Kafka.BootstrapServers = v
	}
	if v := os.Getenv("KAFKA_SASL_USERNAME"); v != "" {
		cfg.Kafka.SASLUsername = v
	}
	if v := os.Getenv("KAFKA_SASL_PASSWORD"); v != "" {
		cfg.Kafka.SASLPassword = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = []string{v}
	}
}
