// Package config loads the service configuration once at startup from the
// environment and an optional config file, and validates it eagerly.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Auth providers.
const (
	AuthProviderSupabase = "supabase"
	AuthProviderLocal    = "local"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds every setting the service reads at startup.
type Config struct {
	Port             int    `mapstructure:"port" validate:"min=1,max=65535"`
	DatabaseDriver   string `mapstructure:"database_driver" validate:"oneof=postgres sqlite"`
	DatabaseURL      string `mapstructure:"database_url" validate:"required"`
	FrontendURL      string `mapstructure:"frontend_url" validate:"required,url"`
	AuthProvider     string `mapstructure:"auth_provider" validate:"oneof=supabase local"`
	SupabaseURL      string `mapstructure:"supabase_url" validate:"required_if=AuthProvider supabase"`
	SupabaseAnonKey  string `mapstructure:"supabase_anon_key" validate:"required_if=AuthProvider supabase"`
	JWTSecret        string `mapstructure:"jwt_secret" validate:"required_if=AuthProvider local"`
	RabbitMQURL      string `mapstructure:"rabbitmq_url" validate:"omitempty,url"`
	RabbitMQExchange string `mapstructure:"rabbitmq_exchange" validate:"required"`
	SeedOnStart      bool   `mapstructure:"seed_on_start"`
	PublicURL        string `mapstructure:"public_url" validate:"required,url"`
}

// Address returns the listen address for Port.
func (c Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// env lists the environment variables bound to each key. The first name wins
// when several are set.
var env = map[string][]string{
	"port":              {"PORT"},
	"database_driver":   {"DATABASE_DRIVER"},
	"database_url":      {"DATABASE_URL"},
	"frontend_url":      {"FRONTEND_URL", "NEXT_FRONT_URL"},
	"auth_provider":     {"AUTH_PROVIDER"},
	"supabase_url":      {"SUPABASE_URL"},
	"supabase_anon_key": {"SUPABASE_ANON_KEY"},
	"jwt_secret":        {"JWT_SECRET"},
	"rabbitmq_url":      {"RABBITMQ_URL"},
	"rabbitmq_exchange": {"RABBITMQ_EXCHANGE"},
	"seed_on_start":     {"SEED_ON_START"},
	"public_url":        {"PUBLIC_URL"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 3000)
	v.SetDefault("database_driver", DriverPostgres)
	v.SetDefault("auth_provider", AuthProviderSupabase)
	v.SetDefault("rabbitmq_exchange", "products")
	v.SetDefault("seed_on_start", true)
	v.SetDefault("public_url", "http://localhost:3000")
}

// Load reads the configuration. When path is not empty the file is read
// first (any format viper understands, including .env files); environment
// variables override it.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, names := range env {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		// An alias in the file fills its key when the primary name is absent.
		for key, names := range env {
			for _, name := range names {
				lower := strings.ToLower(name)
				if lower != key && v.InConfig(lower) && !v.InConfig(key) {
					v.SetDefault(key, v.Get(lower))
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(cfg.DatabaseDriver))
	cfg.AuthProvider = strings.ToLower(strings.TrimSpace(cfg.AuthProvider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration and names every missing or malformed key.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("validate config: %w", err)
	}
	problems := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		problems = append(problems, fmt.Sprintf("%s (%s)", envName(fe.StructField()), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
}

var envNames = map[string]string{
	"Port":             "PORT",
	"DatabaseDriver":   "DATABASE_DRIVER",
	"DatabaseURL":      "DATABASE_URL",
	"FrontendURL":      "FRONTEND_URL",
	"AuthProvider":     "AUTH_PROVIDER",
	"SupabaseURL":      "SUPABASE_URL",
	"SupabaseAnonKey":  "SUPABASE_ANON_KEY",
	"JWTSecret":        "JWT_SECRET",
	"RabbitMQURL":      "RABBITMQ_URL",
	"RabbitMQExchange": "RABBITMQ_EXCHANGE",
	"SeedOnStart":      "SEED_ON_START",
	"PublicURL":        "PUBLIC_URL",
}

func envName(field string) string {
	if name, ok := envNames[field]; ok {
		return name
	}
	return field
}
