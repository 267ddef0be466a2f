package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings are the application-level options shared by the CLI and the server.
type Settings struct {
	RulesDir   string         `mapstructure:"rules_dir"`
	TaxYear    int            `mapstructure:"tax_year"`
	LogLevel   string         `mapstructure:"log_level"`
	Debug      bool           `mapstructure:"debug"`
	WatchRules bool           `mapstructure:"watch_rules"`
	HTTP       HTTPSettings   `mapstructure:"http"`
	Remote     RemoteSettings `mapstructure:"remote"`
}

// HTTPSettings configure the calculation server.
type HTTPSettings struct {
	Port int `mapstructure:"port"`
}

// RemoteSettings configure the remote calculator API client.
type RemoteSettings struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Address returns the listen address for the HTTP server.
func (s HTTPSettings) Address() string {
	return ":" + strconv.Itoa(s.Port)
}

const (
	settingsName = "netsalary"
	envPrefix    = "NETSALARY"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("rules_dir", "")
	v.SetDefault("tax_year", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("debug", false)
	v.SetDefault("watch_rules", false)
	v.SetDefault("http.port", 8080)
	v.SetDefault("remote.base_url", "http://localhost:8000")
	v.SetDefault("remote.timeout", 10*time.Second)
}

// LoadSettings reads settings from an optional config file and NETSALARY_* environment variables.
// A .env file in the working directory is loaded first. When configFile is empty,
// netsalary.yaml is looked up in . and $HOME/.config/netsalary; a missing file means defaults.
func LoadSettings(configFile string) (*Settings, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(settingsName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", settingsName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		s.HTTP.Port = p
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks settings ranges.
func (s *Settings) Validate() error {
	if s.HTTP.Port <= 0 || s.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", s.HTTP.Port)
	}
	if s.TaxYear < 0 {
		return fmt.Errorf("tax_year cannot be negative")
	}
	if s.Remote.Timeout <= 0 {
		return fmt.Errorf("remote.timeout must be positive")
	}
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", s.LogLevel)
	}
	return nil
}
