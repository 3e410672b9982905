package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const AppName = "quicktools"

type Config struct {
	AI          AIConfig                  `mapstructure:"ai"`
	Providers   map[string]ProviderConfig `mapstructure:"providers"`
	Server      ServerConfig              `mapstructure:"server"`
	Catalog     CatalogConfig             `mapstructure:"catalog"`
	Imaging     ImagingConfig             `mapstructure:"imaging"`
	PDF         PDFConfig                 `mapstructure:"pdf"`
	Permissions PermissionConfig          `mapstructure:"permissions"`
	Log         LogConfig                 `mapstructure:"log"`
}

type AIConfig struct {
	// Model is "provider/model"; a bare model name uses the gemini provider.
	Model             string        `mapstructure:"model"`
	MaxTokens         int           `mapstructure:"max_tokens"`
	Temperature       float64       `mapstructure:"temperature"`
	RequestsPerMinute float64       `mapstructure:"requests_per_minute"`
	Timeout           time.Duration `mapstructure:"timeout"`
	LegacyErrorText   bool          `mapstructure:"legacy_error_text"`
}

type ProviderConfig struct {
	APIKeyEnv    string `mapstructure:"api_key_env"`
	DefaultModel string `mapstructure:"default_model"`
	MaxTokens    int    `mapstructure:"max_tokens"`
	Endpoint     string `mapstructure:"endpoint"`
	Organization string `mapstructure:"organization"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CatalogConfig struct {
	// Path to a YAML catalog file. Empty means the built-in tools.
	Path  string `mapstructure:"path"`
	Watch bool   `mapstructure:"watch"`
}

type ImagingConfig struct {
	DefaultQuality int    `mapstructure:"default_quality"`
	Interpolator   string `mapstructure:"interpolator"`
	MaxPixels      int    `mapstructure:"max_pixels"`
}

type PDFConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

type PermissionConfig struct {
	AI          Permission `mapstructure:"ai"`
	Image       Permission `mapstructure:"image"`
	PDF         Permission `mapstructure:"pdf"`
	Calculation Permission `mapstructure:"calculation"`
}

type Permission string

const (
	PermissionAsk   Permission = "ask"
	PermissionAllow Permission = "allow"
	PermissionDeny  Permission = "deny"
)

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Dir is the per-user configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

func Load(cfgFile string) (*Config, error) {
	v, err := NewViper(cfgFile)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// NewViper returns a viper instance with defaults, environment overrides and
// the config file (if any) applied.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}

		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		v.AddConfigPath("." + AppName)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("QUICKTOOLS")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}
	return v, nil
}

// Path is the file written by "config set" and "config init".
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func (c *Config) Validate() error {
	for name, p := range map[string]Permission{
		"ai":          c.Permissions.AI,
		"image":       c.Permissions.Image,
		"pdf":         c.Permissions.PDF,
		"calculation": c.Permissions.Calculation,
	} {
		switch p {
		case PermissionAllow, PermissionAsk, PermissionDeny:
		default:
			return fmt.Errorf("invalid permission %q for permissions.%s (expected allow, ask or deny)", p, name)
		}
	}

	if c.Imaging.DefaultQuality < 1 || c.Imaging.DefaultQuality > 100 {
		return fmt.Errorf("imaging.default_quality must be between 1 and 100, got %d", c.Imaging.DefaultQuality)
	}
	if c.AI.RequestsPerMinute < 0 {
		return fmt.Errorf("ai.requests_per_minute must not be negative")
	}
	if c.PDF.Delay < 0 {
		return fmt.Errorf("pdf.delay must not be negative")
	}
	return nil
}

// Provider returns the named provider section, empty if not configured.
func (c *Config) Provider(name string) ProviderConfig {
	return c.Providers[name]
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ai.model", "gemini/gemini-2.5-flash")
	v.SetDefault("ai.max_tokens", 2048)
	v.SetDefault("ai.temperature", 0.0)
	v.SetDefault("ai.requests_per_minute", 0)
	v.SetDefault("ai.timeout", "60s")
	v.SetDefault("ai.legacy_error_text", false)

	v.SetDefault("providers.gemini.api_key_env", "GEMINI_API_KEY")
	v.SetDefault("providers.gemini.default_model", "gemini-2.5-flash")
	v.SetDefault("providers.gemini.endpoint", "https://generativelanguage.googleapis.com/v1beta")

	v.SetDefault("providers.anthropic.api_key_env", "ANTHROPIC_API_KEY")
	v.SetDefault("providers.anthropic.default_model", "claude-sonnet-4-5")
	v.SetDefault("providers.anthropic.max_tokens", 2048)

	v.SetDefault("providers.openai.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("providers.openai.default_model", "gpt-5-mini")
	v.SetDefault("providers.openai.max_tokens", 2048)

	v.SetDefault("providers.ollama.endpoint", "http://localhost:11434")
	v.SetDefault("providers.ollama.default_model", "llama3.2")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_upload_bytes", 32<<20)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.watch", false)

	v.SetDefault("imaging.default_quality", 90)
	v.SetDefault("imaging.interpolator", "catmullrom")
	v.SetDefault("imaging.max_pixels", 50_000_000)

	v.SetDefault("pdf.delay", "2s")

	v.SetDefault("permissions.ai", "allow")
	v.SetDefault("permissions.image", "allow")
	v.SetDefault("permissions.pdf", "allow")
	v.SetDefault("permissions.calculation", "allow")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// WriteDefaults writes the default settings to path as YAML.
func WriteDefaults(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
