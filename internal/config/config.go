package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
)

// Config holds all configuration from environment variables.
type Config struct {
	Token   string `envconfig:"TOKEN" required:"true"`
	AppURL  string `envconfig:"APP_URL" required:"true"`
	AppName string `envconfig:"APP_NAME" default:""` // Public base URL for the webhook; empty means long polling
	Port    int    `envconfig:"PORT" default:"8443"`

	// Upstream quote service
	LoginPath       string        `envconfig:"LOGIN_PATH" default:"get_authcode_url"`
	DataPath        string        `envconfig:"DATA_PATH" default:"get_data"`
	UpstreamTimeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"0s"`
	StockListURL    string        `envconfig:"STOCK_LIST_URL" default:""`

	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Path to config.toml file
	ConfigFile string `envconfig:"CONFIG_FILE" default:"config.toml"`

	// Reply texts loaded from config.toml
	Messages Messages
}

// Messages holds the fixed reply texts. Any of them can be overridden in
// the [messages] table of config.toml.
type Messages struct {
	Start        string `toml:"start"`
	Help         string `toml:"help"`
	LoginMissing string `toml:"login_missing"`
	StockMissing string `toml:"stock_missing"`
}

// FileConfig represents the structure of config.toml.
type FileConfig struct {
	Messages Messages `toml:"messages"`
}

// DefaultMessages provides fallback texts if config.toml is not found.
var DefaultMessages = Messages{
	Start:        "TradeBot has started. Enter stock name to get quote.",
	Help:         "Click below link for stock names.",
	LoginMissing: "No url found",
	StockMissing: "No such stock found",
}

// LoadEnv loads the configuration from environment variables.
func (c Config) LoadEnv() (Config, error) {
	cfg := c

	if err := envconfig.Process("", &cfg); err != nil {
		return c, err
	}

	return cfg, nil
}

// LoadFile loads reply texts from config.toml file.
func (c *Config) LoadFile() error {
	configPath := c.ConfigFile
	if !filepath.IsAbs(configPath) {
		// Try current directory first, then the executable directory
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			execPath, err := os.Executable()
			if err == nil {
				configPath = filepath.Join(filepath.Dir(execPath), c.ConfigFile)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		c.Messages = DefaultMessages
		return nil
	}

	var fileConfig FileConfig
	if _, err := toml.DecodeFile(configPath, &fileConfig); err != nil {
		return err
	}

	c.Messages = fileConfig.Messages.withDefaults()

	return nil
}

func (m Messages) withDefaults() Messages {
	if m.Start == "" {
		m.Start = DefaultMessages.Start
	}
	if m.Help == "" {
		m.Help = DefaultMessages.Help
	}
	if m.LoginMissing == "" {
		m.LoginMissing = DefaultMessages.LoginMissing
	}
	if m.StockMissing == "" {
		m.StockMissing = DefaultMessages.StockMissing
	}
	return m
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AppURL) == "" {
		return errors.New("APP_URL must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.New("PORT must be between 1 and 65535")
	}
	if c.UpstreamTimeout < 0 {
		return errors.New("UPSTREAM_TIMEOUT must not be negative")
	}
	return nil
}

// WebhookEnabled reports whether updates arrive through the webhook listener
// rather than long polling.
func (c *Config) WebhookEnabled() bool {
	return c.AppName != ""
}

// WebhookURL is the public URL registered with Telegram. The token doubles as
// the secret path segment.
func (c *Config) WebhookURL() string {
	return c.AppName + c.Token
}

// HelpText returns the help reply, with the stock list link when configured.
func (c *Config) HelpText() string {
	if c.StockListURL == "" {
		return c.Messages.Help
	}
	return c.Messages.Help + "\n" + c.StockListURL
}

func NewConfig() (*Config, error) {
	var cfg Config
	loadedCfg, err := cfg.LoadEnv()
	if err != nil {
		return nil, err
	}

	if err := loadedCfg.LoadFile(); err != nil {
		return nil, err
	}

	if err := loadedCfg.Validate(); err != nil {
		return nil, err
	}

	return &loadedCfg, nil
}

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(
			NewConfig,
		),
	)
}
