package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Clio      ClioConfig      `yaml:"clio" mapstructure:"clio"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	SMTP      SMTPConfig      `yaml:"smtp" mapstructure:"smtp"`
	Booking   BookingConfig   `yaml:"booking" mapstructure:"booking"`
	Firm      FirmConfig      `yaml:"firm" mapstructure:"firm"`
	Intake    IntakeConfig    `yaml:"intake" mapstructure:"intake"`
	Retainer  RetainerConfig  `yaml:"retainer" mapstructure:"retainer"`
	Statute   StatuteConfig   `yaml:"statute" mapstructure:"statute"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ClioConfig holds Clio Manage OAuth credentials and client tuning.
type ClioConfig struct {
	ClientID      string  `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret  string  `yaml:"client_secret" mapstructure:"client_secret"`
	RedirectURI   string  `yaml:"redirect_uri" mapstructure:"redirect_uri"`
	AccessToken   string  `yaml:"access_token" mapstructure:"access_token"`
	RefreshToken  string  `yaml:"refresh_token" mapstructure:"refresh_token"`
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	TokensPath    string  `yaml:"tokens_path" mapstructure:"tokens_path"`
	TimeoutSecs   int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimitRPS  float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	PollWaitSecs  int     `yaml:"poll_wait_secs" mapstructure:"poll_wait_secs"`
	PollEverySecs int     `yaml:"poll_every_secs" mapstructure:"poll_every_secs"`
}

// AnthropicConfig holds the vision-extraction model settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// SMTPConfig holds outbound mail settings. User and Password empty means
// outbound mail is unconfigured and the email step is skipped.
type SMTPConfig struct {
	Host      string `yaml:"host" mapstructure:"host"`
	Port      int    `yaml:"port" mapstructure:"port"`
	User      string `yaml:"user" mapstructure:"user"`
	Password  string `yaml:"password" mapstructure:"password"`
	FromEmail string `yaml:"from_email" mapstructure:"from_email"`
}

// Configured reports whether outbound mail credentials are present.
func (c SMTPConfig) Configured() bool {
	return c.User != "" && c.Password != ""
}

// BookingConfig holds the seasonal consultation booking links.
type BookingConfig struct {
	InOfficeURL string `yaml:"in_office_url" mapstructure:"in_office_url"`
	VirtualURL  string `yaml:"virtual_url" mapstructure:"virtual_url"`
}

// FirmConfig holds firm constants substituted into generated documents.
type FirmConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Address string `yaml:"address" mapstructure:"address"`
	Phone   string `yaml:"phone" mapstructure:"phone"`
}

// IntakeConfig holds intake-flow defaults.
type IntakeConfig struct {
	// ContactEmail is set on newly created contacts when present.
	ContactEmail string `yaml:"contact_email" mapstructure:"contact_email"`
	// NotifyEmail receives the client notification. Empty skips the send.
	NotifyEmail string `yaml:"notify_email" mapstructure:"notify_email"`
}

// RetainerConfig configures local retainer generation.
type RetainerConfig struct {
	TemplatePath string `yaml:"template_path" mapstructure:"template_path"`
	TemplateName string `yaml:"template_name" mapstructure:"template_name"`
}

// StatuteConfig configures the statutory deadline arithmetic.
type StatuteConfig struct {
	Years int `yaml:"years" mapstructure:"years"`
}

// ServerConfig configures the HTTP serve mode.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml and INTAKE_-prefixed
// environment variables, applying defaults.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("INTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("clio.base_url", "https://app.clio.com")
	v.SetDefault("clio.redirect_uri", "http://localhost:8080/api/clio/callback")
	v.SetDefault("clio.tokens_path", ".clio_tokens.json")
	v.SetDefault("clio.timeout_secs", 30)
	v.SetDefault("clio.poll_wait_secs", 30)
	v.SetDefault("clio.poll_every_secs", 3)
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 8192)
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("booking.in_office_url", "https://calendly.com/richards-law/in-office")
	v.SetDefault("booking.virtual_url", "https://calendly.com/richards-law/virtual")
	v.SetDefault("firm.name", "Richards & Law")
	v.SetDefault("firm.address", "118-35 Queens Blvd Suite 400, Forest Hills, NY 11375")
	v.SetDefault("firm.phone", "(718) 530-4040")
	v.SetDefault("retainer.template_path", "templates/retainer_agreement.tmpl")
	v.SetDefault("retainer.template_name", "Retainer")
	v.SetDefault("statute.years", 8)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})
	v.SetDefault("server.max_upload_bytes", int64(50*1024*1024))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger builds the global zap logger from LogConfig.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
