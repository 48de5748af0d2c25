package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const placeholderToken = "YOUR_DISCORD_BOT_TOKEN_HERE"

// Config はアプリケーションの設定を保持します。
type Config struct {
	Discord DiscordConfig `mapstructure:"discord"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	Usage   UsageConfig   `mapstructure:"usage"`
	Web     WebConfig     `mapstructure:"web"`
}

type DiscordConfig struct {
	Token   string `mapstructure:"token" validate:"required"`
	AppID   string `mapstructure:"app_id" validate:"omitempty,numeric"`
	GuildID string `mapstructure:"guild_id" validate:"omitempty,numeric"`
	Prefix  string `mapstructure:"prefix" validate:"required,max=5"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=1"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

type StorageConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type UsageConfig struct {
	ReportSchedule string `mapstructure:"report_schedule"`
}

type WebConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr" validate:"required_if=Enabled true"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("discord.app_id", "")
	v.SetDefault("discord.guild_id", "")
	v.SetDefault("discord.prefix", "/")
	v.SetDefault("log.file", "otpbot.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("storage.path", "otpbot.db")
	v.SetDefault("usage.report_schedule", "@hourly")
	v.SetDefault("web.enabled", false)
	v.SetDefault("web.addr", ":8080")
}

// Load は設定ファイルと環境変数から設定を読み込み、検証します。
// path が存在しない場合は既定値と環境変数だけで組み立てます。
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("OTPBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("discord.token", "DISCORD_BOT_TOKEN", "BOT_TOKEN", "OTPBOT_DISCORD_TOKEN"); err != nil {
		return nil, errors.Wrap(err, "bind token env")
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !isNotExist(err) {
				return nil, errors.Wrapf(err, "read config %s", path)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first problem that would stop the bot from starting.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if c.Discord.Token == placeholderToken {
		return errors.New("invalid config: discord.token is still the placeholder value")
	}
	if c.Usage.ReportSchedule != "" {
		if _, err := cron.ParseStandard(c.Usage.ReportSchedule); err != nil {
			return errors.Wrapf(err, "invalid config: usage.report_schedule %q", c.Usage.ReportSchedule)
		}
	}
	return nil
}
