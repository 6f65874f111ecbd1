// Package config provides configuration loading, defaults, and validation
// for the VerseBot application. Values come from config.yaml with BOT_*
// environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// TimezoneOption is one entry of the timezone catalog offered to users.
// The catalog is an ordered list: selection keys index into it from the
// /timezone inline keyboard.
type TimezoneOption struct {
	Key      string `mapstructure:"key"      validate:"required"`
	Label    string `mapstructure:"label"    validate:"required"`
	Location string `mapstructure:"location" validate:"required"`
}

// TaskConfig controls a single scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// LoggerConfig controls log output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot transport settings.
type TelegramConfig struct {
	Token       string `mapstructure:"token"        validate:"required"`
	AdminUserID int64  `mapstructure:"admin_user_id"`
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// SchedulerConfig holds the delivery scheduler settings.
// TargetLocalHour is the one-hour bucket of subscriber-local time in which
// the daily verse is delivered.
type SchedulerConfig struct {
	TargetLocalHour int                   `mapstructure:"target_local_hour" validate:"min=0,max=23"`
	SendTimeout     time.Duration         `mapstructure:"send_timeout"      validate:"min=1s,max=5m"`
	Tasks           map[string]TaskConfig `mapstructure:"tasks"`
}

// HealthConfig holds the liveness endpoint settings.
type HealthConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

// Config defines the application configuration parameters.
type Config struct {
	Logger    LoggerConfig     `mapstructure:"logger"`
	Telegram  TelegramConfig   `mapstructure:"telegram"`
	Database  DatabaseConfig   `mapstructure:"database"`
	Scheduler SchedulerConfig  `mapstructure:"scheduler"`
	Health    HealthConfig     `mapstructure:"health"`
	Timezones []TimezoneOption `mapstructure:"timezones" validate:"min=1,dive"`
}

// LoadConfig loads and validates configuration from:
// 1. Default values
// 2. The YAML file at configPath
// 3. BOT_* environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Allow a missing config file; defaults and env vars still apply
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(cfg.Timezones) == 0 {
		cfg.Timezones = defaultTimezones()
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// TimezoneByKey looks up a catalog entry by its selection key.
func (c *Config) TimezoneByKey(key string) (TimezoneOption, bool) {
	for _, tz := range c.Timezones {
		if tz.Key == key {
			return tz, true
		}
	}
	return TimezoneOption{}, false
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", true)

	v.SetDefault("database.path", "bible.db")

	v.SetDefault("health.addr", ":8080")

	v.SetDefault("scheduler.target_local_hour", 6)
	v.SetDefault("scheduler.send_timeout", 30*time.Second)
	v.SetDefault("scheduler.tasks", map[string]TaskConfig{
		// Hourly tick on the hour; each tick checks subscriber-local time
		"daily_verse": {Enabled: true, Schedule: "0 * * * *"},
		// Weekly VACUUM, Sunday 03:00 server time
		"sql_maintenance": {Enabled: true, Schedule: "0 3 * * 0"},
	})
}

// defaultTimezones is the fixed catalog offered when the config file does
// not override it.
func defaultTimezones() []TimezoneOption {
	return []TimezoneOption{
		{Key: "utc", Label: "UTC", Location: "UTC"},
		{Key: "london", Label: "London (GMT/BST)", Location: "Europe/London"},
		{Key: "berlin", Label: "Berlin (CET)", Location: "Europe/Berlin"},
		{Key: "moscow", Label: "Moscow (MSK)", Location: "Europe/Moscow"},
		{Key: "lagos", Label: "Lagos (WAT)", Location: "Africa/Lagos"},
		{Key: "nairobi", Label: "Nairobi (EAT)", Location: "Africa/Nairobi"},
		{Key: "kolkata", Label: "India (IST)", Location: "Asia/Kolkata"},
		{Key: "manila", Label: "Manila (PHT)", Location: "Asia/Manila"},
		{Key: "sydney", Label: "Sydney (AEST)", Location: "Australia/Sydney"},
		{Key: "sao_paulo", Label: "São Paulo (BRT)", Location: "America/Sao_Paulo"},
		{Key: "new_york", Label: "New York (ET)", Location: "America/New_York"},
		{Key: "chicago", Label: "Chicago (CT)", Location: "America/Chicago"},
		{Key: "denver", Label: "Denver (MT)", Location: "America/Denver"},
		{Key: "los_angeles", Label: "Los Angeles (PT)", Location: "America/Los_Angeles"},
	}
}
