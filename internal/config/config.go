package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"`          // current application environment (local, dev, production etc)
	LogLevel         string `mapstructure:"log_level"`    // minimum zap level (debug, info, warn, error)
	TelegramAPIToken string `mapstructure:"-"`            // Telegram API token loaded from environment
	ContentPath      string `mapstructure:"content_path"` // path to the YAML rule and quiz catalog
	Quiz             Quiz   `mapstructure:"quiz"`         // quiz session configuration section
	Mascot           Mascot `mapstructure:"mascot"`       // mascot animation timings
}

// Quiz contains quiz session parameters.
type Quiz struct {
	SizeOptions     []int         `mapstructure:"size_options"`     // question counts offered before a quiz starts
	AllLimit        int           `mapstructure:"all_limit"`        // largest pool for which an "All N" choice is offered
	OutcomeDuration time.Duration `mapstructure:"outcome_duration"` // how long the correct/incorrect signal stays raised
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`     // sessions idle longer than this are closed
	SweepSchedule   string        `mapstructure:"sweep_schedule"`   // cron spec for the idle session sweeper
}

// Mascot contains the timings of the mascot animations.
type Mascot struct {
	BlinkMin           time.Duration `mapstructure:"blink_min"`
	BlinkMax           time.Duration `mapstructure:"blink_max"`
	BlinkDuration      time.Duration `mapstructure:"blink_duration"`
	IdleInterval       time.Duration `mapstructure:"idle_interval"`
	IdlePromptDuration time.Duration `mapstructure:"idle_prompt_duration"`
	TipDuration        time.Duration `mapstructure:"tip_duration"`
	CelebrateDuration  time.Duration `mapstructure:"celebrate_duration"`
	CryDuration        time.Duration `mapstructure:"cry_duration"`
	TickleDuration     time.Duration `mapstructure:"tickle_duration"`
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// Populate the process environment from .env when the file exists.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "info")
	v.SetDefault("content_path", "assets/content/sva.yaml")

	v.SetDefault("quiz.size_options", []int{5, 10, 20, 30, 40, 50})
	v.SetDefault("quiz.all_limit", 60)
	v.SetDefault("quiz.outcome_duration", "1s")
	v.SetDefault("quiz.idle_timeout", "30m")
	v.SetDefault("quiz.sweep_schedule", "@every 1m")

	v.SetDefault("mascot.blink_min", "3s")
	v.SetDefault("mascot.blink_max", "6s")
	v.SetDefault("mascot.blink_duration", "150ms")
	v.SetDefault("mascot.idle_interval", "15s")
	v.SetDefault("mascot.idle_prompt_duration", "5s")
	v.SetDefault("mascot.tip_duration", "7s")
	v.SetDefault("mascot.celebrate_duration", "600ms")
	v.SetDefault("mascot.cry_duration", "1s")
	v.SetDefault("mascot.tickle_duration", "400ms")
}

// Validate checks value ranges that the rest of the application relies on.
func (c *Config) Validate() error {
	if len(c.Quiz.SizeOptions) == 0 {
		return fmt.Errorf("%w: quiz.size_options is empty", ErrInvalidConfig)
	}
	for _, n := range c.Quiz.SizeOptions {
		if n <= 0 {
			return fmt.Errorf("%w: quiz.size_options contains %d", ErrInvalidConfig, n)
		}
	}
	if c.Quiz.AllLimit < 0 {
		return fmt.Errorf("%w: quiz.all_limit is negative", ErrInvalidConfig)
	}
	if c.Quiz.SweepSchedule == "" {
		return fmt.Errorf("%w: quiz.sweep_schedule is empty", ErrInvalidConfig)
	}

	durations := map[string]time.Duration{
		"quiz.outcome_duration":       c.Quiz.OutcomeDuration,
		"quiz.idle_timeout":           c.Quiz.IdleTimeout,
		"mascot.blink_min":            c.Mascot.BlinkMin,
		"mascot.blink_max":            c.Mascot.BlinkMax,
		"mascot.blink_duration":       c.Mascot.BlinkDuration,
		"mascot.idle_interval":        c.Mascot.IdleInterval,
		"mascot.idle_prompt_duration": c.Mascot.IdlePromptDuration,
		"mascot.tip_duration":         c.Mascot.TipDuration,
		"mascot.celebrate_duration":   c.Mascot.CelebrateDuration,
		"mascot.cry_duration":         c.Mascot.CryDuration,
		"mascot.tickle_duration":      c.Mascot.TickleDuration,
	}
	for key, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, key)
		}
	}
	if c.Mascot.BlinkMax < c.Mascot.BlinkMin {
		return fmt.Errorf("%w: mascot.blink_max is less than mascot.blink_min", ErrInvalidConfig)
	}

	return nil
}
