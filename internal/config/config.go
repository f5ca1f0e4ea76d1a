// Package config holds the settings shared by every wordquiz command.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pavelanni/wordquiz/internal/model"
)

// Config is the validated view of flags, environment and config file.
type Config struct {
	DB           string `mapstructure:"db" validate:"required"`
	Lang         string `mapstructure:"lang" validate:"oneof=en ja"`
	HistoryLimit int    `mapstructure:"history-limit" validate:"min=1,max=1000"`
	LogLevel     string `mapstructure:"log-level" validate:"oneof=debug info warn error"`
	LogFormat    string `mapstructure:"log-format" validate:"oneof=text json"`
}

// Defaults used when neither a flag nor the environment sets a value.
const (
	DefaultDB        = "wordquiz.db"
	DefaultLang      = "en"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

var validate = newValidator()

// newValidator reports fields by their config key rather than the Go name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// SetDefaults registers the fallback values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db", DefaultDB)
	v.SetDefault("lang", DefaultLang)
	v.SetDefault("history-limit", model.DefaultHistoryLimit)
	v.SetDefault("log-level", DefaultLogLevel)
	v.SetDefault("log-format", DefaultLogFormat)
}

// Load reads the shared settings from v and validates them.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Lang = strings.ToLower(strings.TrimSpace(cfg.Lang))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Config{}, fmt.Errorf("validate config: %w", err)
		}
		out := &model.ValidationError{}
		for _, fe := range verrs {
			out.Errors = append(out.Errors, model.FieldError{
				Field:   fe.Field(),
				Message: describe(fe),
			})
		}
		return Config{}, out
	}
	return cfg, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "oneof":
		return fmt.Sprintf("must be one of %s, got %q", strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "min", "max":
		return fmt.Sprintf("must be between 1 and 1000, got %v", fe.Value())
	}
	return fmt.Sprintf("failed %s check", fe.Tag())
}
