package config

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-leo/beanutils/convert"
	"github.com/go-leo/beanutils/internal/logger"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for beanconv.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Locale configures the locale registry.
	Locale LocaleConfig `mapstructure:"locale"`
	// Convert configures the converter registry.
	Convert ConvertConfig `mapstructure:"convert"`
}

type LocaleConfig struct {
	// Default is the BCP 47 tag used when a command does not name a locale.
	Default string `mapstructure:"default" default:"en-US"`
	// Localized makes patterns use the locale's own symbols.
	Localized bool `mapstructure:"localized" default:"false"`
}

type ConvertConfig struct {
	// Throw reports failed conversions instead of returning defaults.
	Throw bool `mapstructure:"throw" default:"true"`
	// DefaultZero returns zero values instead of nil for failed conversions.
	DefaultZero bool `mapstructure:"default_zero" default:"true"`
	// ArraySize is the length of the default value of slice converters.
	ArraySize int `mapstructure:"array_size" default:"0"`
	// DatePatterns are tried in order when parsing times.
	DatePatterns []string `mapstructure:"date_patterns" default:""`
}

// LoadConfig loads configuration from beanconv.yaml in path, a .env file in
// path and BEANCONV_* environment variables, later sources winning.
func LoadConfig(path string) (*Config, error) {
	// Ignore error if file doesn't exist
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()
	v.SetConfigName("beanconv")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)

	bindValues(v, Config{}, "")

	// BEANCONV_LOG_LEVEL -> log.level
	v.SetEnvPrefix("beanconv")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
		convert.DecodeHook(convert.NewRegistry(convert.ThrowException(true))),
	)
	if err := v.Unmarshal(&config, viper.DecodeHook(hook)); err != nil {
		return nil, err
	}
	return &config, nil
}

// bindValues sets the 'default' tag of every field as the viper default of
// its 'mapstructure' key.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
