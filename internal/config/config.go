// Package config loads ghgcalc settings from flags, GHGCALC_* environment variables
// and an optional YAML config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/rshade/ghg-emissions-engine/internal/report"
)

// EnvPrefix prefixes every environment variable, e.g. GHGCALC_LOG_LEVEL.
const EnvPrefix = "GHGCALC"

// Setting keys. Flags bound to viper use the same names.
const (
	KeyLogLevel    = "log-level"
	KeyLogFormat   = "log-format"
	KeyFuelTable   = "fuel-table"
	KeyOutput      = "output"
	KeyConcurrency = "concurrency"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

const configName = ".ghgcalc"

// Config holds the effective settings for one invocation.
type Config struct {
	LogLevel    string
	LogFormat   string
	FuelTable   string
	Output      string
	Concurrency int
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:  zerolog.LevelWarnValue,
		LogFormat: LogFormatConsole,
		Output:    string(report.FormatTable),
	}
}

// SetDefaults registers the built-in settings on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
	v.SetDefault(KeyFuelTable, d.FuelTable)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyConcurrency, d.Concurrency)
}

// Load reads settings into v. An explicit cfgFile must exist; otherwise
// .ghgcalc.yaml is searched in the working directory and the home directory and
// may be absent. It returns the config file used, or "" when none was found.
func Load(v *viper.Viper, cfgFile string) (string, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigType("yaml")
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	err := v.ReadInConfig()
	notFound := viper.ConfigFileNotFoundError{}
	switch {
	case err == nil:
		return v.ConfigFileUsed(), nil
	case cfgFile == "" && errors.As(err, &notFound):
		// The config file is optional.
		return "", nil
	default:
		return "", fmt.Errorf("failed to read config: %w", err)
	}
}

// FromViper decodes and validates the settings held by v.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		FuelTable:   v.GetString(KeyFuelTable),
		Output:      v.GetString(KeyOutput),
		Concurrency: v.GetInt(KeyConcurrency),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error

	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("invalid %s %q", KeyLogLevel, c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case LogFormatConsole, LogFormatJSON, "":
	default:
		errs = append(errs, fmt.Errorf("invalid %s %q: must be %s or %s",
			KeyLogFormat, c.LogFormat, LogFormatConsole, LogFormatJSON))
	}
	if _, err := report.ParseFormat(c.Output); err != nil {
		errs = append(errs, fmt.Errorf("invalid %s: %w", KeyOutput, err))
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("invalid %s %d: must be >= 0", KeyConcurrency, c.Concurrency))
	}
	if c.FuelTable != "" {
		if info, err := os.Stat(c.FuelTable); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", KeyFuelTable, err))
		} else if info.IsDir() {
			errs = append(errs, fmt.Errorf("invalid %s: %s is a directory", KeyFuelTable, c.FuelTable))
		}
	}

	return errors.Join(errs...)
}
