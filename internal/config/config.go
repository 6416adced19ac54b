// Package config is used to load the configuration file
package config

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// Defaults for keys a config file or flag may leave unset.
const (
	DefaultChunks = 4096
	DefaultLimit  = 16
)

// Scan holds the settings of the scan command.
type Scan struct {
	Chunks     int    `mapstructure:"chunks" validate:"min=1"`
	Workers    int    `mapstructure:"workers" validate:"min=0"`
	JSON       bool   `mapstructure:"json"`
	Offsets    bool   `mapstructure:"offsets"`
	Limit      int    `mapstructure:"limit" validate:"min=0"`
	Dump       int    `mapstructure:"dump" validate:"min=0,max=4096"`
	NoProgress bool   `mapstructure:"no-progress"`
	Sigs       string `mapstructure:"sigs"`
}

// Config is the configuration struct
type Config struct {
	Verbose  bool   `mapstructure:"verbose"`
	LogLevel string `mapstructure:"log-level" validate:"omitempty,oneof=debug info warn warning error fatal"`
	Color    bool   `mapstructure:"color"`
	Scan     Scan   `mapstructure:"scan"`
}

var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report config keys instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
})

func (c *Config) verify() error {
	err := validate().Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var errs *multierror.Error
	for _, fe := range verrs {
		key := strings.TrimPrefix(fe.Namespace(), "Config.")
		switch fe.Tag() {
		case "min":
			errs = multierror.Append(errs, fmt.Errorf("%s must be at least %s (got %v)", key, fe.Param(), fe.Value()))
		case "max":
			errs = multierror.Append(errs, fmt.Errorf("%s must be at most %s (got %v)", key, fe.Param(), fe.Value()))
		case "oneof":
			errs = multierror.Append(errs, fmt.Errorf("%s must be one of [%s] (got %q)", key, fe.Param(), fe.Value()))
		default:
			errs = multierror.Append(errs, fmt.Errorf("%s failed the %q check", key, fe.Tag()))
		}
	}

	return errs.ErrorOrNil()
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log-level", "info")
	v.SetDefault("scan.chunks", DefaultChunks)
	v.SetDefault("scan.workers", 0)
	v.SetDefault("scan.limit", DefaultLimit)
	v.SetDefault("scan.dump", 0)
}

// Load decodes and verifies the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config

	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %v", err)
	}

	if err := c.verify(); err != nil {
		return nil, fmt.Errorf("config: failed to verify: %w", err)
	}

	return &c, nil
}

// LoadConfig loads the configuration file
func LoadConfig() (*Config, error) {
	return Load(viper.GetViper())
}
