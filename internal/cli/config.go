package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/vascnet/netinput/pkg/pipeline"
)

// configFile is the config file looked up in the working directory when
// --config is not given.
const configFile = "netinput.toml"

// Config holds defaults for all commands. Flags set on the command line
// override these values.
//
//	format = "legacy"
//	strict_joint_mapping = true
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	prefix = "ci:"
type Config struct {
	Format             string      `toml:"format" validate:"omitempty,oneof=legacy json"`
	StrictNumbers      bool        `toml:"strict_numbers"`
	StrictJointMapping bool        `toml:"strict_joint_mapping"`
	EchoDir            string      `toml:"echo_dir"`
	Cache              CacheConfig `toml:"cache"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend" validate:"omitempty,oneof=file redis none"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url" validate:"required_if=Backend redis"`
	Prefix   string `toml:"prefix"`
}

var validate = validator.New()

// loadConfig reads the config at path. With an empty path it reads
// netinput.toml from the working directory if present, and otherwise
// returns the zero Config.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = configFile
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, formatValidationError(err))
	}
	return &cfg, nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		switch e.Tag() {
		case "oneof":
			return fmt.Errorf("%s: must be one of: %s, got %q", field, e.Param(), e.Value())
		case "required_if":
			return fmt.Errorf("%s: field is required when %s", field, e.Param())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}

// pipelineOptions returns the pipeline options the config describes.
func (c *Config) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Format:             pipeline.Format(c.Format),
		StrictNumbers:      c.StrictNumbers,
		StrictJointMapping: c.StrictJointMapping,
		EchoDir:            c.EchoDir,
	}
}
