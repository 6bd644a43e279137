package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inovacc/wifilog/internal/application"
	"github.com/inovacc/wifilog/internal/model"
	"github.com/inovacc/wifilog/internal/params"
	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// ErrConfigExists is returned by WriteDefaultConfig when the file is present
// and overwriting was not requested.
var ErrConfigExists = errors.New("configuration file already exists")

// LoadOptions controls where LoadConfig reads from.
type LoadOptions struct {
	// Path is the INI file; empty uses the data directory default.
	// A missing file is not an error.
	Path string

	// EnvFile is a dotenv file whose values apply only to variables
	// not already present in the environment. Defaults to ".env".
	EnvFile string

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// Override runs last, for command-line flags.
	Override func(*model.Config)
}

// LoadConfig builds the effective configuration: defaults, then the INI
// file, then the environment (with dotenv fallback), then Override.
// The result is validated.
func LoadConfig(opts LoadOptions) (model.Config, error) {
	cfg := model.DefaultConfig()

	path := opts.Path
	if path == "" {
		p, err := params.ConfigPath()
		if err != nil {
			return cfg, err
		}

		path = p
	}

	if err := loadINI(path, &cfg); err != nil {
		return cfg, err
	}

	lookup, err := envLookup(opts)
	if err != nil {
		return cfg, err
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}

	if opts.Override != nil {
		opts.Override(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadINI(path string, cfg *model.Config) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := f.MapTo(cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return nil
}

func envLookup(opts LoadOptions) (func(string) (string, bool), error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}

	dotenv, err := godotenv.Read(envFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return lookup, nil
		}

		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}

		v, ok := dotenv[key]

		return v, ok
	}, nil
}

type envBinding struct {
	key string
	set func(cfg *model.Config, value string) error
}

func stringBinding(key string, field func(*model.Config) *string) envBinding {
	return envBinding{key: key, set: func(cfg *model.Config, v string) error {
		*field(cfg) = v
		return nil
	}}
}

func durationBinding(key string, field func(*model.Config) *time.Duration) envBinding {
	return envBinding{key: key, set: func(cfg *model.Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}

		*field(cfg) = d

		return nil
	}}
}

var envBindings = []envBinding{
	stringBinding("TARGET_SSID", func(c *model.Config) *string { return &c.Sampler.TargetSSID }),
	durationBinding("INTERVAL", func(c *model.Config) *time.Duration { return &c.Sampler.Interval }),
	stringBinding("TIMEZONE", func(c *model.Config) *string { return &c.Sampler.Timezone }),
	stringBinding("INTERFACE", func(c *model.Config) *string { return &c.Detector.Interface }),
	durationBinding("DETECTOR_TIMEOUT", func(c *model.Config) *time.Duration { return &c.Detector.Timeout }),
	stringBinding("STATIC_SSID", func(c *model.Config) *string { return &c.Detector.StaticSSID }),
	stringBinding("STORAGE_BACKEND", func(c *model.Config) *string { return &c.Storage.Backend }),
	stringBinding("STORAGE_PATH", func(c *model.Config) *string { return &c.Storage.Path }),
	stringBinding("LISTEN", func(c *model.Config) *string { return &c.Server.Listen }),
	stringBinding("LOG_LEVEL", func(c *model.Config) *string { return &c.Log.Level }),
	stringBinding("LOG_FORMAT", func(c *model.Config) *string { return &c.Log.Format }),
}

func applyEnv(cfg *model.Config, lookup func(string) (string, bool)) error {
	for _, b := range envBindings {
		name := application.EnvPrefix + b.key

		v, ok := lookup(name)
		if !ok {
			continue
		}

		if err := b.set(cfg, strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	return nil
}

// WriteDefaultConfig writes the default configuration as INI to path.
func WriteDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := configFile(model.DefaultConfig())
	if err != nil {
		return err
	}

	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}

// ShowConfig writes cfg to w in INI form.
func ShowConfig(w io.Writer, cfg model.Config) error {
	f, err := configFile(cfg)
	if err != nil {
		return err
	}

	_, err = f.WriteTo(w)

	return err
}

func configFile(cfg model.Config) (*ini.File, error) {
	f := ini.Empty()
	if err := f.ReflectFrom(&cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	return f, nil
}
