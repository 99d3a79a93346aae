// Package config loads javalint settings.
//
// Settings live in a .javalint.yaml file (json and toml are accepted by
// extension) and may be overridden from the environment with a JAVALINT_
// prefix, for example JAVALINT_JOBS=4. Every registered check runs unless
// the file disables it:
//
//	jobs: 4
//	severity: warning
//	checks:
//	  MissingJavadocMethod:
//	    severity: error
//	    properties:
//	      scope: protected
//	  RequireThis:
//	    enabled: false
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/javalint/check"
)

var log = commonlog.GetLogger("javalint.config")

// FileNames are the names Find looks for, in order.
var FileNames = []string{".javalint.yaml", ".javalint.yml", ".javalint.json", ".javalint.toml"}

// Config is the complete javalint configuration.
type Config struct {
	// Jobs bounds the number of files checked at once. Zero means one
	// per CPU.
	Jobs int `mapstructure:"jobs" json:"jobs" yaml:"jobs"`
	// Severity is given to violations of checks without their own.
	Severity string                 `mapstructure:"severity" json:"severity" yaml:"severity"`
	Checks   map[string]CheckConfig `mapstructure:"checks" json:"checks,omitempty" yaml:"checks,omitempty"`

	// Path is the file the configuration was read from.
	Path string `mapstructure:"-" json:"-" yaml:"-"`
}

// CheckConfig configures one check.
type CheckConfig struct {
	Enabled    *bool          `mapstructure:"enabled" json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Severity   string         `mapstructure:"severity" json:"severity,omitempty" yaml:"severity,omitempty"`
	Properties map[string]any `mapstructure:"properties" json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{Severity: check.Warning.String()}
}

// Find looks for a configuration file in dir and its parents.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads the configuration file at path. An empty path yields the
// defaults, still subject to environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("jobs", 0)
	v.SetDefault("severity", check.Warning.String())
	v.SetEnvPrefix("JAVALINT")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		log.Infof("loaded configuration from %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	cfg.Path = path
	return &cfg, nil
}

// LoadDir loads the configuration file found from dir, or the defaults.
func LoadDir(dir string) (*Config, error) {
	path, _ := Find(dir)
	return Load(path)
}

// Error is a problem with one configuration field.
type Error struct {
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validate reports every problem with c against the checks in reg.
func (c *Config) Validate(reg *check.Registry) error {
	_, err := c.Specs(reg)
	return err
}

// Specs resolves c into the check specs to run: every check in reg, in
// name order, minus the disabled ones. Check names match regardless of
// case.
func (c *Config) Specs(reg *check.Registry) ([]check.Spec, error) {
	var errs []error

	if c.Jobs < 0 {
		errs = append(errs, &Error{Field: "jobs", Message: "must not be negative"})
	}
	def, err := check.ParseSeverity(c.Severity)
	if err != nil {
		errs = append(errs, &Error{Field: "severity", Message: err.Error(), Err: err})
	}

	canonical := make(map[string]string)
	for _, name := range reg.Names() {
		canonical[strings.ToLower(name)] = name
	}
	configured := make(map[string]CheckConfig, len(c.Checks))
	for name, cc := range c.Checks {
		canon, ok := canonical[strings.ToLower(name)]
		if !ok {
			errs = append(errs, &Error{Field: "checks." + name, Message: "unknown check", Err: check.ErrUnknownCheck})
			continue
		}
		configured[canon] = cc
	}

	var specs []check.Spec
	for _, name := range reg.Names() {
		cc := configured[name]
		if cc.Enabled != nil && !*cc.Enabled {
			continue
		}
		sev := def
		if cc.Severity != "" {
			if sev, err = check.ParseSeverity(cc.Severity); err != nil {
				errs = append(errs, &Error{Field: "checks." + name + ".severity", Message: err.Error(), Err: err})
				continue
			}
		}
		specs = append(specs, check.Spec{Name: name, Severity: sev, Properties: check.Properties(cc.Properties)})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	// Constructors validate properties.
	for _, s := range specs {
		if _, err := reg.New(s.Name, s.Properties); err != nil {
			errs = append(errs, &Error{Field: "checks." + s.Name + ".properties", Message: err.Error(), Err: err})
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return specs, nil
}
