package cli

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	clierrors "github.com/toyz/autoinject/internal/errors"
	"github.com/toyz/autoinject/internal/utils"
)

const (
	// ConfigName is the base name of the optional project config file
	ConfigName = ".autoinject"
	// EnvPrefix prefixes environment overrides, e.g. AUTOINJECT_VERBOSE=true
	EnvPrefix = "AUTOINJECT"
)

// Viper keys
const (
	KeyPatterns    = "patterns"
	KeyDir         = "dir"
	KeyTags        = "tags"
	KeyVerbose     = "verbose"
	KeyQuiet       = "quiet"
	KeyDryRun      = "dry_run"
	KeyModuleCheck = "module_check"
)

// DefaultPatterns is used when neither arguments nor config name packages
var DefaultPatterns = []string{"./..."}

// Config holds the configuration for a CLI run
type Config struct {
	// Patterns are go/packages patterns, e.g. ./... or ./internal/service
	Patterns []string

	// Dir is the working directory patterns are resolved in
	Dir string

	// Tags are build tags passed to the go tool
	Tags []string

	// Verbose enables detailed logging, including skipped targets
	Verbose bool

	// Quiet only shows errors and the final result
	Quiet bool

	// DryRun prints generated units instead of writing them
	DryRun bool

	// ModuleCheck warns when go.mod does not require the container module
	ModuleCheck bool
}

// NewViper creates a viper instance with defaults and environment binding
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyDir, ".")
	v.SetDefault(KeyModuleCheck, true)

	return v
}

// LoadConfig reads the optional config file and decodes v into a Config.
// configFile names an explicit file; when empty, .autoinject.yaml is looked up
// in the working directory and may be absent. Positional patterns win over the
// config file.
func LoadConfig(v *viper.Viper, configFile string, patterns []string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(v.GetString(KeyDir))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, clierrors.WrapConfigurationError(configFile, "read", err).
				WithSuggestion("Check the YAML syntax of the config file, or pass --config with a valid path")
		}
	}

	cfg := &Config{
		Patterns:    patterns,
		Dir:         v.GetString(KeyDir),
		Tags:        v.GetStringSlice(KeyTags),
		Verbose:     v.GetBool(KeyVerbose),
		Quiet:       v.GetBool(KeyQuiet),
		DryRun:      v.GetBool(KeyDryRun),
		ModuleCheck: v.GetBool(KeyModuleCheck),
	}
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = v.GetStringSlice(KeyPatterns)
	}
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = append([]string(nil), DefaultPatterns...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the combination of options
func (c *Config) Validate() error {
	if c.Verbose && c.Quiet {
		return clierrors.ConfigurationError("flags", "--verbose and --quiet cannot be used together").
			WithSuggestion("Pick one of --verbose or --quiet")
	}
	for _, p := range c.Patterns {
		if strings.TrimSpace(p) == "" {
			return clierrors.ConfigurationError("patterns", "empty package pattern")
		}
	}
	return nil
}

// AbsDir returns the working directory as an absolute path
func (c *Config) AbsDir() (string, error) {
	dir := c.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Abs(dir)
}

// Diagnostics creates the diagnostic system matching the verbosity options
func (c *Config) Diagnostics() *utils.DiagnosticSystem {
	switch {
	case c.Quiet:
		return utils.NewQuietDiagnostics()
	case c.Verbose:
		return utils.NewVerboseDiagnostics()
	default:
		return utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
}
