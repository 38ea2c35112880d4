package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the default config file path.
const EnvConfigPath = "RUSH_CONFIG"

// Defaults used when neither the config file nor the command line set a value.
const (
	DefaultMode    = "line"
	DefaultOutput  = "text"
	DefaultOnError = "abort"
	DefaultColor   = "auto"
)

// File is the optional YAML configuration file.
// Command line flags take precedence over every field.
type File struct {
	Mode    string            `yaml:"mode"`
	Output  string            `yaml:"output"`
	OnError string            `yaml:"on_error"`
	Color   string            `yaml:"color"`
	Vars    map[string]string `yaml:"vars"`
}

// Load reads the configuration at path.
// An empty path means the path from $RUSH_CONFIG; when that is unset too,
// or the file does not exist, the zero File is returned.
func Load(path string) (*File, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return &File{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data and validates enumerated fields.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Modes lists the accepted driver modes.
var Modes = []string{"string", "lines", "line", "words", "chars", "bytes", "files"}

// Outputs lists the accepted output formats.
var Outputs = []string{"text", "json", "yaml"}

// ErrorPolicies lists the accepted per-record error policies.
var ErrorPolicies = []string{"abort", "skip"}

// ColorModes lists the accepted colour settings.
var ColorModes = []string{"auto", "always", "never"}

func (f *File) validate() error {
	checks := []struct {
		field, value string
		allowed      []string
	}{
		{"mode", f.Mode, Modes},
		{"output", f.Output, Outputs},
		{"on_error", f.OnError, ErrorPolicies},
		{"color", f.Color, ColorModes},
	}
	for _, c := range checks {
		if c.value != "" && !contains(c.allowed, c.value) {
			return fmt.Errorf("config: invalid %s %q (want one of %v)", c.field, c.value, c.allowed)
		}
	}
	return nil
}

// Or returns value unless it is empty, in which case fallback is returned.
func Or(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
