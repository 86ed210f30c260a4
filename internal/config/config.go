package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoLocalConfig is returned by LoadLocal when no config file exists.
	ErrNoLocalConfig = errors.New("no local config")
	// ErrNoGlobalConfig is returned by LoadGlobal when no config file exists.
	ErrNoGlobalConfig = errors.New("no global config")
)

// LocalNames are the file names LoadLocal looks for, in search order.
var LocalNames = []string{".regexscan.yml", ".regexscan.yaml", "regexscan.yml", "regexscan.yaml"}

// FileConfig is the on-disk YAML configuration shape for regexscan. Nil
// fields were not set and fall through to the next precedence level.
type FileConfig struct {
	RulesDir     *string  `yaml:"rules_dir"`
	Threads      *int     `yaml:"threads"`
	NoColor      *bool    `yaml:"no_color"`
	Syntax       *string  `yaml:"syntax"`
	ExcludeRules []string `yaml:"exclude_rules"`
	Redact       *bool    `yaml:"redact"`
	// Format is one of text, table, json or sarif.
	Format *string `yaml:"format"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a config file in dir.
// It supports .regexscan.yml/.yaml and regexscan.yml/.yaml.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range LocalNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, ErrNoLocalConfig
}

// GlobalPath returns the location of the global config file, or "" when
// neither XDG_CONFIG_HOME nor a home directory is available.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "regexscan", "config.yml")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	p := GlobalPath()
	if p == "" {
		return cfg, errors.New("no config dir")
	}
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, ErrNoGlobalConfig
}
