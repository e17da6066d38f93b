package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// PatternsFile lets the curated phrase lists live in their own versioned
// file next to the config, overriding the built-in lists wholesale.
type PatternsFile struct {
	TooSenior []string `yaml:"too_senior"`
	Delete    []string `yaml:"delete"`
}

// OverlayPatterns replaces the config's pattern lists from patternsPath.
// A missing file is not an error; the config keeps its lists.
func OverlayPatterns(cfg *Config, patternsPath string) error {
	b, err := os.ReadFile(patternsPath)
	if err != nil {
		return nil
	}

	var pf PatternsFile
	if err := yaml.Unmarshal(b, &pf); err != nil {
		return err
	}

	if len(pf.TooSenior) > 0 {
		cfg.Purge.TooSenior = pf.TooSenior
	}
	if len(pf.Delete) > 0 {
		cfg.Purge.Delete = pf.Delete
	}
	return nil
}
