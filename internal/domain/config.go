package domain

import "fmt"

// ProjectConfig holds project-level configuration loaded from .archscope.yaml.
type ProjectConfig struct {
	SourceExtension string   `yaml:"source_extension" json:"source_extension,omitempty"`
	ExcludePaths    []string `yaml:"exclude_paths"    json:"exclude_paths,omitempty"`
	SkipDirs        []string `yaml:"skip_dirs"        json:"skip_dirs,omitempty"`
	BusinessNouns   []string `yaml:"business_nouns"   json:"business_nouns,omitempty"`
	BusinessVerbs   []string `yaml:"business_verbs"   json:"business_verbs,omitempty"`
	MinScore        *float64 `yaml:"min_score"        json:"min_score,omitempty"`
}

// DefaultConfig returns the configuration used when no .archscope.yaml exists.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{SourceExtension: ".cs"}
}

// Validate rejects configurations that would silently analyze nothing.
func (c ProjectConfig) Validate() error {
	if c.SourceExtension != "" && c.SourceExtension[0] != '.' {
		return fmt.Errorf("source_extension %q must start with a dot", c.SourceExtension)
	}
	if c.MinScore != nil && (*c.MinScore < 0 || *c.MinScore > 5) {
		return fmt.Errorf("min_score %.2f out of range [0, 5]", *c.MinScore)
	}
	return nil
}

// Extension returns the configured source extension or the default.
func (c ProjectConfig) Extension() string {
	if c.SourceExtension == "" {
		return ".cs"
	}
	return c.SourceExtension
}
