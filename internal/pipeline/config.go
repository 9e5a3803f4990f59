package pipeline

import (
	"gopkg.in/yaml.v3"
)

// ProjectConfig is the minimal knob cmd/machc loads from an optional
// mach.yaml so common invocations don't repeat flags. It is not a
// general project-configuration system: unknown keys are silently
// ignored by yaml.v3's default unmarshal, and there is no support for
// profiles, scripts, or nested project graphs.
type ProjectConfig struct {
	IncludePaths []string          `yaml:"include_paths"`
	Aliases      map[string]string `yaml:"aliases"`
	Constants    map[string]int64  `yaml:"constants"`
	Target       string            `yaml:"target"`
}

// LoadProjectConfig parses a mach.yaml document's bytes.
func LoadProjectConfig(data []byte) (ProjectConfig, error) {
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ProjectConfig{}, err
	}
	return cfg, nil
}

// Apply folds cfg into opts, only filling fields the caller left at
// their zero value — explicit flags always win over the project file.
func (cfg ProjectConfig) Apply(opts BuildOptions) BuildOptions {
	if len(opts.IncludePaths) == 0 {
		opts.IncludePaths = cfg.IncludePaths
	}
	if len(opts.Aliases) == 0 {
		opts.Aliases = cfg.Aliases
	}
	if len(opts.PreprocessorConstants) == 0 {
		opts.PreprocessorConstants = cfg.Constants
	}
	return opts
}
