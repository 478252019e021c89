package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProjectPath string // project description: .hcl file, directory of them, or .eda.yml
	WorkRoot    string // directory the generated build artifacts are written under
	Tool        string // tool tag override; empty means the project's own tool
	DocTool     string // print this tool's option documentation and exit

	LogFormat string
	LogLevel  string

	ToolArgs []string // leftover command line args, checked against the tool's options
}

// NewConfig validates a Config. Doc printing is the one mode that works
// without a project.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectPath == "" && cfg.DocTool == "" {
		return nil, errors.New("ProjectPath is a required configuration field and cannot be empty")
	}
	if cfg.WorkRoot == "" {
		cfg.WorkRoot = "build"
	}
	return &cfg, nil
}
