package config

import "errors"

// Error variables for configuration loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrProjectsDirEmpty   = errors.New("projects-dir cannot be empty")
	ErrOutputEmpty        = errors.New("output cannot be empty")
)
