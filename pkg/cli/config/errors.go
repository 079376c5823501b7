package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound  = goerr.New("configuration file not found")
	ErrInvalidConfig   = goerr.New("invalid configuration")
	ErrInvalidDuration = goerr.New("invalid duration")
	ErrDuplicateLender = goerr.New("duplicate category 3 lender")
	ErrMissingValue    = goerr.New("required value is missing")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	FieldKey      = "field"
	ValueKey      = "value"
)
