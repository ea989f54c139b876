package config

import (
	"fmt"
)

type MissingConfigError struct {
	Path string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("config file missing: %s", e.Path)
}

type InvalidYAMLError struct {
	Wrapped error
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf(".norm42.yml is not a valid yaml document: %v", e.Wrapped)
}

type InvalidIndentWidthError struct {
	Value int
}

func (e *InvalidIndentWidthError) Error() string {
	return fmt.Sprintf(
		".norm42.yml property indentWidth has invalid value %d. Valid range is %d-%d",
		e.Value,
		minIndentWidth,
		maxIndentWidth,
	)
}

type InvalidEnvKeyError struct {
	Key string
}

func (e *InvalidEnvKeyError) Error() string {
	return fmt.Sprintf(".norm42.yml env block has invalid variable name '%s'", e.Key)
}

type InvalidIdentityError struct {
	Wrapped  error
	Property string
	Value    string
}

func (e *InvalidIdentityError) Error() string {
	return fmt.Sprintf(
		".norm42.yml property %s has invalid value '%s': %v",
		e.Property,
		e.Value,
		e.Wrapped,
	)
}
