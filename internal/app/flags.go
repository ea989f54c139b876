package app

import (
	"fmt"
	"slices"
	"strings"
)

// formatValue implements pflag.Value to provide a custom type name in help text
// and validation for output formats.
type formatValue string

func (f *formatValue) String() string {
	return string(*f)
}

func (f *formatValue) Set(v string) error {
	if v != "json" && v != "text" {
		return fmt.Errorf("must be 'text' or 'json'")
	}
	*f = formatValue(v)
	return nil
}

func (f *formatValue) Type() string {
	return "<format>"
}

// pathValue implements pflag.Value to provide a custom type name in help text.
type pathValue string

func (p *pathValue) String() string {
	return string(*p)
}

func (p *pathValue) Set(v string) error {
	*p = pathValue(v)
	return nil
}

func (p *pathValue) Type() string {
	return "<path>"
}

// envValue implements pflag.Value for repeatable KEY=VALUE assignments.
type envValue struct {
	vars map[string]string
}

func newEnvValue() *envValue {
	return &envValue{vars: map[string]string{}}
}

func (e *envValue) String() string {
	if len(e.vars) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(e.vars))
	for k, v := range e.vars {
		pairs = append(pairs, k+"="+v)
	}
	slices.Sort(pairs)
	return strings.Join(pairs, ",")
}

func (e *envValue) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	if !ok || key == "" {
		return fmt.Errorf("must be KEY=VALUE")
	}
	e.vars[key] = value
	return nil
}

func (e *envValue) Type() string {
	return "<key=value>"
}
