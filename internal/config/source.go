package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/doccbuilder/internal/actions"
	ferrors "git.home.luguber.info/inful/doccbuilder/internal/foundation/errors"
)

// Lookup finds the raw text of a named input.
type Lookup interface {
	Lookup(name string) (string, bool)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(name string) (string, bool)

// Lookup calls f.
func (f LookupFunc) Lookup(name string) (string, bool) { return f(name) }

// EnvLookup reads INPUT_<NAME> environment variables.
var EnvLookup Lookup = LookupFunc(actions.LookupInput)

// Layered consults each Lookup in order; the first hit wins.
type Layered []Lookup

// Lookup implements Lookup.
func (l Layered) Lookup(name string) (string, bool) {
	for _, src := range l {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}

// MapLookup is an in-memory Lookup.
type MapLookup map[string]string

// Lookup implements Lookup.
func (m MapLookup) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// InputOptions control how an input is read.
type InputOptions struct {
	// Required makes a missing or blank value a configuration error.
	Required bool
	// KeepWhitespace disables trimming of the value.
	KeepWhitespace bool
	// Default is used when the input is missing or blank.
	Default string
}

// Inputs provides typed access to named inputs.
type Inputs struct {
	lookup Lookup
}

// NewInputs wraps a Lookup.
func NewInputs(l Lookup) *Inputs {
	return &Inputs{lookup: l}
}

func requiredError(name string) error {
	return ferrors.ConfigError("Input required and not supplied: "+name).
		WithContext("input", name).
		Build()
}

// Input returns the value of name, trimmed unless opts say otherwise.
// Missing inputs read as "".
func (in *Inputs) Input(name string, opts InputOptions) (string, error) {
	v, _ := in.lookup.Lookup(name)
	if strings.TrimSpace(v) == "" && opts.Default != "" {
		v = opts.Default
	}
	if opts.Required && strings.TrimSpace(v) == "" {
		return "", requiredError(name)
	}
	if opts.KeepWhitespace {
		return v, nil
	}
	return strings.TrimSpace(v), nil
}

var (
	trueValues  = []string{"true", "True", "TRUE"}
	falseValues = []string{"false", "False", "FALSE"}
)

// BooleanInput parses name following the YAML 1.2 core schema booleans.
// A missing, non-required input reads as false.
func (in *Inputs) BooleanInput(name string, opts InputOptions) (bool, error) {
	v, err := in.Input(name, InputOptions{Required: opts.Required, Default: opts.Default})
	if err != nil {
		return false, err
	}
	if v == "" {
		return false, nil
	}
	for _, t := range trueValues {
		if v == t {
			return true, nil
		}
	}
	for _, f := range falseValues {
		if v == f {
			return false, nil
		}
	}
	return false, ferrors.ConfigError(fmt.Sprintf(
		"Input does not meet YAML 1.2 \"Core Schema\" specification: %s\nSupport boolean input list: `true | True | TRUE | false | False | FALSE`", name)).
		WithContext("input", name).
		WithContext("value", v).
		Build()
}

// MultilineInput splits name into lines, dropping blank ones.
func (in *Inputs) MultilineInput(name string, opts InputOptions) ([]string, error) {
	v, err := in.Input(name, InputOptions{Required: opts.Required, KeepWhitespace: true, Default: opts.Default})
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(v, "\n") {
		if !opts.KeepWhitespace {
			line = strings.TrimSpace(line)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}
