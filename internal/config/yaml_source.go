package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/doccbuilder/internal/foundation/errors"
)

// DefaultConfigFile is read when present and no --config is given.
const DefaultConfigFile = "doccbuilder.yaml"

// FileLookup serves inputs from a YAML file of the form:
//
//	inputs:
//	  package-path: .
//	  targets: [Core, UI]
//	  enable-index-building: true
type FileLookup struct {
	Path   string
	values map[string]string
}

type fileDocument struct {
	Inputs map[string]yaml.Node `yaml:"inputs"`
}

// LoadFile parses path. Environment references (${VAR}) are expanded first.
func LoadFile(path string) (*FileLookup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", path).
			Build()
	}

	var doc fileDocument
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &doc); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse config file").
			WithContext("path", path).
			Build()
	}

	values := make(map[string]string, len(doc.Inputs))
	for name, node := range doc.Inputs {
		v, err := nodeText(&node)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid value for input "+name).
				WithContext("path", path).
				Build()
		}
		values[name] = v
	}
	return &FileLookup{Path: path, values: values}, nil
}

// Lookup implements Lookup.
func (f *FileLookup) Lookup(name string) (string, bool) {
	v, ok := f.values[name]
	return v, ok
}

// nodeText flattens scalars and scalar sequences into input text. Sequences
// become newline-separated so MultilineInput reads them back as lists.
func nodeText(n *yaml.Node) (string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return "", nil
		case "!!bool":
			b, err := strconv.ParseBool(strings.ToLower(n.Value))
			if err != nil {
				return "", err
			}
			return strconv.FormatBool(b), nil
		}
		return n.Value, nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			if c.Kind != yaml.ScalarNode {
				return "", fmt.Errorf("line %d: lists may only contain scalars", c.Line)
			}
			items = append(items, c.Value)
		}
		return strings.Join(items, "\n"), nil
	default:
		return "", fmt.Errorf("line %d: expected a scalar or a list", n.Line)
	}
}
