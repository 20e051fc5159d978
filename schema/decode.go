package schema

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/rbindgen/generrors"
)

// document is the union of the accepted top-level shapes: the
// /3/ModelBuilders response and a single model builder.
type document struct {
	ModelBuilders map[string]*ModelBuilder `yaml:"model_builders"`
	Algo          string                   `yaml:"algo"`
	Parameters    []Parameter              `yaml:"parameters"`
}

// decodeBuilders accepts a {"model_builders": {...}} document, a single
// builder object, or a sequence of builders, in JSON or YAML.
func decodeBuilders(data []byte, source string) ([]*ModelBuilder, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &generrors.SchemaError{Source: source, Message: "failed to decode", Cause: err}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &generrors.SchemaError{Source: source, Message: "empty document"}
	}
	node := root.Content[0]

	var builders []*ModelBuilder
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&builders); err != nil {
			return nil, &generrors.SchemaError{Source: source, Message: "failed to decode model builders", Cause: err}
		}
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, &generrors.SchemaError{Source: source, Message: "failed to decode model builders", Cause: err}
		}
		switch {
		case doc.ModelBuilders != nil:
			for key, mb := range doc.ModelBuilders {
				if mb == nil {
					return nil, &generrors.SchemaError{Source: source, Algorithm: key, Message: "model builder is null"}
				}
				if mb.Algo == "" {
					mb.Algo = key
				}
				builders = append(builders, mb)
			}
		case doc.Algo != "":
			builders = append(builders, &ModelBuilder{Algo: doc.Algo, Parameters: doc.Parameters})
		default:
			return nil, &generrors.SchemaError{Source: source, Message: `expected "model_builders" or "algo" at the top level`}
		}
	default:
		return nil, &generrors.SchemaError{Source: source, Message: "expected a mapping or a sequence at the top level"}
	}

	seen := make(map[string]bool, len(builders))
	for _, mb := range builders {
		if err := normalizeBuilder(mb, source); err != nil {
			return nil, err
		}
		if seen[mb.Algo] {
			return nil, &generrors.SchemaError{Source: source, Algorithm: mb.Algo, Message: "duplicate model builder"}
		}
		seen[mb.Algo] = true
	}
	return builders, nil
}

func normalizeBuilder(mb *ModelBuilder, source string) error {
	if mb == nil {
		return &generrors.SchemaError{Source: source, Message: "model builder is null"}
	}
	if mb.Algo == "" {
		return &generrors.SchemaError{Source: source, Message: "model builder has no algo"}
	}
	names := make(map[string]bool, len(mb.Parameters))
	for i := range mb.Parameters {
		p := &mb.Parameters[i]
		if p.Name == "" {
			return &generrors.SchemaError{Source: source, Algorithm: mb.Algo, Message: fmt.Sprintf("parameter %d has no name", i)}
		}
		if names[p.Name] {
			return &generrors.SchemaError{Source: source, Algorithm: mb.Algo, Message: fmt.Sprintf("duplicate parameter %q", p.Name)}
		}
		names[p.Name] = true
		if p.Type == "" {
			return &generrors.SchemaError{Source: source, Algorithm: mb.Algo, Message: fmt.Sprintf("parameter %q has no type", p.Name)}
		}
		p.DefaultValue = normalizeDefault(p.DefaultValue)
	}
	return nil
}

// normalizeDefault reduces key references such as {"name": "frame_1"} to
// their name, which is how they are passed back to the server.
func normalizeDefault(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	name, ok := m["name"]
	if !ok {
		return v
	}
	if name == nil {
		return nil
	}
	return fmt.Sprint(name)
}
