package generator

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/erraggy/rbindgen/customize"
	"github.com/erraggy/rbindgen/generrors"
	"github.com/erraggy/rbindgen/schema"
)

// Source identifies where a merged parameter came from.
type Source int

const (
	// SourceRequired marks customization-declared leading parameters.
	SourceRequired Source = iota
	// SourceSchema marks parameters declared by the model builder.
	SourceSchema
	// SourceExtra marks customization-declared trailing parameters.
	SourceExtra
	// SourceBulk marks the parameters added to the segment variant.
	SourceBulk
)

var sourceNames = [...]string{"required", "schema", "extra", "bulk"}

// String returns the lowercase source name.
func (s Source) String() string {
	if int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MergedParam is one parameter of a generated function.
type MergedParam struct {
	Name   string
	Source Source
	// Literal is the declared default of a required, extra or bulk parameter
	Literal *string
	// Spec is the resolved schema parameter; HasSpec reports whether it is set.
	// Required parameters that also appear in the schema carry it for docs.
	Spec    schema.Parameter
	HasSpec bool
	// SchemaName is the schema parameter this one was resolved from
	SchemaName string
}

// MergedList is the ordered, duplicate-free parameter list of one function.
type MergedList struct {
	Params []MergedParam
	// SchemaNames are the model builder's parameter names in declared order,
	// before overrides. The payload is built from these.
	SchemaNames []string
	// Required and Extra are the declared customization parameter names
	Required map[string]bool
	Extra    map[string]bool
	// Ellipsis adds a trailing "..." parameter
	Ellipsis bool
}

// MergeInput holds the three parameter sources and the override chain.
type MergeInput struct {
	Required  []customize.Param
	Schema    []schema.Parameter
	Extra     []customize.Param
	Overrides []*customize.Override
	Ellipsis  bool
}

// Merge combines required, schema and extra parameters:
//
//  1. required parameters in declared order;
//  2. schema parameters in declared order, each resolved through the
//     override chain and expanded into its aliases;
//  3. extra parameters in declared order;
//  4. "..." when declared.
//
// The first occurrence of a name wins, so schema parameters never replace a
// required or extra parameter of the same name; they still document it.
// Resolved parameters with an empty name are dropped.
func Merge(in MergeInput) (*MergedList, error) {
	list := &MergedList{
		SchemaNames: make([]string, 0, len(in.Schema)),
		Required:    make(map[string]bool, len(in.Required)),
		Extra:       make(map[string]bool, len(in.Extra)),
		Ellipsis:    in.Ellipsis,
	}
	for _, p := range in.Required {
		if p.Name == "" {
			return nil, &generrors.CustomizationError{Property: "extensions.required_params", Message: "parameter name is empty"}
		}
		list.Required[p.Name] = true
	}
	for _, p := range in.Extra {
		if p.Name == "" {
			return nil, &generrors.CustomizationError{Property: "extensions.extra_params", Message: "parameter name is empty"}
		}
		list.Extra[p.Name] = true
	}

	present := make(map[string]int)
	// schema documentation for extra parameters, first alias wins
	extraSpecs := make(map[string]MergedParam)
	add := func(mp MergedParam) {
		present[mp.Name] = len(list.Params)
		list.Params = append(list.Params, mp)
	}

	for _, p := range in.Required {
		if _, dup := present[p.Name]; dup {
			continue
		}
		add(MergedParam{Name: p.Name, Source: SourceRequired, Literal: p.Literal})
	}

	for _, sp := range in.Schema {
		list.SchemaNames = append(list.SchemaNames, sp.Name)
		for _, alias := range customize.Resolve(sp.Name, sp, in.Overrides...) {
			if alias.Name == "" {
				continue
			}
			if i, ok := present[alias.Name]; ok {
				// a required parameter documented by the schema
				if list.Params[i].Source == SourceRequired && !list.Params[i].HasSpec {
					list.Params[i].Spec = alias
					list.Params[i].HasSpec = true
					list.Params[i].SchemaName = sp.Name
				}
				continue
			}
			if list.Extra[alias.Name] {
				if _, seen := extraSpecs[alias.Name]; !seen {
					extraSpecs[alias.Name] = MergedParam{Spec: alias, HasSpec: true, SchemaName: sp.Name}
				}
				continue
			}
			add(MergedParam{Name: alias.Name, Source: SourceSchema, Spec: alias, HasSpec: true, SchemaName: sp.Name})
		}
	}

	for _, p := range in.Extra {
		if _, dup := present[p.Name]; dup {
			continue
		}
		mp := extraSpecs[p.Name]
		mp.Name, mp.Source, mp.Literal = p.Name, SourceExtra, p.Literal
		add(mp)
	}
	return list, nil
}

// Names returns the parameter names in order, without "...".
func (l *MergedList) Names() []string {
	return lo.Map(l.Params, func(p MergedParam, _ int) string { return p.Name })
}

// Has reports whether a parameter named name is in the list.
func (l *MergedList) Has(name string) bool {
	return lo.ContainsBy(l.Params, func(p MergedParam) bool { return p.Name == name })
}

// Get returns the parameter named name.
func (l *MergedList) Get(name string) (MergedParam, bool) {
	return lo.Find(l.Params, func(p MergedParam) bool { return p.Name == name })
}

// Without returns a copy of l without the named parameters.
func (l *MergedList) Without(names ...string) *MergedList {
	out := *l
	out.Params = lo.Filter(l.Params, func(p MergedParam, _ int) bool {
		return !lo.Contains(names, p.Name)
	})
	return &out
}
