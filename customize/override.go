package customize

import (
	"github.com/erraggy/rbindgen/schema"
)

// OverrideKind identifies the variant held by an Override.
type OverrideKind int

const (
	// OverrideLiteral replaces parameters by name from a fixed table.
	OverrideLiteral OverrideKind = iota
	// OverrideRule computes replacements from the schema parameter.
	OverrideRule
)

// RuleFunc computes the replacement for a schema parameter. It returns
// ok=false to leave the parameter to the next override. A returned slice with
// several entries fans the parameter out into aliases; an empty slice, or
// entries with an empty name, delete it.
type RuleFunc func(name string, p schema.Parameter) (replacement []schema.Parameter, ok bool)

// Override rewrites schema parameters before merging.
type Override struct {
	kind    OverrideKind
	literal map[string][]schema.Parameter
	rule    RuleFunc
}

// LiteralOverride returns an Override that replaces each named parameter with
// the given sequence.
func LiteralOverride(replacements map[string][]schema.Parameter) *Override {
	return &Override{kind: OverrideLiteral, literal: replacements}
}

// RuleOverride returns an Override backed by fn.
func RuleOverride(fn RuleFunc) *Override {
	return &Override{kind: OverrideRule, rule: fn}
}

// Kind returns the variant held by o.
func (o *Override) Kind() OverrideKind {
	return o.kind
}

// Apply evaluates the override for one schema parameter. The returned
// parameters never alias p or the override's own table.
func (o *Override) Apply(name string, p schema.Parameter) ([]schema.Parameter, bool) {
	if o == nil {
		return nil, false
	}
	var out []schema.Parameter
	switch o.kind {
	case OverrideLiteral:
		repl, ok := o.literal[name]
		if !ok {
			return nil, false
		}
		out = repl
	case OverrideRule:
		if o.rule == nil {
			return nil, false
		}
		repl, ok := o.rule(name, p.Clone())
		if !ok {
			return nil, false
		}
		out = repl
	default:
		return nil, false
	}
	cloned := make([]schema.Parameter, len(out))
	for i, r := range out {
		cloned[i] = r.Clone()
	}
	return cloned, true
}

// Resolve runs name through the override chain and returns the first result,
// or p alone when no override applies.
func Resolve(name string, p schema.Parameter, chain ...*Override) []schema.Parameter {
	for _, o := range chain {
		if repl, ok := o.Apply(name, p); ok {
			return repl
		}
	}
	return []schema.Parameter{p.Clone()}
}

// patch is one update_param entry read from a customization file. Fields left
// nil keep the schema value.
type patch struct {
	remove       bool
	name         *string
	typ          *schema.TypeTag
	values       *[]string
	defaultValue *any
	help         *string
}

func (pt patch) apply(p schema.Parameter) schema.Parameter {
	out := p.Clone()
	if pt.name != nil {
		out.Name = *pt.name
	}
	if pt.typ != nil {
		out.Type = *pt.typ
	}
	if pt.values != nil {
		out.Values = append([]string(nil), (*pt.values)...)
	}
	if pt.defaultValue != nil {
		out.DefaultValue = *pt.defaultValue
	}
	if pt.help != nil {
		out.Help = *pt.help
	}
	return out
}

// patchOverride compiles file patches into a rule override.
func patchOverride(patches map[string][]patch) *Override {
	return RuleOverride(func(name string, p schema.Parameter) ([]schema.Parameter, bool) {
		list, ok := patches[name]
		if !ok {
			return nil, false
		}
		out := make([]schema.Parameter, 0, len(list))
		for _, pt := range list {
			if pt.remove {
				continue
			}
			out = append(out, pt.apply(p))
		}
		return out, true
	})
}
