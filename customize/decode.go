package customize

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/erraggy/rbindgen/generrors"
	"github.com/erraggy/rbindgen/schema"
)

// decoder turns the generic map decoded from a YAML or TOML file into
// Customizations, collecting every problem instead of stopping at the first.
type decoder struct {
	file string
	algo string
	err  error
}

func (d *decoder) fail(prop, format string, args ...any) {
	d.err = multierr.Append(d.err, &generrors.CustomizationError{
		File:      d.file,
		Algorithm: d.algo,
		Property:  prop,
		Message:   fmt.Sprintf(format, args...),
	})
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func (d *decoder) decode(raw map[string]any) *Customizations {
	c := &Customizations{}
	for _, key := range sortedKeys(raw) {
		v := raw[key]
		switch key {
		case "rest_api_version":
			c.RestAPIVersion = d.integer(key, v)
		case "model_name":
			c.ModelName = d.str(key, v)
		case "module_name":
			c.ModuleName = d.str(key, v)
		case "file_name":
			c.FileName = d.str(key, v)
		case "doc":
			d.decodeDoc(key, v, &c.Doc)
		case "extensions":
			d.decodeExtensions(key, v, &c.Extensions)
		case "update_param":
			c.UpdateParam = d.override(key, v)
		default:
			d.fail(key, "unknown property")
		}
	}
	return c
}

func (d *decoder) decodeDoc(prop string, v any, doc *Doc) {
	m, ok := d.mapping(prop, v)
	if !ok {
		return
	}
	for _, key := range sortedKeys(m) {
		p, v := join(prop, key), m[key]
		switch key {
		case "preamble":
			doc.Preamble = d.str(p, v)
		case "returns":
			doc.Returns = d.str(p, v)
		case "seealso":
			doc.SeeAlso = d.str(p, v)
		case "references":
			doc.References = d.str(p, v)
		case "examples":
			doc.Examples = d.str(p, v)
		case "params":
			doc.Params = d.strMap(p, v, true, d.str)
		case "signatures":
			doc.Signatures = d.strMap(p, v, false, d.literal)
		default:
			d.fail(p, "unknown property")
		}
	}
}

func (d *decoder) decodeExtensions(prop string, v any, ext *Extensions) {
	m, ok := d.mapping(prop, v)
	if !ok {
		return
	}
	for _, key := range sortedKeys(m) {
		p, v := join(prop, key), m[key]
		switch key {
		case "required_params":
			ext.RequiredParams = d.params(p, v)
		case "extra_params":
			ext.ExtraParams = d.params(p, v)
		case "ellipsis_param":
			if v != nil {
				f := Fragment(d.str(p, v))
				ext.EllipsisParam = &f
			}
		case "frame_params":
			ext.FrameParams = d.strList(p, v)
		case "validate_frames":
			ext.ValidateFrames = Fragment(d.str(p, v))
		case "validate_required_params":
			ext.ValidateRequiredParams = Fragment(d.str(p, v))
		case "validate_params":
			ext.ValidateParams = Fragment(d.str(p, v))
		case "set_required_params":
			ext.SetRequiredParams = Fragment(d.str(p, v))
		case "skip_default_set_params_for":
			ext.SkipDefaultSetParamsFor = d.strList(p, v)
		case "set_params":
			ext.SetParams = Fragment(d.str(p, v))
		case "module":
			ext.Module = Fragment(d.str(p, v))
		case "with_model":
			ext.WithModel = Fragment(d.str(p, v))
		default:
			d.fail(p, "unknown property")
		}
	}
}

// params accepts, per entry, a bare name, a [name, literal] pair, or a
// {name, literal} mapping.
func (d *decoder) params(prop string, v any) []Param {
	list, ok := d.list(prop, v)
	if !ok {
		return nil
	}
	out := make([]Param, 0, len(list))
	for i, item := range list {
		p := fmt.Sprintf("%s[%d]", prop, i)
		var param Param
		switch item := item.(type) {
		case string:
			param = Positional(item)
		case []any:
			if len(item) != 2 {
				d.fail(p, "expected a [name, literal] pair, got %d elements", len(item))
				continue
			}
			param = WithDefault(d.str(p+"[0]", item[0]), d.literal(p+"[1]", item[1]))
		case map[string]any:
			name := d.str(p+".name", item["name"])
			if lit, ok := item["literal"]; ok {
				param = WithDefault(name, d.literal(p+".literal", lit))
			} else {
				param = Positional(name)
			}
			for _, key := range sortedKeys(item) {
				if key != "name" && key != "literal" {
					d.fail(join(p, key), "unknown property")
				}
			}
		default:
			d.fail(p, "expected a name, a [name, literal] pair or a mapping, got %T", item)
			continue
		}
		if param.Name == "" {
			d.fail(p, "parameter name is empty")
			continue
		}
		out = append(out, param)
	}
	return out
}

// override compiles update_param entries. Each entry is a patch mapping, a
// sequence of patches (alias fan-out), or an empty sequence (removal).
func (d *decoder) override(prop string, v any) *Override {
	m, ok := d.mapping(prop, v)
	if !ok {
		return nil
	}
	patches := make(map[string][]patch, len(m))
	for _, name := range sortedKeys(m) {
		p := join(prop, name)
		if entries, isList := asList(m[name]); isList {
			list := make([]patch, 0, len(entries))
			for i, e := range entries {
				list = append(list, d.patch(fmt.Sprintf("%s[%d]", p, i), e))
			}
			patches[name] = list
			continue
		}
		patches[name] = []patch{d.patch(p, m[name])}
	}
	return patchOverride(patches)
}

func (d *decoder) patch(prop string, v any) patch {
	var pt patch
	m, ok := d.mapping(prop, v)
	if !ok {
		return pt
	}
	for _, key := range sortedKeys(m) {
		p, v := join(prop, key), m[key]
		switch key {
		case "remove":
			b, ok := v.(bool)
			if !ok {
				d.fail(p, "expected a boolean, got %T", v)
			}
			pt.remove = b
		case "name":
			s := d.str(p, v)
			pt.name = &s
		case "type":
			t := schema.TypeTag(d.str(p, v))
			if !t.Supported() {
				d.fail(p, "unsupported type %q", t)
			}
			pt.typ = &t
		case "values":
			var values []string
			if v != nil {
				values = d.strList(p, v)
			}
			pt.values = &values
		case "default_value":
			dv := v
			pt.defaultValue = &dv
		case "help":
			s := d.str(p, v)
			pt.help = &s
		default:
			d.fail(p, "unknown property")
		}
	}
	return pt
}

func (d *decoder) mapping(prop string, v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		d.fail(prop, "expected a mapping with string keys, got %T", v)
	}
	return m, ok
}

func (d *decoder) list(prop string, v any) ([]any, bool) {
	list, ok := asList(v)
	if !ok {
		d.fail(prop, "expected a sequence, got %T", v)
	}
	return list, ok
}

// asList normalizes the sequence types produced by the YAML and TOML decoders.
func asList(v any) ([]any, bool) {
	switch v := v.(type) {
	case []any:
		return v, true
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func (d *decoder) str(prop string, v any) string {
	if v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.fail(prop, "expected a string, got %T", v)
	}
	return s
}

// literal renders a scalar as R source: YAML null is NULL and booleans are
// TRUE/FALSE, so unquoted R literals survive the round trip.
func (d *decoder) literal(prop string, v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case string:
		return v
	case bool:
		return strings.ToUpper(strconv.FormatBool(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		d.fail(prop, "expected a scalar literal, got %T", v)
		return ""
	}
}

func (d *decoder) integer(prop string, v any) int {
	switch v := v.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	default:
		d.fail(prop, "expected an integer, got %T", v)
		return 0
	}
}

func (d *decoder) strList(prop string, v any) []string {
	list, ok := d.list(prop, v)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		out = append(out, d.str(fmt.Sprintf("%s[%d]", prop, i), item))
	}
	return out
}

// strMap decodes a string-keyed mapping; skipNull drops entries whose value is
// null instead of converting them.
func (d *decoder) strMap(prop string, v any, skipNull bool, conv func(string, any) string) map[string]string {
	m, ok := d.mapping(prop, v)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for _, key := range sortedKeys(m) {
		if m[key] == nil && skipNull {
			continue
		}
		out[key] = conv(join(prop, key), m[key])
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
