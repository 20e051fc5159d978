package generator

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/erraggy/rbindgen/generrors"
	"github.com/erraggy/rbindgen/schema"
)

// RLiteral renders value as an R literal for a parameter of type tag.
//
//	nil            0 (numeric), list() (list), NULL (anything else)
//	boolean        TRUE / FALSE
//	float, double  plain decimal rounded to 10 significant digits
//	list           list("a", "b")
//	enum, enum[]   c("a", "b")
//	T[]            c(1, 2), elements unquoted
//	other          the value's text, unquoted
//
// An unknown tag yields a *generrors.UnsupportedTypeError.
func RLiteral(tag schema.TypeTag, value any) (string, error) {
	cat := tag.Category()
	if cat == schema.CategoryUnknown {
		return "", &generrors.UnsupportedTypeError{Type: string(tag)}
	}

	if value == nil {
		switch cat {
		case schema.CategoryNumeric:
			return "0", nil
		case schema.CategoryList:
			return "list()", nil
		default:
			return "NULL", nil
		}
	}

	switch cat {
	case schema.CategoryBoolean:
		return strings.ToUpper(fmt.Sprint(value)), nil
	case schema.CategoryNumeric:
		if tag.IsFloating() {
			return formatFloat(value), nil
		}
		return scalarText(value), nil
	case schema.CategoryList:
		return "list(" + quoteAll(elements(value)) + ")", nil
	case schema.CategoryEnum:
		return "c(" + quoteAll(elements(value)) + ")", nil
	case schema.CategoryArray:
		elem := tag.Elem()
		items := elements(value)
		parts := make([]string, len(items))
		for i, item := range items {
			s, err := arrayElement(elem, item)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "c(" + strings.Join(parts, ", ") + ")", nil
	default:
		return scalarText(value), nil
	}
}

func arrayElement(elem schema.TypeTag, item any) (string, error) {
	switch elem.Category() {
	case schema.CategoryNumeric, schema.CategoryBoolean, schema.CategoryArray:
		return RLiteral(elem, item)
	default:
		if item == nil {
			return "NULL", nil
		}
		return scalarText(item), nil
	}
}

// SignatureDefault renders the default shown in a function signature. Enum
// parameters list every allowed value, which doubles as a hint to callers.
func SignatureDefault(p schema.Parameter) (string, error) {
	var value any = p.DefaultValue
	if p.Type.IsEnum() {
		value = nil
		if p.Values != nil {
			value = p.Values
		}
	}
	s, err := RLiteral(p.Type, value)
	return s, withParameter(err, p.Name)
}

// DocDefault renders the default quoted in parameter documentation. Enum
// parameters show their default member.
func DocDefault(p schema.Parameter) (string, error) {
	tag := p.Type
	if tag.IsEnum() {
		tag = "string"
	}
	s, err := RLiteral(tag, p.DefaultValue)
	return s, withParameter(err, p.Name)
}

func withParameter(err error, name string) error {
	var ute *generrors.UnsupportedTypeError
	if errors.As(err, &ute) && ute.Parameter == "" {
		ute.Parameter = name
	}
	return err
}

func withAlgorithm(err error, algo string) error {
	var ute *generrors.UnsupportedTypeError
	if errors.As(err, &ute) && ute.Algorithm == "" {
		ute.Algorithm = algo
	}
	var ce *generrors.CustomizationError
	if errors.As(err, &ce) && ce.Algorithm == "" {
		ce.Algorithm = algo
	}
	return err
}

// formatFloat rounds to 10 significant digits and prints without an exponent.
func formatFloat(value any) string {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return v
		}
		f = parsed
	default:
		return fmt.Sprint(value)
	}
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return plainDecimal(strconv.FormatFloat(f, 'e', 9, 64))
}

// plainDecimal rewrites a strconv 'e' formatted number as a plain decimal,
// dropping trailing zeros. The digits are shifted as text so values near the
// float64 limits keep their magnitude.
func plainDecimal(e string) string {
	mant, expText, _ := strings.Cut(e, "e")
	exp, _ := strconv.Atoi(expText)
	sign := ""
	if strings.HasPrefix(mant, "-") {
		sign, mant = "-", mant[1:]
	}
	digits := strings.TrimRight(strings.Replace(mant, ".", "", 1), "0")
	if digits == "" {
		return sign + "0"
	}
	point := exp + 1
	switch {
	case point <= 0:
		return sign + "0." + strings.Repeat("0", -point) + digits
	case point >= len(digits):
		return sign + digits + strings.Repeat("0", point-len(digits))
	default:
		return sign + digits[:point] + "." + digits[point:]
	}
}

func scalarText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64, float32:
		return formatFloat(v)
	default:
		return fmt.Sprint(v)
	}
}

// elements returns the items of a slice value; scalars become one element.
func elements(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{value}
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(v any) string {
	return `"` + quoteEscaper.Replace(fmt.Sprint(v)) + `"`
}

func quoteAll(items []any) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = quote(item)
	}
	return strings.Join(parts, ", ")
}
