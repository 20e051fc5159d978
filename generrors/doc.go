// Package generrors provides structured error types for rbindgen.
//
// Import path: github.com/erraggy/rbindgen/generrors
//
// Every error returned by the schema, customize, and generator packages either
// is, or wraps, one of the types below, so callers can branch with [errors.Is]
// and [errors.As]:
//
//   - [SchemaError]: model builder metadata that cannot be decoded or is malformed
//   - [UnsupportedTypeError]: a parameter type tag with no R literal rendering
//   - [CustomizationError]: an invalid customization file or property
//   - [ConfigError]: invalid options or inputs
//
// # Sentinel Errors
//
//	if errors.Is(err, generrors.ErrUnsupportedType) {
//	    // the schema introduced a type the generator does not know how to render
//	}
package generrors
