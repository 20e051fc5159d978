// Package schema loads the model builder metadata that bindings are generated
// from.
//
// The metadata is what a running server reports at /3/ModelBuilders: for each
// algorithm an ordered list of typed parameters with enum values, defaults and
// help text. It can be read from a file, fetched from a URL, or supplied as a
// reader or bytes, in JSON or YAML. Three shapes are accepted:
//
//	{"model_builders": {"gbm": {"algo": "gbm", "parameters": [...]}, ...}}
//	{"algo": "gbm", "parameters": [...]}
//	[{"algo": "gbm", "parameters": [...]}, ...]
//
// # Quick Start
//
//	result, err := schema.ParseWithOptions(schema.WithFilePath("model_builders.json"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, mb := range result.Builders {
//	    fmt.Println(mb.Algo, len(mb.Parameters))
//	}
//
// Builders are sorted by algorithm key. Key-typed defaults reported as
// objects with a "name" field are reduced to that name.
//
// Decode and shape problems are reported as *generrors.SchemaError.
package schema
