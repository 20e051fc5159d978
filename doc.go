// Package rbindgen generates R client bindings for a remote model-training API.
//
// Given the machine-readable description of every model builder exposed by the
// server (algorithm key plus an ordered list of typed parameters) and a set of
// per-algorithm customizations, rbindgen emits one R source file per algorithm
// containing a documented h2o.<module> training function and a
// .h2o.train_segments_<module> function that trains one model per data segment.
//
// # Packages
//
//   - schema: Parse model builder metadata from files, URLs, or bytes
//   - customize: Per-algorithm documentation and code customizations
//   - generator: Merge parameters and render the R functions
//   - generrors: Structured error types for errors.Is / errors.As
//
// # Quick Start
//
//	reg, err := customize.LoadDir("./custom")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := generator.GenerateWithOptions(ctx,
//		generator.WithFilePath("model_builders.json"),
//		generator.WithRegistry(reg),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./R"); err != nil {
//		log.Fatal(err)
//	}
//
// The command line tool lives in cmd/rbindgen. Besides generate it offers
// describe and list for inspecting the merged parameters, watch for
// regenerating on change, and mcp for serving the generator as MCP tools.
package rbindgen
