// Package generator renders R bindings for H2O model builders.
//
// For every model builder the generator emits one R source file holding a
// roxygen-documented training function, h2o.<module>, and except for the
// generic algorithm a segment training function, .h2o.train_segments_<module>.
// Parameters come from three places, merged in this order:
//
//   - required parameters declared by the customizations
//   - the model builder's own parameters, each passed through the update
//     overrides, which may rename, retype, alias or remove it
//   - extra parameters declared by the customizations
//
// A name is emitted once; the first source that declares it wins.
//
// # Quick Start
//
//	reg, err := customize.LoadDir("customizations")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := generator.GenerateWithOptions(ctx,
//		generator.WithFilePath("http://localhost:54321/3/ModelBuilders"),
//		generator.WithRegistry(reg),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("R"); err != nil {
//		log.Fatal(err)
//	}
//
// Or use a reusable Generator instance:
//
//	g := generator.New()
//	g.Registry = reg
//	g.Algorithms = []string{"gbm", "glm"}
//	result, _ := g.Generate(ctx, "model_builders.json")
//
// # Default Values
//
// Schema defaults are rendered as R literals by [RLiteral]: booleans become
// TRUE or FALSE, doubles are rounded to ten significant digits, lists become
// list("a", "b"), enums c("a", "b") and arrays c(1, 2). Enum parameters show
// every allowed value in the signature and the default member in the
// documentation. A type tag the generator does not know is an error.
//
// # Issues
//
// Undocumented parameters are reported as info issues. Documentation or
// signature overrides naming a parameter that is not generated are reported as
// warnings. With StrictMode, warnings fail the run.
package generator
