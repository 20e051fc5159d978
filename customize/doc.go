// Package customize holds the per-algorithm customizations applied when
// generating bindings: documentation sections, injected parameters, parameter
// rewrites and verbatim R fragments.
//
// Customizations are plain structs, built in Go or loaded from a directory
// with one file per algorithm (gbm.yaml, glm.toml, ...) plus defaults.yaml
// for values shared by all algorithms:
//
//	rest_api_version: 3
//	doc:
//	  preamble: Build gradient boosted classification or regression trees
//	  params:
//	    x: A vector containing the names or indices of the predictor variables.
//	  signatures:
//	    offset_column: NULL
//	extensions:
//	  required_params: [x, y, training_frame]
//	  extra_params:
//	    - [verbose, FALSE]
//	  frame_params: [training_frame, validation_frame]
//	  with_model: |
//	    model@parameters$x <- x
//	update_param:
//	  max_depth:
//	    default_value: 5
//	  col_sample_rate:
//	    - {}
//	    - name: sample_rate_per_class_alias
//	  ignore_const_cols: []
//
// A [Registry] resolves each property for an algorithm through a [View]:
// the algorithm's own value when set, otherwise the defaults'. Documentation
// sections, the ellipsis parameter, module and with_model fragments are never
// inherited from the defaults.
//
// Parameter rewrites are an [Override]: either a literal replacement table or
// a rule function. update_param entries in files compile to a rule that
// patches the schema parameter; a sequence fans it out into aliases and an
// empty sequence removes it.
//
// Fragments are opaque R text; their authors own their syntax.
package customize
