package generator

import (
	"fmt"

	"github.com/samber/lo"
)

// bulkSkip names the parameters the segment variant drops from its signature.
// destination_key only exists for svd.
var bulkSkip = []string{"model_id", "verbose", "destination_key"}

// bulkParams are appended to the segment variant, in order.
var bulkParams = []MergedParam{
	{Name: "segment_columns", Source: SourceBulk, Literal: lo.ToPtr("NULL")},
	{Name: "segment_models_id", Source: SourceBulk, Literal: lo.ToPtr("NULL")},
	{Name: "parallelism", Source: SourceBulk, Literal: lo.ToPtr("1")},
}

var bulkParamDocs = map[string]string{
	"segment_columns": "A list of columns to segment-by. H2O will group the training (and validation) dataset by the " +
		"segment-by columns and train a separate model for each segment (group of rows).",
	"segment_models_id": "Identifier for the returned collection of Segment Models. If not specified it will be " +
		"automatically generated.",
	"parallelism": "Level of parallelism of bulk model building, it is the maximum number of models each H2O node " +
		"will be building in parallel, defaults to 1.",
}

// noBulk lists algorithms without a segment variant.
var noBulk = []string{"generic"}

// HasBulkVariant reports whether a segment variant is generated for algo.
func HasBulkVariant(algo string) bool {
	return !lo.Contains(noBulk, algo)
}

// DeriveBulk returns the parameter list of the segment variant: list without
// model_id, verbose and destination_key, followed by segment_columns,
// segment_models_id and parallelism. The ellipsis flag carries over and
// "..." stays last. A parameter already named like one of the appended
// segment parameters is replaced by it.
func DeriveBulk(list *MergedList) *MergedList {
	drop := append(lo.Map(bulkParams, func(p MergedParam, _ int) string { return p.Name }), bulkSkip...)
	out := list.Without(drop...)
	out.Params = append(out.Params, bulkParams...)
	return out
}

// segmentTail builds the segment payload and submits the segment job.
func segmentTail(algo string, version int) []string {
	return []string{
		"",
		"  # Build segment-models specific parameters",
		"  segment_parms <- list()",
		"  if (!missing(segment_columns))",
		"    segment_parms$segment_columns <- segment_columns",
		"  if (!missing(segment_models_id))",
		"    segment_parms$segment_models_id <- segment_models_id",
		"  segment_parms$parallelism <- parallelism",
		"",
		"  # Error check and build segment models",
		fmt.Sprintf("  segment_models <- .h2o.segmentModelsJob('%s', segment_parms, parms, h2oRestApiVersion=%d)", algo, version),
		"  return(segment_models)",
		"}",
	}
}
