package generator

import (
	"github.com/erraggy/rbindgen/customize"
	"github.com/erraggy/rbindgen/schema"
)

// ParamDescription summarizes one parameter of the training function.
type ParamDescription struct {
	Name   string `json:"name" yaml:"name"`
	Source Source `json:"source" yaml:"source"`
	// Type is the schema type tag; empty for customization parameters
	Type schema.TypeTag `json:"type,omitempty" yaml:"type,omitempty"`
	// Default is the signature literal; empty for a bare name
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
	// SchemaName is set when the parameter is an alias of another schema name
	SchemaName string `json:"schema_name,omitempty" yaml:"schema_name,omitempty"`
	Documented bool   `json:"documented" yaml:"documented"`
}

// Description summarizes the functions generated for one algorithm.
type Description struct {
	Algorithm      string             `json:"algorithm" yaml:"algorithm"`
	ModelName      string             `json:"model_name" yaml:"model_name"`
	ModuleName     string             `json:"module_name" yaml:"module_name"`
	FileName       string             `json:"file_name" yaml:"file_name"`
	RestAPIVersion int                `json:"rest_api_version" yaml:"rest_api_version"`
	Function       string             `json:"function" yaml:"function"`
	BulkFunction   string             `json:"bulk_function,omitempty" yaml:"bulk_function,omitempty"`
	Params         []ParamDescription `json:"params" yaml:"params"`
	// BulkParams lists the segment variant's parameter names
	BulkParams []string `json:"bulk_params,omitempty" yaml:"bulk_params,omitempty"`
	Ellipsis   bool     `json:"ellipsis" yaml:"ellipsis"`
}

// Describe merges the parameters of mb and reports what would be generated,
// without rendering any source.
func Describe(mb schema.ModelBuilder, view customize.View) (*Description, error) {
	list, err := Merge(MergeInput{
		Required:  view.RequiredParams(),
		Schema:    mb.Parameters,
		Extra:     view.ExtraParams(),
		Overrides: view.Overrides(),
		Ellipsis:  view.EllipsisParam() != nil,
	})
	if err != nil {
		return nil, withAlgorithm(err, mb.Algo)
	}

	b := &moduleBuilder{algo: mb.Algo, module: view.ModuleName(), view: view}
	d := &Description{
		Algorithm:      mb.Algo,
		ModelName:      view.ModelName(),
		ModuleName:     view.ModuleName(),
		FileName:       view.FileName() + ".R",
		RestAPIVersion: view.RestAPIVersion(),
		Function:       "h2o." + b.module,
		Params:         make([]ParamDescription, 0, len(list.Params)),
		Ellipsis:       list.Ellipsis,
	}
	for _, mp := range list.Params {
		def, err := b.defaultLiteral(mp)
		if err != nil {
			return nil, withAlgorithm(err, mb.Algo)
		}
		_, documented, err := b.paramDoc(mp)
		if err != nil {
			return nil, withAlgorithm(err, mb.Algo)
		}
		pd := ParamDescription{Name: mp.Name, Source: mp.Source, Default: def, Documented: documented}
		if mp.HasSpec {
			pd.Type = mp.Spec.Type
		}
		if mp.SchemaName != mp.Name {
			pd.SchemaName = mp.SchemaName
		}
		d.Params = append(d.Params, pd)
	}
	if HasBulkVariant(mb.Algo) {
		d.BulkFunction = ".h2o.train_segments_" + b.module
		d.BulkParams = DeriveBulk(list).Names()
	}
	return d, nil
}
