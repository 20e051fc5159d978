package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/rbindgen/generator"
)

type listAlgorithmsInput struct {
	Schema    schemaInput `json:"schema"               jsonschema:"The model builder metadata to list"`
	CustomDir string      `json:"custom_dir,omitempty" jsonschema:"Directory of per-algorithm customization files (default: RBINDGEN_CUSTOM_DIR)"`
	Algorithm string      `json:"algorithm,omitempty"  jsonschema:"Filter by algorithm key; supports * and ? globs"`
	Offset    int         `json:"offset,omitempty"     jsonschema:"Number of results to skip"`
	Limit     int         `json:"limit,omitempty"      jsonschema:"Maximum number of results (default: RBINDGEN_LIST_LIMIT)"`
}

type algorithmSummary struct {
	Algorithm      string `json:"algorithm"`
	ModelName      string `json:"model_name"`
	ModuleName     string `json:"module_name"`
	FileName       string `json:"file_name"`
	ParamCount     int    `json:"param_count"`
	Customized     bool   `json:"customized"`
	SegmentVariant bool   `json:"segment_variant"`
}

type listAlgorithmsOutput struct {
	Total      int                `json:"total"`
	Matched    int                `json:"matched"`
	Returned   int                `json:"returned"`
	Algorithms []algorithmSummary `json:"algorithms,omitempty"`
}

func handleListAlgorithms(_ context.Context, _ *mcp.CallToolRequest, input listAlgorithmsInput) (*mcp.CallToolResult, listAlgorithmsOutput, error) {
	if err := validateGlobPattern(input.Algorithm); err != nil {
		return errResult(err), listAlgorithmsOutput{}, nil
	}
	parseResult, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), listAlgorithmsOutput{}, nil
	}
	reg, err := loadRegistry(input.CustomDir)
	if err != nil {
		return errResult(err), listAlgorithmsOutput{}, nil
	}

	var matched []algorithmSummary
	for _, mb := range parseResult.Builders {
		if !matchGlob(input.Algorithm, mb.Algo) {
			continue
		}
		view := reg.View(mb.Algo)
		matched = append(matched, algorithmSummary{
			Algorithm:      mb.Algo,
			ModelName:      view.ModelName(),
			ModuleName:     view.ModuleName(),
			FileName:       view.FileName() + ".R",
			ParamCount:     len(mb.Parameters),
			Customized:     view.Own() != nil,
			SegmentVariant: generator.HasBulkVariant(mb.Algo),
		})
	}

	page := paginate(matched, input.Offset, input.Limit)
	return nil, listAlgorithmsOutput{
		Total:      len(parseResult.Builders),
		Matched:    len(matched),
		Returned:   len(page),
		Algorithms: page,
	}, nil
}

type describeAlgorithmInput struct {
	Schema    schemaInput `json:"schema"               jsonschema:"The model builder metadata"`
	CustomDir string      `json:"custom_dir,omitempty" jsonschema:"Directory of per-algorithm customization files (default: RBINDGEN_CUSTOM_DIR)"`
	Algorithm string      `json:"algorithm"            jsonschema:"Algorithm key, e.g. gbm"`
	Render    bool        `json:"render,omitempty"     jsonschema:"Include the generated R source"`
}

type paramInfo struct {
	Name       string `json:"name"`
	Source     string `json:"source"`
	Type       string `json:"type,omitempty"`
	Default    string `json:"default,omitempty"`
	SchemaName string `json:"schema_name,omitempty"`
	Documented bool   `json:"documented"`
}

type describeAlgorithmOutput struct {
	Algorithm      string      `json:"algorithm"`
	ModelName      string      `json:"model_name"`
	ModuleName     string      `json:"module_name"`
	FileName       string      `json:"file_name"`
	RestAPIVersion int         `json:"rest_api_version"`
	Function       string      `json:"function"`
	BulkFunction   string      `json:"bulk_function,omitempty"`
	Params         []paramInfo `json:"params"`
	BulkParams     []string    `json:"bulk_params,omitempty"`
	Ellipsis       bool        `json:"ellipsis"`
	Undocumented   int         `json:"undocumented"`
	Source         string      `json:"source,omitempty"`
	Issues         []issueInfo `json:"issues,omitempty"`
}

func handleDescribeAlgorithm(_ context.Context, _ *mcp.CallToolRequest, input describeAlgorithmInput) (*mcp.CallToolResult, describeAlgorithmOutput, error) {
	if input.Algorithm == "" {
		return errResult(fmt.Errorf("algorithm is required")), describeAlgorithmOutput{}, nil
	}
	parseResult, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), describeAlgorithmOutput{}, nil
	}
	mb := parseResult.Builder(input.Algorithm)
	if mb == nil {
		return errResult(fmt.Errorf("no model builder %q in schema; available: %v", input.Algorithm, parseResult.Algorithms())), describeAlgorithmOutput{}, nil
	}
	reg, err := loadRegistry(input.CustomDir)
	if err != nil {
		return errResult(err), describeAlgorithmOutput{}, nil
	}
	view := reg.View(mb.Algo)

	d, err := generator.Describe(*mb, view)
	if err != nil {
		return errResult(err), describeAlgorithmOutput{}, nil
	}

	output := describeAlgorithmOutput{
		Algorithm:      d.Algorithm,
		ModelName:      d.ModelName,
		ModuleName:     d.ModuleName,
		FileName:       d.FileName,
		RestAPIVersion: d.RestAPIVersion,
		Function:       d.Function,
		BulkFunction:   d.BulkFunction,
		BulkParams:     d.BulkParams,
		Ellipsis:       d.Ellipsis,
		Params:         make([]paramInfo, 0, len(d.Params)),
	}
	for _, p := range d.Params {
		if !p.Documented {
			output.Undocumented++
		}
		output.Params = append(output.Params, paramInfo{
			Name:       p.Name,
			Source:     p.Source.String(),
			Type:       string(p.Type),
			Default:    p.Default,
			SchemaName: p.SchemaName,
			Documented: p.Documented,
		})
	}

	if input.Render {
		m, err := generator.BuildModule(*mb, view)
		if err != nil {
			return errResult(err), describeAlgorithmOutput{}, nil
		}
		output.Source = m.Render(generator.DefaultHeader)
		output.Issues = makeSlice[issueInfo](len(m.Issues))
		for _, issue := range m.Issues {
			output.Issues = append(output.Issues, issueInfo{
				Severity: issue.Severity.String(),
				Path:     issue.Path,
				Message:  issue.Message,
			})
		}
	}

	return nil, output, nil
}
