package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/rbindgen/generator"
)

type generateInput struct {
	Schema      schemaInput `json:"schema"                 jsonschema:"The model builder metadata to generate bindings from"`
	CustomDir   string      `json:"custom_dir,omitempty"   jsonschema:"Directory of per-algorithm customization files (default: RBINDGEN_CUSTOM_DIR)"`
	Algorithms  []string    `json:"algorithms,omitempty"   jsonschema:"Restrict generation to these algorithm keys"`
	OutputDir   string      `json:"output_dir,omitempty"   jsonschema:"Directory to write generated files to; sources are returned inline when empty"`
	Strict      *bool       `json:"strict,omitempty"       jsonschema:"Fail when any warning is reported (default: RBINDGEN_STRICT)"`
	IncludeInfo bool        `json:"include_info,omitempty" jsonschema:"Report info issues such as undocumented parameters"`
}

type generatedFileInfo struct {
	Name      string `json:"name"`
	Algorithm string `json:"algorithm"`
	Size      int    `json:"size"`
	Content   string `json:"content,omitempty"`
}

type issueInfo struct {
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

type generateOutput struct {
	Success       bool                `json:"success"`
	OutputDir     string              `json:"output_dir,omitempty"`
	FileCount     int                 `json:"file_count"`
	Files         []generatedFileInfo `json:"files"`
	InfoCount     int                 `json:"info_count"`
	WarningCount  int                 `json:"warning_count"`
	CriticalCount int                 `json:"critical_count"`
	Issues        []issueInfo         `json:"issues,omitempty"`
}

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	parseResult, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	reg, err := loadRegistry(input.CustomDir)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	strict := cfg.Strict
	if input.Strict != nil {
		strict = *input.Strict
	}

	opts := []generator.Option{
		generator.WithParsed(parseResult),
		generator.WithRegistry(reg),
		generator.WithStrictMode(strict),
		generator.WithIncludeInfo(input.IncludeInfo),
	}
	if len(input.Algorithms) > 0 {
		opts = append(opts, generator.WithAlgorithms(input.Algorithms...))
	}
	if cfg.Workers > 0 {
		opts = append(opts, generator.WithWorkers(cfg.Workers))
	}

	result, err := generator.GenerateWithOptions(ctx, opts...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	if input.OutputDir != "" {
		if err := result.WriteFiles(input.OutputDir); err != nil {
			return errResult(fmt.Errorf("failed to write generated files: %w", err)), generateOutput{}, nil
		}
	}

	output := generateOutput{
		Success:       result.Success,
		OutputDir:     input.OutputDir,
		FileCount:     len(result.Files),
		InfoCount:     result.InfoCount,
		WarningCount:  result.WarningCount,
		CriticalCount: result.CriticalCount,
	}

	output.Files = makeSlice[generatedFileInfo](len(result.Files))
	for _, f := range result.Files {
		info := generatedFileInfo{
			Name:      f.Name,
			Algorithm: f.Algorithm,
			Size:      len(f.Content),
		}
		if input.OutputDir == "" {
			info.Content = string(f.Content)
		}
		output.Files = append(output.Files, info)
	}

	output.Issues = makeSlice[issueInfo](len(result.Issues))
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, issueInfo{
			Severity: issue.Severity.String(),
			Path:     issue.Path,
			Message:  issue.Message,
		})
	}

	return nil, output, nil
}
