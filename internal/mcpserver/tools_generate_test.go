package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gbmCustomYAML = `
model_name: H2OGBM
doc:
  params:
    no_such_param: Documents nothing.
`

func writeCustomDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gbm.yaml"), []byte(gbmCustomYAML), 0o644))
	return dir
}

func TestHandleGenerate_Inline(t *testing.T) {
	schemaCache.reset()
	input := generateInput{Schema: schemaInput{Content: testModelBuilders}}

	result, output, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.True(t, output.Success)
	assert.Empty(t, output.OutputDir)
	assert.Equal(t, 3, output.FileCount)
	names := lo.Map(output.Files, func(f generatedFileInfo, _ int) string { return f.Name })
	assert.Equal(t, []string{"randomforest.R", "gbm.R", "generic.R"}, names)

	gbm := output.Files[1]
	assert.Equal(t, "gbm", gbm.Algorithm)
	assert.Equal(t, len(gbm.Content), gbm.Size)
	assert.Contains(t, gbm.Content, "h2o.gbm <- function(")
	assert.Contains(t, gbm.Content, ".h2o.train_segments_gbm <- function(")
	assert.Zero(t, output.InfoCount, "info issues are excluded unless requested")
}

func TestHandleGenerate_IncludeInfo(t *testing.T) {
	schemaCache.reset()
	input := generateInput{
		Schema:      schemaInput{Content: testModelBuilders},
		Algorithms:  []string{"generic"},
		IncludeInfo: true,
	}

	_, output, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, 1, output.FileCount)
	assert.Positive(t, output.InfoCount)
	assert.True(t, lo.ContainsBy(output.Issues, func(i issueInfo) bool {
		return i.Path == "generic.params.path" && i.Severity == "info"
	}))
}

func TestHandleGenerate_OutputDir(t *testing.T) {
	schemaCache.reset()
	outDir := filepath.Join(t.TempDir(), "R")
	input := generateInput{
		Schema:     schemaInput{Content: testModelBuilders},
		CustomDir:  writeCustomDir(t),
		Algorithms: []string{"gbm"},
		OutputDir:  outDir,
	}

	result, output, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)
	assert.Equal(t, outDir, output.OutputDir)
	require.Len(t, output.Files, 1)
	assert.Empty(t, output.Files[0].Content, "content is not returned when written to disk")

	data, err := os.ReadFile(filepath.Join(outDir, "gbm.R"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "H2OGBM")
	assert.Equal(t, 1, output.WarningCount)
	assert.Equal(t, "gbm.doc.params.no_such_param", output.Issues[0].Path)
}

func TestHandleGenerate_Strict(t *testing.T) {
	schemaCache.reset()
	input := generateInput{
		Schema:    schemaInput{Content: testModelBuilders},
		CustomDir: writeCustomDir(t),
		Strict:    lo.ToPtr(true),
	}

	result, _, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "strict mode: 1 warning(s)")
}

func TestHandleGenerate_StrictFromConfig(t *testing.T) {
	schemaCache.reset()
	withConfig(t, func(c *serverConfig) { c.Strict = true })
	dir := writeCustomDir(t)

	result, _, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, generateInput{
		Schema:    schemaInput{Content: testModelBuilders},
		CustomDir: dir,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	result, output, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, generateInput{
		Schema:    schemaInput{Content: testModelBuilders},
		CustomDir: dir,
		Strict:    lo.ToPtr(false),
	})
	require.NoError(t, err)
	assert.Nil(t, result, "an explicit strict=false overrides the environment")
	assert.Equal(t, 1, output.WarningCount)
}

func TestHandleGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   generateInput
		wantErr string
	}{
		{
			name:    "no schema",
			input:   generateInput{},
			wantErr: "exactly one of file, url, or content",
		},
		{
			name:    "unknown algorithm",
			input:   generateInput{Schema: schemaInput{Content: testModelBuilders}, Algorithms: []string{"nope"}},
			wantErr: "nope",
		},
		{
			name:    "missing custom dir",
			input:   generateInput{Schema: schemaInput{Content: testModelBuilders}, CustomDir: "/nonexistent/custom"},
			wantErr: "failed to read directory",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schemaCache.reset()
			result, _, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			text := result.Content[0].(*mcp.TextContent).Text
			assert.Contains(t, text, tt.wantErr)
		})
	}
}
