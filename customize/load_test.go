package customize

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/erraggy/rbindgen/generrors"
	"github.com/erraggy/rbindgen/schema"
)

const gbmYAML = `
rest_api_version: 4
model_name: GBM
doc:
  preamble: |
    Build gradient boosted trees.
  examples: |
    h2o.gbm(x = 1:4, y = 5, training_frame = iris)
  params:
    x: Predictor names.
    skipped: null
  signatures:
    offset_column: NULL
    ntrees: 50
    balance_classes: false
extensions:
  required_params:
    - x
    - [y, NULL]
    - name: training_frame
  extra_params:
    - [verbose, FALSE]
    - name: export
      literal: "TRUE"
  ellipsis_param: |
    varargs <- list(...)
  frame_params: [training_frame, validation_frame]
  skip_default_set_params_for: [x, y]
  with_model: |
    model@parameters$x <- x
update_param:
  max_depth:
    default_value: 5
  col_sample_rate:
    - {}
    - name: col_sample_rate_alias
      help: Deprecated.
  ignore_const_cols: []
`

const glmTOML = `
rest_api_version = 3

[doc]
returns = "A GLM model."

[doc.params]
family = "The family."

[extensions]
required_params = ["x", ["y", "NULL"]]
extra_params = [["verbose", false]]
validate_params = "stopifnot(is.numeric(alpha))"

[update_param.alpha]
values = ["0", "1"]
type = "enum"

[[update_param.lambda]]
name = "lambda"

[[update_param.lambda]]
name = "Lambda"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseYAML(t *testing.T) {
	c, err := Parse([]byte(gbmYAML), FormatYAML, "gbm.yaml", "gbm")
	require.NoError(t, err)

	assert.Equal(t, 4, c.RestAPIVersion)
	assert.Equal(t, "GBM", c.ModelName)
	assert.Equal(t, "Build gradient boosted trees.\n", c.Doc.Preamble)
	assert.Equal(t, map[string]string{"x": "Predictor names."}, c.Doc.Params)
	assert.Equal(t, map[string]string{
		"offset_column":   "NULL",
		"ntrees":          "50",
		"balance_classes": "FALSE",
	}, c.Doc.Signatures)

	assert.Equal(t, []Param{Positional("x"), WithDefault("y", "NULL"), Positional("training_frame")}, c.Extensions.RequiredParams)
	assert.Equal(t, []Param{WithDefault("verbose", "FALSE"), WithDefault("export", "TRUE")}, c.Extensions.ExtraParams)
	require.NotNil(t, c.Extensions.EllipsisParam)
	assert.Equal(t, Fragment("varargs <- list(...)\n"), *c.Extensions.EllipsisParam)
	assert.Equal(t, []string{"training_frame", "validation_frame"}, c.Extensions.FrameParams)
	assert.Equal(t, []string{"x", "y"}, c.Extensions.SkipDefaultSetParamsFor)
	assert.Equal(t, Fragment("model@parameters$x <- x\n"), c.Extensions.WithModel)

	require.NotNil(t, c.UpdateParam)
	chain := []*Override{c.UpdateParam}

	got := Resolve("max_depth", schema.Parameter{Name: "max_depth", Type: "int", DefaultValue: 3}, chain...)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].DefaultValue)

	got = Resolve("col_sample_rate", schema.Parameter{Name: "col_sample_rate", Type: "double", Help: "Rate."}, chain...)
	require.Len(t, got, 2)
	assert.Equal(t, "col_sample_rate", got[0].Name)
	assert.Equal(t, "Rate.", got[0].Help)
	assert.Equal(t, "col_sample_rate_alias", got[1].Name)
	assert.Equal(t, "Deprecated.", got[1].Help)

	assert.Empty(t, Resolve("ignore_const_cols", schema.Parameter{Name: "ignore_const_cols", Type: "boolean"}, chain...))
}

func TestParseTOML(t *testing.T) {
	c, err := Parse([]byte(glmTOML), FormatTOML, "glm.toml", "glm")
	require.NoError(t, err)

	assert.Equal(t, 3, c.RestAPIVersion)
	assert.Equal(t, "A GLM model.", c.Doc.Returns)
	assert.Equal(t, map[string]string{"family": "The family."}, c.Doc.Params)
	assert.Equal(t, []Param{Positional("x"), WithDefault("y", "NULL")}, c.Extensions.RequiredParams)
	assert.Equal(t, []Param{WithDefault("verbose", "FALSE")}, c.Extensions.ExtraParams)
	assert.Equal(t, Fragment("stopifnot(is.numeric(alpha))"), c.Extensions.ValidateParams)

	got := Resolve("alpha", schema.Parameter{Name: "alpha", Type: "double[]"}, c.UpdateParam)
	require.Len(t, got, 1)
	assert.Equal(t, schema.TypeTag("enum"), got[0].Type)
	assert.Equal(t, []string{"0", "1"}, got[0].Values)

	got = Resolve("lambda", schema.Parameter{Name: "lambda", Type: "double[]"}, c.UpdateParam)
	require.Len(t, got, 2)
	assert.Equal(t, "Lambda", got[1].Name)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		expect []string
	}{
		{
			name:   "unknown properties",
			data:   "foo: 1\ndoc:\n  bar: x\nextensions:\n  baz: y\n",
			expect: []string{"at doc.bar: unknown property", "at extensions.baz: unknown property", "at foo: unknown property"},
		},
		{
			name:   "wrong types",
			data:   "rest_api_version: three\nextensions:\n  frame_params: training_frame\n",
			expect: []string{"at extensions.frame_params: expected a sequence", "at rest_api_version: expected an integer"},
		},
		{
			name:   "bad params",
			data:   "extensions:\n  extra_params:\n    - [a, b, c]\n    - 42\n    - name: ''\n",
			expect: []string{"extensions.extra_params[0]: expected a [name, literal] pair", "extensions.extra_params[1]: expected a name", "extensions.extra_params[2]: parameter name is empty"},
		},
		{
			name:   "bad update_param",
			data:   "update_param:\n  x:\n    type: complex\n    colour: red\n  y: 3\n",
			expect: []string{`update_param.x.type: unsupported type "complex"`, "update_param.x.colour: unknown property", "update_param.y: expected a mapping"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatYAML, "gbm.yaml", "gbm")
			require.Error(t, err)
			assert.True(t, errors.Is(err, generrors.ErrCustomization))
			assert.Len(t, multierr.Errors(err), len(tt.expect))
			for _, msg := range tt.expect {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}

	t.Run("syntax error", func(t *testing.T) {
		_, err := Parse([]byte("doc: [unclosed"), FormatYAML, "gbm.yaml", "gbm")
		require.Error(t, err)
		var ce *generrors.CustomizationError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "gbm.yaml", ce.File)
		assert.Equal(t, "failed to decode", ce.Message)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := Parse([]byte(""), Format("ini"), "gbm.ini", "gbm")
		assert.True(t, errors.Is(err, generrors.ErrConfig))
	})

	t.Run("empty document", func(t *testing.T) {
		c, err := Parse([]byte(""), FormatYAML, "gbm.yaml", "gbm")
		require.NoError(t, err)
		assert.Equal(t, &Customizations{}, c)
	})
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gbm.yaml", gbmYAML)
	writeFile(t, dir, "glm.toml", glmTOML)
	writeFile(t, dir, "defaults.yaml", "extensions:\n  frame_params: [training_frame]\n")
	writeFile(t, dir, "README.md", "not a customization")
	writeFile(t, dir, ".hidden.yaml", "garbage: [")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	reg, err := LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"gbm", "glm"}, reg.Algorithms())
	require.NotNil(t, reg.Defaults())
	assert.Equal(t, []string{"training_frame"}, reg.View("glm").FrameParams())
	assert.Equal(t, 4, reg.View("gbm").RestAPIVersion())
}

func TestLoadDirAggregatesErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gbm.yaml", "foo: 1\n")
	writeFile(t, dir, "glm.yaml", "doc: [")
	writeFile(t, dir, "kmeans.yaml", "model_name: KMeans\n")
	writeFile(t, dir, "kmeans.toml", "model_name = \"KMeans\"\n")

	_, err := LoadDir(dir)
	require.Error(t, err)
	errs := multierr.Errors(err)
	assert.Len(t, errs, 3)
	for _, e := range errs {
		assert.True(t, errors.Is(e, generrors.ErrCustomization), "%v", e)
	}
	assert.Contains(t, err.Error(), "also customized by kmeans.toml")
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customize: failed to read directory")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "drf.yml", "module_name: forest\n")

	algo, c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "drf", algo)
	assert.Equal(t, "forest", c.ModuleName)

	_, _, err = LoadFile(filepath.Join(dir, "drf.txt"))
	assert.True(t, errors.Is(err, generrors.ErrConfig))
}
