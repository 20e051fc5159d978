package generator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rbindgen/customize"
	"github.com/erraggy/rbindgen/generrors"
	"github.com/erraggy/rbindgen/schema"
)

const modelBuildersJSON = `{
  "model_builders": {
    "gbm": {"algo": "gbm", "parameters": [
      {"name": "ntrees", "type": "int", "default_value": 50, "help": "Number of trees."}
    ]},
    "drf": {"algo": "drf", "parameters": [
      {"name": "mtries", "type": "int", "default_value": -1, "help": "Columns per split."}
    ]},
    "generic": {"algo": "generic", "parameters": [
      {"name": "path", "type": "string"}
    ]}
  }
}`

func parsed(t *testing.T) *schema.ParseResult {
	t.Helper()
	pr, err := schema.New().ParseBytes([]byte(modelBuildersJSON))
	require.NoError(t, err)
	return pr
}

func TestNew(t *testing.T) {
	g := New()

	require.NotNil(t, g, "New() should not return nil")
	assert.Equal(t, runtime.GOMAXPROCS(0), g.Workers)
	assert.Equal(t, DefaultHeader, g.Header)
	assert.True(t, g.IncludeInfo, "IncludeInfo should be true by default")
	assert.False(t, g.StrictMode, "StrictMode should be false by default")
	assert.Nil(t, g.Registry)
}

func TestGenerateParsed(t *testing.T) {
	result, err := New().GenerateParsed(context.Background(), parsed(t))
	require.NoError(t, err)

	var names []string
	for _, f := range result.Files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"randomforest.R", "gbm.R", "generic.R"}, names)
	assert.Len(t, result.Modules, 3)
	assert.True(t, result.Success)
	assert.Equal(t, schema.SourceFormatJSON, result.SourceFormat)

	gbm := result.GetFile("gbm.R")
	require.NotNil(t, gbm)
	assert.Equal(t, "gbm", gbm.Algorithm)
	assert.Contains(t, string(gbm.Content), "h2o.gbm <- function(ntrees = 50)")
	assert.Nil(t, result.GetFile("missing.R"))

	// generic.path has no help
	assert.Equal(t, 1, result.InfoCount)
	assert.Equal(t, "generic.params.path", result.Issues[0].Path)
}

func TestGenerateParsed_Deterministic(t *testing.T) {
	pr := parsed(t)
	serial := New()
	serial.Workers = 1
	want, err := serial.GenerateParsed(context.Background(), pr)
	require.NoError(t, err)

	for range 5 {
		got, err := New().GenerateParsed(context.Background(), pr)
		require.NoError(t, err)
		assert.Equal(t, want.Files, got.Files)
	}
}

func TestGenerateParsed_Algorithms(t *testing.T) {
	g := New()
	g.Algorithms = []string{"gbm", "drf", "gbm"}
	result, err := g.GenerateParsed(context.Background(), parsed(t))
	require.NoError(t, err)
	require.Len(t, result.Files, 2)
	assert.Equal(t, "randomforest.R", result.Files[0].Name)
	assert.Equal(t, "gbm.R", result.Files[1].Name)

	g.Algorithms = []string{"xgboost"}
	_, err = g.GenerateParsed(context.Background(), parsed(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, generrors.ErrConfig)
	assert.Contains(t, err.Error(), "xgboost")
}

func TestGenerateParsed_IncludeInfo(t *testing.T) {
	g := New()
	g.IncludeInfo = false
	result, err := g.GenerateParsed(context.Background(), parsed(t))
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
	assert.Zero(t, result.InfoCount)
}

func TestGenerateParsed_StrictMode(t *testing.T) {
	reg := customize.NewRegistry()
	reg.Set("gbm", &customize.Customizations{Doc: customize.Doc{Params: map[string]string{"nope": "x"}}})

	g := New()
	g.Registry = reg
	result, err := g.GenerateParsed(context.Background(), parsed(t))
	require.NoError(t, err)
	assert.True(t, result.HasWarnings())
	assert.Equal(t, 1, result.WarningCount)

	g.StrictMode = true
	result, err = g.GenerateParsed(context.Background(), parsed(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict mode")
	require.NotNil(t, result, "the result is returned alongside the error")
}

func TestGenerateParsed_Header(t *testing.T) {
	g := New()
	g.Header = []string{"# custom"}
	g.Algorithms = []string{"gbm"}
	result, err := g.GenerateParsed(context.Background(), parsed(t))
	require.NoError(t, err)
	assert.Regexp(t, `^# custom\n# -+ Gradient Boosting Machine -+ #\n`, string(result.Files[0].Content))
}

func TestGenerateParsed_Errors(t *testing.T) {
	t.Run("unsupported type", func(t *testing.T) {
		pr, err := schema.New().ParseBytes([]byte(`{"algo": "gbm", "parameters": [{"name": "m", "type": "map"}]}`))
		require.NoError(t, err)
		_, err = New().GenerateParsed(context.Background(), pr)
		assert.ErrorIs(t, err, generrors.ErrUnsupportedType)
	})

	t.Run("duplicate file name", func(t *testing.T) {
		reg := customize.NewRegistry()
		reg.Set("gbm", &customize.Customizations{FileName: "randomforest"})
		g := New()
		g.Registry = reg
		_, err := g.GenerateParsed(context.Background(), parsed(t))
		assert.ErrorIs(t, err, generrors.ErrConfig)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New().GenerateParsed(ctx, parsed(t))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("nil parse result", func(t *testing.T) {
		_, err := New().GenerateParsed(context.Background(), nil)
		assert.ErrorIs(t, err, generrors.ErrConfig)
	})
}

func TestGenerate_URL(t *testing.T) {
	userAgent := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent <- r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(modelBuildersJSON))
	}))
	defer srv.Close()

	g := New()
	g.UserAgent = "rbindgen-test/1.0"
	result, err := g.Generate(context.Background(), srv.URL+"/3/ModelBuilders")
	require.NoError(t, err)
	assert.Len(t, result.Files, 3)
	assert.Equal(t, "rbindgen-test/1.0", <-userAgent)
	assert.Equal(t, srv.URL+"/3/ModelBuilders", result.SourcePath)
}

func TestGenerateWithOptions(t *testing.T) {
	t.Run("requires input source", func(t *testing.T) {
		_, err := GenerateWithOptions(context.Background(), WithAlgorithms("gbm"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must specify an input source")
		assert.ErrorIs(t, err, generrors.ErrConfig)
	})

	t.Run("only one input source", func(t *testing.T) {
		_, err := GenerateWithOptions(context.Background(), WithFilePath("x.json"), WithParsed(parsed(t)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must specify exactly one input source")
	})

	t.Run("parsed", func(t *testing.T) {
		result, err := GenerateWithOptions(context.Background(),
			WithParsed(parsed(t)),
			WithAlgorithms("gbm"),
			WithWorkers(2),
			WithHeader(),
			WithIncludeInfo(false),
			WithStrictMode(true),
			WithLogger(schema.NopLogger{}),
		)
		require.NoError(t, err)
		require.Len(t, result.Files, 1)
		assert.Regexp(t, `^# -+ Gradient Boosting Machine`, string(result.Files[0].Content))
	})

	t.Run("file path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "model_builders.json")
		require.NoError(t, os.WriteFile(path, []byte(modelBuildersJSON), 0o600))
		result, err := GenerateWithOptions(context.Background(), WithFilePath(path), WithUserAgent("x"))
		require.NoError(t, err)
		assert.Equal(t, path, result.SourcePath)
		assert.Len(t, result.Files, 3)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := GenerateWithOptions(context.Background(), WithFilePath(filepath.Join(t.TempDir(), "none.json")))
		require.Error(t, err)
	})
}

func TestWithOptions(t *testing.T) {
	t.Run("WithWorkers", func(t *testing.T) {
		cfg := &generateConfig{}
		require.NoError(t, WithWorkers(3)(cfg))
		assert.Equal(t, 3, cfg.workers)
		assert.ErrorIs(t, WithWorkers(0)(cfg), generrors.ErrConfig)
	})

	t.Run("WithParsed nil", func(t *testing.T) {
		cfg := &generateConfig{}
		assert.ErrorIs(t, WithParsed(nil)(cfg), generrors.ErrConfig)
	})

	t.Run("WithRegistry", func(t *testing.T) {
		cfg := &generateConfig{}
		reg := customize.NewRegistry()
		require.NoError(t, WithRegistry(reg)(cfg))
		assert.Same(t, reg, cfg.registry)
	})

	t.Run("WithHeader copies", func(t *testing.T) {
		cfg := &generateConfig{}
		lines := []string{"# a"}
		require.NoError(t, WithHeader(lines...)(cfg))
		lines[0] = "# b"
		assert.Equal(t, []string{"# a"}, cfg.header)
	})
}

func TestWriteFiles(t *testing.T) {
	result, err := New().GenerateParsed(context.Background(), parsed(t))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "R")
	require.NoError(t, result.WriteFiles(dir))

	for _, f := range result.Files {
		data, err := os.ReadFile(filepath.Join(dir, f.Name))
		require.NoError(t, err)
		assert.Equal(t, f.Content, data)
	}

	t.Run("unchanged file is not rewritten", func(t *testing.T) {
		path := filepath.Join(dir, "gbm.R")
		before, err := os.Stat(path)
		require.NoError(t, err)
		require.NoError(t, os.Chmod(path, 0o444))
		t.Cleanup(func() { _ = os.Chmod(path, 0o644) })

		require.NoError(t, result.WriteFiles(dir))
		after, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, before.ModTime(), after.ModTime())
	})

	t.Run("rejects path separators", func(t *testing.T) {
		bad := &GenerateResult{Files: []GeneratedFile{{Name: "../evil.R", Content: []byte("x")}}}
		err := bad.WriteFiles(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not contain path separators")
	})
}
