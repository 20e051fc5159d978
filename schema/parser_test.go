package schema

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rbindgen/generrors"
)

const modelBuildersJSON = `{
  "__meta": {"schema_name": "ModelBuildersV3"},
  "model_builders": {
    "gbm": {
      "algo": "gbm",
      "parameters": [
        {"name": "model_id", "type": "Key<Model>", "default_value": null, "help": "Destination id for this model."},
        {"name": "training_frame", "type": "Key<Frame>", "default_value": {"__meta": {}, "name": "train.hex"}, "help": "Id of the training data frame."},
        {"name": "ntrees", "type": "int", "default_value": 50, "help": "Number of trees."},
        {"name": "learn_rate", "type": "double", "default_value": 0.1, "help": "Learning rate."},
        {"name": "distribution", "type": "enum", "values": ["AUTO", "bernoulli", "gaussian"], "default_value": "AUTO", "help": "Distribution function"}
      ]
    },
    "drf": {
      "parameters": [
        {"name": "ntrees", "type": "int", "default_value": 50}
      ]
    }
  }
}`

const singleBuilderYAML = `
algo: kmeans
parameters:
  - name: k
    type: int
    default_value: 1
    help: The max. number of clusters.
  - name: standardize
    type: boolean
    default_value: true
`

func TestParseBytesModelBuilders(t *testing.T) {
	res, err := New().ParseBytes([]byte(modelBuildersJSON))
	require.NoError(t, err)

	assert.Equal(t, SourceFormatJSON, res.SourceFormat)
	assert.Equal(t, "ParseBytes.json", res.SourcePath)
	assert.Equal(t, int64(len(modelBuildersJSON)), res.SourceSize)
	assert.Equal(t, []string{"drf", "gbm"}, res.Algorithms())

	drf := res.Builder("drf")
	require.NotNil(t, drf)
	assert.Equal(t, "drf", drf.Algo, "algo falls back to the map key")

	gbm := res.Builder("gbm")
	require.NotNil(t, gbm)
	assert.Equal(t, []string{"model_id", "training_frame", "ntrees", "learn_rate", "distribution"}, gbm.ParameterNames())

	frame, _ := gbm.Parameter("training_frame")
	assert.Equal(t, "train.hex", frame.DefaultValue, "key defaults are reduced to their name")

	model, _ := gbm.Parameter("model_id")
	assert.Nil(t, model.DefaultValue)

	ntrees, _ := gbm.Parameter("ntrees")
	assert.EqualValues(t, 50, ntrees.DefaultValue)

	dist, _ := gbm.Parameter("distribution")
	assert.Equal(t, []string{"AUTO", "bernoulli", "gaussian"}, dist.Values)
	assert.Equal(t, TypeTag("enum"), dist.Type)

	assert.Nil(t, res.Builder("glm"))
}

func TestParseBytesSingleBuilderYAML(t *testing.T) {
	res, err := New().ParseBytes([]byte(singleBuilderYAML))
	require.NoError(t, err)

	assert.Equal(t, SourceFormatYAML, res.SourceFormat)
	assert.Equal(t, "ParseBytes.yaml", res.SourcePath)
	require.Len(t, res.Builders, 1)
	assert.Equal(t, "kmeans", res.Builders[0].Algo)

	std, ok := res.Builders[0].Parameter("standardize")
	require.True(t, ok)
	assert.Equal(t, true, std.DefaultValue)
}

func TestParseBytesSequence(t *testing.T) {
	data := `[{"algo": "pca", "parameters": []}, {"algo": "glm", "parameters": []}]`
	res, err := New().ParseBytes([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"glm", "pca"}, res.Algorithms())
}

func TestParseBytesErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		message string
	}{
		{"invalid syntax", `{"model_builders": [`, "failed to decode"},
		{"empty document", ``, "empty document"},
		{"scalar document", `42`, "expected a mapping or a sequence"},
		{"no builders", `{"foo": 1}`, `expected "model_builders" or "algo"`},
		{"null builder", `{"model_builders": {"gbm": null}}`, "model builder is null"},
		{"unnamed parameter", `{"algo": "gbm", "parameters": [{"type": "int"}]}`, "parameter 0 has no name"},
		{"untyped parameter", `{"algo": "gbm", "parameters": [{"name": "x"}]}`, `parameter "x" has no type`},
		{"duplicate parameter", `{"algo": "gbm", "parameters": [{"name": "x", "type": "int"}, {"name": "x", "type": "int"}]}`, `duplicate parameter "x"`},
		{"duplicate builder", `[{"algo": "gbm"}, {"algo": "gbm"}]`, "duplicate model builder"},
		{"builder without algo", `[{"parameters": []}]`, "has no algo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().ParseBytes([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, generrors.ErrSchema), "got %T: %v", err, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "builders.json")
	require.NoError(t, os.WriteFile(path, []byte(modelBuildersJSON), 0o600))

	res, err := New().Parse(path)
	require.NoError(t, err)
	assert.Equal(t, path, res.SourcePath)
	assert.Equal(t, SourceFormatJSON, res.SourceFormat)
	assert.Len(t, res.Builders, 2)

	_, err = New().Parse(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema: failed to read file")
}

func TestParseReader(t *testing.T) {
	res, err := New().ParseReader(strings.NewReader(singleBuilderYAML))
	require.NoError(t, err)
	assert.Equal(t, "ParseReader.yaml", res.SourcePath)
	assert.Len(t, res.Builders, 1)
}

func TestParseURL(t *testing.T) {
	t.Run("fetches with user agent", func(t *testing.T) {
		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write([]byte(modelBuildersJSON))
		}))
		defer server.Close()

		p := New()
		p.UserAgent = "rbindgen-test/1.0"
		res, err := p.Parse(server.URL + "/3/ModelBuilders")
		require.NoError(t, err)

		assert.Equal(t, "rbindgen-test/1.0", gotUA)
		assert.Equal(t, SourceFormatJSON, res.SourceFormat)
		assert.Equal(t, server.URL+"/3/ModelBuilders", res.SourcePath)
		assert.Len(t, res.Builders, 2)
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := New().Parse(server.URL)
		require.Error(t, err)
		assert.True(t, errors.Is(err, generrors.ErrSchema))
		assert.Contains(t, err.Error(), "HTTP 404")
	})
}

func TestDetectFormatFromURL(t *testing.T) {
	tests := []struct {
		url         string
		contentType string
		want        SourceFormat
	}{
		{"http://host/builders.yaml", "", SourceFormatYAML},
		{"http://host/builders.json", "text/plain", SourceFormatJSON},
		{"http://host/3/ModelBuilders", "application/json;charset=utf-8", SourceFormatJSON},
		{"http://host/3/ModelBuilders", "application/x-yaml", SourceFormatYAML},
		{"http://host/3/ModelBuilders", "", SourceFormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url+" "+tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, detectFormatFromURL(tt.url, tt.contentType))
		})
	}
}
