package customize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewFallback(t *testing.T) {
	reg := NewRegistry()
	ellipsis := Fragment("varargs <- list(...)")
	reg.Set(DefaultsKey, &Customizations{
		Doc: Doc{
			Preamble: "shared preamble",
			Params:   map[string]string{"x": "default x doc", "y": "default y doc"},
		},
		Extensions: Extensions{
			RequiredParams: []Param{Positional("x")},
			FrameParams:    []string{"training_frame", "validation_frame"},
			ValidateParams: "stopifnot(TRUE)",
			Module:         "shared.module <- NULL",
		},
	})
	reg.Set("gbm", &Customizations{
		RestAPIVersion: 99,
		Doc: Doc{
			Returns: "a model",
			Params:  map[string]string{"x": "gbm x doc", "z": ""},
		},
		Extensions: Extensions{
			RequiredParams: []Param{},
			ExtraParams:    []Param{WithDefault("verbose", "FALSE")},
			EllipsisParam:  &ellipsis,
			SetParams:      "parms$foo <- 1",
		},
	})

	gbm := reg.View("gbm")
	assert.Equal(t, 99, gbm.RestAPIVersion())
	assert.Equal(t, "a model", gbm.Returns())
	assert.Empty(t, gbm.Preamble(), "doc sections are not inherited")
	assert.Empty(t, gbm.Module(), "module fragment is not inherited")

	doc, ok := gbm.ParamDoc("x")
	assert.True(t, ok)
	assert.Equal(t, "gbm x doc", doc)
	doc, ok = gbm.ParamDoc("y")
	assert.True(t, ok)
	assert.Equal(t, "default y doc", doc)
	doc, ok = gbm.ParamDoc("z")
	assert.True(t, ok, "an empty override still counts")
	assert.Empty(t, doc)
	_, ok = gbm.ParamDoc("missing")
	assert.False(t, ok)

	assert.NotNil(t, gbm.RequiredParams(), "an empty list hides the defaults")
	assert.Empty(t, gbm.RequiredParams())
	assert.Equal(t, []Param{WithDefault("verbose", "FALSE")}, gbm.ExtraParams())
	assert.Equal(t, []string{"training_frame", "validation_frame"}, gbm.FrameParams())
	assert.Equal(t, Fragment("stopifnot(TRUE)"), gbm.ValidateParams())
	assert.Equal(t, Fragment("parms$foo <- 1"), gbm.SetParams())
	assert.Equal(t, &ellipsis, gbm.EllipsisParam())

	glm := reg.View("glm")
	assert.Equal(t, 3, glm.RestAPIVersion())
	assert.Equal(t, []Param{Positional("x")}, glm.RequiredParams())
	assert.Nil(t, glm.EllipsisParam())
	assert.Nil(t, glm.Own())

	assert.Equal(t, []string{"gbm"}, reg.Algorithms())
}

func TestViewNames(t *testing.T) {
	reg := NewRegistry()
	reg.Set("drf", &Customizations{ModelName: "Forest"})

	drf := reg.View("drf")
	assert.Equal(t, "Forest", drf.ModelName())
	assert.Equal(t, "randomForest", drf.ModuleName())
	assert.Equal(t, "randomforest", drf.FileName())

	var nilReg *Registry
	v := nilReg.View("pca")
	assert.Equal(t, "Principal Components Analysis", v.ModelName())
	assert.Equal(t, "prcomp", v.ModuleName())
	assert.Equal(t, "pca", v.FileName())
	assert.Empty(t, v.Overrides())
}

func TestViewOverrides(t *testing.T) {
	reg := NewRegistry()
	algo := LiteralOverride(nil)
	defaults := LiteralOverride(nil)
	reg.Set("gbm", &Customizations{UpdateParam: algo})
	reg.Set(DefaultsKey, &Customizations{UpdateParam: defaults})

	chain := reg.View("gbm").Overrides()
	assert.Len(t, chain, 2)
	assert.Same(t, algo, chain[0])
	assert.Same(t, defaults, chain[1])

	assert.Len(t, reg.View("glm").Overrides(), 1)
}

func TestDefaultNames(t *testing.T) {
	tests := []struct {
		algo, model, module, file string
	}{
		{"gbm", "Gradient Boosting Machine", "gbm", "gbm"},
		{"drf", "Random Forest Model in H2O", "randomForest", "randomforest"},
		{"isolationforest", "Isolationforest", "isolationForest", "isolationforest"},
		{"extendedisolationforest", "Extendedisolationforest", "extendedIsolationForest", "extendedisolationforest"},
		{"naivebayes", "Naive Bayes Model in H2O", "naiveBayes", "naivebayes"},
		{"stackedensemble", "H2O Stacked Ensemble", "stackedEnsemble", "stackedensemble"},
		{"pca", "Principal Components Analysis", "prcomp", "pca"},
		{"xgboost", "XGBoost", "xgboost", "xgboost"},
		{"rulefit", "Rulefit", "rulefit", "rulefit"},
	}

	for _, tt := range tests {
		t.Run(tt.algo, func(t *testing.T) {
			assert.Equal(t, tt.model, DefaultModelName(tt.algo))
			assert.Equal(t, tt.module, DefaultModuleName(tt.algo))
			assert.Equal(t, tt.file, DefaultFileName(tt.algo))
		})
	}
}
