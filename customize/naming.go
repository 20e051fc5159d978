package customize

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var modelNames = map[string]string{
	"aggregator":      "H2O Aggregator Model",
	"deeplearning":    "Deep Learning - Neural Network",
	"xgboost":         "XGBoost",
	"drf":             "Random Forest Model in H2O",
	"gbm":             "Gradient Boosting Machine",
	"glm":             "H2O Generalized Linear Models",
	"glrm":            "Generalized Low Rank Model",
	"kmeans":          "KMeans Model in H2O",
	"naivebayes":      "Naive Bayes Model in H2O",
	"pca":             "Principal Components Analysis",
	"svd":             "Singular Value Decomposition",
	"stackedensemble": "H2O Stacked Ensemble",
	"psvm":            "Support Vector Machine",
	"anovaglm":        "ANOVA GLM",
	"targetencoder":   "Target Encoder",
	"gam":             "Generalized Additive Model",
	"maxrglm":         "Maximum R GLM",
}

var moduleNames = map[string]string{
	"drf":                     "randomForest",
	"isolationforest":         "isolationForest",
	"extendedisolationforest": "extendedIsolationForest",
	"naivebayes":              "naiveBayes",
	"stackedensemble":         "stackedEnsemble",
	"pca":                     "prcomp",
}

var fileNames = map[string]string{
	"drf": "randomforest",
}

// DefaultModelName returns the display name of algo used in file banners.
// Unknown algorithms are title-cased.
func DefaultModelName(algo string) string {
	if name, ok := modelNames[algo]; ok {
		return name
	}
	return cases.Title(language.English).String(algo)
}

// DefaultModuleName returns the R function suffix for algo.
func DefaultModuleName(algo string) string {
	if name, ok := moduleNames[algo]; ok {
		return name
	}
	return algo
}

// DefaultFileName returns the output file name for algo, without extension.
func DefaultFileName(algo string) string {
	if name, ok := fileNames[algo]; ok {
		return name
	}
	return algo
}
