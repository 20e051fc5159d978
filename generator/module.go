package generator

import (
	"strings"

	"github.com/erraggy/rbindgen/customize"
	"github.com/erraggy/rbindgen/internal/issues"
	"github.com/erraggy/rbindgen/schema"
)

// DefaultHeader opens every generated file.
var DefaultHeader = []string{
	"# This file is auto-generated by rbindgen",
	"# Copyright 2016 H2O.ai;  Apache License Version 2.0 (see LICENSE for details)",
	"#'",
}

// Module is the generated R source of one algorithm.
type Module struct {
	Algorithm  string
	ModuleName string
	FileName   string
	ModelName  string
	// Params is the merged parameter list of the training function
	Params *MergedList
	Normal *FunctionVariant
	// Bulk is nil for algorithms without a segment variant
	Bulk *FunctionVariant
	// Extension is verbatim R code appended after the functions
	Extension string
	Issues    []issues.Issue
}

// BuildModule generates the functions of one model builder.
func BuildModule(mb schema.ModelBuilder, view customize.View) (*Module, error) {
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
	m := &Module{
		Algorithm:  mb.Algo,
		ModuleName: view.ModuleName(),
		FileName:   view.FileName(),
		ModelName:  view.ModelName(),
		Params:     list,
		Extension:  string(view.Module()),
	}

	if m.Normal, err = b.buildVariant(list, false); err != nil {
		return nil, withAlgorithm(err, mb.Algo)
	}
	if HasBulkVariant(mb.Algo) {
		if m.Bulk, err = b.buildVariant(DeriveBulk(list), true); err != nil {
			return nil, withAlgorithm(err, mb.Algo)
		}
	}
	b.checkOverrides(list)
	m.Issues = dedupeIssues(b.issues)
	return m, nil
}

// dedupeIssues drops repeats; both variants report the same missing docs.
func dedupeIssues(list []issues.Issue) []issues.Issue {
	seen := make(map[issues.Issue]bool, len(list))
	out := list[:0]
	for _, issue := range list {
		if seen[issue] {
			continue
		}
		seen[issue] = true
		out = append(out, issue)
	}
	return out
}

// Lines returns the source lines of the module, header first.
func (m *Module) Lines(header []string) []string {
	out := append([]string(nil), header...)
	out = append(out, "# -------------------------- "+m.ModelName+" -------------------------- #")
	out = append(out, m.Normal.Lines()...)
	if m.Bulk != nil {
		out = append(out, m.Bulk.Lines()...)
	}
	if m.Extension != "" {
		out = append(out, "", strings.TrimRight(m.Extension, "\n"))
	}
	return out
}

// Render returns the file content, newline terminated.
func (m *Module) Render(header []string) string {
	return strings.Join(m.Lines(header), "\n") + "\n"
}
