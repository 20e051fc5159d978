package generator

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/erraggy/rbindgen/customize"
	"github.com/erraggy/rbindgen/internal/issues"
	"github.com/erraggy/rbindgen/internal/severity"
	"github.com/erraggy/rbindgen/internal/stringutil"
)

// FunctionVariant is one generated R function with its roxygen block.
type FunctionVariant struct {
	// Name is the R function name, e.g. "h2o.gbm"
	Name string
	// Doc holds the roxygen comment lines
	Doc []string
	// Signature is the "<name> <- function(...)" header; continuation lines
	// are aligned under the first parameter.
	Signature string
	// Body holds the lines from "{" to "}"
	Body []string
}

// Lines returns the variant as source lines.
func (fv *FunctionVariant) Lines() []string {
	lines := slices.Clone(fv.Doc)
	lines = append(lines, stringutil.Lines(fv.Signature)...)
	return append(lines, fv.Body...)
}

// moduleBuilder renders the functions of one algorithm.
type moduleBuilder struct {
	algo   string
	module string
	view   customize.View
	issues []issues.Issue
}

func (b *moduleBuilder) issue(sev severity.Severity, param, path, msg string) {
	b.issues = append(b.issues, issues.Issue{
		Path:      b.algo + "." + path,
		Message:   msg,
		Severity:  sev,
		Algorithm: b.algo,
		Parameter: param,
	})
}

// lines accumulates body code.
type lines []string

func (l *lines) add(s ...string) {
	*l = append(*l, s...)
}

// fragment re-indents verbatim R code.
func (l *lines) fragment(f customize.Fragment, indent int) {
	*l = append(*l, stringutil.Lines(stringutil.ReformatBlock(string(f), indent, true, ""))...)
}

// defaultLiteral returns the signature default of mp, or "" for a bare name.
func (b *moduleBuilder) defaultLiteral(mp MergedParam) (string, error) {
	if mp.Source != SourceSchema {
		if mp.Literal != nil {
			return *mp.Literal, nil
		}
		return "", nil
	}
	if def, ok := b.view.Signature(mp.Name); ok {
		return def, nil
	}
	def, err := SignatureDefault(mp.Spec)
	if err == nil && def == "" {
		// an empty schema default stays distinguishable from no default
		return `""`, nil
	}
	return def, err
}

// signature renders the function header with one parameter per line.
func (b *moduleBuilder) signature(name string, list *MergedList) (string, error) {
	entries := make([]string, 0, len(list.Params)+1)
	for _, mp := range list.Params {
		def, err := b.defaultLiteral(mp)
		if err != nil {
			return "", err
		}
		if def == "" {
			entries = append(entries, mp.Name)
			continue
		}
		entries = append(entries, mp.Name+" = "+def)
	}
	if list.Ellipsis {
		entries = append(entries, "...")
	}
	header := name + " <- function("
	return stringutil.ReformatBlock(header+strings.Join(entries, ",\n")+")", len(header), false, ""), nil
}

// paramDocs renders the @param lines of list, in order.
func (b *moduleBuilder) paramDocs(list *MergedList) ([]string, error) {
	var out []string
	for _, mp := range list.Params {
		doc, ok, err := b.paramDoc(mp)
		if err != nil {
			return nil, err
		}
		if !ok {
			b.issue(severity.SeverityInfo, mp.Name, "params."+mp.Name, "parameter has no documentation")
			continue
		}
		out = append(out, paramBlock(mp.Name, doc)...)
	}
	if list.Ellipsis {
		if doc, ok := b.view.ParamDoc(customize.EllipsisDocKey); ok && doc != "" {
			out = append(out, paramBlock("...", doc)...)
		}
	}
	return out, nil
}

func (b *moduleBuilder) paramDoc(mp MergedParam) (string, bool, error) {
	if doc, ok := b.view.ParamDoc(mp.Name); ok {
		return doc, doc != "", nil
	}
	if mp.Source == SourceBulk {
		doc, ok := bulkParamDocs[mp.Name]
		return stringutil.Wrap(doc, docWidth-ParamDocIndent), ok, nil
	}
	if !mp.HasSpec {
		return "", false, nil
	}
	return ParamDoc(mp.Spec, ParamDocIndent)
}

// checkOverrides warns about algorithm doc and signature overrides that
// match no generated parameter.
func (b *moduleBuilder) checkOverrides(list *MergedList) {
	own := b.view.Own()
	if own == nil {
		return
	}
	known := make(map[string]bool, len(list.Params)+len(bulkParamDocs)+1)
	for _, name := range list.Names() {
		known[name] = true
	}
	for name := range bulkParamDocs {
		known[name] = true
	}
	known[customize.EllipsisDocKey] = list.Ellipsis
	for _, name := range slices.Sorted(maps.Keys(own.Doc.Params)) {
		if !known[name] {
			b.issue(severity.SeverityWarning, name, "doc.params."+name, "documentation for unknown parameter")
		}
	}
	for _, name := range slices.Sorted(maps.Keys(own.Doc.Signatures)) {
		if !known[name] {
			b.issue(severity.SeverityWarning, name, "doc.signatures."+name, "signature default for unknown parameter")
		}
	}
}

// doc renders the roxygen block of a variant.
func (b *moduleBuilder) doc(list *MergedList, bulk bool) ([]string, error) {
	params, err := b.paramDocs(list)
	if err != nil {
		return nil, err
	}
	if bulk {
		doc := []string{"#' Trains one " + b.view.ModelName() + " per segment of the training frame.", "#'"}
		doc = append(doc, params...)
		return append(doc, "#' @noRd"), nil
	}

	var doc []string
	if preamble := b.view.Preamble(); preamble != "" {
		doc = append(doc, "#'")
		doc = append(doc, commentBlock(preamble)...)
	}
	doc = append(doc, "#'")
	doc = append(doc, params...)

	if s := b.view.Returns(); s != "" {
		doc = append(doc, taggedBlock("@return", s)...)
	}
	if s := b.view.SeeAlso(); s != "" {
		doc = append(doc, taggedBlock("@seealso", s)...)
	}
	if s := b.view.References(); s != "" {
		doc = append(doc, taggedBlock("@references", s)...)
	}
	if s := b.view.Examples(); s != "" {
		doc = append(doc, examplesBlock(s)...)
	}
	return append(doc, "#' @export"), nil
}

const frameComment = "  # Validate required training_frame first and other frame args: should be a valid key or an H2OFrame object"

// setParams renders the body up to and including the payload. skip names
// parameters bound to NULL because the variant's signature drops them.
func (b *moduleBuilder) setParams(list *MergedList, skip []string) lines {
	var body lines

	if e := b.view.EllipsisParam(); e != nil && *e != "" {
		body.fragment(*e, 2)
	}

	if len(skip) > 0 {
		body.add("  # formally define variables that were excluded from function parameters")
		for _, name := range skip {
			body.add("  " + name + " <- NULL")
		}
	}

	if vf := b.view.ValidateFrames(); vf != "" {
		body.add(frameComment)
		body.fragment(vf, 2)
	} else if frames := b.view.FrameParams(); len(frames) > 0 {
		body.add(frameComment)
		for _, frame := range frames {
			if !list.Has(frame) {
				continue
			}
			required := strings.ToUpper(fmt.Sprint(list.Required[frame]))
			body.add(fmt.Sprintf("  %s <- .validate.H2OFrame(%s, required=%s)", frame, frame, required))
		}
	}

	if f := b.view.ValidateRequiredParams(); f != "" {
		body.add("", "  # Validate other required args")
		body.fragment(f, 2)
	}
	if f := b.view.ValidateParams(); f != "" {
		body.add("", "  # Validate other args")
		body.fragment(f, 2)
	}

	body.add("", "  # Build parameter list to send to model builder", "  parms <- list()")
	if f := b.view.SetRequiredParams(); f != "" {
		body.fragment(f, 2)
	}

	skipDefault := b.view.SkipDefaultSetParamsFor()
	body.add("")
	for _, name := range list.SchemaNames {
		if slices.Contains(skipDefault, name) || slices.Contains(skip, name) {
			continue
		}
		if name == "loss" {
			body.add(lossPayload...)
			continue
		}
		body.add("  if (!missing("+name+"))", "    parms$"+name+" <- "+name)
	}

	if f := b.view.SetParams(); f != "" {
		body.add("")
		body.fragment(f, 2)
	}
	return body
}

// lossPayload keeps accepting the deprecated "MeanSquare" loss name.
var lossPayload = []string{
	"  if(!missing(loss)) {",
	`    if(loss == "MeanSquare") {`,
	`      warning("Loss name 'MeanSquare' is deprecated; please use 'Quadratic' instead.")`,
	`      parms$loss <- "Quadratic"`,
	"    } else",
	"      parms$loss <- loss",
	"  }",
}

// buildVariant renders the training function, or its segment variant when
// bulk is set. For the segment variant list must already be derived.
func (b *moduleBuilder) buildVariant(list *MergedList, bulk bool) (*FunctionVariant, error) {
	name := "h2o." + b.module
	var skip []string
	if bulk {
		name = ".h2o.train_segments_" + b.module
		skip = bulkSkip
	}

	doc, err := b.doc(list, bulk)
	if err != nil {
		return nil, err
	}
	sig, err := b.signature(name, list)
	if err != nil {
		return nil, err
	}

	body := lines{"{"}
	body.add(b.setParams(list, skip)...)
	if bulk {
		body.add(segmentTail(b.algo, b.view.RestAPIVersion())...)
		return &FunctionVariant{Name: name, Doc: doc, Signature: sig, Body: body}, nil
	}

	verbose := "FALSE"
	if list.Extra["verbose"] {
		verbose = "verbose"
	}
	body.add("",
		"  # Error check and build model",
		fmt.Sprintf("  model <- .h2o.modelJob('%s', parms, h2oRestApiVersion=%d, verbose=%s)", b.algo, b.view.RestAPIVersion(), verbose),
	)
	if f := b.view.WithModel(); f != "" {
		body.add("")
		body.fragment(f, 2)
	}
	body.add("  return(model)", "}")

	return &FunctionVariant{Name: name, Doc: doc, Signature: sig, Body: body}, nil
}
