package generator

import (
	"strings"

	"github.com/erraggy/rbindgen/internal/stringutil"
	"github.com/erraggy/rbindgen/schema"
)

const (
	paramTag = "@param"
	// ParamDocIndent is the indent ParamDoc wraps for: "#' @param" plus slack.
	ParamDocIndent = len(paramTag) + 4
	docWidth       = 120
	docPrefix      = "#' "
	booleanPrefix  = `\code{Logical}. `
)

// ParamDoc builds the documentation text of a schema parameter, wrapped to
// 120-indent columns. It returns ok=false when the parameter has no help.
func ParamDoc(p schema.Parameter, indent int) (doc string, ok bool, err error) {
	if p.Help == "" {
		return "", false, nil
	}
	var b strings.Builder
	if p.Type == "boolean" {
		b.WriteString(booleanPrefix)
	}
	b.WriteString(p.Help)
	if len(p.Values) > 0 {
		quoted := make([]any, len(p.Values))
		for i, v := range p.Values {
			quoted[i] = v
		}
		b.WriteString(" Must be one of: " + quoteAll(quoted) + ".")
	}
	if p.DefaultValue != nil {
		def, err := DocDefault(p)
		if err != nil {
			return "", false, err
		}
		b.WriteString(" Defaults to " + def + ".")
	}
	return stringutil.Wrap(b.String(), docWidth-indent), true, nil
}

// taggedBlock renders a roxygen tag with its text, continuation lines indented
// one column past the tag.
func taggedBlock(tag, text string) []string {
	block := tag + " " + strings.TrimLeft(text, "\n")
	return stringutil.Lines(stringutil.ReformatBlock(block, len(tag)+1, false, docPrefix))
}

func paramBlock(name, doc string) []string {
	block := paramTag + " " + name + " " + strings.TrimLeft(doc, "\n")
	return stringutil.Lines(stringutil.ReformatBlock(block, len(paramTag)+1, false, docPrefix))
}

// commentBlock prefixes every line of text with "#' ".
func commentBlock(text string) []string {
	return stringutil.Lines(stringutil.ReformatBlock(text, 0, true, docPrefix))
}

// examplesBlock fences examples so R CMD check does not run them.
func examplesBlock(text string) []string {
	lines := []string{docPrefix + "@examples", docPrefix + `\dontrun{`}
	lines = append(lines, commentBlock(text)...)
	return append(lines, docPrefix+"}")
}
