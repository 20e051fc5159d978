package customize

// Fragment is R source text spliced verbatim into generated code. Its author is
// responsible for its syntax; the generator only re-indents it.
type Fragment string

// Param is a required or extra parameter injected by customization.
// A nil Literal makes the parameter a mandatory positional argument.
type Param struct {
	Name    string
	Literal *string
}

// Positional returns a Param without a default literal.
func Positional(name string) Param {
	return Param{Name: name}
}

// WithDefault returns a Param whose signature default is literal.
func WithDefault(name, literal string) Param {
	return Param{Name: name, Literal: &literal}
}

// HasLiteral reports whether p carries a default literal.
func (p Param) HasLiteral() bool {
	return p.Literal != nil
}

// Customizations holds everything that can be customized for one algorithm,
// or for all algorithms when registered as the defaults.
//
// Nil slices, nil maps and empty strings are unset. An empty non-nil slice is
// set, and hides the defaults' value.
type Customizations struct {
	// RestAPIVersion is passed to the model job; 0 means the default of 3
	RestAPIVersion int
	// ModelName overrides the display name used in the file banner
	ModelName string
	// ModuleName overrides the function suffix, as in h2o.<module>
	ModuleName string
	// FileName overrides the output file name without extension
	FileName string

	Doc        Doc
	Extensions Extensions

	// UpdateParam rewrites schema parameters before merging
	UpdateParam *Override
}

// Doc holds documentation customizations.
type Doc struct {
	Preamble   string
	Returns    string
	SeeAlso    string
	References string
	Examples   string

	// Params overrides parameter docs by name. The "_ellipsis_" key documents "...".
	Params map[string]string
	// Signatures overrides signature default literals by name
	Signatures map[string]string
}

// Extensions holds the parameter and code-fragment customizations.
type Extensions struct {
	RequiredParams []Param
	ExtraParams    []Param
	// EllipsisParam enables a trailing "..." parameter; the fragment captures it
	// in the body and may be empty.
	EllipsisParam *Fragment

	// FrameParams lists the parameters validated as frames
	FrameParams []string
	// ValidateFrames replaces the generated frame validation entirely
	ValidateFrames Fragment

	ValidateRequiredParams Fragment
	ValidateParams         Fragment
	SetRequiredParams      Fragment
	// SkipDefaultSetParamsFor lists schema parameters not copied into the payload
	SkipDefaultSetParamsFor []string
	SetParams               Fragment

	// Module is appended after the generated functions
	Module Fragment
	// WithModel runs after the model job returns
	WithModel Fragment
}

// EllipsisDocKey is the Doc.Params key documenting the "..." parameter.
const EllipsisDocKey = "_ellipsis_"

// DefaultsKey is the registry key of the customizations shared by all algorithms.
const DefaultsKey = "defaults"
