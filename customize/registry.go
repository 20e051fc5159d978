package customize

import (
	"maps"
	"slices"
	"sync"
)

// Registry holds per-algorithm customizations plus the shared defaults.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	defaults *Customizations
	algos    map[string]*Customizations
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{algos: make(map[string]*Customizations)}
}

// Set registers c for algo. The DefaultsKey algo sets the shared defaults.
func (r *Registry) Set(algo string, c *Customizations) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if algo == DefaultsKey {
		r.defaults = c
		return
	}
	r.algos[algo] = c
}

// Get returns the customizations registered for algo.
func (r *Registry) Get(algo string) (*Customizations, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if algo == DefaultsKey {
		return r.defaults, r.defaults != nil
	}
	c, ok := r.algos[algo]
	return c, ok
}

// Defaults returns the shared defaults, or nil.
func (r *Registry) Defaults() *Customizations {
	c, _ := r.Get(DefaultsKey)
	return c
}

// Algorithms returns the algorithms with their own customizations, sorted.
func (r *Registry) Algorithms() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.algos))
}

// View returns the lookup of algo's customizations falling back to the defaults.
// A nil registry yields a view with no customizations.
func (r *Registry) View(algo string) View {
	v := View{Algo: algo}
	if r == nil {
		return v
	}
	v.own, _ = r.Get(algo)
	v.defaults = r.Defaults()
	return v
}

// View resolves customization properties for one algorithm. Properties marked
// "own" ignore the defaults; all others use the algorithm's value when set and
// the defaults' otherwise.
type View struct {
	Algo     string
	own      *Customizations
	defaults *Customizations
}

func (v View) layers() []*Customizations {
	out := make([]*Customizations, 0, 2)
	if v.own != nil {
		out = append(out, v.own)
	}
	if v.defaults != nil {
		out = append(out, v.defaults)
	}
	return out
}

func firstSlice[T any](v View, get func(*Customizations) []T) []T {
	for _, c := range v.layers() {
		if s := get(c); s != nil {
			return s
		}
	}
	return nil
}

func firstFragment(v View, get func(*Customizations) Fragment) Fragment {
	for _, c := range v.layers() {
		if f := get(c); f != "" {
			return f
		}
	}
	return ""
}

func firstEntry(v View, get func(*Customizations) map[string]string, key string) (string, bool) {
	for _, c := range v.layers() {
		if s, ok := get(c)[key]; ok {
			return s, true
		}
	}
	return "", false
}

// Own returns the algorithm's own customizations, or nil.
func (v View) Own() *Customizations {
	return v.own
}

// RestAPIVersion is own; it defaults to 3.
func (v View) RestAPIVersion() int {
	if v.own != nil && v.own.RestAPIVersion > 0 {
		return v.own.RestAPIVersion
	}
	return 3
}

// ModelName is own; it falls back to DefaultModelName.
func (v View) ModelName() string {
	if v.own != nil && v.own.ModelName != "" {
		return v.own.ModelName
	}
	return DefaultModelName(v.Algo)
}

// ModuleName is own; it falls back to DefaultModuleName.
func (v View) ModuleName() string {
	if v.own != nil && v.own.ModuleName != "" {
		return v.own.ModuleName
	}
	return DefaultModuleName(v.Algo)
}

// FileName is own; it falls back to DefaultFileName.
func (v View) FileName() string {
	if v.own != nil && v.own.FileName != "" {
		return v.own.FileName
	}
	return DefaultFileName(v.Algo)
}

func (v View) ownDoc(get func(Doc) string) string {
	if v.own == nil {
		return ""
	}
	return get(v.own.Doc)
}

// Preamble is own.
func (v View) Preamble() string { return v.ownDoc(func(d Doc) string { return d.Preamble }) }

// Returns is own.
func (v View) Returns() string { return v.ownDoc(func(d Doc) string { return d.Returns }) }

// SeeAlso is own.
func (v View) SeeAlso() string { return v.ownDoc(func(d Doc) string { return d.SeeAlso }) }

// References is own.
func (v View) References() string { return v.ownDoc(func(d Doc) string { return d.References }) }

// Examples is own.
func (v View) Examples() string { return v.ownDoc(func(d Doc) string { return d.Examples }) }

// ParamDoc returns the documentation override for a parameter.
func (v View) ParamDoc(name string) (string, bool) {
	return firstEntry(v, func(c *Customizations) map[string]string { return c.Doc.Params }, name)
}

// Signature returns the signature default override for a parameter.
func (v View) Signature(name string) (string, bool) {
	return firstEntry(v, func(c *Customizations) map[string]string { return c.Doc.Signatures }, name)
}

// RequiredParams returns the parameters placed first in the signature.
func (v View) RequiredParams() []Param {
	return firstSlice(v, func(c *Customizations) []Param { return c.Extensions.RequiredParams })
}

// ExtraParams returns the parameters placed after the schema parameters.
func (v View) ExtraParams() []Param {
	return firstSlice(v, func(c *Customizations) []Param { return c.Extensions.ExtraParams })
}

// EllipsisParam is own.
func (v View) EllipsisParam() *Fragment {
	if v.own == nil {
		return nil
	}
	return v.own.Extensions.EllipsisParam
}

// FrameParams returns the parameters validated as frames.
func (v View) FrameParams() []string {
	return firstSlice(v, func(c *Customizations) []string { return c.Extensions.FrameParams })
}

// ValidateFrames returns the fragment replacing frame validation.
func (v View) ValidateFrames() Fragment {
	return firstFragment(v, func(c *Customizations) Fragment { return c.Extensions.ValidateFrames })
}

// ValidateRequiredParams returns the fragment validating required parameters.
func (v View) ValidateRequiredParams() Fragment {
	return firstFragment(v, func(c *Customizations) Fragment { return c.Extensions.ValidateRequiredParams })
}

// ValidateParams returns the fragment validating other parameters.
func (v View) ValidateParams() Fragment {
	return firstFragment(v, func(c *Customizations) Fragment { return c.Extensions.ValidateParams })
}

// SetRequiredParams returns the fragment seeding the payload.
func (v View) SetRequiredParams() Fragment {
	return firstFragment(v, func(c *Customizations) Fragment { return c.Extensions.SetRequiredParams })
}

// SkipDefaultSetParamsFor returns the schema parameters not copied into the payload.
func (v View) SkipDefaultSetParamsFor() []string {
	return firstSlice(v, func(c *Customizations) []string { return c.Extensions.SkipDefaultSetParamsFor })
}

// SetParams returns the fragment run after the payload is built.
func (v View) SetParams() Fragment {
	return firstFragment(v, func(c *Customizations) Fragment { return c.Extensions.SetParams })
}

// Module is own.
func (v View) Module() Fragment {
	if v.own == nil {
		return ""
	}
	return v.own.Extensions.Module
}

// WithModel is own.
func (v View) WithModel() Fragment {
	if v.own == nil {
		return ""
	}
	return v.own.Extensions.WithModel
}

// Overrides returns the override chain: the algorithm's, then the defaults'.
func (v View) Overrides() []*Override {
	var chain []*Override
	for _, c := range v.layers() {
		if c.UpdateParam != nil {
			chain = append(chain, c.UpdateParam)
		}
	}
	return chain
}
