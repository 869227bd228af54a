package irb

import "github.com/githubhjs/xls/internal/irtypes"

// Function is a fully-built IR function: a parameter list, a body of pure
// dataflow nodes, and a designated return value.
type Function struct {
	Name       string
	Params     []Value
	ReturnType irtypes.Type
	nodes      []*node
	ret        Value
}

// Nodes returns every node emitted into the function, parameters included,
// in emission order.
func (f *Function) Nodes() []*node { return f.nodes }

// Return returns the function's return value.
func (f *Function) Return() Value { return f.ret }

// Package is the Package collaborator: a flat namespace of already-built IR
// functions, keyed by their mangled name.
type Package struct {
	Name      string
	functions map[string]*Function
	order     []string
}

// NewPackage creates an empty package named name.
func NewPackage(name string) *Package {
	return &Package{Name: name, functions: make(map[string]*Function)}
}

// HasFunctionWithName reports whether a function with the given mangled
// name has already been built into the package.
func (p *Package) HasFunctionWithName(name string) bool {
	_, ok := p.functions[name]
	return ok
}

// GetFunction retrieves an already-built function by its mangled name.
func (p *Package) GetFunction(name string) (*Function, bool) {
	f, ok := p.functions[name]
	return f, ok
}

// AddFunction registers a freshly-built function into the package.  It is
// a programmer error to add a function whose name already exists; the
// NameMangler and convert.ConvertFunction's lookup of an already-built
// function by mangled name exist precisely to prevent that from happening.
func (p *Package) AddFunction(f *Function) {
	if _, ok := p.functions[f.Name]; ok {
		panic("irb: duplicate function name " + f.Name)
	}
	p.functions[f.Name] = f
	p.order = append(p.order, f.Name)
}

// Functions returns every built function in the order they were added.
func (p *Package) Functions() []*Function {
	fns := make([]*Function, len(p.order))
	for i, name := range p.order {
		fns[i] = p.functions[name]
	}
	return fns
}
