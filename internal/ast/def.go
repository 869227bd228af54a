package ast

// Param is one function parameter: a name binding paired with its concrete
// type (the type itself may still reference the function's own parametric
// dimensions).
type Param struct {
	Name *NameDef
	Type ConcreteType
}

// Def is any module-level definition that can be depended on: a function or
// a constant.  The driver lowers Defs in dependency order, constants before
// functions, callees before callers.
type Def interface {
	Node
	// Names returns the identifiers this definition introduces, normally a
	// single name.
	Names() []string
}

// FunctionDef is a (possibly parametric) function definition.
type FunctionDef struct {
	Base
	Name       string
	Module     *Module
	Params     []*Param
	ReturnType ConcreteType
	Body       Expr

	// FreeParametricKeys are the symbolic identifiers this function's
	// signature depends on; empty for a non-parametric function.
	FreeParametricKeys []string
}

func (f *FunctionDef) Names() []string { return []string{f.Name} }

// ConstantDef is a module-level `const` binding.
type ConstantDef struct {
	Base
	Name   *NameDef
	Module *Module
	Value  Expr
}

func (c *ConstantDef) Names() []string { return []string{c.Name.Name} }

// StructDef declares a struct's ordered fields.
type StructDef struct {
	Base
	Name   string
	Module *Module
	Type   *StructType
}

// EnumMember is one named, valued member of an EnumDef.
type EnumMember struct {
	Name  string
	Value Expr
}

// EnumDef declares an enum's width and its named member values; member
// values are themselves expressions lowered lazily, on first ColonRef use.
type EnumDef struct {
	Base
	Name    string
	Module  *Module
	Width   Dim
	Members []EnumMember
}

// MemberValue returns the value expression of the named member, if present.
func (e *EnumDef) MemberValue(name string) (Expr, bool) {
	for _, m := range e.Members {
		if m.Name == name {
			return m.Value, true
		}
	}
	return nil, false
}

// Module is a single source file's worth of definitions plus its imports.
// It is the unit the driver converts one function at a time from.
type Module struct {
	Name      string
	Constants []*ConstantDef
	Functions []*FunctionDef
	Structs   []*StructDef
	Enums     []*EnumDef
	Imports   map[string]*Module
}

// FindFunction looks up a function defined directly in this module.
func (m *Module) FindFunction(name string) (*FunctionDef, bool) {
	for _, f := range m.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// FindConstant looks up a constant defined directly in this module.
func (m *Module) FindConstant(name string) (*ConstantDef, bool) {
	for _, c := range m.Constants {
		if c.Name.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ModuleConstantNames returns the set of module-level constant identifiers,
// used to filter SymbolicBindings down to the "current" instantiation keys.
func (m *Module) ModuleConstantNames() map[string]bool {
	names := make(map[string]bool, len(m.Constants))
	for _, c := range m.Constants {
		names[c.Name.Name] = true
	}
	return names
}
