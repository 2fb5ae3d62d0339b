package expr

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/hashset"
)

// --- Function definitions --------------------------------------------------

// FunctionDef is a user-defined function. The body may reference the parameters
// and may call the function itself recursively.
type FunctionDef struct {
	Parameters []string
	Body       Expr
}

// DuplicateParameterError is returned for function definitions which declare
// a parameter name more than once.
type DuplicateParameterError struct {
	Name string
}

func (e *DuplicateParameterError) Error() string {
	return fmt.Sprintf("duplicate parameter: %s", e.Name)
}

// NewFunctionDef creates a function definition, checking that parameter names
// are unique. The parameter slice is copied.
func NewFunctionDef(params []string, body Expr) (FunctionDef, error) {
	if body == nil {
		return FunctionDef{}, fmt.Errorf("function definition without body")
	}
	seen := hashset.New()
	for _, p := range params {
		if seen.Contains(p) {
			tracer().Errorf("parameter %s declared twice", p)
			return FunctionDef{}, &DuplicateParameterError{Name: p}
		}
		seen.Add(p)
	}
	ps := make([]string, len(params))
	copy(ps, params)
	return FunctionDef{Parameters: ps, Body: body}, nil
}

// Arity returns the number of parameters.
func (def FunctionDef) Arity() int {
	return len(def.Parameters)
}

// --- Function tables -------------------------------------------------------

// FunctionTable maps function names to definitions. Names iterate in sorted
// order. A table must not be modified while an evaluation run uses it.
//
// The nil table is a valid, empty table for lookups. The zero value is ready
// to use.
type FunctionTable struct {
	defs *treemap.Map
}

// NewFunctionTable creates an empty function table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{defs: treemap.NewWithStringComparator()}
}

// Define stores a function definition under a name, replacing a previous
// definition of the same name.
func (ft *FunctionTable) Define(name string, def FunctionDef) error {
	if name == "" {
		return fmt.Errorf("function name may not be empty")
	}
	if def.Body == nil {
		return fmt.Errorf("function %s has no body", name)
	}
	if ft.defs == nil {
		ft.defs = treemap.NewWithStringComparator()
	}
	if _, found := ft.defs.Get(name); found {
		tracer().Infof("redefining function %s", name)
	}
	ft.defs.Put(name, def)
	return nil
}

// Lookup finds a function definition.
func (ft *FunctionTable) Lookup(name string) (FunctionDef, bool) {
	if ft == nil || ft.defs == nil {
		return FunctionDef{}, false
	}
	v, found := ft.defs.Get(name)
	if !found {
		return FunctionDef{}, false
	}
	return v.(FunctionDef), true
}

// Names returns all function names in sorted order.
func (ft *FunctionTable) Names() []string {
	if ft == nil || ft.defs == nil {
		return nil
	}
	keys := ft.defs.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// Size returns the number of functions defined.
func (ft *FunctionTable) Size() int {
	if ft == nil || ft.defs == nil {
		return 0
	}
	return ft.defs.Size()
}

// Signature renders a function head, e.g. "factorial(n)".
func (ft *FunctionTable) Signature(name string) string {
	def, ok := ft.Lookup(name)
	if !ok {
		return name + "(?)"
	}
	return Call(name, vars(def.Parameters)...).String()
}

func vars(names []string) []Expr {
	v := make([]Expr, len(names))
	for i, n := range names {
		v[i] = Var(n)
	}
	return v
}

// --- Input -----------------------------------------------------------------

// Input is a complete evaluation task: an expression together with the
// functions it may call.
type Input struct {
	Functions  *FunctionTable
	Expression Expr
}
