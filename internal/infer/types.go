package infer

// Type is a TypeScript type produced by inference.
type Type interface {
	String() string
	typeNode()
}

// Primitive is a named TypeScript type keyword.
type Primitive struct {
	name string
}

func (p Primitive) String() string { return p.name }
func (p Primitive) typeNode()      {}

var (
	Number    = Primitive{"number"}
	String    = Primitive{"string"}
	Boolean   = Primitive{"boolean"}
	Null      = Primitive{"null"}
	Undefined = Primitive{"undefined"}
	Any       = Primitive{"any"}
	Void      = Primitive{"void"}
)

// Array is an array with a single element type, printed in T[] form.
type Array struct {
	Elem Type
}

func (a Array) String() string { return a.Elem.String() + "[]" }
func (a Array) typeNode()      {}
