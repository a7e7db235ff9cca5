package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindTuple
	KindStruct
	KindClass
	KindUnion
	KindProtocol
	KindFn
	KindGenericParam
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTuple:
		return "tuple"
	case KindStruct:
		return "struct"
	case KindClass:
		return "class"
	case KindUnion:
		return "union"
	case KindProtocol:
		return "protocol"
	case KindFn:
		return "fn"
	case KindGenericParam:
		return "generic"
	case KindAlias:
		return "alias"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of integers/floats in bits.
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
)

// Type is a compact descriptor for any supported type. Kinds with structured
// metadata (nominals, tuples, functions, aliases) index a side table through
// Payload.
type Type struct {
	Kind    Kind
	Elem    TypeID
	Width   Width  // for numeric primitives
	Payload uint32 // side-table slot for structured kinds
}

// MakeInt builds an integer descriptor of the given width.
func MakeInt(w Width) Type {
	return Type{Kind: KindInt, Width: w}
}

// MakeUint builds an unsigned integer descriptor of the given width.
func MakeUint(w Width) Type {
	return Type{Kind: KindUint, Width: w}
}

// MakeFloat builds a float descriptor of the given width.
func MakeFloat(w Width) Type {
	return Type{Kind: KindFloat, Width: w}
}
