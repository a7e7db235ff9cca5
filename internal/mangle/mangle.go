// Package mangle derives globally unique, stable linkage names for nominal
// types. Consumers (debuggers, the out-of-band type resolver) treat the
// result as an opaque string; only stability and uniqueness are contractual.
package mangle

import (
	"fmt"
	"strings"

	"sable/internal/types"
)

// Mangler memoizes mangled names per canonical TypeID.
type Mangler struct {
	types  *types.Interner
	module string
	memo   map[types.TypeID]string
}

// New constructs a Mangler for the given module name.
func New(typesIn *types.Interner, module string) *Mangler {
	return &Mangler{
		types:  typesIn,
		module: module,
		memo:   make(map[types.TypeID]string, 64),
	}
}

// TypeName returns the mangled name for a canonical type. Non-nominal types
// get a structural spelling; anything unknown collapses to a stable
// placeholder so the result is never empty.
func (m *Mangler) TypeName(id types.TypeID) string {
	canon := m.types.Canonical(id)
	if name, ok := m.memo[canon]; ok {
		return name
	}
	var sb strings.Builder
	sb.WriteString("_S")
	lenPrefixed(&sb, m.module)
	m.mangleInto(&sb, canon)
	name := sb.String()
	m.memo[canon] = name
	return name
}

func (m *Mangler) mangleInto(sb *strings.Builder, id types.TypeID) {
	tt, ok := m.types.Lookup(id)
	if !ok {
		sb.WriteString("Xu")
		return
	}
	switch tt.Kind {
	case types.KindStruct, types.KindClass, types.KindUnion, types.KindProtocol, types.KindGenericParam:
		sb.WriteByte(nominalCode(tt.Kind))
		if info, ok := m.types.NominalInfo(id); ok && info.Name != "" {
			lenPrefixed(sb, info.Name)
		} else {
			// Anonymous nominal: fall back to the slot number.
			fmt.Fprintf(sb, "0n%d", tt.Payload)
		}
	case types.KindInt, types.KindUint:
		fmt.Fprintf(sb, "i%d", tt.Width)
	case types.KindFloat:
		fmt.Fprintf(sb, "f%d", tt.Width)
	case types.KindBool:
		sb.WriteString("Sb")
	case types.KindString:
		sb.WriteString("SS")
	case types.KindUnit:
		sb.WriteString("yt")
	case types.KindTuple:
		sb.WriteByte('T')
		if info, ok := m.types.TupleInfo(id); ok {
			for _, el := range info.Elems {
				m.mangleInto(sb, m.types.Canonical(el))
			}
		}
		sb.WriteByte('t')
	case types.KindFn:
		sb.WriteByte('F')
		if info, ok := m.types.FnInfo(id); ok {
			for _, p := range info.Params {
				m.mangleInto(sb, m.types.Canonical(p))
			}
			sb.WriteByte('_')
			m.mangleInto(sb, m.types.Canonical(info.Result))
		}
		sb.WriteByte('f')
	default:
		sb.WriteString("Xu")
	}
}

func nominalCode(k types.Kind) byte {
	switch k {
	case types.KindStruct:
		return 'V'
	case types.KindClass:
		return 'C'
	case types.KindUnion:
		return 'O'
	case types.KindProtocol:
		return 'P'
	default:
		return 'G'
	}
}

func lenPrefixed(sb *strings.Builder, s string) {
	fmt.Fprintf(sb, "%d%s", len(s), s)
}
