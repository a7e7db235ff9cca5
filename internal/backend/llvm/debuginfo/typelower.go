package debuginfo

import (
	"sable/internal/metadata"
	"sable/internal/types"
)

// GetOrCreateType returns the cached descriptor for a type-and-layout key, or
// lowers a fresh one. A cached handle whose node was released by the store is
// treated as a miss.
func (e *Engine) GetOrCreateType(ti TypeInfo, scope metadata.NodeID) metadata.NodeID {
	if ti.Type == types.NoTypeID {
		return metadata.NoNodeID
	}

	key := typeKey{
		canon:     e.types.Canonical(ti.Type),
		sizeBits:  ti.SizeBits,
		alignBits: ti.AlignBits,
	}
	if cached, ok := e.typeCache[key]; ok {
		if e.builder.Alive(cached) {
			return cached
		}
	}

	dty := e.createType(ti, scope)
	e.typeCache[key] = dty
	return dty
}

// createType lowers one type by structural kind.
//
// Only the name and provenance of nominal types are emitted here, not their
// field structure: a consumer resolves the full definition out of band from
// the unit the type originates in. That keeps this stage free of any
// target-ABI field oracle.
func (e *Engine) createType(ti TypeInfo, scope metadata.NodeID) metadata.NodeID {
	canon := e.types.Canonical(ti.Type)
	tt, ok := e.types.Lookup(canon)
	if !ok {
		return metadata.NoNodeID
	}

	var name string
	size := ti.SizeBits
	align := ti.AlignBits
	enc := metadata.EncodingNone

	switch tt.Kind {
	case types.KindInt, types.KindUint:
		if tt.Width != types.WidthAny {
			size = uint64(tt.Width)
		}
		name = "int"
		enc = metadata.EncodingSigned
		if tt.Kind == types.KindUint {
			enc = metadata.EncodingUnsigned
		}

	case types.KindFloat:
		if tt.Width != types.WidthAny {
			size = uint64(tt.Width)
		}
		name = "float"
		enc = metadata.EncodingFloat

	case types.KindStruct:
		// Even builtin Sable types usually come boxed in a struct.
		info, ok := e.types.NominalInfo(canon)
		if !ok {
			return metadata.NoNodeID
		}
		l := e.resolvePos(info.Decl)
		name = e.names.Str(e.mangler.TypeName(canon))
		return e.builder.CreateStructType(scope, name,
			e.getOrCreateFile(l.Filename), l.Line, size, align, 0,
			metadata.LangSable)

	case types.KindClass:
		// Classes are emitted as structure entries; the runtime-language
		// field tells a debugger native-object-model classes apart from
		// Sable's own, since the format has no dedicated attribute for
		// the object model of an aggregate.
		info, ok := e.types.NominalInfo(canon)
		if !ok {
			return metadata.NoNodeID
		}
		runtimeLang := metadata.LangSable
		if info.Foreign {
			runtimeLang = metadata.LangNative
		}
		l := e.resolvePos(info.Decl)
		name = e.names.Str(e.mangler.TypeName(canon))
		return e.builder.CreateStructType(scope, name,
			e.getOrCreateFile(l.Filename), l.Line, size, align, 0,
			runtimeLang)

	case types.KindUnion, types.KindProtocol:
		// Identity only: a mangled name over a size/align-only entry.
		name = e.names.Str(e.mangler.TypeName(canon))

	default:
		// No lowering rule; the caller skips debug info for this value.
		return metadata.NoNodeID
	}

	return e.builder.CreateBasicType(name, size, align, enc)
}
