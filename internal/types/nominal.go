package types

import (
	"fmt"

	"fortio.org/safecast"

	"sable/internal/source"
)

// NominalInfo stores metadata shared by all declared (named) types: structs,
// classes, unions, protocols, and generic parameters.
type NominalInfo struct {
	Name string
	Decl source.Pos
	// Foreign marks class declarations that participate in the host
	// platform's native object model rather than Sable's own.
	Foreign bool
}

// AliasInfo stores metadata for a nominal alias type.
type AliasInfo struct {
	Name   string
	Decl   source.Pos
	Target TypeID
}

// RegisterStruct allocates a nominal struct type slot and returns its TypeID.
func (in *Interner) RegisterStruct(name string, decl source.Pos) TypeID {
	slot := in.appendNominalInfo(NominalInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindStruct, Payload: slot})
}

// RegisterClass allocates a nominal class type slot and returns its TypeID.
func (in *Interner) RegisterClass(name string, decl source.Pos, foreign bool) TypeID {
	slot := in.appendNominalInfo(NominalInfo{Name: name, Decl: decl, Foreign: foreign})
	return in.internRaw(Type{Kind: KindClass, Payload: slot})
}

// RegisterUnion allocates a nominal union (sum) type slot.
func (in *Interner) RegisterUnion(name string, decl source.Pos) TypeID {
	slot := in.appendNominalInfo(NominalInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindUnion, Payload: slot})
}

// RegisterProtocol allocates a nominal protocol type slot.
func (in *Interner) RegisterProtocol(name string, decl source.Pos) TypeID {
	slot := in.appendNominalInfo(NominalInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindProtocol, Payload: slot})
}

// RegisterGenericParam allocates a generic-parameter placeholder type.
func (in *Interner) RegisterGenericParam(name string, decl source.Pos) TypeID {
	slot := in.appendNominalInfo(NominalInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindGenericParam, Payload: slot})
}

// RegisterAlias allocates a nominal alias pointing at target.
func (in *Interner) RegisterAlias(name string, decl source.Pos, target TypeID) TypeID {
	in.aliases = append(in.aliases, AliasInfo{Name: name, Decl: decl, Target: target})
	slot, err := safecast.Conv[uint32](len(in.aliases) - 1)
	if err != nil {
		panic(fmt.Errorf("alias info overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindAlias, Payload: slot})
}

// NominalInfo returns metadata for a nominal TypeID.
func (in *Interner) NominalInfo(id TypeID) (*NominalInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok {
		return nil, false
	}
	switch tt.Kind {
	case KindStruct, KindClass, KindUnion, KindProtocol, KindGenericParam:
	default:
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.nominals) {
		return nil, false
	}
	return &in.nominals[tt.Payload], true
}

// AliasInfo returns metadata for an alias TypeID.
func (in *Interner) AliasInfo(id TypeID) (*AliasInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindAlias {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.aliases) {
		return nil, false
	}
	return &in.aliases[tt.Payload], true
}

func (in *Interner) appendNominalInfo(info NominalInfo) uint32 {
	in.nominals = append(in.nominals, info)
	slot, err := safecast.Conv[uint32](len(in.nominals) - 1)
	if err != nil {
		panic(fmt.Errorf("nominal info overflow: %w", err))
	}
	return slot
}
