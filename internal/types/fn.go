package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// FnInfo stores metadata for function types.
type FnInfo struct {
	Params []TypeID // parameter types, in order
	Result TypeID
	// Closure marks function values that capture an environment; the
	// debugger presents those differently from plain functions.
	Closure bool
}

// RegisterFn creates or finds a function type.
func (in *Interner) RegisterFn(params []TypeID, result TypeID, closure bool) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindFn {
			continue
		}
		if int(tt.Payload) >= len(in.fns) {
			continue
		}
		info := in.fns[tt.Payload]
		if info.Result == result && info.Closure == closure && slices.Equal(info.Params, params) {
			return id
		}
	}
	slot := in.appendFnInfo(FnInfo{
		Params:  slices.Clone(params),
		Result:  result,
		Closure: closure,
	})
	return in.internRaw(Type{Kind: KindFn, Payload: slot})
}

// FnInfo retrieves function type metadata by TypeID.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFn {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}

// FlattenedParams returns the function's input types with a single tuple
// parameter expanded into its elements, matching how such signatures are
// lowered in SIR.
func (in *Interner) FlattenedParams(fn *FnInfo) []TypeID {
	if fn == nil {
		return nil
	}
	if len(fn.Params) == 1 {
		if tup, ok := in.TupleInfo(fn.Params[0]); ok {
			return slices.Clone(tup.Elems)
		}
	}
	return slices.Clone(fn.Params)
}

func (in *Interner) appendFnInfo(info FnInfo) uint32 {
	in.fns = append(in.fns, info)
	slot, err := safecast.Conv[uint32](len(in.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	return slot
}
