// Package llvm drives code generation for one SIR unit. Instruction
// selection proper lives elsewhere; this package owns the per-unit walk that
// keeps debug metadata in lockstep with emission.
package llvm

import (
	"fmt"

	"sable/internal/backend/llvm/debuginfo"
	"sable/internal/diag"
	"sable/internal/layout"
	"sable/internal/mangle"
	"sable/internal/metadata"
	"sable/internal/sir"
	"sable/internal/source"
	"sable/internal/types"
)

// EmitOptions is the externally-loaded configuration the backend reads.
type EmitOptions struct {
	DebugInfo bool
	OptLevel  int
}

// EmitModule walks one SIR unit and produces its metadata graph. With debug
// info disabled the result is an empty, finalized graph.
func EmitModule(mod *sir.Module, fset *source.FileSet, typesIn *types.Interner, reporter diag.Reporter, opts EmitOptions) (*metadata.Builder, error) {
	if mod == nil {
		return nil, fmt.Errorf("llvm: nil module")
	}

	builder := metadata.NewBuilder()
	if !opts.DebugInfo {
		builder.Finalize()
		return builder, nil
	}

	layouts := layout.New(layout.X86_64LinuxGNU(), typesIn)
	mangler := mangle.New(typesIn, mod.Name)
	di := debuginfo.New(debuginfo.Options{
		DebugInfo:         true,
		OptLevel:          opts.OptLevel,
		MainInputFilename: mod.MainFile,
	}, fset, typesIn, layouts, mangler, builder, reporter)

	for _, g := range mod.Globals {
		di.EmitGlobalVariableDeclaration(g, g.Name, g.LinkageName,
			debuginfo.TypeInfoFor(layouts, g.Type), g.Loc)
	}

	for _, fn := range mod.Funcs {
		emitFunc(di, layouts, fn)
	}

	di.Finalize()
	return builder, nil
}

func emitFunc(di *debuginfo.Engine, layouts *layout.Engine, fn *sir.Func) {
	di.CreateFunctionFor(fn)

	for _, b := range fn.Blocks {
		for _, in := range b.Instrs {
			scope := in.Scope
			if scope == nil {
				scope = fn.Scope
			}
			di.SetCurrentLoc(scope, in.Loc)

			if in.Kind == sir.InstrAllocVar {
				storage := stackSlotName(in.VarName)
				di.EmitStackVariableDeclaration(storage,
					debuginfo.TypeInfoFor(layouts, in.VarType), in.VarName, in)
			}
		}
	}
}

// stackSlotName is the IR-level symbol an alloca'd local lives in.
func stackSlotName(name string) string {
	return "%" + name + ".addr"
}
