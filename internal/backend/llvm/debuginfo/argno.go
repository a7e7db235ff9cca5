package debuginfo

import (
	"fmt"

	"sable/internal/diag"
	"sable/internal/sir"
	"sable/internal/source"
)

// ArgNo returns the position of arg in fn's entry-block argument list,
// counting from 1, or 0 when the argument is not found.
//
// Arguments tend to be requested in order within one function, so a
// single-slot memo of the last match is tried first; any miss falls back to a
// linear rescan from the start. The memo is an optimization only; the result
// is the same either way.
func (e *Engine) ArgNo(fn *sir.Func, arg *sir.Arg) uint32 {
	if fn != nil && fn == e.argFn {
		e.argIdx++
		e.argNo++
		args := fn.Entry().Args
		if e.argIdx < len(args) && args[e.argIdx] == arg {
			return e.argNo
		}
	}

	e.argNo = 1
	if !fn.Empty() {
		e.argFn = fn
		for i, a := range fn.Entry().Args {
			e.argIdx = i
			if a == arg {
				return e.argNo
			}
			e.argNo++
		}
	}

	diag.ReportInfo(e.reporter, diag.GenArgNotFound, source.Span{},
		fmt.Sprintf("no argument position for %q in %q", arg.Name, fn.Name))
	return 0
}
