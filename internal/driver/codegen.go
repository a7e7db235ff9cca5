// Package driver orchestrates multi-unit backend runs for the CLI.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"sable/internal/backend/llvm"
	"sable/internal/diag"
	"sable/internal/sir"
	"sable/internal/source"
	"sable/internal/types"
)

// CodegenRequest describes one codegen run over a directory of lowered units.
type CodegenRequest struct {
	// Dir is scanned recursively for *.sir unit files and *.sb sources.
	Dir string
	// OutDir receives one *.dbg.msgpack dump per unit. Empty means
	// alongside the unit file.
	OutDir         string
	DebugInfo      bool
	OptLevel       int
	MaxDiagnostics int
	// Jobs limits worker goroutines; <= 0 means GOMAXPROCS.
	Jobs int
}

// CodegenResult is the outcome for a single unit file.
type CodegenResult struct {
	Path    string // unit file path
	OutPath string // written dump, "" when the unit failed to decode
	Bag     *diag.Bag
	Nodes   int // metadata entries emitted
}

// listFilesWithSuffix returns a sorted list of matching files under dir.
func listFilesWithSuffix(dir, suffix string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, suffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Sort for a deterministic order; unit positions are only meaningful
	// against sources loaded in the same order the frontend used.
	sort.Strings(files)
	return files, nil
}

// loadSources loads every *.sb file under dir into a fresh FileSet, in sorted
// order so position bases line up with the frontend's.
func loadSources(dir string) (*source.FileSet, error) {
	files, err := listFilesWithSuffix(dir, ".sb")
	if err != nil {
		return nil, err
	}
	fset := source.NewFileSet()
	for _, path := range files {
		if _, err := fset.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load source %q: %w", path, err)
		}
	}
	return fset, nil
}

// CodegenDir processes every unit file under req.Dir in parallel. Each unit
// gets its own metadata builder and diagnostic bag; the shared file set and
// type interner are only read during emission.
func CodegenDir(ctx context.Context, req *CodegenRequest) ([]CodegenResult, error) {
	units, err := listFilesWithSuffix(req.Dir, ".sir")
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, nil
	}

	fset, err := loadSources(req.Dir)
	if err != nil {
		return nil, err
	}
	typesIn := types.NewInterner()

	if req.OutDir != "" {
		if err := os.MkdirAll(req.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Indexes are unique per goroutine, no mutex needed.
	results := make([]CodegenResult, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(units)))

	for i, path := range units {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(req.MaxDiagnostics)
			results[i] = CodegenResult{Path: path, Bag: bag}

			outPath, nodes, err := codegenUnit(path, req, fset, typesIn, bag)
			if err != nil {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.DrvBadUnitFile,
					Message:  err.Error(),
				})
				return nil
			}
			results[i].OutPath = outPath
			results[i].Nodes = nodes
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// codegenUnit decodes, lowers, and dumps one unit file.
func codegenUnit(path string, req *CodegenRequest, fset *source.FileSet, typesIn *types.Interner, bag *diag.Bag) (string, int, error) {
	// #nosec G304 -- path comes from the scanned project directory
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open unit: %w", err)
	}
	mod, err := sir.DecodeModule(f)
	closeErr := f.Close()
	if err != nil {
		return "", 0, err
	}
	if closeErr != nil {
		return "", 0, closeErr
	}

	builder, err := llvm.EmitModule(mod, fset, typesIn, diag.BagReporter{Bag: bag}, llvm.EmitOptions{
		DebugInfo: req.DebugInfo,
		OptLevel:  req.OptLevel,
	})
	if err != nil {
		return "", 0, err
	}

	outPath := dumpPath(path, req.OutDir)
	out, err := os.Create(outPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create dump: %w", err)
	}
	if err := builder.Encode(out); err != nil {
		_ = out.Close()
		return "", 0, err
	}
	if err := out.Close(); err != nil {
		return "", 0, err
	}
	return outPath, builder.Len(), nil
}

// dumpPath derives the metadata dump path for a unit file.
func dumpPath(unitPath, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(unitPath), ".sir") + ".dbg.msgpack"
	if outDir == "" {
		return filepath.Join(filepath.Dir(unitPath), base)
	}
	return filepath.Join(outDir, base)
}
