package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sable/internal/sir"
	"sable/internal/source"
)

// writeUnit lowers a tiny module and serializes it where the driver will find
// it. Positions are offsets into main.sb, which the driver loads first.
func writeUnit(t *testing.T, dir string) {
	t.Helper()

	src := []byte("fn main() {\n    let x = 1;\n}\n")
	if err := os.WriteFile(filepath.Join(dir, "main.sb"), src, 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	// The frontend loads sources in sorted order; with a single file the
	// base is 1, so global position = offset + 1.
	fd := &sir.FuncDecl{Name: "main", Pos: source.Pos(1)}
	ds := sir.NewScope(nil, sir.DeclLoc(fd))
	fn := &sir.Func{Name: "_S4demo4mainyyF", Scope: ds}
	entry := fn.NewBlock()
	entry.Append(sir.NewAllocVar("x", 0, sir.StmtLoc(source.Pos(17))))

	mod := &sir.Module{Name: "demo", MainFile: "main.sb"}
	mod.AddFunc(fn)

	out, err := os.Create(filepath.Join(dir, "main.sir"))
	if err != nil {
		t.Fatalf("create unit: %v", err)
	}
	defer out.Close()
	if err := sir.EncodeModule(out, mod); err != nil {
		t.Fatalf("encode unit: %v", err)
	}
}

func TestCodegenDir(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir)

	results, err := CodegenDir(context.Background(), &CodegenRequest{
		Dir:            dir,
		DebugInfo:      true,
		MaxDiagnostics: 16,
	})
	if err != nil {
		t.Fatalf("codegen failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("result count = %d, want 1", len(results))
	}

	res := results[0]
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", res.Bag.Items())
	}
	if res.OutPath == "" {
		t.Fatalf("no dump written")
	}
	if res.Nodes == 0 {
		t.Fatalf("empty metadata graph for a unit with a function")
	}
	info, err := os.Stat(res.OutPath)
	if err != nil || info.Size() == 0 {
		t.Fatalf("dump missing or empty: %v", err)
	}
}

func TestCodegenDirWithoutDebugInfo(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir)

	results, err := CodegenDir(context.Background(), &CodegenRequest{
		Dir:            dir,
		DebugInfo:      false,
		MaxDiagnostics: 16,
	})
	if err != nil {
		t.Fatalf("codegen failed: %v", err)
	}
	if results[0].Nodes != 0 {
		t.Fatalf("debug info disabled but %d nodes emitted", results[0].Nodes)
	}
}

func TestCodegenDirRejectsCorruptUnit(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.sir"), []byte("not msgpack"), 0o644); err != nil {
		t.Fatalf("write unit: %v", err)
	}

	results, err := CodegenDir(context.Background(), &CodegenRequest{
		Dir:            dir,
		DebugInfo:      true,
		MaxDiagnostics: 16,
	})
	if err != nil {
		t.Fatalf("corrupt unit must not fail the run: %v", err)
	}
	if !results[0].Bag.HasErrors() {
		t.Fatalf("corrupt unit produced no diagnostic")
	}
	if results[0].OutPath != "" {
		t.Fatalf("dump written for a corrupt unit")
	}
}

func TestCodegenDirEmpty(t *testing.T) {
	results, err := CodegenDir(context.Background(), &CodegenRequest{Dir: t.TempDir(), DebugInfo: true})
	if err != nil {
		t.Fatalf("empty directory must not fail: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("results for an empty directory: %d", len(results))
	}
}
