package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "sable.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n")

	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("load failed: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "demo" {
		t.Fatalf("package name lost: %+v", m.Config)
	}
	if !m.Config.Build.DebugInfoEnabled() {
		t.Fatalf("debug_info must default to true")
	}
	if m.Config.Build.OptLevel != 0 {
		t.Fatalf("opt_level must default to 0")
	}
}

func TestLoadExplicitBuildSection(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[build]\ndebug_info = false\nopt_level = 2\n")

	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("load failed: ok=%v err=%v", ok, err)
	}
	if m.Config.Build.DebugInfoEnabled() {
		t.Fatalf("explicit debug_info = false ignored")
	}
	if m.Config.Build.OptLevel != 2 {
		t.Fatalf("opt_level lost")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("find failed: ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("expected manifest in %q, got %q", root, path)
	}
}

func TestMissingManifest(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := Load(dir)
	if err != nil {
		t.Fatalf("missing manifest must not error: %v", err)
	}
	if ok {
		t.Fatalf("missing manifest reported as found")
	}
}
