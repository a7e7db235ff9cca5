package source

import (
	"testing"
)

func TestFileSetBasesDoNotOverlap(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("a.sb", []byte("hello\nworld"), 0)
	id2 := fs.Add("b.sb", []byte("second"), 0)

	f1 := fs.Get(id1)
	f2 := fs.Get(id2)

	if f1.Base == NoPos {
		t.Fatalf("first base must not be NoPos")
	}
	if f2.Base <= f1.Base+Pos(len(f1.Content)) {
		t.Fatalf("bases overlap: %d vs %d+%d", f2.Base, f1.Base, len(f1.Content))
	}
}

func TestFileContaining(t *testing.T) {
	fs := NewFileSet()
	id1 := fs.AddVirtual("a.sb", []byte("hello\nworld"))
	id2 := fs.AddVirtual("b.sb", []byte("second"))

	f1 := fs.Get(id1)
	f2 := fs.Get(id2)

	if got, ok := fs.FileContaining(f1.Pos(0)); !ok || got.ID != id1 {
		t.Fatalf("expected a.sb at its base, got %v ok=%v", got, ok)
	}
	if got, ok := fs.FileContaining(f2.Pos(3)); !ok || got.ID != id2 {
		t.Fatalf("expected b.sb at base+3, got %v ok=%v", got, ok)
	}
	if _, ok := fs.FileContaining(NoPos); ok {
		t.Fatalf("NoPos must not resolve to any file")
	}
	if _, ok := fs.FileContaining(f2.Pos(f2.Size()) + 100); ok {
		t.Fatalf("position past the last file must not resolve")
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.sb", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{2, 1, 3},
		{4, 2, 1},
		{8, 3, 1},
		{12, 3, 5},
	}
	for _, c := range cases {
		got, lc, ok := fs.Resolve(f.Pos(c.off))
		if !ok {
			t.Fatalf("offset %d did not resolve", c.off)
		}
		if got.ID != id {
			t.Fatalf("offset %d resolved to wrong file %d", c.off, got.ID)
		}
		if lc.Line != c.line || lc.Col != c.col {
			t.Errorf("offset %d: expected %d:%d, got %d:%d", c.off, c.line, c.col, lc.Line, lc.Col)
		}
	}
}

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.sb", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Add("test.sb", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("test.sb")
	if !exists {
		t.Error("expected file to exist after Add")
	}
	if latestID != id2 {
		t.Errorf("expected latest ID to be %d, got %d", id2, latestID)
	}

	if string(fs.Get(id1).Content) != "hello world" {
		t.Errorf("first version content changed")
	}
}

func TestEmptyFileOwnsAPosition(t *testing.T) {
	fs := NewFileSet()
	id1 := fs.AddVirtual("empty.sb", nil)
	fs.AddVirtual("next.sb", []byte("x"))

	f := fs.Get(id1)
	got, ok := fs.FileContaining(f.Base)
	if !ok || got.ID != id1 {
		t.Fatalf("empty file must own its base position")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.sb", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	if got := f.GetLine(2); got != "two" {
		t.Errorf("expected line 2 to be 'two', got %q", got)
	}
	if got := f.GetLine(0); got != "" {
		t.Errorf("line 0 must be empty, got %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("out-of-range line must be empty, got %q", got)
	}
}
