package metadata

import (
	"bytes"
	"testing"
)

func TestNodeIDsAreStable(t *testing.T) {
	b := NewBuilder()
	f := b.CreateFile("a.sb", "/src")
	blk := b.CreateLexicalBlock(f, f, 3, 1)

	n, ok := b.Get(blk)
	if !ok {
		t.Fatalf("fresh node must be alive")
	}
	if n.Tag != TagLexicalBlock || n.Scope != f || n.Line != 3 {
		t.Fatalf("node fields lost: %+v", n)
	}
}

func TestReleaseTombstonesWithoutReuse(t *testing.T) {
	b := NewBuilder()
	f := b.CreateFile("a.sb", "/src")
	b.Release(f)

	if b.Alive(f) {
		t.Fatalf("released node must be dead")
	}
	if _, ok := b.Get(f); ok {
		t.Fatalf("Get must fail on a released node")
	}

	g := b.CreateFile("b.sb", "/src")
	if g == f {
		t.Fatalf("slots must never be reused")
	}
}

func TestFinalizeTwicePanics(t *testing.T) {
	b := NewBuilder()
	b.Finalize()

	defer func() {
		if recover() == nil {
			t.Fatalf("second Finalize must panic")
		}
	}()
	b.Finalize()
}

func TestMutationAfterFinalizePanics(t *testing.T) {
	b := NewBuilder()
	b.Finalize()

	defer func() {
		if recover() == nil {
			t.Fatalf("creating nodes after Finalize must panic")
		}
	}()
	b.CreateFile("late.sb", "/src")
}

func TestDoubleCompileUnitPanics(t *testing.T) {
	b := NewBuilder()
	b.CreateCompileUnit(LangSable, "a.sb", "/src", "sablec", false, "", 1, "")

	defer func() {
		if recover() == nil {
			t.Fatalf("second compile unit must panic")
		}
	}()
	b.CreateCompileUnit(LangSable, "b.sb", "/src", "sablec", false, "", 1, "")
}

func TestCurrentLocation(t *testing.T) {
	b := NewBuilder()
	if _, ok := b.CurrentLocation(); ok {
		t.Fatalf("no location should be active initially")
	}
	f := b.CreateFile("a.sb", "/src")
	b.SetCurrentLocation(DebugLoc{Line: 7, Col: 2, Scope: f})
	loc, ok := b.CurrentLocation()
	if !ok || loc.Line != 7 || loc.Scope != f {
		t.Fatalf("current location lost: %+v ok=%v", loc, ok)
	}
	b.ClearCurrentLocation()
	if _, ok := b.CurrentLocation(); ok {
		t.Fatalf("ClearCurrentLocation must drop the ambient location")
	}
}

func TestEncodeOmitsReleasedNodes(t *testing.T) {
	b := NewBuilder()
	b.CreateCompileUnit(LangSable, "a.sb", "/src", "sablec", false, "", 1, "")
	dead := b.CreateFile("dead.sb", "/src")
	b.Release(dead)

	var buf bytes.Buffer
	if err := b.Encode(&buf); err == nil {
		t.Fatalf("encode before Finalize must fail")
	}
	b.Finalize()
	if err := b.Encode(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("dump must not be empty")
	}
}
