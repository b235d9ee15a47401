package classifier

import "testing"

func TestScanner(t *testing.T) {
	fields := []Field{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	sc := NewScanner(fields)

	if sc.Done() {
		t.Fatal("fresh scanner reports Done")
	}
	if f := sc.Peek(); f == nil || f.Name != "a" {
		t.Fatalf("Peek = %v, want field a", f)
	}
	// Peek does not consume
	if f := sc.Peek(); f == nil || f.Name != "a" {
		t.Fatal("second Peek moved the cursor")
	}

	sc.Advance()
	pos := sc.Pos()
	sc.Advance()
	sc.Advance()
	if !sc.Done() {
		t.Error("scanner not Done after consuming all fields")
	}
	if sc.Peek() != nil {
		t.Error("Peek on exhausted scanner != nil")
	}
	// Advancing past the end is a no-op
	sc.Advance()

	sc.Rewind(pos)
	if f := sc.Peek(); f == nil || f.Name != "b" {
		t.Errorf("after Rewind Peek = %v, want field b", f)
	}
}

func TestScannerEmpty(t *testing.T) {
	sc := NewScanner(nil)
	if !sc.Done() {
		t.Error("empty scanner not Done")
	}
	if sc.Peek() != nil {
		t.Error("empty scanner Peek != nil")
	}
}
