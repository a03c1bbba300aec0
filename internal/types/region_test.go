package types

import "testing"

func TestRegionPredicates(t *testing.T) {
	r := Region{Start: 2, End: 6}
	if r.IsCaret() || !Caret(3).IsCaret() {
		t.Error("IsCaret mismatch")
	}
	if r.Len() != 4 {
		t.Errorf("Len = %d", r.Len())
	}
	if !r.Contains(Region{3, 6}) || r.Contains(Region{1, 3}) {
		t.Error("Contains mismatch")
	}
	if !r.ContainsPos(6) || r.ContainsPos(7) {
		t.Error("ContainsPos mismatch")
	}
	if !r.Overlaps(Region{5, 9}) || r.Overlaps(Region{6, 9}) {
		t.Error("Overlaps mismatch")
	}
}

func TestRegionClampAndNormalize(t *testing.T) {
	got := Region{-4, 20}.Clamp(Region{0, 10})
	if got != (Region{0, 10}) {
		t.Errorf("Clamp = %v", got)
	}
	if n := (Region{7, 3}).Normalize(); n != (Region{3, 7}) {
		t.Errorf("Normalize = %v", n)
	}
	if (Region{7, 3}).Valid() || !(Region{0, 0}).Valid() {
		t.Error("Valid mismatch")
	}
	if s := (Region{1, 2}).String(); s != "[1,2)" {
		t.Errorf("String = %q", s)
	}
}
