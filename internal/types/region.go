package types

import "fmt"

// Region is a half-open [Start, End) range in the document's linear coordinates.
// Start == End denotes a caret.
type Region struct {
	Start int
	End   int
}

// Caret returns the empty region at pos.
func Caret(pos int) Region {
	return Region{Start: pos, End: pos}
}

// IsCaret reports whether the region is empty.
func (r Region) IsCaret() bool {
	return r.Start == r.End
}

// Len returns End - Start.
func (r Region) Len() int {
	return r.End - r.Start
}

// Valid reports whether Start <= End and both are non-negative.
func (r Region) Valid() bool {
	return r.Start >= 0 && r.Start <= r.End
}

// Contains reports whether o lies fully inside r.
func (r Region) Contains(o Region) bool {
	return r.Start <= o.Start && o.End <= r.End
}

// ContainsPos reports whether Start <= pos <= End.
func (r Region) ContainsPos(pos int) bool {
	return r.Start <= pos && pos <= r.End
}

// Overlaps reports whether the two regions share at least one position.
func (r Region) Overlaps(o Region) bool {
	return r.Start < o.End && o.Start < r.End
}

// Clamp limits r to bounds.
func (r Region) Clamp(bounds Region) Region {
	return Region{Start: clamp(r.Start, bounds.Start, bounds.End), End: clamp(r.End, bounds.Start, bounds.End)}
}

// Normalize swaps Start and End when they are inverted.
func (r Region) Normalize() Region {
	if r.Start > r.End {
		return Region{Start: r.End, End: r.Start}
	}
	return r
}

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
