package side

import (
	"fmt"

	"github.com/ha1tch/printarea/pkg/geom"
)

// Violation describes one area that breaks the geometry invariants.
type Violation struct {
	Ref    Ref
	ID     string
	Reason string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s (%s): %s", v.Ref, v.ID, v.Reason)
}

// Validate checks every area of s against the surface bounds, the minimum
// size, id uniqueness within its list and the type tag.
func Validate(s *Side, b geom.Bounds) []Violation {
	var out []Violation
	for _, t := range []AreaType{TypePrint, TypeRestriction} {
		seen := make(map[string]int)
		for i, a := range s.Areas(t) {
			ref := Ref{Type: t, Index: i}
			r := a.Rect
			if a.ID == "" {
				out = append(out, Violation{ref, a.ID, "missing id"})
			} else if j, dup := seen[a.ID]; dup {
				out = append(out, Violation{ref, a.ID, fmt.Sprintf("duplicate id of %s[%d]", t, j)})
			} else {
				seen[a.ID] = i
			}
			if a.Type != t {
				out = append(out, Violation{ref, a.ID, fmt.Sprintf("type tag %q in %s list", a.Type, t)})
			}
			if r.Width < geom.MinSize || r.Height < geom.MinSize {
				out = append(out, Violation{ref, a.ID, fmt.Sprintf("size %dx%d below %d", r.Width, r.Height, geom.MinSize)})
			}
			if r.X < 0 || r.Y < 0 || r.Right() > b.Width || r.Bottom() > b.Height {
				out = append(out, Violation{ref, a.ID, fmt.Sprintf("rect (%d,%d %dx%d) outside %dx%d surface",
					r.X, r.Y, r.Width, r.Height, b.Width, b.Height)})
			}
		}
	}
	return out
}

// Normalize repairs s in place: every rectangle is clamped to b, type tags
// follow the list an area sits in, and missing or duplicate ids are
// regenerated. It returns the number of areas changed.
func Normalize(s *Side, b geom.Bounds) int {
	changed := 0
	for _, t := range []AreaType{TypePrint, TypeRestriction} {
		l := s.list(t)
		seen := make(map[string]bool)
		for i := range *l {
			a := &(*l)[i]
			before := *a
			a.Rect = b.Clamp(a.Rect)
			a.Type = t
			if a.ID == "" || seen[a.ID] {
				a.ID = newID(*l)
			}
			seen[a.ID] = true
			if *a != before {
				changed++
			}
		}
	}
	return changed
}
