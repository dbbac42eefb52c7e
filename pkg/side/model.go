package side

import (
	"github.com/ha1tch/printarea/pkg/geom"
)

// DuplicateOffset is how far a duplicate is shifted from its source.
const DuplicateOffset = 20

// Model edits the areas of one side on a surface of fixed bounds.
// Every operation leaves each touched rectangle inside the bounds and at
// least geom.MinSize on both axes. Operations on a bad reference are
// no-ops that report false.
type Model struct {
	Side   *Side
	Bounds geom.Bounds
}

// NewModel returns a model for s on a surface of size b.
func NewModel(s *Side, b geom.Bounds) *Model {
	return &Model{Side: s, Bounds: b}
}

// AddArea appends a new area of type t and returns its reference and id.
// The rectangle is clamped to the surface.
func (m *Model) AddArea(t AreaType, name string, r geom.Rect) (Ref, string) {
	l := m.Side.list(t)
	if l == nil {
		return NoRef, ""
	}
	a := Area{
		ID:   newID(*l),
		Name: name,
		Rect: m.Bounds.Clamp(r),
		Type: t,
	}
	*l = append(*l, a)
	return Ref{Type: t, Index: len(*l) - 1}, a.ID
}

// RemoveArea splices the referenced area out of its list.
func (m *Model) RemoveArea(r Ref) bool {
	if m.Side.areaPtr(r) == nil {
		return false
	}
	l := m.Side.list(r.Type)
	*l = append((*l)[:r.Index], (*l)[r.Index+1:]...)
	return true
}

// DuplicateArea appends a copy of the referenced area, offset by
// DuplicateOffset on both axes and clamped to the surface, with a fresh
// id and " (Copy)" appended to its name.
func (m *Model) DuplicateArea(r Ref) (Ref, bool) {
	src := m.Side.areaPtr(r)
	if src == nil {
		return NoRef, false
	}
	l := m.Side.list(r.Type)
	dup := Area{
		ID:   newID(*l),
		Name: src.Name + " (Copy)",
		Rect: m.Bounds.Clamp(src.Rect.Offset(DuplicateOffset, DuplicateOffset)),
		Type: r.Type,
	}
	*l = append(*l, dup)
	return Ref{Type: r.Type, Index: len(*l) - 1}, true
}

// MoveArea translates the referenced area by (dx, dy), keeping it fully
// on the surface.
func (m *Model) MoveArea(r Ref, dx, dy int) bool {
	a := m.Side.areaPtr(r)
	if a == nil {
		return false
	}
	a.Rect = m.Bounds.Clamp(a.Rect.Offset(dx, dy))
	return true
}

// MoveAreaTo places the referenced area's origin at (x, y), clamped.
func (m *Model) MoveAreaTo(r Ref, x, y int) bool {
	a := m.Side.areaPtr(r)
	if a == nil {
		return false
	}
	return m.MoveArea(r, x-a.Rect.X, y-a.Rect.Y)
}

// ResizeArea drags handle h of the referenced area by (dx, dy).
func (m *Model) ResizeArea(r Ref, h geom.Handle, dx, dy int) bool {
	a := m.Side.areaPtr(r)
	if a == nil {
		return false
	}
	a.Rect = geom.Resize(a.Rect, h, dx, dy, m.Bounds)
	return true
}

// SetRect replaces the referenced area's rectangle. The value is floored
// and clamped the same way a gesture would be.
func (m *Model) SetRect(r Ref, rect geom.Rect) bool {
	a := m.Side.areaPtr(r)
	if a == nil {
		return false
	}
	a.Rect = m.Bounds.Clamp(rect)
	return true
}

// Rename sets the referenced area's display name.
func (m *Model) Rename(r Ref, name string) bool {
	a := m.Side.areaPtr(r)
	if a == nil {
		return false
	}
	a.Name = name
	return true
}

// AreaAt returns the topmost area containing p. Print areas paint above
// restriction areas, and later entries paint above earlier ones, so print
// areas are searched first, each list from the end.
func (m *Model) AreaAt(p geom.Point) (Ref, bool) {
	return AreaAt(m.Side, p)
}

// AreaAt is the hit test behind Model.AreaAt.
func AreaAt(s *Side, p geom.Point) (Ref, bool) {
	if s == nil {
		return NoRef, false
	}
	for _, t := range []AreaType{TypePrint, TypeRestriction} {
		list := s.Areas(t)
		for i := len(list) - 1; i >= 0; i-- {
			if list[i].Rect.Contains(p) {
				return Ref{Type: t, Index: i}, true
			}
		}
	}
	return NoRef, false
}

// InsertArea puts a at r.Index in r.Type's list, keeping its id. The
// index may equal the list length. The rectangle is clamped.
func (m *Model) InsertArea(r Ref, a Area) bool {
	l := m.Side.list(r.Type)
	if l == nil || r.Index < 0 || r.Index > len(*l) {
		return false
	}
	a.Type = r.Type
	a.Rect = m.Bounds.Clamp(a.Rect)
	*l = append(*l, Area{})
	copy((*l)[r.Index+1:], (*l)[r.Index:])
	(*l)[r.Index] = a
	return true
}

// ReplaceArea overwrites the referenced area with a. The type tag follows
// the list and the rectangle is clamped.
func (m *Model) ReplaceArea(r Ref, a Area) bool {
	p := m.Side.areaPtr(r)
	if p == nil {
		return false
	}
	a.Type = r.Type
	a.Rect = m.Bounds.Clamp(a.Rect)
	*p = a
	return true
}
