// Package side holds the product-side geometry the editor works on:
// print areas, restriction areas, and the operations that keep them valid.
package side

import (
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/ha1tch/printarea/pkg/geom"
)

// AreaType tags an area as a print area or a restriction area.
type AreaType string

const (
	TypePrint       AreaType = "print"
	TypeRestriction AreaType = "restriction"
)

// Valid reports whether t is a known area type.
func (t AreaType) Valid() bool {
	return t == TypePrint || t == TypeRestriction
}

// Area is one rectangle on a side.
type Area struct {
	ID   string
	Name string
	Rect geom.Rect
	Type AreaType
}

// Side is one face of a product.
type Side struct {
	Name             string
	Image            string // template image reference, empty for none
	PrintAreas       []Area
	RestrictionAreas []Area
}

// Product groups the sides a host hands to the editor.
type Product struct {
	Name  string
	Sides []Side
}

// Side returns a pointer to side i, or nil when i is out of range.
func (p *Product) Side(i int) *Side {
	if p == nil || i < 0 || i >= len(p.Sides) {
		return nil
	}
	return &p.Sides[i]
}

// Ref addresses one area of a side by type and list index.
// An Index of -1 means no area.
type Ref struct {
	Type  AreaType
	Index int
}

// NoRef is the empty selection.
var NoRef = Ref{Index: -1}

// Valid reports whether r points at an area.
func (r Ref) Valid() bool {
	return r.Index >= 0 && r.Type.Valid()
}

func (r Ref) String() string {
	if !r.Valid() {
		return "none"
	}
	return fmt.Sprintf("%s[%d]", r.Type, r.Index)
}

// Areas returns the list for type t.
func (s *Side) Areas(t AreaType) []Area {
	switch t {
	case TypePrint:
		return s.PrintAreas
	case TypeRestriction:
		return s.RestrictionAreas
	}
	return nil
}

// Area returns the area addressed by r.
func (s *Side) Area(r Ref) (Area, bool) {
	a := s.areaPtr(r)
	if a == nil {
		return Area{}, false
	}
	return *a, true
}

// Count returns the number of areas of type t.
func (s *Side) Count(t AreaType) int {
	return len(s.Areas(t))
}

func (s *Side) list(t AreaType) *[]Area {
	switch t {
	case TypePrint:
		return &s.PrintAreas
	case TypeRestriction:
		return &s.RestrictionAreas
	}
	return nil
}

func (s *Side) areaPtr(r Ref) *Area {
	if s == nil {
		return nil
	}
	l := s.list(r.Type)
	if l == nil || r.Index < 0 || r.Index >= len(*l) {
		return nil
	}
	return &(*l)[r.Index]
}

// DefaultName returns the name given to the next area of type t drawn on s,
// numbered from 1 by the current count.
func (s *Side) DefaultName(t AreaType) string {
	n := s.Count(t) + 1
	if t == TypeRestriction {
		return fmt.Sprintf("Restriction %d", n)
	}
	return fmt.Sprintf("Print Area %d", n)
}

// newID returns an identifier not used by any area in list.
func newID(list []Area) string {
	for {
		id := ulid.Make().String()
		taken := false
		for _, a := range list {
			if a.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}
