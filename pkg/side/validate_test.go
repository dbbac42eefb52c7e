package side

import (
	"strings"
	"testing"

	"github.com/ha1tch/printarea/pkg/geom"
)

func TestValidate(t *testing.T) {
	s := &Side{
		PrintAreas: []Area{
			{ID: "a", Rect: geom.Rect{X: 0, Y: 0, Width: 50, Height: 50}, Type: TypePrint},
			{ID: "a", Rect: geom.Rect{X: 10, Y: 10, Width: 50, Height: 50}, Type: TypePrint},
			{ID: "b", Rect: geom.Rect{X: 580, Y: 0, Width: 50, Height: 10}, Type: TypePrint},
		},
		RestrictionAreas: []Area{
			{ID: "c", Rect: geom.Rect{X: 0, Y: 0, Width: 50, Height: 50}, Type: TypePrint},
		},
	}

	got := Validate(s, surface)
	reasons := make([]string, 0, len(got))
	for _, v := range got {
		reasons = append(reasons, v.Error())
	}
	joined := strings.Join(reasons, "\n")

	for _, want := range []string{"duplicate id", "below 20", "outside 600x600", "type tag"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected a violation mentioning %q, got:\n%s", want, joined)
		}
	}
	if len(got) != 4 {
		t.Errorf("Expected 4 violations, got %d:\n%s", len(got), joined)
	}
}

func TestNormalize(t *testing.T) {
	s := &Side{
		PrintAreas: []Area{
			{ID: "a", Rect: geom.Rect{X: 0, Y: 0, Width: 50, Height: 50}, Type: TypePrint},
			{ID: "a", Rect: geom.Rect{X: 590, Y: 590, Width: 5, Height: 5}},
		},
	}
	changed := Normalize(s, surface)
	if changed != 1 {
		t.Errorf("Expected 1 changed area, got %d", changed)
	}
	if v := Validate(s, surface); len(v) != 0 {
		t.Errorf("Expected no violations after Normalize, got %v", v)
	}
}
