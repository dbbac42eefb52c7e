// Package sidefile reads and writes product side geometry as JSON for the
// bundled hosts.
package sidefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ha1tch/printarea/pkg/geom"
	"github.com/ha1tch/printarea/pkg/side"
)

// ErrNoSides is returned when a document holds no sides at all.
var ErrNoSides = errors.New("no sides in document")

// jsonProduct is the JSON representation of a product.
type jsonProduct struct {
	Name  string     `json:"name,omitempty"`
	Sides []jsonSide `json:"sides"`
}

type jsonSide struct {
	Name             string     `json:"name"`
	Image            string     `json:"image,omitempty"`
	PrintAreas       []jsonArea `json:"printAreas"`
	RestrictionAreas []jsonArea `json:"restrictionAreas"`
}

type jsonArea struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Type   string `json:"type,omitempty"`
}

// ParseJSON parses a product from JSON. A document holding a single side
// object (no "sides" key) is accepted as a one-sided product. Area type
// tags always follow the list an area appears in.
func ParseJSON(data []byte) (*side.Product, error) {
	var j jsonProduct
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse product: %w", err)
	}

	if j.Sides == nil {
		var single jsonSide
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("parse side: %w", err)
		}
		if single.PrintAreas == nil && single.RestrictionAreas == nil && single.Name == "" {
			return nil, ErrNoSides
		}
		j.Sides = []jsonSide{single}
	}
	if len(j.Sides) == 0 {
		return nil, ErrNoSides
	}

	p := &side.Product{Name: j.Name, Sides: make([]side.Side, 0, len(j.Sides))}
	for _, js := range j.Sides {
		p.Sides = append(p.Sides, side.Side{
			Name:             js.Name,
			Image:            js.Image,
			PrintAreas:       toAreas(js.PrintAreas, side.TypePrint),
			RestrictionAreas: toAreas(js.RestrictionAreas, side.TypeRestriction),
		})
	}
	return p, nil
}

func toAreas(in []jsonArea, t side.AreaType) []side.Area {
	out := make([]side.Area, 0, len(in))
	for _, ja := range in {
		out = append(out, side.Area{
			ID:   ja.ID,
			Name: ja.Name,
			Rect: geom.Rect{X: ja.X, Y: ja.Y, Width: ja.Width, Height: ja.Height},
			Type: t,
		})
	}
	return out
}

func fromAreas(in []side.Area) []jsonArea {
	out := make([]jsonArea, 0, len(in))
	for _, a := range in {
		out = append(out, jsonArea{
			ID:     a.ID,
			Name:   a.Name,
			X:      a.Rect.X,
			Y:      a.Rect.Y,
			Width:  a.Rect.Width,
			Height: a.Rect.Height,
			Type:   string(a.Type),
		})
	}
	return out
}

// ToJSON converts a product to JSON.
func ToJSON(p *side.Product, pretty bool) ([]byte, error) {
	j := jsonProduct{Name: p.Name, Sides: make([]jsonSide, 0, len(p.Sides))}
	for _, s := range p.Sides {
		j.Sides = append(j.Sides, jsonSide{
			Name:             s.Name,
			Image:            s.Image,
			PrintAreas:       fromAreas(s.PrintAreas),
			RestrictionAreas: fromAreas(s.RestrictionAreas),
		})
	}

	if pretty {
		return json.MarshalIndent(j, "", "  ")
	}
	return json.Marshal(j)
}

// ReadFile loads a product from a JSON file.
func ReadFile(path string) (*side.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logrus.WithFields(logrus.Fields{
		"path":  path,
		"sides": len(p.Sides),
	}).Debug("Product loaded")
	return p, nil
}

// WriteFile saves a product as indented JSON.
func WriteFile(path string, p *side.Product) error {
	data, err := ToJSON(p, true)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"path":  path,
		"sides": len(p.Sides),
	}).Debug("Product saved")
	return nil
}
