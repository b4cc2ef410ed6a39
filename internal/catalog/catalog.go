// Package catalog holds the static vessel-template table (spec.md
// §4.9): named defaults a scenario vessel can reference by name and
// override any field of, in the same default-then-override shape as
// the teacher's gps.DefaultConfig().
package catalog

import (
	"github.com/nmeasim/nmeasim/internal/ais"
	"github.com/nmeasim/nmeasim/internal/simerr"
)

// Template is a named default vessel shape: ship type, class, and
// dimension envelope.
type Template struct {
	Name       string
	Class      ais.Class
	ShipType   int
	Dimensions ais.Dimensions
}

var templates = map[string]Template{
	"cargo": {
		Name: "cargo", Class: ais.ClassA, ShipType: 70,
		Dimensions: ais.Dimensions{ToBow: 120, ToStern: 20, ToPort: 10, ToStarboard: 10},
	},
	"tanker": {
		Name: "tanker", Class: ais.ClassA, ShipType: 80,
		Dimensions: ais.Dimensions{ToBow: 180, ToStern: 30, ToPort: 15, ToStarboard: 15},
	},
	"passenger": {
		Name: "passenger", Class: ais.ClassA, ShipType: 60,
		Dimensions: ais.Dimensions{ToBow: 150, ToStern: 30, ToPort: 12, ToStarboard: 12},
	},
	"fishing": {
		Name: "fishing", Class: ais.ClassB, ShipType: 30,
		Dimensions: ais.Dimensions{ToBow: 12, ToStern: 4, ToPort: 3, ToStarboard: 3},
	},
	"pleasure_craft": {
		Name: "pleasure_craft", Class: ais.ClassB, ShipType: 37,
		Dimensions: ais.Dimensions{ToBow: 8, ToStern: 2, ToPort: 2, ToStarboard: 2},
	},
	"tug": {
		Name: "tug", Class: ais.ClassA, ShipType: 52,
		Dimensions: ais.Dimensions{ToBow: 20, ToStern: 8, ToPort: 5, ToStarboard: 5},
	},
	"pilot_boat": {
		Name: "pilot_boat", Class: ais.ClassB, ShipType: 50,
		Dimensions: ais.Dimensions{ToBow: 10, ToStern: 3, ToPort: 2, ToStarboard: 2},
	},
	"sar_vessel": {
		Name: "sar_vessel", Class: ais.ClassA, ShipType: 51,
		Dimensions: ais.Dimensions{ToBow: 15, ToStern: 5, ToPort: 3, ToStarboard: 3},
	},
}

// Lookup resolves a template by name. An unresolved template name is a
// config error, per spec.md §4.9.
func Lookup(name string) (Template, error) {
	t, ok := templates[name]
	if !ok {
		return Template{}, simerr.Field(simerr.KindConfig, "template", "unknown vessel template: "+name)
	}
	return t, nil
}
