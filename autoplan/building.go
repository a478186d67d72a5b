// Package autoplan defines the domain model for AutoPlan fire-safety
// drawings: buildings, floors, plans, placed symbols, annotations and
// approvals.
package autoplan

import "time"

// Jurisdiction identifies the statutory regime a building falls under.
type Jurisdiction string

const (
	JurisdictionEngland  Jurisdiction = "england"
	JurisdictionScotland Jurisdiction = "scotland"
	JurisdictionWales    Jurisdiction = "wales"
)

// String returns the string representation of the jurisdiction.
func (j Jurisdiction) String() string {
	return string(j)
}

// IsValid returns true if the jurisdiction is a recognized value.
func (j Jurisdiction) IsValid() bool {
	switch j {
	case JurisdictionEngland, JurisdictionScotland, JurisdictionWales:
		return true
	}
	return false
}

// Building holds the static facts about a physical building. It is an
// immutable input to analysis and rendering; the core never mutates it.
type Building struct {
	// ID is the unique building identifier.
	ID string `json:"id" yaml:"id"`

	// Name is the display name.
	Name string `json:"name" yaml:"name"`

	// Address is the postal address.
	Address string `json:"address" yaml:"address"`

	// Jurisdiction selects the statutory citation on rendered plans.
	Jurisdiction Jurisdiction `json:"jurisdiction" yaml:"jurisdiction"`

	// HeightMetres is the building height in metres.
	HeightMetres float64 `json:"height_metres" yaml:"height_metres"`

	// Storeys is the number of storeys above ground.
	Storeys int `json:"storeys" yaml:"storeys"`

	// UseClass is the planning use class (e.g. "C3 residential").
	UseClass string `json:"use_class" yaml:"use_class"`

	// EvacuationStrategy is the evacuation approach
	// (e.g. "stay put", "simultaneous", "phased").
	EvacuationStrategy string `json:"evacuation_strategy" yaml:"evacuation_strategy"`

	// HasSprinklers reports whether a sprinkler system is fitted.
	HasSprinklers bool `json:"has_sprinklers" yaml:"has_sprinklers"`

	// HasDryRiser reports whether a dry rising main is fitted.
	HasDryRiser bool `json:"has_dry_riser" yaml:"has_dry_riser"`

	// HasWetRiser reports whether a wet rising main is fitted.
	HasWetRiser bool `json:"has_wet_riser" yaml:"has_wet_riser"`

	// FirefightingLifts is the number of firefighting lifts.
	FirefightingLifts int `json:"firefighting_lifts" yaml:"firefighting_lifts"`

	// ResponsiblePerson is the named responsible person under the
	// Fire Safety Order.
	ResponsiblePerson string `json:"responsible_person" yaml:"responsible_person"`

	// CreatedAt is when the building record was created.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
