// Package symbol provides the static catalog of fire-safety symbol
// definitions used on AutoPlan drawings. The catalog is loaded once at
// package init and is read-only thereafter.
package symbol

// Category classifies a symbol by its fire-safety function.
type Category string

const (
	// CategoryEscape covers escape routes, exits and assembly points.
	CategoryEscape Category = "escape"

	// CategoryEquipment covers portable and fixed firefighting equipment.
	CategoryEquipment Category = "equipment"

	// CategoryDoors covers fire-rated door sets.
	CategoryDoors Category = "doors"

	// CategoryDetection covers detection and alarm devices.
	CategoryDetection Category = "detection"

	// CategorySuppression covers fixed suppression systems.
	CategorySuppression Category = "suppression"

	// CategoryLighting covers emergency lighting and signage.
	CategoryLighting Category = "lighting"
)

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// IsValid returns true if the category is a recognized value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryEscape, CategoryEquipment, CategoryDoors,
		CategoryDetection, CategorySuppression, CategoryLighting:
		return true
	}
	return false
}

// Categories lists all valid categories in catalog order.
func Categories() []Category {
	return []Category{
		CategoryEscape,
		CategoryEquipment,
		CategoryDoors,
		CategoryDetection,
		CategorySuppression,
		CategoryLighting,
	}
}

// RGB is a 24-bit color used for symbol rendering.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Definition describes one catalog entry. Definitions are immutable;
// other structures reference a definition by ID only.
type Definition struct {
	// ID is the globally unique symbol identifier.
	ID string `json:"id"`

	// Label is the human-readable name shown in legends.
	Label string `json:"label"`

	// ShortLabel is the abbreviation rendered inside the symbol shape.
	ShortLabel string `json:"short_label"`

	// Category groups related symbols.
	Category Category `json:"category"`

	// Foreground is the label color.
	Foreground RGB `json:"foreground"`

	// Background is the shape fill color.
	Background RGB `json:"background"`

	// Standard is the regulatory standard the symbol derives from.
	Standard string `json:"standard"`

	// DefaultWidth is the default render width in points.
	DefaultWidth float64 `json:"default_width"`

	// DefaultHeight is the default render height in points.
	DefaultHeight float64 `json:"default_height"`
}
