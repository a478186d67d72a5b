package symbol

// Color palette shared across the catalog. Backgrounds follow the
// BS EN ISO 7010 signage conventions: green for safe condition, red for
// fire equipment, blue for mandatory.
var (
	white      = RGB{R: 255, G: 255, B: 255}
	black      = RGB{R: 33, G: 33, B: 33}
	safeGreen  = RGB{R: 0, G: 128, B: 64}
	fireRed    = RGB{R: 196, G: 30, B: 30}
	infoBlue   = RGB{R: 0, G: 82, B: 155}
	doorBrown  = RGB{R: 121, G: 85, B: 61}
	alarmAmber = RGB{R: 230, G: 145, B: 0}
)

// catalog is the complete symbol set, ordered by category then by ID.
var catalog = []Definition{
	// Escape
	{ID: "fire_exit", Label: "Fire Exit", ShortLabel: "EXIT", Category: CategoryEscape,
		Foreground: white, Background: safeGreen, Standard: "BS EN ISO 7010 E001",
		DefaultWidth: 36, DefaultHeight: 24},
	{ID: "escape_route", Label: "Escape Route", ShortLabel: "ER", Category: CategoryEscape,
		Foreground: white, Background: safeGreen, Standard: "BS EN ISO 7010 E002",
		DefaultWidth: 32, DefaultHeight: 20},
	{ID: "assembly_point", Label: "Assembly Point", ShortLabel: "AP", Category: CategoryEscape,
		Foreground: white, Background: safeGreen, Standard: "BS EN ISO 7010 E007",
		DefaultWidth: 28, DefaultHeight: 28},
	{ID: "refuge_point", Label: "Refuge Point", ShortLabel: "REF", Category: CategoryEscape,
		Foreground: white, Background: safeGreen, Standard: "BS 9999:2017 Annex G",
		DefaultWidth: 30, DefaultHeight: 22},

	// Equipment
	{ID: "fire_extinguisher", Label: "Fire Extinguisher", ShortLabel: "EXT", Category: CategoryEquipment,
		Foreground: white, Background: fireRed, Standard: "BS EN ISO 7010 F001",
		DefaultWidth: 26, DefaultHeight: 26},
	{ID: "hose_reel", Label: "Hose Reel", ShortLabel: "HR", Category: CategoryEquipment,
		Foreground: white, Background: fireRed, Standard: "BS EN ISO 7010 F002",
		DefaultWidth: 26, DefaultHeight: 26},
	{ID: "fire_blanket", Label: "Fire Blanket", ShortLabel: "FB", Category: CategoryEquipment,
		Foreground: white, Background: fireRed, Standard: "BS EN ISO 7010 F016",
		DefaultWidth: 24, DefaultHeight: 24},
	{ID: "dry_riser_inlet", Label: "Dry Riser Inlet", ShortLabel: "DRI", Category: CategoryEquipment,
		Foreground: white, Background: fireRed, Standard: "BS 9990:2015",
		DefaultWidth: 24, DefaultHeight: 24},
	{ID: "dry_riser_outlet", Label: "Dry Riser Outlet", ShortLabel: "DRO", Category: CategoryEquipment,
		Foreground: white, Background: fireRed, Standard: "BS 9990:2015",
		DefaultWidth: 24, DefaultHeight: 24},
	{ID: "fire_alarm_call_point", Label: "Manual Call Point", ShortLabel: "MCP", Category: CategoryEquipment,
		Foreground: white, Background: fireRed, Standard: "BS 5839-1:2017",
		DefaultWidth: 22, DefaultHeight: 22},

	// Doors
	{ID: "fire_door_30", Label: "Fire Door FD30", ShortLabel: "FD30", Category: CategoryDoors,
		Foreground: white, Background: doorBrown, Standard: "BS EN 1634-1",
		DefaultWidth: 34, DefaultHeight: 18},
	{ID: "fire_door_60", Label: "Fire Door FD60", ShortLabel: "FD60", Category: CategoryDoors,
		Foreground: white, Background: doorBrown, Standard: "BS EN 1634-1",
		DefaultWidth: 34, DefaultHeight: 18},
	{ID: "final_exit_door", Label: "Final Exit Door", ShortLabel: "FED", Category: CategoryDoors,
		Foreground: white, Background: safeGreen, Standard: "BS 9999:2017",
		DefaultWidth: 34, DefaultHeight: 18},

	// Detection
	{ID: "smoke_detector", Label: "Smoke Detector", ShortLabel: "SD", Category: CategoryDetection,
		Foreground: black, Background: white, Standard: "BS 5839-1:2017",
		DefaultWidth: 20, DefaultHeight: 20},
	{ID: "heat_detector", Label: "Heat Detector", ShortLabel: "HD", Category: CategoryDetection,
		Foreground: black, Background: white, Standard: "BS 5839-1:2017",
		DefaultWidth: 20, DefaultHeight: 20},
	{ID: "fire_alarm_panel", Label: "Fire Alarm Panel", ShortLabel: "FAP", Category: CategoryDetection,
		Foreground: white, Background: alarmAmber, Standard: "BS 5839-1:2017",
		DefaultWidth: 28, DefaultHeight: 22},

	// Suppression
	{ID: "sprinkler_head", Label: "Sprinkler Head", ShortLabel: "SPR", Category: CategorySuppression,
		Foreground: white, Background: infoBlue, Standard: "BS EN 12845",
		DefaultWidth: 20, DefaultHeight: 20},
	{ID: "sprinkler_stop_valve", Label: "Sprinkler Stop Valve", ShortLabel: "SSV", Category: CategorySuppression,
		Foreground: white, Background: infoBlue, Standard: "BS EN 12845",
		DefaultWidth: 24, DefaultHeight: 24},

	// Lighting
	{ID: "emergency_light", Label: "Emergency Light", ShortLabel: "EL", Category: CategoryLighting,
		Foreground: black, Background: white, Standard: "BS 5266-1:2016",
		DefaultWidth: 22, DefaultHeight: 16},
	{ID: "exit_sign", Label: "Illuminated Exit Sign", ShortLabel: "ES", Category: CategoryLighting,
		Foreground: white, Background: safeGreen, Standard: "BS 5266-1:2016",
		DefaultWidth: 30, DefaultHeight: 16},
}

// index maps symbol ID to its catalog position.
var index = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, def := range catalog {
		m[def.ID] = i
	}
	return m
}()

// Get returns the definition for the given symbol ID. The second return
// value is false for unknown IDs; callers must treat an unknown ID as
// skip-not-crash.
func Get(id string) (Definition, bool) {
	i, ok := index[id]
	if !ok {
		return Definition{}, false
	}
	return catalog[i], true
}

// ListByCategory returns the definitions in the given category, in
// catalog order. Unknown categories return an empty list.
func ListByCategory(category Category) []Definition {
	var defs []Definition
	for _, def := range catalog {
		if def.Category == category {
			defs = append(defs, def)
		}
	}
	return defs
}

// All returns every definition in catalog order.
func All() []Definition {
	defs := make([]Definition, len(catalog))
	copy(defs, catalog)
	return defs
}

// IDs returns every symbol ID in catalog order.
func IDs() []string {
	ids := make([]string, len(catalog))
	for i, def := range catalog {
		ids[i] = def.ID
	}
	return ids
}
