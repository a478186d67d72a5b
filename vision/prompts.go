package vision

import (
	"fmt"
	"strings"

	"github.com/buildsafe/firecore/autoplan"
	"github.com/buildsafe/firecore/symbol"
)

// analysisSystemPrompt is the system prompt for floor-plan analysis.
const analysisSystemPrompt = `You are a UK fire-safety engineer analyzing architectural floor plans. You identify fire-safety-relevant elements and propose symbol placements for a fire safety plan.

All coordinates you report are normalized to the image: x and y are in [0,1], measured from the top-left corner (x right, y down).

Always respond with valid JSON. Do not include any text outside the JSON object.`

// analysisUserPromptTemplate is the user prompt for floor-plan
// analysis. Placeholders: building context block, candidate symbol ids.
const analysisUserPromptTemplate = `Analyze the attached floor plan image for the following building:

%s

Identify these element categories on the plan:
- exits: final exits and fire exits
- fire_doors: fire-rated door sets on escape routes
- staircases: protected and accommodation stairs
- equipment: extinguishers, hose reels, risers, call points
- corridors: escape corridors and protected lobbies
- rooms: rooms of notable fire risk (plant, kitchens, stores)

Then propose symbol placements. Use only these symbol ids:
%s

Respond with JSON only, in exactly this shape:
{
  "confidence": 0.0,
  "scale": "1:100 or null if not detectable",
  "elements": {
    "exits": [{"x":0.0,"y":0.0,"label":"","notes":""}],
    "fire_doors": [], "staircases": [], "equipment": [], "corridors": [], "rooms": []
  },
  "suggested_symbols": [{"symbolId":"fire_exit","x":0.0,"y":0.0,"rotation":0,"label":""}],
  "warnings": ["issues that need human review"],
  "regulatory_notes": ["relevant compliance observations"]
}`

// buildingContext renders the fire-safety-relevant building attributes
// for the prompt.
func buildingContext(b autoplan.Building) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "- Name: %s\n", b.Name)
	fmt.Fprintf(&sb, "- Jurisdiction: %s\n", b.Jurisdiction)
	fmt.Fprintf(&sb, "- Height: %.1f m, %d storeys\n", b.HeightMetres, b.Storeys)
	fmt.Fprintf(&sb, "- Use class: %s\n", b.UseClass)
	fmt.Fprintf(&sb, "- Evacuation strategy: %s\n", b.EvacuationStrategy)
	fmt.Fprintf(&sb, "- Sprinklers: %s\n", yesNo(b.HasSprinklers))
	fmt.Fprintf(&sb, "- Dry riser: %s, wet riser: %s\n", yesNo(b.HasDryRiser), yesNo(b.HasWetRiser))
	fmt.Fprintf(&sb, "- Firefighting lifts: %d", b.FirefightingLifts)

	return sb.String()
}

// analysisUserPrompt assembles the full user prompt for a building.
func analysisUserPrompt(b autoplan.Building) string {
	return fmt.Sprintf(analysisUserPromptTemplate,
		buildingContext(b),
		strings.Join(symbol.IDs(), ", "))
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
