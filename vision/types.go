// Package vision invokes a multimodal LLM to analyze rasterized floor
// plans and parses the reply into a typed, fully-defaulted result.
package vision

// DetectedElement is one element the model located on the plan.
// Coordinates are normalized to [0,1] against the image dimensions,
// measured from the top-left corner.
type DetectedElement struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
	Notes string  `json:"notes,omitempty"`
}

// Elements groups detected elements by category. Every list is non-nil
// after normalization.
type Elements struct {
	Exits      []DetectedElement `json:"exits"`
	FireDoors  []DetectedElement `json:"fire_doors"`
	Staircases []DetectedElement `json:"staircases"`
	Equipment  []DetectedElement `json:"equipment"`
	Corridors  []DetectedElement `json:"corridors"`
	Rooms      []DetectedElement `json:"rooms"`
}

// SuggestedSymbol is an AI-proposed symbol placement. It uses the same
// normalized coordinate space and symbol ID vocabulary as
// autoplan.PlacedSymbol, so a reviewer can adopt it verbatim.
type SuggestedSymbol struct {
	SymbolID string  `json:"symbolId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	Label    string  `json:"label,omitempty"`
}

// AnalysisResult is the typed outcome of one floor-plan analysis. The
// analyzer guarantees a well-formed value: optional fields missing from
// the model's JSON are defaulted, never left nil.
type AnalysisResult struct {
	// Confidence is the model's self-reported confidence in [0,1].
	// Advisory only; it is not verified.
	Confidence float64 `json:"confidence"`

	// Scale is the drawing scale if the model detected one
	// (e.g. "1:100"), empty otherwise.
	Scale string `json:"scale,omitempty"`

	// Elements are the detected plan elements by category.
	Elements Elements `json:"elements"`

	// SuggestedSymbols are proposed symbol placements.
	SuggestedSymbols []SuggestedSymbol `json:"suggested_symbols"`

	// Warnings are model-reported issues with the plan.
	Warnings []string `json:"warnings"`

	// RegulatoryNotes are model-reported compliance observations.
	RegulatoryNotes []string `json:"regulatory_notes"`
}

// normalize coerces a freshly-unmarshaled result into the guaranteed
// shape: non-nil lists, confidence clamped to [0,1], coordinates
// clamped to the normalized space.
func (r *AnalysisResult) normalize() {
	r.Confidence = clamp01(r.Confidence)

	if r.Elements.Exits == nil {
		r.Elements.Exits = []DetectedElement{}
	}
	if r.Elements.FireDoors == nil {
		r.Elements.FireDoors = []DetectedElement{}
	}
	if r.Elements.Staircases == nil {
		r.Elements.Staircases = []DetectedElement{}
	}
	if r.Elements.Equipment == nil {
		r.Elements.Equipment = []DetectedElement{}
	}
	if r.Elements.Corridors == nil {
		r.Elements.Corridors = []DetectedElement{}
	}
	if r.Elements.Rooms == nil {
		r.Elements.Rooms = []DetectedElement{}
	}
	if r.SuggestedSymbols == nil {
		r.SuggestedSymbols = []SuggestedSymbol{}
	}
	if r.Warnings == nil {
		r.Warnings = []string{}
	}
	if r.RegulatoryNotes == nil {
		r.RegulatoryNotes = []string{}
	}

	for i := range r.SuggestedSymbols {
		r.SuggestedSymbols[i].X = clamp01(r.SuggestedSymbols[i].X)
		r.SuggestedSymbols[i].Y = clamp01(r.SuggestedSymbols[i].Y)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
