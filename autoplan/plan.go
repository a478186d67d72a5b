package autoplan

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PlanStatus tracks the review lifecycle of a plan version.
//
//	draft -> review -> approved -> superseded
//
// A rejected review returns to draft; approval and supersession are
// otherwise forward-only.
type PlanStatus string

const (
	PlanDraft      PlanStatus = "draft"
	PlanReview     PlanStatus = "review"
	PlanApproved   PlanStatus = "approved"
	PlanSuperseded PlanStatus = "superseded"
)

// String returns the string representation of the status.
func (s PlanStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a recognized value.
func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanDraft, PlanReview, PlanApproved, PlanSuperseded:
		return true
	}
	return false
}

// CanTransitionTo reports whether the plan lifecycle allows moving from
// s to next.
func (s PlanStatus) CanTransitionTo(next PlanStatus) bool {
	switch s {
	case PlanDraft:
		return next == PlanReview
	case PlanReview:
		return next == PlanApproved || next == PlanDraft
	case PlanApproved:
		return next == PlanSuperseded
	}
	return false
}

// PlacedSymbol is one symbol instance placed on a plan. Position is
// normalized to [0,1] against the floor-plan image dimensions, measured
// from the top-left corner.
type PlacedSymbol struct {
	// ID is the instance identifier, unique within one plan.
	ID string `json:"id"`

	// SymbolID references a symbol.Definition by ID. An ID that no
	// longer resolves is silently skipped at render time.
	SymbolID string `json:"symbol_id"`

	// X is the horizontal position in [0,1], left to right.
	X float64 `json:"x"`

	// Y is the vertical position in [0,1], top to bottom.
	Y float64 `json:"y"`

	// Rotation is the clockwise rotation in degrees.
	Rotation float64 `json:"rotation"`

	// Scale is a uniform size multiplier; 1.0 renders at the symbol's
	// default size.
	Scale float64 `json:"scale"`

	// Label optionally overrides the symbol's short label.
	Label string `json:"label,omitempty"`

	// Metadata carries free-form per-instance attributes.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// NewPlacedSymbol creates a placed symbol with a fresh instance ID and
// default scale.
func NewPlacedSymbol(symbolID string, x, y float64) PlacedSymbol {
	return PlacedSymbol{
		ID:       uuid.New().String(),
		SymbolID: symbolID,
		X:        x,
		Y:        y,
		Scale:    1.0,
	}
}

// Viewport is the presentation-only canvas state saved with a plan.
type Viewport struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"pan_x"`
	PanY float64 `json:"pan_y"`
}

// Plan is the working document overlaid on one floor. Edit history is
// version-based: each save is a new Plan row with an incremented
// version, never an in-place rewrite of an old one.
type Plan struct {
	// ID is the unique plan identifier.
	ID string `json:"id"`

	// FloorID references the floor the plan is drawn over.
	FloorID string `json:"floor_id"`

	// Reference is the drawing reference shown in the title block.
	Reference string `json:"reference"`

	// Version increases monotonically per floor.
	Version int `json:"version"`

	// Status tracks the review lifecycle.
	Status PlanStatus `json:"status"`

	// Symbols is the current placed-symbol list, owned exclusively by
	// this plan version.
	Symbols []PlacedSymbol `json:"symbols"`

	// Annotations is the current annotation list.
	Annotations []Annotation `json:"annotations"`

	// Viewport is the saved canvas zoom/pan state.
	Viewport Viewport `json:"viewport"`

	// CreatedAt is when this version was created.
	CreatedAt time.Time `json:"created_at"`
}

// MarshalJSON encodes annotations in envelope form so the variant can
// be recovered on load.
func (p Plan) MarshalJSON() ([]byte, error) {
	type alias Plan
	envelopes := make([]json.RawMessage, len(p.Annotations))
	for i, a := range p.Annotations {
		data, err := MarshalAnnotation(a)
		if err != nil {
			return nil, err
		}
		envelopes[i] = data
	}
	return json.Marshal(struct {
		alias
		Annotations []json.RawMessage `json:"annotations"`
	}{alias(p), envelopes})
}

// UnmarshalJSON decodes annotation envelopes back into their variant
// types.
func (p *Plan) UnmarshalJSON(data []byte) error {
	type alias Plan
	aux := struct {
		*alias
		Annotations []json.RawMessage `json:"annotations"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.Annotations = nil
	for _, raw := range aux.Annotations {
		a, err := UnmarshalAnnotation(raw)
		if err != nil {
			return err
		}
		p.Annotations = append(p.Annotations, a)
	}
	return nil
}

// Transition moves the plan to the next lifecycle state.
func (p *Plan) Transition(next PlanStatus) error {
	if !next.IsValid() {
		return fmt.Errorf("invalid plan status: %q", next)
	}
	if !p.Status.CanTransitionTo(next) {
		return fmt.Errorf("cannot transition plan from %s to %s", p.Status, next)
	}
	p.Status = next
	return nil
}

// NextVersion returns a new draft plan carrying the current symbol and
// annotation lists with the version incremented. The receiver is not
// modified; callers mark it superseded separately once the new version
// is persisted.
func (p Plan) NextVersion() Plan {
	next := p
	next.ID = uuid.New().String()
	next.Version = p.Version + 1
	next.Status = PlanDraft
	next.CreatedAt = time.Now()

	next.Symbols = make([]PlacedSymbol, len(p.Symbols))
	copy(next.Symbols, p.Symbols)
	next.Annotations = make([]Annotation, len(p.Annotations))
	copy(next.Annotations, p.Annotations)

	return next
}

// Approval is the append-only sign-off record attached to exactly one
// plan. Its presence switches the rendered title block from the red
// draft box to the green approved box.
type Approval struct {
	// ID is the unique approval identifier.
	ID string `json:"id"`

	// PlanID references the approved plan version.
	PlanID string `json:"plan_id"`

	// ApproverName is the named qualified individual signing off.
	ApproverName string `json:"approver_name"`

	// Qualifications lists the approver's professional qualifications.
	Qualifications string `json:"qualifications"`

	// Company is the approver's organisation.
	Company string `json:"company"`

	// ApprovedAt is the sign-off date.
	ApprovedAt time.Time `json:"approved_at"`
}
