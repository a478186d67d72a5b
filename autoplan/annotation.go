package autoplan

import (
	"encoding/json"
	"fmt"
)

// AnnotationKind discriminates the annotation variants.
type AnnotationKind string

const (
	AnnotationText           AnnotationKind = "text"
	AnnotationTravelDistance AnnotationKind = "travel_distance"
	AnnotationArrow          AnnotationKind = "arrow"
	AnnotationZone           AnnotationKind = "zone"
)

// IsValid returns true if the kind is a recognized value.
func (k AnnotationKind) IsValid() bool {
	switch k {
	case AnnotationText, AnnotationTravelDistance, AnnotationArrow, AnnotationZone:
		return true
	}
	return false
}

// Annotation is a freeform overlay element on a plan. It is a sealed
// union: exactly one of the variant types below implements it, so
// invalid field combinations (a zone with a font size, say) are
// unrepresentable. Coordinates use the same normalized [0,1] top-down
// space as PlacedSymbol.
type Annotation interface {
	// AnnotationID returns the instance identifier, unique per plan.
	AnnotationID() string

	// Kind returns the variant discriminator.
	Kind() AnnotationKind

	// Anchor returns the normalized anchor point.
	Anchor() (x, y float64)

	sealed()
}

// TextAnnotation is a free-text label at a point.
type TextAnnotation struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Text     string  `json:"text"`
	FontSize float64 `json:"font_size,omitempty"`
}

func (a TextAnnotation) AnnotationID() string     { return a.ID }
func (a TextAnnotation) Kind() AnnotationKind     { return AnnotationText }
func (a TextAnnotation) Anchor() (float64, float64) { return a.X, a.Y }
func (TextAnnotation) sealed()                    {}

// TravelDistanceAnnotation is a measured escape route from a start
// point to an end point.
type TravelDistanceAnnotation struct {
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	EndX float64 `json:"end_x"`
	EndY float64 `json:"end_y"`

	// DistanceMetres is the computed real-world distance. Nil when the
	// plan has no confirmed scale.
	DistanceMetres *float64 `json:"distance_metres,omitempty"`
}

func (a TravelDistanceAnnotation) AnnotationID() string       { return a.ID }
func (a TravelDistanceAnnotation) Kind() AnnotationKind       { return AnnotationTravelDistance }
func (a TravelDistanceAnnotation) Anchor() (float64, float64) { return a.X, a.Y }
func (TravelDistanceAnnotation) sealed()                      {}

// ArrowAnnotation is a directional pointer from a start to an end point.
type ArrowAnnotation struct {
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	EndX float64 `json:"end_x"`
	EndY float64 `json:"end_y"`
}

func (a ArrowAnnotation) AnnotationID() string       { return a.ID }
func (a ArrowAnnotation) Kind() AnnotationKind       { return AnnotationArrow }
func (a ArrowAnnotation) Anchor() (float64, float64) { return a.X, a.Y }
func (ArrowAnnotation) sealed()                      {}

// ZoneAnnotation marks a rectangular region (e.g. a protected lobby or
// plant room).
type ZoneAnnotation struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	ZoneType string  `json:"zone_type,omitempty"`
}

func (a ZoneAnnotation) AnnotationID() string       { return a.ID }
func (a ZoneAnnotation) Kind() AnnotationKind       { return AnnotationZone }
func (a ZoneAnnotation) Anchor() (float64, float64) { return a.X, a.Y }
func (ZoneAnnotation) sealed()                      {}

// annotationEnvelope is the persisted wire form: the variant payload
// plus a kind discriminator.
type annotationEnvelope struct {
	Kind    AnnotationKind  `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// MarshalAnnotation encodes an annotation with its kind discriminator.
func MarshalAnnotation(a Annotation) ([]byte, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal %s annotation: %w", a.Kind(), err)
	}
	return json.Marshal(annotationEnvelope{Kind: a.Kind(), Payload: payload})
}

// UnmarshalAnnotation decodes an annotation envelope into the matching
// variant type.
func UnmarshalAnnotation(data []byte) (Annotation, error) {
	var env annotationEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal annotation envelope: %w", err)
	}

	switch env.Kind {
	case AnnotationText:
		var a TextAnnotation
		if err := json.Unmarshal(env.Payload, &a); err != nil {
			return nil, fmt.Errorf("unmarshal text annotation: %w", err)
		}
		return a, nil
	case AnnotationTravelDistance:
		var a TravelDistanceAnnotation
		if err := json.Unmarshal(env.Payload, &a); err != nil {
			return nil, fmt.Errorf("unmarshal travel_distance annotation: %w", err)
		}
		return a, nil
	case AnnotationArrow:
		var a ArrowAnnotation
		if err := json.Unmarshal(env.Payload, &a); err != nil {
			return nil, fmt.Errorf("unmarshal arrow annotation: %w", err)
		}
		return a, nil
	case AnnotationZone:
		var a ZoneAnnotation
		if err := json.Unmarshal(env.Payload, &a); err != nil {
			return nil, fmt.Errorf("unmarshal zone annotation: %w", err)
		}
		return a, nil
	}
	return nil, fmt.Errorf("unknown annotation kind: %q", env.Kind)
}
