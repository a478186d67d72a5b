package autoplan

import (
	"encoding/json"
	"fmt"
	"time"
)

// AnalysisStatus tracks the AI analysis state of a floor plan.
// The state machine is strictly forward-moving:
//
//	pending -> analyzing -> completed | failed
//
// "completed" and "failed" are terminal.
type AnalysisStatus string

const (
	AnalysisPending   AnalysisStatus = "pending"
	AnalysisAnalyzing AnalysisStatus = "analyzing"
	AnalysisCompleted AnalysisStatus = "completed"
	AnalysisFailed    AnalysisStatus = "failed"
)

// String returns the string representation of the status.
func (s AnalysisStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a recognized value.
func (s AnalysisStatus) IsValid() bool {
	switch s {
	case AnalysisPending, AnalysisAnalyzing, AnalysisCompleted, AnalysisFailed:
		return true
	}
	return false
}

// IsTerminal returns true for states with no outgoing transitions.
func (s AnalysisStatus) IsTerminal() bool {
	return s == AnalysisCompleted || s == AnalysisFailed
}

// CanTransitionTo reports whether the forward-only state machine allows
// moving from s to next.
func (s AnalysisStatus) CanTransitionTo(next AnalysisStatus) bool {
	switch s {
	case AnalysisPending:
		return next == AnalysisAnalyzing
	case AnalysisAnalyzing:
		return next == AnalysisCompleted || next == AnalysisFailed
	}
	return false
}

// Floor is one uploaded floor-plan source file belonging to a building.
type Floor struct {
	// ID is the unique floor identifier.
	ID string `json:"id"`

	// BuildingID references the owning building.
	BuildingID string `json:"building_id"`

	// Name is the display name (e.g. "Ground Floor").
	Name string `json:"name"`

	// Level is the storey number (0 = ground).
	Level int `json:"level"`

	// SourceFile is the storage reference of the uploaded plan PDF.
	SourceFile string `json:"source_file"`

	// AnalysisStatus tracks the AI analysis lifecycle.
	AnalysisStatus AnalysisStatus `json:"analysis_status"`

	// Analysis holds the raw AI analysis result once the status is
	// completed. Stored as the JSON document returned by the analyzer.
	Analysis json.RawMessage `json:"analysis,omitempty"`

	// AnalysisError holds the failure message when the status is failed.
	AnalysisError string `json:"analysis_error,omitempty"`

	// UploadedAt is when the source file was uploaded.
	UploadedAt time.Time `json:"uploaded_at"`
}

// Transition moves the floor to the next analysis state, enforcing the
// forward-only state machine.
func (f *Floor) Transition(next AnalysisStatus) error {
	if !next.IsValid() {
		return fmt.Errorf("invalid analysis status: %q", next)
	}
	if !f.AnalysisStatus.CanTransitionTo(next) {
		return fmt.Errorf("cannot transition analysis from %s to %s", f.AnalysisStatus, next)
	}
	f.AnalysisStatus = next
	return nil
}
