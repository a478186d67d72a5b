package goldenthread

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion identifies the JSON export schema.
const SchemaVersion = "1.0"

// jsonExport wraps the compiled data with schema metadata so consumers
// can detect format changes.
type jsonExport struct {
	SchemaVersion string            `json:"schema_version"`
	Validation    *ValidationResult `json:"validation,omitempty"`
	*GoldenThreadData
}

// ExportJSON serializes the package as indented JSON. When result is
// non-nil the validation outcome is embedded alongside the data.
func ExportJSON(data *GoldenThreadData, result *ValidationResult) ([]byte, error) {
	out, err := json.MarshalIndent(jsonExport{
		SchemaVersion:    SchemaVersion,
		Validation:       result,
		GoldenThreadData: data,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal golden thread: %w", err)
	}
	return out, nil
}
