package goldenthread

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportJSON_SchemaVersion(t *testing.T) {
	data := completeData()
	result := Validate(data)

	out, err := ExportJSON(data, &result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, SchemaVersion, decoded["schema_version"])
	assert.Equal(t, "proj-1", decoded["project_id"])

	validation, ok := decoded["validation"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(100), validation["score"])
}

func TestExportJSON_WithoutValidation(t *testing.T) {
	out, err := ExportJSON(completeData(), nil)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	_, present := decoded["validation"]
	assert.False(t, present)
}

func TestExportCSVs_Files(t *testing.T) {
	files, err := ExportCSVs(completeData())
	require.NoError(t, err)

	for _, name := range []string{"products.csv", "regulations.csv", "quotations.csv", "audit_trail.csv"} {
		assert.Contains(t, files, name)
		assert.NotEmpty(t, files[name])
	}
}

func TestExportCSVs_QuotingRoundTrip(t *testing.T) {
	data := completeData()
	data.Products[0].Name = `Acme, "Pro" Panel`

	files, err := ExportCSVs(data)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(files["products.csv"])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, `Acme, "Pro" Panel`, records[1][2])
}

func TestExportCSVs_EmptyDataKeepsHeaders(t *testing.T) {
	files, err := ExportCSVs(&GoldenThreadData{})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(files["regulations.csv"])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "regulation_id", records[0][0])
}

func TestExportCSVs_SpecFlattening(t *testing.T) {
	data := completeData()
	data.Products[0].Specifications = map[string]string{
		"fire_rating": "30 min",
		"core":        "solid timber",
	}

	files, err := ExportCSVs(data)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(files["products.csv"])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "core: solid timber; fire_rating: 30 min", records[1][5])
}

func TestExportPDF_ProducesDocument(t *testing.T) {
	data := completeData()
	result := Validate(data)

	out, err := ExportPDF(data, result)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestExportPDF_EmptyPackage(t *testing.T) {
	data := &GoldenThreadData{ProjectName: "Empty", PackageReference: "GT-0"}
	result := Validate(data)

	out, err := ExportPDF(data, result)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
