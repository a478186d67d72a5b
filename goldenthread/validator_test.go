package goldenthread

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeData() *GoldenThreadData {
	return &GoldenThreadData{
		ProjectID:         "proj-1",
		ProjectName:       "Harbour Point",
		OrganizationID:    "org-1",
		PackageReference:  "GT-2026-001",
		BuildingReference: "HRB-0042",
		GeneratedAt:       time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Quotes: []CompiledQuote{
			{
				ID: "q1", Number: "Q-100", ClientName: "Harbour Point Ltd",
				Status: "accepted", Total: 12400,
				LineItems: []QuoteLineItem{
					{ID: "li1", Description: "Fire door FD30", ProductID: "p1", Quantity: 12, UnitPrice: 800},
					{ID: "li2", Description: "Smoke detector", ProductID: "p2", Quantity: 40, UnitPrice: 70},
				},
			},
		},
		Products: []CompiledProduct{
			{
				ID: "p1", Code: "FD30-S", Name: "FD30 Fire Door", Pillar: "passive",
				Manufacturer:   "Acme Doors",
				Specifications: map[string]string{"fire_rating": "30 min"},
				Certifications: []string{"Certifire CF123"},
				Regulations: []RegulationLink{
					{RegulationID: "r1", Reference: "BS EN 1634-1", Name: "Fire resistance tests", Category: "testing"},
				},
				Files: []ProductFile{{ID: "f1", Name: "cert.pdf", FileType: FileTypeCertificate}},
			},
			{
				ID: "p2", Code: "SD-1", Name: "Optical Smoke Detector", Pillar: "detection",
				Manufacturer:   "Sensor Co",
				Specifications: map[string]string{"standard": "BS EN 54-7"},
				Regulations: []RegulationLink{
					{RegulationID: "r2", Reference: "BS 5839-1", Name: "Fire detection systems", Category: "design"},
				},
			},
		},
		RegulationsSummary: []RegulationSummary{
			{RegulationID: "r1", Reference: "BS EN 1634-1", Name: "Fire resistance tests", Category: "testing", ProductCount: 1},
			{RegulationID: "r2", Reference: "BS 5839-1", Name: "Fire detection systems", Category: "design", ProductCount: 1},
		},
		AuditTrail: []AuditEntry{
			{ID: "ae1", PackageReference: "GT-2025-009", Action: "generated", Timestamp: time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)},
		},
		Metadata: Metadata{QuoteCount: 1, ProductCount: 2, RegulationCount: 2, TotalFiles: 1},
	}
}

func TestValidate_CompletePackage(t *testing.T) {
	result := Validate(completeData())

	assert.True(t, result.Section88Compliant)
	assert.True(t, result.Section91Compliant)
	assert.True(t, result.AuditTrailComplete)
	assert.Equal(t, 100, result.Score)
	assert.Empty(t, result.Warnings)
}

func TestValidate_Deterministic(t *testing.T) {
	data := completeData()
	data.Products[1].Regulations = nil

	first := Validate(data)
	second := Validate(data)
	assert.Equal(t, first, second)
}

func TestValidate_EmptyProject(t *testing.T) {
	data := &GoldenThreadData{ProjectID: "proj-1"}
	result := Validate(data)

	assert.False(t, result.Section88Compliant)
	assert.True(t, result.Section91Compliant)
	assert.False(t, result.AuditTrailComplete)

	codes := warningCodes(result)
	assert.Contains(t, codes, CodeNoQuotes)
	assert.Contains(t, codes, CodeNoProducts)
	assert.Contains(t, codes, CodeIncompleteChain)
	assert.Contains(t, codes, CodeNoBuildingRef)
	assert.Contains(t, codes, CodeEmptyAuditTrail)

	// Product-level checks are not run when there are no products.
	assert.NotContains(t, codes, CodeMissingSpecs)
	assert.NotContains(t, codes, CodeNoRegulations)
}

func TestValidate_ScoreBounds(t *testing.T) {
	empty := Validate(&GoldenThreadData{})
	full := Validate(completeData())

	assert.GreaterOrEqual(t, empty.Score, 0)
	assert.LessOrEqual(t, empty.Score, 100)
	assert.Equal(t, 100, full.Score)
	assert.Greater(t, full.Score, empty.Score)
}

func TestValidate_MissingSpecsLowersScore(t *testing.T) {
	data := completeData()
	base := Validate(data)

	data.Products = append(data.Products, CompiledProduct{
		ID: "p3", Code: "X-1", Name: "Unspecified Widget", Manufacturer: "Acme",
		Regulations: []RegulationLink{
			{RegulationID: "r1", Reference: "BS EN 1634-1", Name: "Fire resistance tests", Category: "testing"},
		},
	})
	degraded := Validate(data)

	assert.Less(t, degraded.Score, base.Score)
	assert.Contains(t, warningCodes(degraded), CodeMissingSpecs)
	// A warning does not break section 88 compliance.
	assert.True(t, degraded.Section88Compliant)
}

func TestValidate_NoRegulationLinksIsError(t *testing.T) {
	data := completeData()
	for i := range data.Products {
		data.Products[i].Regulations = nil
	}
	data.RegulationsSummary = nil

	result := Validate(data)
	assert.False(t, result.Section88Compliant)
	assert.Contains(t, warningCodes(result), CodeNoRegulations)
	assert.Contains(t, warningCodes(result), CodeIncompleteChain)
	assert.False(t, result.AuditTrailComplete)
}

func TestValidate_PartialRegulationLinks(t *testing.T) {
	data := completeData()
	data.Products[1].Regulations = nil

	result := Validate(data)
	assert.True(t, result.Section88Compliant)
	assert.Contains(t, warningCodes(result), CodePartialRegulations)
}

func TestValidate_FullScenario(t *testing.T) {
	// Two products sharing one regulation plus one unlinked; the shared
	// regulation appears once in the summary with product count 2.
	products := []CompiledProduct{
		{ID: "p1", Name: "Door A", Specifications: map[string]string{"a": "1"},
			Regulations: []RegulationLink{{RegulationID: "r1", Reference: "BS EN 1634-1", Name: "Fire resistance tests"}}},
		{ID: "p2", Name: "Door B", Specifications: map[string]string{"a": "1"},
			Regulations: []RegulationLink{{RegulationID: "r1", Reference: "BS EN 1634-1", Name: "Fire resistance tests"}}},
		{ID: "p3", Name: "Detector", Specifications: map[string]string{"a": "1"}},
	}
	summary := summarizeRegulations(products)
	require.Len(t, summary, 1)
	assert.Equal(t, 2, summary[0].ProductCount)

	data := completeData()
	data.Products = products
	data.RegulationsSummary = summary
	data.Metadata.TotalFiles = 0

	result := Validate(data)
	assert.True(t, result.Section88Compliant)
	codes := warningCodes(result)
	assert.Contains(t, codes, CodePartialRegulations)
	assert.Contains(t, codes, CodeNoCertification)
	assert.Contains(t, codes, CodeNoFiles)
}

func warningCodes(result ValidationResult) []string {
	codes := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		codes = append(codes, w.Code)
	}
	return codes
}
