package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildsafe/firecore/autoplan"
	"github.com/buildsafe/firecore/goldenthread"
)

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := rootCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "analyze")
	assert.Contains(t, names, "render")
	assert.Contains(t, names, "compile")
	assert.Contains(t, names, "version")
}

func TestPlanDocument_Parse(t *testing.T) {
	doc := `{
		"plan": {
			"id": "plan-1",
			"reference": "FSP-001",
			"version": 1,
			"status": "draft",
			"symbols": [{"id": "s1", "symbol_id": "fire_exit", "x": 0.5, "y": 0.5, "scale": 1}],
			"annotations": [{"kind": "text", "payload": {"id": "a1", "x": 0.1, "y": 0.1, "text": "Riser"}}]
		},
		"building": {"name": "Harbour Point", "jurisdiction": "england"},
		"floor": {"id": "floor-1", "name": "Ground Floor", "level": 0}
	}`

	var parsed planDocument
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Equal(t, "FSP-001", parsed.Plan.Reference)
	require.Len(t, parsed.Plan.Annotations, 1)
	assert.Equal(t, autoplan.AnnotationText, parsed.Plan.Annotations[0].Kind())
	assert.Nil(t, parsed.Approval)
	assert.Equal(t, autoplan.JurisdictionEngland, parsed.Building.Jurisdiction)
}

func TestWriteExports_UnknownFormat(t *testing.T) {
	data := &goldenthread.GoldenThreadData{}
	err := writeExports(data, goldenthread.Validate(data), t.TempDir(), []string{"xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}

func TestWriteExports_AllFormats(t *testing.T) {
	dir := t.TempDir()
	data := &goldenthread.GoldenThreadData{ProjectName: "Test", PackageReference: "GT-1"}
	result := goldenthread.Validate(data)

	require.NoError(t, writeExports(data, result, dir, []string{"json", "csv", "pdf"}))

	for _, name := range []string{"golden_thread.json", "golden_thread.pdf", "products.csv", "regulations.csv", "quotations.csv", "audit_trail.csv"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}
