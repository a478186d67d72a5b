package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/buildsafe/firecore/autoplan"
	"github.com/buildsafe/firecore/llm"
	_ "github.com/buildsafe/firecore/llm/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilding() autoplan.Building {
	return autoplan.Building{
		ID:                 "bld-1",
		Name:               "Harbour Point",
		Jurisdiction:       autoplan.JurisdictionEngland,
		HeightMetres:       21.5,
		Storeys:            7,
		UseClass:           "C3 residential",
		EvacuationStrategy: "stay put",
		HasSprinklers:      true,
		HasDryRiser:        true,
	}
}

// mockLLMServer returns an httptest server speaking the openai chat
// format, replying with the given content and capturing the request.
func mockLLMServer(t *testing.T, content string, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model": "test-model",
			"choices": []map[string]any{
				{
					"message":       map[string]string{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		})
	}))
}

func newTestAnalyzer(serverURL string) *Analyzer {
	return NewAnalyzer(llm.NewClient(llm.Endpoint{
		Provider: "openai",
		URL:      serverURL,
		Model:    "test-model",
	}))
}

func TestAnalyzer_Analyze(t *testing.T) {
	reply := `Here is the analysis:
` + "```json" + `
{
  "confidence": 0.82,
  "scale": "1:100",
  "elements": {
    "exits": [{"x":0.91,"y":0.48,"label":"Final exit"}],
    "fire_doors": [{"x":0.4,"y":0.3}]
  },
  "suggested_symbols": [
    {"symbolId":"fire_exit","x":0.91,"y":0.48,"rotation":0,"label":"EXIT"},
    {"symbolId":"smoke_detector","x":0.5,"y":0.25,"rotation":0}
  ],
  "warnings": ["North stair width unclear"],
  "regulatory_notes": ["Dry riser outlet expected at each storey"]
}
` + "```"

	var captured map[string]any
	server := mockLLMServer(t, reply, &captured)
	defer server.Close()

	analyzer := newTestAnalyzer(server.URL)
	result, err := analyzer.Analyze(context.Background(), []byte("fake-png"), "image/png", testBuilding())
	require.NoError(t, err)

	assert.InDelta(t, 0.82, result.Confidence, 1e-9)
	assert.Equal(t, "1:100", result.Scale)
	require.Len(t, result.Elements.Exits, 1)
	assert.Equal(t, "Final exit", result.Elements.Exits[0].Label)
	require.Len(t, result.SuggestedSymbols, 2)
	assert.Equal(t, "fire_exit", result.SuggestedSymbols[0].SymbolID)
	assert.Len(t, result.Warnings, 1)

	// Missing categories are defaulted, never nil.
	assert.NotNil(t, result.Elements.Staircases)
	assert.Empty(t, result.Elements.Staircases)

	// The prompt embeds the building's fire-safety attributes and the
	// image as a data URL.
	messages := captured["messages"].([]any)
	require.Len(t, messages, 2)
	parts := messages[1].(map[string]any)["content"].([]any)
	text := parts[1].(map[string]any)["text"].(string)
	assert.Contains(t, text, "stay put")
	assert.Contains(t, text, "7 storeys")
	assert.Contains(t, text, "fire_exit")
	url := parts[0].(map[string]any)["image_url"].(map[string]any)["url"].(string)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestParseAnalysisResponse_Defaults(t *testing.T) {
	result, err := parseAnalysisResponse(`{}`)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Confidence)
	assert.Empty(t, result.Scale)
	assert.NotNil(t, result.SuggestedSymbols)
	assert.NotNil(t, result.Warnings)
	assert.NotNil(t, result.RegulatoryNotes)
	assert.NotNil(t, result.Elements.Exits)
	assert.NotNil(t, result.Elements.Rooms)
}

func TestParseAnalysisResponse_NullScale(t *testing.T) {
	result, err := parseAnalysisResponse(`{"confidence":0.5,"scale":null}`)
	require.NoError(t, err)
	assert.Empty(t, result.Scale)
}

func TestParseAnalysisResponse_ClampsValues(t *testing.T) {
	result, err := parseAnalysisResponse(
		`{"confidence":1.7,"suggested_symbols":[{"symbolId":"fire_exit","x":-0.2,"y":1.4}]}`)
	require.NoError(t, err)

	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, 0.0, result.SuggestedSymbols[0].X)
	assert.Equal(t, 1.0, result.SuggestedSymbols[0].Y)
}

func TestParseAnalysisResponse_NoJSON(t *testing.T) {
	_, err := parseAnalysisResponse("I could not read the plan.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no JSON found")
}

func TestAnalyzer_Analyze_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	analyzer := newTestAnalyzer(server.URL)
	_, err := analyzer.Analyze(context.Background(), []byte("png"), "image/png", testBuilding())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floor plan analysis failed")
}

func TestAnalyzer_Analyze_EmptyImage(t *testing.T) {
	analyzer := newTestAnalyzer("http://127.0.0.1:0")
	_, err := analyzer.Analyze(context.Background(), nil, "image/png", testBuilding())
	require.Error(t, err)
}
