package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/buildsafe/firecore/autoplan"
	"github.com/buildsafe/firecore/llm"
)

// Analyzer extracts fire-safety analysis from floor-plan images using a
// multimodal LLM.
type Analyzer struct {
	client *llm.Client
	logger *slog.Logger
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer creates a floor-plan analyzer with the given LLM client.
func NewAnalyzer(client *llm.Client, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs one analysis of a rasterized floor-plan page for the
// given building. It performs a single blocking LLM call with no
// internal retry; transport and parse failures are hard errors. On
// success the result is always well-formed, with missing optional
// fields defaulted to empty.
func (a *Analyzer) Analyze(ctx context.Context, image []byte, mediaType string, building autoplan.Building) (*AnalysisResult, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("floor plan image is empty")
	}
	if mediaType == "" {
		mediaType = "image/png"
	}

	temp := 0.2 // Low temperature for consistent extraction
	resp, err := a.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: "system", Content: analysisSystemPrompt},
			{
				Role:    "user",
				Content: analysisUserPrompt(building),
				Images: []llm.Attachment{{
					MediaType: mediaType,
					Data:      base64.StdEncoding.EncodeToString(image),
				}},
			},
		},
		Temperature: &temp,
		MaxTokens:   4096,
	})
	if err != nil {
		return nil, fmt.Errorf("floor plan analysis failed: %w", err)
	}

	result, err := parseAnalysisResponse(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}

	a.logger.Debug("Floor plan analyzed",
		"request_id", resp.RequestID,
		"building", building.ID,
		"confidence", result.Confidence,
		"suggested_symbols", len(result.SuggestedSymbols),
		"warnings", len(result.Warnings))

	return result, nil
}

// parseAnalysisResponse extracts an AnalysisResult from the LLM reply.
// The model may wrap the JSON in prose or markdown; the largest
// decodable object is used. Missing optional fields default to empty
// rather than failing.
func parseAnalysisResponse(content string) (*AnalysisResult, error) {
	jsonStr := llm.ExtractJSON(content)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}

	result.normalize()
	return &result, nil
}
