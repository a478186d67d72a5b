package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Pre-compiled regex patterns for JSON extraction from LLM responses.
var (
	// jsonBlockPattern matches JSON inside markdown code blocks: ```json { ... } ```
	jsonBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*\\})\\s*```")
	// trailingCommaPattern matches trailing commas before ] or }.
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSON extracts a JSON object from an LLM response string. It
// handles markdown code blocks and prose-wrapped output, and cleans
// trailing commas. Returns "" when no JSON object is found.
func ExtractJSON(content string) string {
	// Try a markdown code block first
	if matches := jsonBlockPattern.FindStringSubmatch(content); len(matches) > 1 {
		return cleanJSON(strings.TrimSpace(matches[1]))
	}

	// Fall back to the first decodable {...} substring. Using
	// json.Decoder finds the object boundary correctly even when
	// string values contain braces.
	start := strings.Index(content, "{")
	if start == -1 {
		return ""
	}

	decoder := json.NewDecoder(strings.NewReader(content[start:]))
	var raw json.RawMessage
	if err := decoder.Decode(&raw); err == nil {
		return string(raw)
	}

	// The object may be syntactically loose (trailing commas); take the
	// outermost brace span and clean it.
	end := strings.LastIndex(content, "}")
	if end <= start {
		return ""
	}
	candidate := cleanJSON(content[start : end+1])
	if json.Valid([]byte(candidate)) {
		return candidate
	}
	return ""
}

// cleanJSON removes trailing commas, a JSON artifact LLMs commonly produce.
func cleanJSON(raw string) string {
	return trailingCommaPattern.ReplaceAllString(raw, "$1")
}
