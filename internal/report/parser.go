package report

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Parser deserializes a report file back into structured data.
type Parser interface {
	Parse(data []byte) (*Report, error)
}

// JSONParser parses a JSON-encoded Report.
type JSONParser struct{}

func (p *JSONParser) Parse(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse JSON report: %w", err)
	}
	return &r, nil
}

// MarkdownParser parses a Markdown-rendered Report by extracting the
// embedded base64 JSON payload from the sentinel comments.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(data []byte) (*Report, error) {
	content := string(data)

	// Require the version sentinel.
	if !strings.Contains(content, "<!-- worklens-report-version: 1 -->") {
		return nil, fmt.Errorf("not a valid worklens report: missing version sentinel")
	}

	// Extract the base64 payload from <!-- worklens-data: <base64> -->.
	const prefix = "<!-- worklens-data: "
	const suffix = " -->"
	start := strings.Index(content, prefix)
	if start == -1 {
		return nil, fmt.Errorf("not a valid worklens report: missing data payload")
	}
	start += len(prefix)
	end := strings.Index(content[start:], suffix)
	if end == -1 {
		return nil, fmt.Errorf("not a valid worklens report: malformed data payload")
	}
	encoded := content[start : start+end]

	// Base64-decode the payload.
	jsonBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("not a valid worklens report: corrupted base64 payload: %w", err)
	}

	var r Report
	if err := json.Unmarshal(jsonBytes, &r); err != nil {
		return nil, fmt.Errorf("not a valid worklens report: corrupted payload: %w", err)
	}
	return &r, nil
}
