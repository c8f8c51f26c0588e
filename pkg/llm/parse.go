package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

func parseClassification(content string) (*Classification, error) {
	cleaned := cleanJSONResponse(content)

	var parsed struct {
		Action   string `json:"action"`
		Symbol   string `json:"symbol"`
		Response string `json:"response"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse classification: %w, content: %s", err, content)
	}

	return &Classification{
		Action:   parseAction(parsed.Action),
		Symbol:   strings.TrimSpace(parsed.Symbol),
		Response: parsed.Response,
	}, nil
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
