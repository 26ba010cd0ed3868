package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"decorlens/domain/services"
)

// ParseJSONObject extracts the JSON object from model text. Markdown code
// fences and prose around the object are tolerated; anything that is still
// not a valid object afterwards is services.ErrVisionParse.
func ParseJSONObject(text string) (map[string]any, error) {
	body := stripFences(text)

	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in response", services.ErrVisionParse)
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(body[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrVisionParse, err)
	}
	return obj, nil
}

// ExtractItems returns the "items" array of the model object. A missing or
// non-array "items" yields zero entries.
func ExtractItems(text string) ([]any, error) {
	obj, err := ParseJSONObject(text)
	if err != nil {
		return nil, err
	}
	items, ok := obj["items"].([]any)
	if !ok {
		return []any{}, nil
	}
	return items, nil
}

func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		// Drop the language tag on the opening fence
		if nl := strings.Index(rest, "\n"); nl >= 0 {
			rest = rest[nl+1:]
		}
		if j := strings.LastIndex(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		s = rest
	}
	return strings.TrimSpace(s)
}
