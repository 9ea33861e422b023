package gemini

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?i)```(?:json)?")

// ExtractJSON unmarshals the first JSON object found in model output into v.
// Markdown fences and surrounding prose are tolerated.
func ExtractJSON(text string, v interface{}) error {
	cleaned := strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))
	if cleaned == "" {
		return errors.New("empty model response")
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end < start {
		return errors.New("no JSON object in model response")
	}

	return json.Unmarshal([]byte(cleaned[start:end+1]), v)
}
