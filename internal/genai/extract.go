package genai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// codeBlockPattern matches a markdown code block with an optional language tag.
// Captures: (1) language, (2) content.
var codeBlockPattern = regexp.MustCompile("(?s)```(\\w*)\\s*\\n(.+?)\\n```")

// ExtractJSON pulls a JSON object out of a model response that may be wrapped
// in markdown. Fenced ```json blocks are tried first, then the outermost
// braces of the raw text. Returns an error when no valid JSON object is found.
func ExtractJSON(response string) (string, error) {
	for _, match := range codeBlockPattern.FindAllStringSubmatch(response, -1) {
		lang := strings.ToLower(match[1])
		if lang != "" && lang != "json" {
			continue
		}
		content := strings.TrimSpace(match[2])
		if json.Valid([]byte(content)) {
			return content, nil
		}
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start >= 0 && end > start {
		candidate := response[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no valid JSON object found in response")
}
