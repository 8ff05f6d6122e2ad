// Package jsontext extracts JSON payloads from noisy LLM replies, which
// routinely wrap them in code fences or surrounding prose.
package jsontext

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fenceExpr = regexp.MustCompile("(?m)^```(?:json)?[ \t]*$|^```[ \t]*$")
	blockExpr = regexp.MustCompile(`(?s)(\{.*\}|\[.*\])`)
)

// ExtractBlock returns the first JSON array or object embedded in text.
func ExtractBlock(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	text = strings.TrimSpace(fenceExpr.ReplaceAllString(text, ""))

	match := blockExpr.FindString(text)
	if match == "" {
		return "", false
	}
	return match, true
}

// Unmarshal extracts the first JSON block from text and decodes it into v.
func Unmarshal(text string, v any) error {
	block, ok := ExtractBlock(text)
	if !ok {
		return fmt.Errorf("no JSON block in %q", truncate(text, 80))
	}
	if err := json.Unmarshal([]byte(block), v); err != nil {
		return fmt.Errorf("decode JSON block: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
