package paladin

import (
	"encoding/json"
	"fmt"
	"strings"
)

// stripCodeFence removes a surrounding markdown code fence when the model
// wraps its JSON answer in one. Anything else is returned as-is after
// trimming whitespace.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// drop the language tag line (```json)
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}

// decodeResponse unmarshals a model answer into v, tolerating code-fenced
// JSON. The field list is not strict; unknown fields are ignored and
// missing fields keep their zero values.
func decodeResponse(content string, v any) error {
	cleaned := stripCodeFence(content)
	if cleaned == "" {
		return fmt.Errorf("empty response body")
	}

	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("failed to decode response; %w", err)
	}

	return nil
}
