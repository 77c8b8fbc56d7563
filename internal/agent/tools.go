package agent

import (
	"fmt"
	"strings"
	"time"
)

// Argument extraction helpers. Model-supplied arguments arrive as decoded
// JSON, so every read is defensive about missing keys and wrong types.

func stringArg(args map[string]any, key string) string {
	v, ok := args[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// optStringArg returns nil for absent, null, non-string, or blank values.
func optStringArg(args map[string]any, key string) *string {
	v, ok := args[key].(string)
	if !ok {
		return nil
	}
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	return &s
}

// stringListArg reads an array of strings. A bare string is accepted as a
// single-element list; models do that for list arguments now and then.
func stringListArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		if s := stringArg(args, key); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// timeArg parses an ISO 8601 instant, also accepting a bare date. Absent,
// null, or empty values yield (nil, nil). The result is normalized to UTC.
func timeArg(args map[string]any, key string) (*time.Time, error) {
	s := stringArg(args, key)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, fmt.Errorf("%s must be an ISO 8601 instant, got %q", key, s)
		}
	}
	utc := t.UTC()
	return &utc, nil
}
