package textutil

import (
	"fmt"
	"strings"
)

// NormalizeStringMap trims keys and values, removing entries with empty keys.
// A map that becomes empty after trimming is returned as nil.
func NormalizeStringMap(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	result := make(map[string]string, len(values))
	for key, value := range values {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		result[key] = strings.TrimSpace(value)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// ParseKeyValueList reads a comma-separated "key=value" list into a normalised
// map, e.g. "insideDhaka=6000,outsideDhaka=12000". Empty segments are skipped;
// a segment without "=" is an error.
func ParseKeyValueList(raw string) (map[string]string, error) {
	entries := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("textutil: malformed key=value pair %q", pair)
		}
		entries[key] = value
	}
	return NormalizeStringMap(entries), nil
}
