package page

import "strings"

var quoteStripper = strings.NewReplacer(`"`, "", `'`, "")

// ParseConfig reads "key: value" lines from a config region. The line is
// split on its first colon, both sides are trimmed and quote characters are
// removed from the value. Lines without a colon or with an empty key or
// value are ignored; a repeated key keeps its last value.
func ParseConfig(text string) map[string]string {
	cfg := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		cfg[key] = quoteStripper.Replace(value)
	}
	return cfg
}
