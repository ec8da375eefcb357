package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// A strategy attempts to recover a JSON object from raw model text.
// ok is false when the strategy does not apply or parsing failed.
type strategy func(text string, fields []string) (map[string]any, bool)

// Ordered chain, first match wins.
var strategies = []strategy{fencedJSON, fieldTriggered}

// Extract recovers a best-effort mapping from raw model text. Never errors:
// any parse failure degrades to an empty map, and the raw text stays
// available upstream so nothing is lost when structuring fails.
func Extract(text string, fields []string) map[string]any {
	for _, s := range strategies {
		if m, ok := s(text, fields); ok {
			return m
		}
	}
	return map[string]any{}
}

var fenceRE = regexp.MustCompile("(?s)```json\\s*(.+?)```")

// fencedJSON takes the first ```json fenced block and parses it as an
// object. Extra keys are kept; keys are lexically exact, no case folding.
func fencedJSON(text string, _ []string) (map[string]any, bool) {
	m := fenceRE.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return parseObject(m[1])
}

// fieldTriggered scans the expected field names in caller order; a name
// appearing quoted (either quote style) anywhere in the text triggers a
// whole-text parse. A field whose parse fails moves scanning on to the next
// field. The field-in-prose false positive is intentional.
func fieldTriggered(text string, fields []string) (map[string]any, bool) {
	for _, f := range fields {
		name := strings.TrimSpace(f)
		if name == "" {
			continue
		}
		if !strings.Contains(text, `"`+name+`"`) && !strings.Contains(text, "'"+name+"'") {
			continue
		}
		if obj, ok := parseObject(text); ok {
			return obj, true
		}
	}
	return nil, false
}

func parseObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
