package extract

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/gemmascan/internal/common"
)

// NormalizeFields trims each requested field name and rejects empty or
// duplicate names. Order is preserved: the field-triggered recovery path is
// order-sensitive. Callers validate before dispatch.
func NormalizeFields(fields []string) ([]string, error) {
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		name := strings.TrimSpace(f)
		if name == "" {
			return nil, fmt.Errorf("empty field name: %w", common.ErrInvalidInput)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate field name %q: %w", name, common.ErrInvalidInput)
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one field name is required: %w", common.ErrInvalidInput)
	}
	return out, nil
}
