package vision

import (
	"fmt"
	"strings"
)

// DescribePrompt is the fixed prompt for free-text description mode.
const DescribePrompt = "Describe what you see in this image in detail."

// FieldsPrompt instantiates the extraction prompt with the exact,
// order-preserved field name list.
func FieldsPrompt(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	var b strings.Builder
	b.WriteString("Extract the following fields from this document: ")
	b.WriteString(strings.Join(quoted, ", "))
	b.WriteString(". Respond with a JSON object using exactly these field names as keys. ")
	b.WriteString("If a field is not visible, omit it. Return ONLY JSON.")
	return b.String()
}
