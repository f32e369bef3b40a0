package dataset

import (
	"fmt"
	"strings"
)

const reportBanner = "============================================================"

// Report renders the findings of the last Validate call as a human-readable
// report: header banner, enumerated errors (or a no-errors marker),
// enumerated warnings (or a no-warnings marker), footer banner.
func (v *Validator) Report() string {
	var b strings.Builder

	b.WriteString(reportBanner + "\n")
	b.WriteString("Dataset Validation Report\n")
	b.WriteString(reportBanner + "\n\n")

	if len(v.errors) > 0 {
		fmt.Fprintf(&b, "ERRORS (%d):\n", len(v.errors))
		for i, err := range v.errors {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, err)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No errors found\n\n")
	}

	if len(v.warnings) > 0 {
		fmt.Fprintf(&b, "WARNINGS (%d):\n", len(v.warnings))
		for i, warning := range v.warnings {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, warning)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No warnings\n\n")
	}

	b.WriteString(reportBanner + "\n")

	return b.String()
}
