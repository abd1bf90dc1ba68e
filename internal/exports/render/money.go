package render

import "fmt"

// formatCents renders integer cents as a decimal string, e.g. 2600 -> "26.00".
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
