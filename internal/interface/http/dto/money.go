package dto

import "fmt"

const timeLayout = "2006-01-02 15:04:05"

// yuan 金额(分) → "59.00"
func yuan(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
