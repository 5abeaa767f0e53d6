package utils

import (
	"regexp"
)

var nonDigitRegexp = regexp.MustCompile(`\D`)

// NormalizePhone оставляет последние 10 цифр номера (0XXXXXXXXX), чтобы +380, 380 и 0 совпадали.
func NormalizePhone(phone string) string {
	digitsOnly := nonDigitRegexp.ReplaceAllString(phone, "")
	if len(digitsOnly) < 10 {
		return ""
	}
	return digitsOnly[len(digitsOnly)-10:]
}
