package utils

import (
	"strings"
	"unicode"
)

// NormalizePhone strips everything except ASCII digits
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
}

// MaskPhone keeps only the last four digits, for logs
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
