// Package phonex normalizes phone numbers for the phono API, which stores
// Uzbek numbers without the country prefix.
package phonex

import "strings"

// CountryPrefix is stripped from numbers before they are sent to the API.
const CountryPrefix = "+998"

// Normalize strips the "+998" prefix and any embedded spaces from phone.
// Numbers without the prefix are returned unchanged.
func Normalize(phone string) string {
	if strings.HasPrefix(phone, CountryPrefix) {
		return strings.ReplaceAll(phone[len(CountryPrefix):], " ", "")
	}
	return phone
}

// Valid reports whether phone normalizes to a nine-digit local number.
func Valid(phone string) bool {
	n := Normalize(phone)
	if len(n) != 9 {
		return false
	}
	for _, r := range n {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
