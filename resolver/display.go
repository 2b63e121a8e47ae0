package resolver

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var displayCaser = cases.Title(language.English, cases.NoLower)

// humanize turns a Go identifier into a display name:
// "HomeAddress" -> "Home Address", "zipCode" -> "Zip Code",
// "APIKey" -> "API Key", "first_name" -> "First Name".
func humanize(name string) string {
	words := splitWords(name)
	if len(words) == 0 {
		return name
	}
	return displayCaser.String(strings.Join(words, " "))
}

func splitWords(name string) []string {
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r):
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			// Start a new word on a lower->upper boundary or at the last
			// letter of an acronym run ("APIKey" -> "API", "Key").
			if prevLower || (len(current) > 1 && nextLower) {
				flush()
			}
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()

	return words
}
