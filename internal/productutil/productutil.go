package productutil

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	MensCategory   = "Men's Clothing"
	WomensCategory = "Women's Clothing"
)

// StandardizeName trims a product name, adds the gender prefix expected by
// the clothing categories and capitalizes each word.
func StandardizeName(name, category string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	switch category {
	case MensCategory:
		name = addPrefix(name, "Men")
	case WomensCategory:
		name = addPrefix(name, "Women")
	}
	words := strings.Split(name, " ")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func addPrefix(name, who string) string {
	possessive := who + "'s"
	if strings.Contains(name, possessive) {
		return name
	}
	if strings.HasPrefix(name, who+" ") {
		return possessive + " " + strings.TrimPrefix(name, who+" ")
	}
	return possessive + " " + name
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}

// IsValidName rejects names shorter than five characters and the editor's
// stock placeholders.
func IsValidName(name string) bool {
	n := strings.TrimSpace(name)
	if len(n) < 5 {
		return false
	}
	switch strings.ToLower(n) {
	case "new cloth", "product":
		return false
	}
	return true
}

// NewSKU returns "SKU" followed by the current unix millis and a random
// suffix below 1000.
func NewSKU(now time.Time) string {
	return fmt.Sprintf("SKU%d%d", now.UnixMilli(), rand.IntN(1000))
}
