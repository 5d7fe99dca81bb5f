package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// accents folds the accented Latin letters common in menu names to ASCII.
var accents = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ä", "a", "ã", "a",
	"ç", "c",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i", "ı", "i",
	"ñ", "n",
	"ò", "o", "ó", "o", "ô", "o", "ö", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
	"ß", "ss", "&", " and ",
)

// Generate creates a URL-friendly identifier from name.
//
// Examples:
//   - "Jalapeño Pizza" → "jalapeno-pizza"
//   - "Fish & Chips" → "fish-and-chips"
//   - "  Crème Brûlée!! " → "creme-brulee"
func Generate(name string) string {
	s := accents.Replace(strings.ToLower(strings.TrimSpace(name)))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
