// Package textnorm normaliza texto en español para comparaciones de búsqueda.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold quita tildes y diacríticos y pliega mayúsculas: "Sofá Cama" -> "sofa cama".
// La ñ se conserva como n (la tilde de la ñ también es un diacrítico combinante).
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(strings.TrimSpace(out))
}

// Contains indica si needle aparece en haystack ignorando mayúsculas y tildes.
// Un needle vacío siempre coincide.
func Contains(haystack, needle string) bool {
	needle = Fold(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), needle)
}
