// Package dni valida el documento nacional de identidad peruano.
package dni

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DNILength longitud fija del DNI peruano.
const DNILength = 8

// ValidateDNI exige exactamente 8 dígitos ASCII, sin otros caracteres salvo espacios alrededor.
func ValidateDNI(s string) error {
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n != DNILength {
		return fmt.Errorf("dni: debe tener %d dígitos, se recibieron %d caracteres", DNILength, n)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("dni: solo se admiten dígitos")
		}
	}
	return nil
}
