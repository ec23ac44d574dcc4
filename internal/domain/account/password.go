// Package account reglas de cuentas de usuario (registro y perfil).
package account

import (
	"regexp"
	"strings"
)

// MinPasswordLength longitud mínima aceptada en el registro.
const MinPasswordLength = 6

// Etiquetas de fortaleza mostradas en el registro.
const (
	StrengthWeak   = "Débil"
	StrengthMedium = "Media"
	StrengthStrong = "Fuerte"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail validación simple de formato (algo@dominio.tld).
func ValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// PasswordStrength puntaje 0-100: +40 por largo > 5, +20 por dígito, +20 por mayúscula, +20 por símbolo.
// Mayúscula es A-Z y símbolo cualquier carácter fuera de A-Z, a-z y 0-9 (tildes y espacios cuentan).
func PasswordStrength(pw string) (score int, label string) {
	var hasDigit, hasUpper, hasSymbol bool
	for _, r := range pw {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
		default:
			hasSymbol = true
		}
	}
	if len([]rune(pw)) > 5 {
		score += 40
	}
	if hasDigit {
		score += 20
	}
	if hasUpper {
		score += 20
	}
	if hasSymbol {
		score += 20
	}
	if score > 100 {
		score = 100
	}
	switch {
	case score < 40:
		label = StrengthWeak
	case score < 80:
		label = StrengthMedium
	default:
		label = StrengthStrong
	}
	return score, label
}
