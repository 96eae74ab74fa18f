package validators

import "regexp"

// Aceita "+359888123456" ou "0888123456": 9 a 15 dígitos, "+" opcional
var phoneRegex = regexp.MustCompile(`^\+?1?\d{9,15}$`)

func IsPhoneValid(phone string) bool {
	return phoneRegex.MatchString(phone)
}
