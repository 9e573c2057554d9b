package service

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

const otpLength = 6

// GenerateOTP produce un codigo numerico de 6 digitos con crypto/rand.
func GenerateOTP() (string, error) {
	var sb strings.Builder
	sb.Grow(otpLength)
	for i := 0; i < otpLength; i++ {
		digit, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + digit.Int64()))
	}
	return sb.String(), nil
}

// ValidOTPFormat verifica que el codigo sea exactamente 6 digitos.
func ValidOTPFormat(code string) bool {
	if len(code) != otpLength {
		return false
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
