package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"regexp"
	"strings"
	"time"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var bookingCodeRe = regexp.MustCompile(`^BK\d{8}[A-Z0-9]{6}$`)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// randomCode returns n characters of A-Z0-9 using crypto/rand with
// rand.Int to avoid modulo bias.
func randomCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(codeCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeCharset[num.Int64()])
	}
	return sb.String(), nil
}

// GenerateBookingCode builds a date-stamped human-readable code like
// "BK20250607X4K9QZ". Callers retry on a unique-constraint collision.
func GenerateBookingCode(now time.Time) (string, error) {
	suffix, err := randomCode(6)
	if err != nil {
		return "", err
	}
	return "BK" + now.Format("20060102") + suffix, nil
}

// IsValidBookingCodeFormat validates "BK" + yyyymmdd + 6 chars A-Z0-9.
func IsValidBookingCodeFormat(code string) bool {
	return bookingCodeRe.MatchString(strings.TrimSpace(code))
}
