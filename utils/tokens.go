package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
	"os"
	"strings"
)

const ticketCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// GenerateSecureToken creates a hex token (length = bytes).
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateTicketCode creates a ticket code like "MP-7KQ2M9XVAB". Uses
// crypto/rand with rand.Int to avoid modulo bias; the charset drops the
// ambiguous I/O/0/1 glyphs since codes end up printed under a QR.
func GenerateTicketCode() (string, error) {
	var sb strings.Builder
	sb.WriteString("MP-")
	alphaLen := big.NewInt(int64(len(ticketCharset)))
	for i := 0; i < 10; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(ticketCharset[num.Int64()])
	}
	return sb.String(), nil
}
