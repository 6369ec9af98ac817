package utils

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// TicketQRBase64 encodes a ticket code into a 256x256 PNG QR image and
// returns it base64-encoded for inline rendering.
func TicketQRBase64(code string) (string, error) {
	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
