package order

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Unambiguous alphabet, no 0/O or 1/I, for codes read over the phone.
const codeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// NewOrderNumber builds a customer-facing order number like BZR-20260315-7KQ2MX.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("BZR-%s-%s", now.UTC().Format("20060102"), randomCode(6))
}

// NewTrackingID builds an opaque shipment tracking reference.
func NewTrackingID() string {
	return "TRK" + randomCode(10)
}

func randomCode(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the platform entropy source is broken.
		panic(err)
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out)
}
