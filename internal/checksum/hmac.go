// Package checksum реализует подпись полей платёжного шлюза: hex(HMAC-SHA256(secret, f1|f2|...)).
package checksum

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const separator = "|"

type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

func (s *Signer) Sign(fields ...string) string {
	return hex.EncodeToString(s.mac(fields))
}

// Verify сравнивает подпись за постоянное время.
func (s *Signer) Verify(sum string, fields ...string) bool {
	got, err := hex.DecodeString(strings.TrimSpace(sum))
	if err != nil {
		return false
	}
	return hmac.Equal(got, s.mac(fields))
}

func (s *Signer) mac(fields []string) []byte {
	m := hmac.New(sha256.New, s.secret)
	m.Write([]byte(strings.Join(fields, separator)))
	return m.Sum(nil)
}
