package room

import (
	"crypto/rand"
	"fmt"
)

// Alphabet without ambiguous characters (0/O, 1/I).
const codeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLen = 6

// GenerateCode creates a 6-char room code that is not currently live in
// the registry. Codes are normally generated by the creating client; this
// exists for clients that ask the server for one.
func (g *Registry) GenerateCode() (string, error) {
	for attempts := 0; attempts < 10; attempts++ {
		b := make([]byte, codeLen)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}

		code := make([]byte, codeLen)
		for i := range code {
			code[i] = codeChars[int(b[i])%len(codeChars)]
		}
		codeStr := string(code)

		if _, err := g.Get(codeStr); err == ErrRoomNotFound {
			return codeStr, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique room code")
}
