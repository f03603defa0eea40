// Package idgen produces collision-resistant announcement identifiers.
package idgen

import (
	"crypto/rand"
	"fmt"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Length of every generated identifier. 12 characters over a 62-symbol
// alphabet is ~71 bits of entropy, which makes collisions negligible for the
// record volumes this dashboard sees, so generated ids are used without a
// uniqueness check against the store.
const Length = 12

// New returns a fresh random identifier drawn from crypto/rand.
func New() (string, error) {
	id := make([]byte, Length)
	buf := make([]byte, 1)
	for i := 0; i < Length; {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("idgen.New: reading random bytes: %w", err)
		}
		// Rejection sampling keeps the draw uniform over the 62 symbols.
		if int(buf[0]) >= 4*len(alphabet) {
			continue
		}
		id[i] = alphabet[int(buf[0])%len(alphabet)]
		i++
	}
	return string(id), nil
}
