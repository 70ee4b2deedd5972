package cardparser

import (
	"crypto/sha256"
	"encoding/hex"
)

// hashLen is the number of hex characters kept from the digest: 32 hex chars = 128
// bits, enough identity space for realistic deck sizes.
const hashLen = 32

// Canonicalize retains only ASCII letters (case-folded to lowercase), ASCII digits,
// '+' and '-' from the concatenation of a card's textual content. This is the
// semantically load-bearing step: it tolerates punctuation, whitespace, and case
// edits while still detecting substantive rewording. '+'/'-' survive because they
// can change arithmetic meaning.
func Canonicalize(parts ...string) string {
	buf := make([]byte, 0, 64)
	for _, part := range parts {
		for i := 0; i < len(part); i++ {
			c := part[i]
			switch {
			case c >= 'A' && c <= 'Z':
				buf = append(buf, c+('a'-'A'))
			case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
				buf = append(buf, c)
			case c == '+' || c == '-':
				buf = append(buf, c)
			}
		}
	}
	return string(buf)
}

// Hash computes the card_hash: the first hashLen lowercase hex characters of a
// cryptographic digest over the canonicalized content.
func Hash(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])[:hashLen]
}
