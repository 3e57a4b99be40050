package crypto

import (
	"encoding/base64"
	"hash"
)

// HashString hashes s and returns the base64url encoded sum without padding.
// With firstHalf only the left-most half of the sum is encoded.
// A nil hash returns s unchanged.
func HashString(hash hash.Hash, s string, firstHalf bool) string {
	if hash == nil {
		return s
	}
	//nolint:errcheck
	hash.Write([]byte(s))
	size := hash.Size()
	if firstHalf {
		size = size / 2
	}
	sum := hash.Sum(nil)[:size]
	return base64.RawURLEncoding.EncodeToString(sum)
}
