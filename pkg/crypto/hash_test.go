package crypto

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashString(t *testing.T) {
	tests := []struct {
		name      string
		s         string
		firstHalf bool
		want      string
	}{
		{"full", "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk", false, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"},
		{"first half", "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk", true, "E9Melhoa2OwvFrEMTJguCA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HashString(sha256.New(), tt.s, tt.firstHalf))
		})
	}
	assert.Equal(t, "plain", HashString(nil, "plain", false))
}
