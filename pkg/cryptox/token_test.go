package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantLen int
	}{
		{"128-bit token", TokenSize128, 22},
		{"256-bit token", TokenSize256, 43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.Len(t, token, tt.wantLen)

			other, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEqual(t, token, other, "tokens should be unique")
		})
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestGenerateToken_URLSafe(t *testing.T) {
	for range 100 {
		token, err := GenerateToken(TokenSize128)
		require.NoError(t, err)
		require.NotContainsf(t, token, "+", "token %q", token)
		require.NotContainsf(t, token, "/", "token %q", token)
		require.NotContainsf(t, token, "=", "token %q", token)
	}
}

func TestFingerprintToken(t *testing.T) {
	fp1a := FingerprintToken("invite-1")
	fp1b := FingerprintToken("invite-1")
	fp2 := FingerprintToken("invite-2")

	require.Equal(t, fp1a, fp1b, "fingerprint should be deterministic")
	require.NotEqual(t, fp1a, fp2)
	require.Len(t, fp1a, 43)
}
