//go:build unit

package cancellation_test

import (
	"testing"
	"time"

	"roombook/internal/domain/cancellation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := cancellation.GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
		seen[code] = true
	}
	// 100 draws from a million-value space colliding down to a handful would
	// mean the generator is not uniform.
	assert.Greater(t, len(seen), 90)
}

func TestToken(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	bookingID := uuid.New()

	t.Run("matches the issued code before expiry", func(t *testing.T) {
		token := cancellation.NewToken(bookingID, "123456", issuedAt)

		assert.True(t, token.Matches("123456", issuedAt.Add(14*time.Minute)))
		assert.False(t, token.Matches("654321", issuedAt.Add(14*time.Minute)))
	})

	t.Run("expires exactly at the TTL boundary", func(t *testing.T) {
		token := cancellation.NewToken(bookingID, "123456", issuedAt)

		assert.False(t, token.IsExpired(issuedAt.Add(cancellation.TokenTTL-time.Second)))
		assert.True(t, token.IsExpired(issuedAt.Add(cancellation.TokenTTL)))
		assert.False(t, token.Matches("123456", issuedAt.Add(cancellation.TokenTTL)))
	})

	t.Run("stores only the hash", func(t *testing.T) {
		token := cancellation.NewToken(bookingID, "123456", issuedAt)

		assert.NotContains(t, token.CodeHash(), "123456")
		assert.Equal(t, cancellation.HashCode("123456"), token.CodeHash())
	})

	t.Run("reconstructed token behaves like the original", func(t *testing.T) {
		original := cancellation.NewToken(bookingID, "123456", issuedAt)
		restored := cancellation.ReconstructToken(bookingID, original.CodeHash(), original.ExpiresAt())

		assert.True(t, restored.Matches("123456", issuedAt))
		assert.Equal(t, original.ExpiresAt(), restored.ExpiresAt())
	})
}
