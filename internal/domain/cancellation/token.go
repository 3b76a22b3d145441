package cancellation

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"
)

const (
	// TokenTTL bounds how long an issued code stays verifiable.
	TokenTTL = 15 * time.Minute

	codeSpace = 1000000
)

var ErrCodeGeneration = errors.New("failed to generate cancellation code")

// Token is a one-time secret bound to exactly one booking. Only the hash of
// the code is kept; the plain code exists just long enough to be emailed.
type Token struct {
	bookingID uuid.UUID
	codeHash  string
	expiresAt time.Time
}

// GenerateCode returns a uniformly random 6-digit numeric code, zero-padded.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpace))
	if err != nil {
		return "", ErrCodeGeneration
	}
	code := n.String()
	for len(code) < 6 {
		code = "0" + code
	}
	return code, nil
}

func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func NewToken(bookingID uuid.UUID, code string, issuedAt time.Time) *Token {
	return &Token{
		bookingID: bookingID,
		codeHash:  HashCode(code),
		expiresAt: issuedAt.Add(TokenTTL),
	}
}

func ReconstructToken(bookingID uuid.UUID, codeHash string, expiresAt time.Time) *Token {
	return &Token{bookingID: bookingID, codeHash: codeHash, expiresAt: expiresAt}
}

func (t *Token) BookingID() uuid.UUID { return t.bookingID }
func (t *Token) CodeHash() string     { return t.codeHash }
func (t *Token) ExpiresAt() time.Time { return t.expiresAt }

func (t *Token) IsExpired(now time.Time) bool {
	return !now.Before(t.expiresAt)
}

// Matches compares in constant time and treats an expired token as a plain
// mismatch.
func (t *Token) Matches(code string, now time.Time) bool {
	if t.IsExpired(now) {
		return false
	}
	supplied := HashCode(code)
	return subtle.ConstantTimeCompare([]byte(t.codeHash), []byte(supplied)) == 1
}
