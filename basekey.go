package tea

import (
	"encoding/base64"

	"github.com/google/tink/go/subtle/random"
	"github.com/vdparikh/tea/subtle"
)

const (
	// DefaultBaseKey is the alphabet used by NewDefault. '/' and ' ' each
	// appear twice; their last position is the one Encode uses.
	DefaultBaseKey = "abcdefghijklmnopqrstuvwxyz0123456789;`</>- |_=,.:ABCDEFGHIJKLMNOPQRSTUVWXYZ\\/ "

	// DefaultOffset is the key assigned to the first base key character.
	DefaultOffset = 105

	// DefaultRandomBaseKeyLength is the length GenerateRandomBaseKey callers
	// should use when they have no preference.
	DefaultRandomBaseKeyLength = 64

	// MaxRandomBaseKeyLength bounds GenerateRandomBaseKey.
	MaxRandomBaseKeyLength = 1000
)

// GenerateRandomBaseKey returns length characters of cryptographically random
// data in standard base64. Every character is printable ASCII, so the result
// is always accepted by Set as long as the offset fits.
//
// The result may repeat characters.
func GenerateRandomBaseKey(length int) (string, error) {
	if length < 1 || length > MaxRandomBaseKeyLength {
		return "", subtle.NewError(ErrInvalidLength, "length must be between 1 and %d, got %d", MaxRandomBaseKeyLength, length)
	}
	// base64 of n bytes is never shorter than n characters
	raw := random.GetRandomBytes(uint32(length))
	return base64.StdEncoding.EncodeToString(raw)[:length], nil
}
