// This file defines the Codec interface shared by Cipher and the Tink-backed
// primitive in the tinktea package.

package tea

// Codec is the interface for positional substitution encoding.
// Implementations are deterministic: the same text and base key always give
// the same encoding.
type Codec interface {
	// Encode replaces every character with its fixed-width key.
	// It fails if text contains a character outside the base key.
	Encode(text string) (string, error)

	// Decode is the inverse of Encode. Unknown groups are dropped rather than
	// reported, so Decode does not return an error.
	Decode(text string) string
}
