package tea

import "github.com/vdparikh/tea/subtle"

// Error is returned for every invalid input. Its Kind is one of the Err*
// values below and StatusCode reports 400.
type Error = subtle.Error

var (
	// ErrInvalidAlphabet: the base key is empty or not ASCII.
	ErrInvalidAlphabet = subtle.ErrInvalidAlphabet
	// ErrInvalidOffset: the offset key is negative.
	ErrInvalidOffset = subtle.ErrInvalidOffset
	// ErrKeySpaceTooSmall: offset+len(baseKey) is below 100.
	ErrKeySpaceTooSmall = subtle.ErrKeySpaceTooSmall
	// ErrKeySpaceTooLarge: offset+len(baseKey) is above 999.
	ErrKeySpaceTooLarge = subtle.ErrKeySpaceTooLarge
	// ErrUnmappableCharacter: Encode met a character outside the base key.
	ErrUnmappableCharacter = subtle.ErrUnmappableCharacter
	// ErrInvalidLength: GenerateRandomBaseKey was asked for a length outside [1, 1000].
	ErrInvalidLength = subtle.ErrInvalidLength
)
