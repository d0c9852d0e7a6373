// Package tea implements a positional substitution codec.
//
// Every character of a base key (an ASCII alphabet) is assigned the numeric
// key offset+position. Encoding replaces each character with its key rendered
// as a zero-padded three-digit decimal string; decoding splits the input into
// three-character groups and maps them back. Because every key has the same
// width, the encoded stream can always be split without separators.
//
// This is a reversible encoding, not confidentiality-grade encryption.
//
// Example usage:
//
//	c, err := tea.NewDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	encoded, err := c.Encode("Original Text 1337")
//	if err != nil {
//		log.Fatal(err)
//	}
//	// encoded is 54 digits long, three per input character
//
//	decoded := c.Decode(encoded)
//	// decoded will be "Original Text 1337"
package tea

import (
	"sync/atomic"

	"github.com/vdparikh/tea/subtle"
)

// Cipher encodes and decodes text with a configurable base key and offset.
//
// A Cipher is safe for concurrent use. Set publishes a complete new table in
// a single atomic store, so Encode and Decode always see one consistent
// configuration.
//
// Construct a Cipher with New or NewDefault. The zero value has an empty base
// key: Encode rejects every character and Decode returns "" until Set
// succeeds.
type Cipher struct {
	table atomic.Pointer[subtle.Table]
	log   Logger
}

// New creates a Cipher for the given base key and offset.
// offset+len(baseKey) must lie in [100, 999].
func New(baseKey string, offset int, opts ...Option) (*Cipher, error) {
	c := &Cipher{log: nopLogger}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Set(baseKey, offset); err != nil {
		return nil, err
	}
	return c, nil
}

// NewDefault creates a Cipher using DefaultBaseKey and DefaultOffset.
func NewDefault(opts ...Option) (*Cipher, error) {
	return New(DefaultBaseKey, DefaultOffset, opts...)
}

// Set replaces the base key and offset. On error the previous configuration
// stays in place.
func (c *Cipher) Set(baseKey string, offset int) error {
	c.logf("Setting base key...")

	table, err := subtle.NewTable(baseKey, offset)
	if err != nil {
		return err
	}
	c.table.Store(table)

	c.logf("Base key successfully set")
	return nil
}

// Encode replaces every character of text with its three-digit key.
// It fails on the first character that is not in the base key and returns
// no partial result.
func (c *Cipher) Encode(text string) (string, error) {
	c.logf("Encrypting text...")

	encoded, err := c.load().Encode(text)
	if err != nil {
		return "", err
	}

	c.logf("Text successfully encrypted")
	return encoded, nil
}

// Decode maps three-character groups back to characters. Groups that are not
// a known key, including a trailing group shorter than three characters, are
// skipped. Decode never fails.
func (c *Cipher) Decode(text string) string {
	c.logf("Decrypting text...")

	decoded := c.load().Decode(text)

	c.logf("Text successfully decrypted")
	return decoded
}

// Alphabet returns the current base key.
func (c *Cipher) Alphabet() string {
	return c.load().Alphabet()
}

// Offset returns the current offset key.
func (c *Cipher) Offset() int {
	return c.load().Offset()
}

var emptyTable = &subtle.Table{}

// load returns the current table, or an empty one before the first Set.
func (c *Cipher) load() *subtle.Table {
	if t := c.table.Load(); t != nil {
		return t
	}
	return emptyTable
}

func (c *Cipher) logf(format string, args ...interface{}) {
	if c.log != nil {
		c.log(format, args...)
	}
}

// Verify that Cipher implements Codec
var _ Codec = (*Cipher)(nil)
