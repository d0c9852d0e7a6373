// Package subtle provides the key tables behind the positional substitution codec.
// A Table maps every alphabet position to a fixed-width decimal key and back.
// It should not be used directly by most users; instead use the high-level APIs in the parent package.
package subtle

import (
	"strings"
	"unicode/utf8"
)

const (
	// KeyWidth is the number of decimal digits in every rendered key.
	KeyWidth = 3

	// MinKeySpace and MaxKeySpace bound offset+len(alphabet) so that every
	// key fits in KeyWidth digits.
	MinKeySpace = 100
	MaxKeySpace = 999
)

// Table holds the forward (key -> character) and inverse (character -> key)
// lookup tables for one alphabet/offset pair.
//
// A Table is immutable after NewTable returns and is safe for concurrent use.
type Table struct {
	alphabet string
	offset   int

	// inverse[c] is the rendered key for ASCII character c, or "" when c is
	// not in the alphabet. For repeated characters the last position wins.
	inverse [utf8.RuneSelf]string
}

// NewTable validates alphabet and offset and builds both lookup tables.
// Key offset+i is assigned to alphabet[i].
func NewTable(alphabet string, offset int) (*Table, error) {
	if err := Validate(alphabet, offset); err != nil {
		return nil, err
	}

	t := &Table{
		alphabet: alphabet,
		offset:   offset,
	}
	for i := 0; i < len(alphabet); i++ {
		t.inverse[alphabet[i]] = FormatKey(offset + i)
	}
	return t, nil
}

// Validate reports the first violated constraint for an alphabet/offset pair.
// Checks run in order: alphabet, offset, lower key-space bound, upper bound.
func Validate(alphabet string, offset int) error {
	if len(alphabet) == 0 || !isASCII(alphabet) {
		return NewError(ErrInvalidAlphabet, "base key must be a non-empty ASCII string")
	}
	if offset < 0 {
		return NewError(ErrInvalidOffset, "offset key must be a non-negative integer, got %d", offset)
	}
	// offset alone may overflow the sum below
	if offset > MaxKeySpace {
		return NewError(ErrKeySpaceTooLarge, "base key is too big; offset plus length must be at most %d, got offset %d", MaxKeySpace, offset)
	}
	size := offset + len(alphabet)
	if size < MinKeySpace {
		return NewError(ErrKeySpaceTooSmall, "base key is too small; offset plus length must be at least %d, got %d", MinKeySpace, size)
	}
	if size > MaxKeySpace {
		return NewError(ErrKeySpaceTooLarge, "base key is too big; offset plus length must be at most %d, got %d", MaxKeySpace, size)
	}
	return nil
}

// Alphabet returns the alphabet the table was built from.
func (t *Table) Alphabet() string {
	return t.alphabet
}

// Offset returns the first key of the table.
func (t *Table) Offset() int {
	return t.offset
}

// Len returns the number of forward entries.
func (t *Table) Len() int {
	return len(t.alphabet)
}

// KeyFor returns the rendered key for character c.
func (t *Table) KeyFor(c byte) (string, bool) {
	if c >= utf8.RuneSelf {
		return "", false
	}
	key := t.inverse[c]
	return key, key != ""
}

// Lookup resolves a rendered key to its character. Only exact KeyWidth-digit
// groups can match; "07" never resolves even when key 7 exists.
func (t *Table) Lookup(group string) (byte, bool) {
	key, ok := ParseKey(group)
	if !ok {
		return 0, false
	}
	idx := key - t.offset
	if idx < 0 || idx >= len(t.alphabet) {
		return 0, false
	}
	return t.alphabet[idx], true
}

// Encode replaces every character of text with its key. The first character
// without a key aborts the whole operation.
func (t *Table) Encode(text string) (string, error) {
	var b strings.Builder
	b.Grow(len(text) * KeyWidth)
	for _, r := range text {
		if r >= utf8.RuneSelf || t.inverse[r] == "" {
			return "", NewError(ErrUnmappableCharacter, "character %q not found in base key", r)
		}
		b.WriteString(t.inverse[r])
	}
	return b.String(), nil
}

// Decode splits text into groups of KeyWidth characters and resolves each one.
// Groups that do not resolve, including a short trailing group, are dropped.
// A group holding a multi-byte character spans more than KeyWidth bytes and
// never resolves.
func (t *Table) Decode(text string) string {
	var b strings.Builder
	b.Grow(len(text) / KeyWidth)
	for len(text) > 0 {
		end := 0
		for n := 0; n < KeyWidth && end < len(text); n++ {
			_, size := utf8.DecodeRuneInString(text[end:])
			end += size
		}
		if c, ok := t.Lookup(text[:end]); ok {
			b.WriteByte(c)
		}
		text = text[end:]
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
