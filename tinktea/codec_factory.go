// Package tinktea provides Tink integration for the positional substitution codec.
// This file contains the factory function for creating codecs from Tink keyset handles.
package tinktea

import (
	"fmt"
	"io"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"
	"github.com/vdparikh/tea"
	"github.com/vdparikh/tea/subtle"
)

// New creates a codec from the primary key of a Tink keyset handle.
// This is the main entry point for users following Tink's pattern.
//
// Example:
//
//	handle, err := tinktea.NewHandle(tinktea.KeyTemplate())
//	if err != nil {
//	    return err
//	}
//	codec, err := tinktea.New(handle)
//	if err != nil {
//	    return err
//	}
//	encoded, err := codec.Encode("hello")
func New(handle *keyset.Handle, opts ...tea.Option) (*tea.Cipher, error) {
	if handle == nil {
		return nil, fmt.Errorf("keyset handle cannot be nil")
	}

	// Extract the keyset using insecurecleartextkeyset (for unencrypted keysets)
	ks := insecurecleartextkeyset.KeysetMaterial(handle)

	var keyData *tink_go_proto.KeyData
	for _, key := range ks.Key {
		if key.KeyId == ks.PrimaryKeyId {
			keyData = key.KeyData
			break
		}
	}
	if keyData == nil {
		return nil, fmt.Errorf("no primary key found in keyset")
	}
	if keyData.TypeUrl != KeyTypeURL {
		return nil, fmt.Errorf("unsupported key type %q", keyData.TypeUrl)
	}
	if keyData.GetKeyMaterialType() != tink_go_proto.KeyData_SYMMETRIC {
		return nil, fmt.Errorf("unsupported key material type %s", keyData.GetKeyMaterialType())
	}

	primitive, err := NewKeyManager().Primitive(keyData.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to create primitive: %w", err)
	}
	table := primitive.(*subtle.Table)

	return tea.New(table.Alphabet(), table.Offset(), opts...)
}

// WriteKeyset writes handle to w as cleartext JSON.
func WriteKeyset(handle *keyset.Handle, w io.Writer) error {
	if err := insecurecleartextkeyset.Write(handle, keyset.NewJSONWriter(w)); err != nil {
		return fmt.Errorf("failed to write keyset: %w", err)
	}
	return nil
}

// ReadKeyset reads a cleartext JSON keyset written by WriteKeyset.
func ReadKeyset(r io.Reader) (*keyset.Handle, error) {
	handle, err := insecurecleartextkeyset.Read(keyset.NewJSONReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to read keyset: %w", err)
	}
	return handle, nil
}
