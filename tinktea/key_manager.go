// Package tinktea provides Tink integration for the positional substitution codec.
// This file contains the KeyManager implementation that registers base keys with Tink's registry.
package tinktea

import (
	"fmt"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"
	"github.com/google/tink/go/subtle/random"
	"github.com/vdparikh/tea"
	"github.com/vdparikh/tea/subtle"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// KeyTypeURL is the type URL for substitution base keys in Tink's registry.
	KeyTypeURL = "type.googleapis.com/vdparikh.tea.SubstitutionKey"
)

// KeyManager implements registry.KeyManager for substitution base keys.
// The key material is a base key and offset (see MarshalKey); the primitive
// is a *subtle.Table.
type KeyManager struct {
	typeURL string
}

// NewKeyManager creates a new base key manager.
func NewKeyManager() *KeyManager {
	return &KeyManager{
		typeURL: KeyTypeURL,
	}
}

// Primitive creates a *subtle.Table from the given serialized key.
func (km *KeyManager) Primitive(serializedKey []byte) (interface{}, error) {
	baseKey, offset, err := UnmarshalKey(serializedKey)
	if err != nil {
		return nil, err
	}

	table, err := subtle.NewTable(baseKey, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to build key table: %w", err)
	}
	return table, nil
}

// DoesSupport returns true if this KeyManager supports the given key type URL.
func (km *KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == km.typeURL
}

// TypeURL returns the type URL of the keys managed by this KeyManager.
func (km *KeyManager) TypeURL() string {
	return km.typeURL
}

// NewKey generates a random base key according to the serialized key template
// value. An empty value selects DefaultKeyLength and tea.DefaultOffset.
// The returned message is the structpb.Struct stored as key material.
func (km *KeyManager) NewKey(serializedKeyTemplate []byte) (proto.Message, error) {
	length, offset, err := parseTemplate(serializedKeyTemplate)
	if err != nil {
		return nil, err
	}

	baseKey, err := tea.GenerateRandomBaseKey(length)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random base key: %w", err)
	}
	if err := subtle.Validate(baseKey, offset); err != nil {
		return nil, err
	}

	key, err := structpb.NewStruct(map[string]interface{}{
		fieldBaseKey: baseKey,
		fieldOffset:  offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}
	return key, nil
}

// NewKeyData creates a new KeyData from the given key template.
func (km *KeyManager) NewKeyData(serializedKeyTemplate []byte) (*tink_go_proto.KeyData, error) {
	key, err := km.NewKey(serializedKeyTemplate)
	if err != nil {
		return nil, err
	}

	value, err := proto.Marshal(key)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize key: %w", err)
	}

	return &tink_go_proto.KeyData{
		TypeUrl:         km.typeURL,
		Value:           value,
		KeyMaterialType: tink_go_proto.KeyData_SYMMETRIC,
	}, nil
}

// Verify that KeyManager implements registry.KeyManager
var _ registry.KeyManager = (*KeyManager)(nil)

// DefaultKeyLength is the base key length produced by KeyTemplate.
const DefaultKeyLength = tea.DefaultRandomBaseKeyLength

// KeyTemplate creates a key template for random base keys of DefaultKeyLength
// characters at tea.DefaultOffset:
//
//	handle, err := tinktea.NewHandle(tinktea.KeyTemplate())
func KeyTemplate() *tink_go_proto.KeyTemplate {
	return &tink_go_proto.KeyTemplate{
		TypeUrl:          KeyTypeURL,
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}
}

// KeyTemplateWithParams creates a key template for random base keys of the
// given length and offset. The pair is validated up front so that a bad
// template fails here rather than at key generation.
func KeyTemplateWithParams(length, offset int) (*tink_go_proto.KeyTemplate, error) {
	if length < 1 || length > tea.MaxRandomBaseKeyLength {
		return nil, subtle.NewError(subtle.ErrInvalidLength, "length must be between 1 and %d, got %d", tea.MaxRandomBaseKeyLength, length)
	}
	// any ASCII string of the right length stands in for the random key
	if err := subtle.Validate(string(make([]byte, length)), offset); err != nil {
		return nil, err
	}

	s, err := structpb.NewStruct(map[string]interface{}{
		fieldLength: length,
		fieldOffset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build key template: %w", err)
	}
	value, err := proto.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize key template: %w", err)
	}

	return &tink_go_proto.KeyTemplate{
		TypeUrl:          KeyTypeURL,
		Value:            value,
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}, nil
}

func parseTemplate(serializedKeyTemplate []byte) (int, int, error) {
	if len(serializedKeyTemplate) == 0 {
		return DefaultKeyLength, tea.DefaultOffset, nil
	}

	s := &structpb.Struct{}
	if err := proto.Unmarshal(serializedKeyTemplate, s); err != nil {
		return 0, 0, fmt.Errorf("failed to parse key template: %w", err)
	}
	length, err := intField(s, fieldLength, subtle.ErrInvalidLength)
	if err != nil {
		return 0, 0, err
	}
	offset, err := intField(s, fieldOffset, subtle.ErrInvalidOffset)
	if err != nil {
		return 0, 0, err
	}
	return length, offset, nil
}

// NewKeysetHandleFromBaseKey creates a keyset handle holding a single known
// base key, e.g. one shared with a system that still uses the plain codec.
//
// Note: This creates an unencrypted keyset. The base key is the whole secret,
// so protect stored keysets accordingly.
func NewKeysetHandleFromBaseKey(baseKey string, offset int) (*keyset.Handle, error) {
	value, err := MarshalKey(baseKey, offset)
	if err != nil {
		return nil, err
	}

	keyID := random.GetRandomUint32()
	keyData := &tink_go_proto.KeyData{
		TypeUrl:         KeyTypeURL,
		Value:           value,
		KeyMaterialType: tink_go_proto.KeyData_SYMMETRIC,
	}
	keysetKey := &tink_go_proto.Keyset_Key{
		KeyData:          keyData,
		KeyId:            keyID,
		Status:           tink_go_proto.KeyStatusType_ENABLED,
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}
	ks := &tink_go_proto.Keyset{
		PrimaryKeyId: keyID,
		Key:          []*tink_go_proto.Keyset_Key{keysetKey},
	}

	buf := &keyset.MemReaderWriter{Keyset: ks}
	return insecurecleartextkeyset.Read(buf)
}
