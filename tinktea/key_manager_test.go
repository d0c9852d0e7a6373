package tinktea

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/tink/go/proto/tink_go_proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdparikh/tea"
	"github.com/vdparikh/tea/subtle"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// TestKeyManagerPrimitive tests that KeyManager.Primitive() builds a table from key material
func TestKeyManagerPrimitive(t *testing.T) {
	keyManager := NewKeyManager()

	value, err := MarshalKey(tea.DefaultBaseKey, tea.DefaultOffset)
	require.NoError(t, err)

	primitive, err := keyManager.Primitive(value)
	require.NoError(t, err)

	table, ok := primitive.(*subtle.Table)
	require.True(t, ok, "Primitive is %T, want *subtle.Table", primitive)
	assert.Equal(t, tea.DefaultBaseKey, table.Alphabet())
	assert.Equal(t, tea.DefaultOffset, table.Offset())
}

func TestKeyManagerPrimitive_InvalidMaterial(t *testing.T) {
	keyManager := NewKeyManager()

	fractional, err := structpb.NewStruct(map[string]interface{}{
		fieldBaseKey: "abc",
		fieldOffset:  100.5,
	})
	require.NoError(t, err)
	fractionalValue, err := proto.Marshal(fractional)
	require.NoError(t, err)

	tooSmall, err := structpb.NewStruct(map[string]interface{}{
		fieldBaseKey: "abc",
		fieldOffset:  10,
	})
	require.NoError(t, err)
	tooSmallValue, err := proto.Marshal(tooSmall)
	require.NoError(t, err)

	missing, err := structpb.NewStruct(map[string]interface{}{
		fieldOffset: 105,
	})
	require.NoError(t, err)
	missingValue, err := proto.Marshal(missing)
	require.NoError(t, err)

	_, err = keyManager.Primitive(fractionalValue)
	assert.ErrorIs(t, err, tea.ErrInvalidOffset)

	_, err = keyManager.Primitive(tooSmallValue)
	assert.ErrorIs(t, err, tea.ErrKeySpaceTooSmall)

	_, err = keyManager.Primitive(missingValue)
	assert.ErrorContains(t, err, fieldBaseKey)

	_, err = keyManager.Primitive([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}

// TestKeyManagerDoesSupport tests KeyManager.DoesSupport()
func TestKeyManagerDoesSupport(t *testing.T) {
	keyManager := NewKeyManager()

	assert.True(t, keyManager.DoesSupport(KeyTypeURL))
	assert.False(t, keyManager.DoesSupport("invalid-type-url"))
}

// TestKeyManagerTypeURL tests KeyManager.TypeURL()
func TestKeyManagerTypeURL(t *testing.T) {
	assert.Equal(t, KeyTypeURL, NewKeyManager().TypeURL())
}

func TestKeyManagerNewKeyData(t *testing.T) {
	keyManager := NewKeyManager()

	keyData, err := keyManager.NewKeyData(nil)
	require.NoError(t, err)
	assert.Equal(t, KeyTypeURL, keyData.TypeUrl)
	assert.Equal(t, tink_go_proto.KeyData_SYMMETRIC, keyData.KeyMaterialType)

	baseKey, offset, err := UnmarshalKey(keyData.Value)
	require.NoError(t, err)
	assert.Len(t, baseKey, DefaultKeyLength)
	assert.Equal(t, tea.DefaultOffset, offset)

	other, err := keyManager.NewKeyData(nil)
	require.NoError(t, err)
	assert.NotEqual(t, keyData.Value, other.Value, "two generated keys should differ")
}

func TestKeyTemplateWithParams(t *testing.T) {
	template, err := KeyTemplateWithParams(300, 600)
	require.NoError(t, err)
	assert.Equal(t, KeyTypeURL, template.TypeUrl)

	keyData, err := NewKeyManager().NewKeyData(template.Value)
	require.NoError(t, err)

	baseKey, offset, err := UnmarshalKey(keyData.Value)
	require.NoError(t, err)
	assert.Len(t, baseKey, 300)
	assert.Equal(t, 600, offset)

	_, err = KeyTemplateWithParams(0, 105)
	assert.ErrorIs(t, err, tea.ErrInvalidLength)

	_, err = KeyTemplateWithParams(1001, 0)
	assert.ErrorIs(t, err, tea.ErrInvalidLength)

	_, err = KeyTemplateWithParams(10, 10)
	assert.ErrorIs(t, err, tea.ErrKeySpaceTooSmall)

	_, err = KeyTemplateWithParams(900, 100)
	assert.ErrorIs(t, err, tea.ErrKeySpaceTooLarge)

	_, err = KeyTemplateWithParams(64, -1)
	assert.ErrorIs(t, err, tea.ErrInvalidOffset)
}

func TestMarshalKey(t *testing.T) {
	value, err := MarshalKey("abcdef", 321)
	require.NoError(t, err)

	baseKey, offset, err := UnmarshalKey(value)
	require.NoError(t, err)
	assert.Equal(t, "abcdef", baseKey)
	assert.Equal(t, 321, offset)

	_, err = MarshalKey("", 321)
	assert.ErrorIs(t, err, tea.ErrInvalidAlphabet)
}

func TestNewFromTemplate(t *testing.T) {
	handle, err := NewHandle(KeyTemplate())
	require.NoError(t, err)

	codec, err := New(handle)
	require.NoError(t, err)

	// every character of the generated base key is encodable
	plaintext := codec.Alphabet()
	encoded, err := codec.Encode(plaintext)
	require.NoError(t, err)
	assert.Len(t, encoded, 3*len(plaintext))
	assert.Equal(t, plaintext, codec.Decode(encoded))

	t.Logf("Base key: %s", plaintext)
	t.Logf("Encoded:  %s", encoded)
}

func TestNewFromBaseKey(t *testing.T) {
	handle, err := NewKeysetHandleFromBaseKey(tea.DefaultBaseKey, tea.DefaultOffset)
	require.NoError(t, err)

	codec, err := New(handle)
	require.NoError(t, err)

	plain, err := tea.NewDefault()
	require.NoError(t, err)

	want, err := plain.Encode("Original Text 1337")
	require.NoError(t, err)
	got, err := codec.Encode("Original Text 1337")
	require.NoError(t, err)
	assert.Equal(t, want, got, "keyset codec should match the plain codec")

	_, err = NewKeysetHandleFromBaseKey("abc", 1)
	assert.ErrorIs(t, err, tea.ErrKeySpaceTooSmall)
}

func TestNewNilHandle(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestKeysetJSONRoundTrip(t *testing.T) {
	handle, err := NewKeysetHandleFromBaseKey("zyxwvutsrqponmlkjihgfedcba ", 700)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteKeyset(handle, &buf))
	assert.Contains(t, buf.String(), KeyTypeURL)

	restored, err := ReadKeyset(strings.NewReader(buf.String()))
	require.NoError(t, err)

	codec, err := New(restored)
	require.NoError(t, err)
	assert.Equal(t, "zyxwvutsrqponmlkjihgfedcba ", codec.Alphabet())
	assert.Equal(t, 700, codec.Offset())

	encoded, err := codec.Encode("round trip")
	require.NoError(t, err)
	assert.Equal(t, "round trip", codec.Decode(encoded))

	_, err = ReadKeyset(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestRegisterIsIdempotent(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())
}
