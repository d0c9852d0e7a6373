package tinktea

import (
	"fmt"
	"math"

	"github.com/vdparikh/tea/subtle"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Field names used in serialized key material and key templates.
const (
	fieldBaseKey = "base_key"
	fieldOffset  = "offset"
	fieldLength  = "length"
)

// MarshalKey serializes a base key and offset into key material for KeyData.Value.
// The material is a protobuf Struct {base_key: string, offset: number}.
func MarshalKey(baseKey string, offset int) ([]byte, error) {
	if err := subtle.Validate(baseKey, offset); err != nil {
		return nil, err
	}
	s, err := structpb.NewStruct(map[string]interface{}{
		fieldBaseKey: baseKey,
		fieldOffset:  offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build key material: %w", err)
	}
	return proto.Marshal(s)
}

// UnmarshalKey parses key material produced by MarshalKey.
// It does not validate the key space; NewTable does that.
func UnmarshalKey(serializedKey []byte) (string, int, error) {
	s := &structpb.Struct{}
	if err := proto.Unmarshal(serializedKey, s); err != nil {
		return "", 0, fmt.Errorf("failed to parse key material: %w", err)
	}

	baseKey, ok := s.Fields[fieldBaseKey].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", 0, fmt.Errorf("key material has no %s string", fieldBaseKey)
	}
	offset, err := intField(s, fieldOffset, subtle.ErrInvalidOffset)
	if err != nil {
		return "", 0, err
	}
	return baseKey.StringValue, offset, nil
}

// intField reads an integral number field. Fractional or out-of-range values
// are reported with the given error kind.
func intField(s *structpb.Struct, name string, kind error) (int, error) {
	v, ok := s.Fields[name].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("key material has no %s number", name)
	}
	n := v.NumberValue
	if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
		return 0, subtle.NewError(kind, "%s must be an integer, got %v", name, n)
	}
	return int(n), nil
}
