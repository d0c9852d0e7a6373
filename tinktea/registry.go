package tinktea

import (
	"sync"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register registers the KeyManager with Tink's global registry.
// It is safe to call multiple times, and succeeds if another caller already
// registered a manager for KeyTypeURL.
func Register() error {
	registerOnce.Do(func() {
		// Tink has no "is registered" check; a successful lookup means another
		// caller got there first.
		if _, err := registry.GetKeyManager(KeyTypeURL); err == nil {
			return
		}
		registerErr = registry.RegisterKeyManager(NewKeyManager())
	})
	return registerErr
}

// NewHandle registers the KeyManager if needed and creates a keyset handle
// with one fresh key generated from template.
func NewHandle(template *tink_go_proto.KeyTemplate) (*keyset.Handle, error) {
	if err := Register(); err != nil {
		return nil, err
	}
	return keyset.NewHandle(template)
}
