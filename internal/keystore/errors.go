package keystore

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreNotFound is returned when a store file does not exist.
	ErrStoreNotFound = errors.New("keystore file not found")

	// ErrStoreUnreadable is returned when a PKCS#12 store cannot be opened
	// with the configured password.
	ErrStoreUnreadable = errors.New("keystore cannot be opened")

	// ErrAliasNotFound is returned when the configured key alias is not
	// present in a store.
	ErrAliasNotFound = errors.New("key alias not found in keystore")
)

// KeystoreError reports a signing configuration whose store failed a check.
type KeystoreError struct {
	// Name is the signing configuration name.
	Name string
	// Path is the resolved store file path.
	Path string
	Err  error
}

func (e *KeystoreError) Error() string {
	return fmt.Sprintf("signing config %q (%s): %v", e.Name, e.Path, e.Err)
}

// Field names the offending document field.
func (e *KeystoreError) Field() string {
	return "signingConfigs." + e.Name + ".storeFile"
}

func (e *KeystoreError) Unwrap() error {
	return e.Err
}
