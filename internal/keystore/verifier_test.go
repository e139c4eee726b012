package keystore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/appcfg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testdata/upload.p12 holds one self-signed certificate and its key under
// the alias "upload", protected by the password "secret".
const (
	testStorePassword = "secret"
	testAlias         = "upload"
)

func TestVerify_PKCS12(t *testing.T) {
	v := NewVerifier("testdata")

	reports, err := v.Verify(context.Background(), map[string]models.SigningConfig{
		"upload": {StoreFile: "upload.p12", StorePassword: testStorePassword, KeyAlias: testAlias},
	})
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, "upload", r.Name)
	assert.Equal(t, filepath.Join("testdata", "upload.p12"), r.Path)
	assert.True(t, r.Inspected)
	assert.Equal(t, testAlias, r.Alias)
	assert.Len(t, r.Fingerprint, 95)
}

func TestVerify_PKCS12WithoutAlias(t *testing.T) {
	reports, err := NewVerifier("testdata").Verify(context.Background(), map[string]models.SigningConfig{
		"upload": {StoreFile: "upload.p12", StorePassword: testStorePassword},
	})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.NotEmpty(t, reports[0].Fingerprint)
}

func TestVerify_WrongPassword(t *testing.T) {
	_, err := NewVerifier("testdata").Verify(context.Background(), map[string]models.SigningConfig{
		"upload": {StoreFile: "upload.p12", StorePassword: "wrong", KeyAlias: testAlias},
	})

	var ksErr *KeystoreError
	require.ErrorAs(t, err, &ksErr)
	assert.Equal(t, "upload", ksErr.Name)
	assert.Equal(t, "signingConfigs.upload.storeFile", ksErr.Field())
	assert.ErrorIs(t, err, ErrStoreUnreadable)
	assert.NotContains(t, err.Error(), "wrong")
}

func TestVerify_AliasNotFound(t *testing.T) {
	_, err := NewVerifier("testdata").Verify(context.Background(), map[string]models.SigningConfig{
		"upload": {StoreFile: "upload.p12", StorePassword: testStorePassword, KeyAlias: "release"},
	})
	require.ErrorIs(t, err, ErrAliasNotFound)
	assert.Contains(t, err.Error(), `"release"`)
}

func TestVerify_MissingFile(t *testing.T) {
	_, err := NewVerifier(t.TempDir()).Verify(context.Background(), map[string]models.SigningConfig{
		"debug": {StoreFile: "debug.keystore"},
	})

	var ksErr *KeystoreError
	require.ErrorAs(t, err, &ksErr)
	assert.ErrorIs(t, err, ErrStoreNotFound)
	assert.Equal(t, "debug", ksErr.Name)
}

func TestVerify_GarbageStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.p12"), []byte("not a keystore"), 0o600))

	_, err := NewVerifier(dir).Verify(context.Background(), map[string]models.SigningConfig{
		"broken": {StoreFile: "broken.p12", StorePassword: "x"},
	})
	assert.ErrorIs(t, err, ErrStoreUnreadable)
}

func TestVerify_JKSOnlyChecksExistence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "debug.keystore"), []byte("opaque"), 0o600))

	reports, err := NewVerifier(dir).Verify(context.Background(), map[string]models.SigningConfig{
		"debug": {StoreFile: "debug.keystore", StorePassword: "android", KeyAlias: "androiddebugkey"},
	})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.False(t, reports[0].Inspected)
	assert.Empty(t, reports[0].Fingerprint)
}

func TestVerify_StoreTypeOverridesExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "release.keystore"), []byte("not pkcs12"), 0o600))

	_, err := NewVerifier(dir).Verify(context.Background(), map[string]models.SigningConfig{
		"release": {StoreFile: "release.keystore", StoreType: "PKCS12"},
	})
	assert.ErrorIs(t, err, ErrStoreUnreadable)
}

func TestVerify_AbsolutePathIgnoresBaseDir(t *testing.T) {
	abs, err := filepath.Abs(filepath.Join("testdata", "upload.p12"))
	require.NoError(t, err)

	reports, err := NewVerifier(t.TempDir()).Verify(context.Background(), map[string]models.SigningConfig{
		"upload": {StoreFile: abs, StorePassword: testStorePassword},
	})
	require.NoError(t, err)
	assert.Equal(t, abs, reports[0].Path)
}

func TestVerify_SkipsConfigsWithoutStore(t *testing.T) {
	reports, err := NewVerifier(t.TempDir()).Verify(context.Background(), map[string]models.SigningConfig{
		"unsigned": {},
	})
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestVerify_FirstFailureInNameOrder(t *testing.T) {
	_, err := NewVerifier(t.TempDir()).Verify(context.Background(), map[string]models.SigningConfig{
		"zeta":  {StoreFile: "z.keystore"},
		"alpha": {StoreFile: "a.keystore"},
	})

	var ksErr *KeystoreError
	require.ErrorAs(t, err, &ksErr)
	assert.Equal(t, "alpha", ksErr.Name)
}

func TestVerify_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewVerifier("testdata").Verify(ctx, map[string]models.SigningConfig{
		"upload": {StoreFile: "upload.p12", StorePassword: testStorePassword},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsPKCS12(t *testing.T) {
	tests := []struct {
		sc   models.SigningConfig
		want bool
	}{
		{models.SigningConfig{StoreFile: "a.p12"}, true},
		{models.SigningConfig{StoreFile: "a.PFX"}, true},
		{models.SigningConfig{StoreFile: "a.jks"}, false},
		{models.SigningConfig{StoreFile: "a.keystore", StoreType: "pkcs12"}, true},
		{models.SigningConfig{StoreFile: "a.p12", StoreType: "jks"}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isPKCS12(tt.sc), tt.sc.StoreFile)
	}
}
