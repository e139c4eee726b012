package resolver

import (
	"testing"

	"github.com/MKhiriev/appcfg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() models.AppConfig {
	return models.AppConfig{
		Namespace:     "com.example.dailylist_pro",
		ApplicationID: "com.example.dailylist_pro",
		CompileSDK:    34,
		MinSDK:        21,
		TargetSDK:     31,
		VersionCode:   1,
		VersionName:   "1.0.0",
		Plugins:       []string{models.PluginAndroidApplication},
	}
}

func TestMergeProfile_AppliesOverrides(t *testing.T) {
	merged, err := MergeProfile(baseConfig(), models.ProfileOverrides{
		SigningConfig:       "debug",
		ApplicationIDSuffix: ".debug",
		Debuggable:          models.Bool(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", merged.SigningConfig)
	assert.Equal(t, ".debug", merged.ApplicationIDSuffix)
	assert.True(t, merged.Debuggable)
	assert.False(t, merged.MinifyEnabled)
	assert.Equal(t, 34, merged.CompileSDK)
}

func TestMergeProfile_DoesNotMutateBase(t *testing.T) {
	base := baseConfig()

	merged, err := MergeProfile(base, models.ProfileOverrides{SigningConfig: "debug", MinifyEnabled: models.Bool(true)})
	require.NoError(t, err)
	merged.Plugins[0] = "changed"

	assert.Equal(t, baseConfig(), base)
}

func TestMergeProfile_Idempotent(t *testing.T) {
	overrides := []models.ProfileOverrides{
		{},
		{SigningConfig: "debug"},
		{SigningConfig: "release", VersionNameSuffix: "-rc", MinifyEnabled: models.Bool(true)},
		{Debuggable: models.Bool(false), ApplicationIDSuffix: ".qa"},
	}

	for _, o := range overrides {
		once, err := MergeProfile(baseConfig(), o)
		require.NoError(t, err)

		twice, err := MergeProfile(once, o)
		require.NoError(t, err)

		assert.Equal(t, once, twice)
	}
}

func TestMergeProfile_LastWriteWins(t *testing.T) {
	debug, err := MergeProfile(baseConfig(), models.ProfileOverrides{SigningConfig: "debug", Debuggable: models.Bool(true)})
	require.NoError(t, err)

	release, err := MergeProfile(debug, models.ProfileOverrides{SigningConfig: "release", Debuggable: models.Bool(false)})
	require.NoError(t, err)

	assert.Equal(t, "release", release.SigningConfig)
	assert.False(t, release.Debuggable)
}

func TestMergeProfile_NilBooleansKeepBase(t *testing.T) {
	base := baseConfig()
	base.Debuggable = true

	merged, err := MergeProfile(base, models.ProfileOverrides{SigningConfig: "debug"})
	require.NoError(t, err)
	assert.True(t, merged.Debuggable)
}
