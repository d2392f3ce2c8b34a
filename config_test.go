package microdi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
name: app
default_lifetime: transient
log_level: warn
`))
	require.NoError(t, err)

	assert.Equal(t, "app", cfg.Name)
	require.NotNil(t, cfg.DefaultLifetime)
	assert.Equal(t, LifetimeTransient, *cfg.DefaultLifetime)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Nil(t, cfg.DefaultLifetime)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestParseConfig_InvalidLifetime(t *testing.T) {
	_, err := ParseConfig([]byte("default_lifetime: forever\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown lifetime "forever"`)
}

func TestConfig_InvalidLogLevel(t *testing.T) {
	cfg := Config{LogLevel: "loud"}

	_, err := cfg.Options()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestConfig_Options(t *testing.T) {
	perContainer := LifetimeSingletonPerContainer
	cfg := Config{Name: "app", DefaultLifetime: &perContainer, LogLevel: "error"}

	opts, err := cfg.Options()
	require.NoError(t, err)

	c := New(opts...)
	assert.Equal(t, "app", c.Name())

	reg := mustRegister(t, c, "a", newTemplate(nil))
	assert.Equal(t, LifetimeSingletonPerContainer, reg.Lifetime())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "container.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: fromfile\ndefault_lifetime: transient\n"), 0o600))

	c, err := NewFromConfig(path, WithName("override"))
	require.NoError(t, err)

	// later options win
	assert.Equal(t, "override", c.Name())

	reg := mustRegister(t, c, "a", newTemplate(nil))
	assert.Equal(t, LifetimeTransient, reg.Lifetime())
}

func TestLifetime_YAMLRoundTrip(t *testing.T) {
	for _, l := range []Lifetime{LifetimeSingleton, LifetimeTransient, LifetimeSingletonPerContainer, LifetimeExternal} {
		data, err := yaml.Marshal(l)
		require.NoError(t, err)

		var got Lifetime
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Equal(t, l, got)
	}
}

func TestLifetime_String(t *testing.T) {
	assert.Equal(t, "singleton", LifetimeSingleton.String())
	assert.Equal(t, "singleton_per_container", LifetimeSingletonPerContainer.String())
	assert.Equal(t, "lifetime(9)", Lifetime(9).String())

	_, err := ParseLifetime("scoped")
	assert.Error(t, err)
}
