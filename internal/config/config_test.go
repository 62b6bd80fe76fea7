package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config and env lookup at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{
		"YOMIKAZU_STORAGE", "YOMIKAZU_STORAGE_PATH", "YOMIKAZU_REDIS_ADDR", "YOMIKAZU_REDIS_PREFIX",
		"YOMIKAZU_RENDERER", "YOMIKAZU_TIMEOUT", "YOMIKAZU_USER_AGENT", "YOMIKAZU_COOKIE",
		"YOMIKAZU_COOKIE_FILE", "YOMIKAZU_CLOUDFLARE", "YOMIKAZU_DEBUG",
	} {
		// godotenv never overrides a variable that exists, even when empty.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadMergedWithoutProfile(t *testing.T) {
	isolate(t)

	cfg, used, err := LoadMerged(Options{})
	require.NoError(t, err)
	assert.Contains(t, used, "default config in memory")
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestInitAndActivate(t *testing.T) {
	dir := isolate(t)

	p, created, err := InitDefault()
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, p.Active)
	assert.Equal(t, filepath.Join(dir, "yomikazu", "configs", "Default.yaml"), p.Path)

	_, created, err = InitDefault()
	require.NoError(t, err)
	assert.False(t, created)

	work, err := LookupProfile("work")
	require.NoError(t, err)
	other := DefaultConfig()
	other.Storage = "sqlite"
	other.Timeout = 5 * time.Second
	require.NoError(t, work.Save(other))
	require.NoError(t, Activate("work"))

	list, err := Profiles()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Default", list[0].Label)
	assert.False(t, list[0].Active)
	assert.Equal(t, "work", list[1].Label)
	assert.True(t, list[1].Active)

	loaded, err := list[1].Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", loaded.Storage)

	cfg, used, err := LoadMerged(Options{})
	require.NoError(t, err)
	assert.Equal(t, work.Path, used)
	assert.Equal(t, "sqlite", cfg.Storage)
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	assert.Error(t, Activate("missing"))
	assert.Error(t, Activate(" "))
	assert.Error(t, Activate("../escape"))
}

func TestActiveProfileMissingFileFallsBackToDefaults(t *testing.T) {
	isolate(t)

	p, _, err := InitDefault()
	require.NoError(t, err)
	require.NoError(t, os.Remove(p.Path))

	_, err = ActiveProfile()
	assert.ErrorIs(t, err, ErrNoConfig)

	cfg, used, err := LoadMerged(Options{})
	require.NoError(t, err)
	assert.Contains(t, used, "default config in memory")
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestProfilesWithoutConfigDir(t *testing.T) {
	isolate(t)

	list, err := Profiles()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPrecedence(t *testing.T) {
	dir := isolate(t)

	def, _, err := InitDefault()
	require.NoError(t, err)

	profile := DefaultConfig()
	profile.Storage = "sqlite"
	profile.UserAgent = "from-profile"
	profile.Renderer = RendererHTTP
	require.NoError(t, def.Save(profile))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("YOMIKAZU_USER_AGENT=from-env\nYOMIKAZU_RENDERER=chrome\nYOMIKAZU_DEBUG=true\n"), 0644))
	t.Cleanup(func() {
		os.Unsetenv("YOMIKAZU_USER_AGENT")
		os.Unsetenv("YOMIKAZU_RENDERER")
		os.Unsetenv("YOMIKAZU_DEBUG")
	})

	cfg, _, err := LoadMerged(Options{Renderer: RendererHTTP})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage, "profile beats default")
	assert.Equal(t, "from-env", cfg.UserAgent, "env beats profile")
	assert.Equal(t, RendererHTTP, cfg.Renderer, "flag beats env")
	assert.True(t, cfg.Debug)
}

func TestIgnoreConfig(t *testing.T) {
	isolate(t)

	def, _, err := InitDefault()
	require.NoError(t, err)
	profile := DefaultConfig()
	profile.Storage = "redis"
	require.NoError(t, def.Save(profile))

	cfg, used, err := LoadMerged(Options{IgnoreConfig: true, StoragePath: "/tmp/x.json"})
	require.NoError(t, err)
	assert.Equal(t, "(ignored config)", used)
	assert.Equal(t, "file", cfg.Storage)
	assert.Equal(t, "/tmp/x.json", cfg.StoragePath)
}

func TestInvalidEnv(t *testing.T) {
	isolate(t)
	t.Setenv("YOMIKAZU_TIMEOUT", "soon")

	_, _, err := LoadMerged(Options{IgnoreConfig: true})
	assert.ErrorContains(t, err, "YOMIKAZU_TIMEOUT")
}

func TestMissingExplicitEnvFile(t *testing.T) {
	dir := isolate(t)

	_, _, err := LoadMerged(Options{IgnoreConfig: true, EnvFile: filepath.Join(dir, "nope.env")})
	assert.Error(t, err)
}

func TestProfileKeepsDefaultsForMissingFields(t *testing.T) {
	isolate(t)

	def, _, err := InitDefault()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(def.Path, []byte("storage: sqlite\n"), 0644))

	cfg, _, err := LoadMerged(Options{})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}
