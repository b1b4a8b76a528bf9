// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config directory at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SITESHELL_HOME", dir)
	return dir
}

func TestDefault_IsValid(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Visitor", cfg.Shell.Username)
	assert.Equal(t, []string{"about", "projects", "blogs", "experience", "contact"}, cfg.Sections.Root)
	assert.Equal(t, "blogs", cfg.Sections.Dynamic)
	assert.Equal(t, 10, cfg.Shell.HistoryDisplay)
}

func TestLoad_NoFilesReturnsDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "none", cfg.Index.Source)
}

func TestLoad_TOMLFillsMissingValues(t *testing.T) {
	dir := isolate(t)
	content := `
[shell]
username = "ada"

[profile]
email = "ada@example.com"

[[profile.socials]]
name = "GitHub"
url = "https://github.com/ada"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ada", cfg.Shell.Username)
	assert.Equal(t, "$", cfg.Shell.PromptSymbol)
	assert.Equal(t, "ada@example.com", cfg.Profile.Email)
	require.Len(t, cfg.Profile.Socials, 1)
	assert.Equal(t, "GitHub", cfg.Profile.Socials[0].Name)
	assert.True(t, cfg.UI.AltScreen, "unset booleans keep their defaults")
}

func TestLoad_InvalidTOMLFallsBackToDefaults(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[shell\n"), 0644))

	cfg, err := Load()
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "Visitor", cfg.Shell.Username)
}

func TestSaveAndLoadFromPath(t *testing.T) {
	dir := isolate(t)
	cfg := Default()
	cfg.Shell.Username = "grace"
	cfg.Index.Source = "http"
	cfg.Index.URL = "https://example.com/posts.json"

	tomlPath := filepath.Join(dir, "out.toml")
	require.NoError(t, SaveTOML(cfg, tomlPath))
	loaded, err := LoadFromPath(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, "grace", loaded.Shell.Username)
	assert.Equal(t, "https://example.com/posts.json", loaded.Index.URL)

	jsonPath := filepath.Join(dir, "out.json")
	require.NoError(t, SaveJSON(cfg, jsonPath))
	loaded, err = LoadFromPath(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "http", loaded.Index.Source)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad source", func(c *Config) { c.Index.Source = "ftp" }, "index.source"},
		{"http without url", func(c *Config) { c.Index.Source = "http" }, "index.url"},
		{"markdown without dir", func(c *Config) { c.Index.Source = "markdown" }, "index.dir"},
		{"dynamic not in root", func(c *Config) { c.Sections.Dynamic = "posts" }, "sections.dynamic"},
		{"duplicate section", func(c *Config) { c.Sections.Root = append(c.Sections.Root, "About") }, "sections.root"},
		{"section with slash", func(c *Config) { c.Sections.Root = append(c.Sections.Root, "a/b") }, "sections.root"},
		{"bad email", func(c *Config) { c.Profile.Email = "nobody" }, "profile.email"},
		{"social without url", func(c *Config) { c.Profile.Socials = []Social{{Name: "x"}} }, "profile.socials[0]"},
		{"tiny disco interval", func(c *Config) { c.Timing.DiscoIntervalMs = 1 }, "timing.disco_interval_ms"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.ErrorAs(t, err, &verrs)
			var fields []string
			for _, e := range verrs {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("SITESHELL_USERNAME", "linus")
	t.Setenv("SITESHELL_THEME", "LIGHT")
	t.Setenv("SITESHELL_REPORT_UNKNOWN", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "linus", cfg.Shell.Username)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.True(t, cfg.Shell.ReportUnknown)
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("shell.username", "margaret"))
	require.NoError(t, cfg.Set("timing.disco_interval_ms", "200"))
	require.NoError(t, cfg.Set("ui.confetti", "false"))
	require.NoError(t, cfg.Set("sections.root", "home, work"))
	require.NoError(t, cfg.Set("index.rate_per_sec", 2.5))

	v, err := cfg.Get("shell.username")
	require.NoError(t, err)
	assert.Equal(t, "margaret", v)
	assert.Equal(t, 200, cfg.Timing.DiscoIntervalMs)
	assert.False(t, cfg.UI.Confetti)
	assert.Equal(t, []string{"home", "work"}, cfg.Sections.Root)
	assert.Equal(t, 2.5, cfg.Index.RatePerSec)

	_, err = cfg.Get("shell.nope")
	assert.Error(t, err)
	assert.Error(t, cfg.Set("shell.username.first", "x"))
	assert.Error(t, cfg.Set("timing.transient_ms", "soon"))
}

func TestGetAllKeys_Resolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}

func TestClone_IsDeep(t *testing.T) {
	cfg := Default()
	cfg.ASCII.Art = []string{"x"}
	clone := cfg.Clone()
	clone.Sections.Root[0] = "changed"
	clone.ASCII.Art[0] = "y"
	assert.Equal(t, "about", cfg.Sections.Root[0])
	assert.Equal(t, "x", cfg.ASCII.Art[0])
}

func TestMigrate(t *testing.T) {
	cfg := Default()
	cfg.Version = "0"
	cfg.Index.URL = "https://example.com/feed.json"
	require.NoError(t, cfg.Migrate())
	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, "http", cfg.Index.Source)

	cfg.Version = "99"
	assert.Error(t, cfg.Migrate())
}

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and ReloadGlobal()
// can be safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
		go func() {
			defer wg.Done()
			_ = ReloadGlobal()
		}()
	}
	wg.Wait()
}

func TestConfig_SetGlobalOverwrites(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	_ = Global()
	custom := Default()
	custom.Shell.Username = "custom"
	SetGlobal(custom)

	assert.Equal(t, "custom", Global().Shell.Username)
}
