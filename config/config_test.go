package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, CallGraphNone, cfg.BuildCallGraph)
	assert.True(t, cfg.TraverseMethodCalls)
	assert.False(t, cfg.CollectPaths)
	assert.Equal(t, ^uint32(0), cfg.MaxDepth)
}

func TestNew_AppliesOptionsOverDefault(t *testing.T) {
	var logged []string
	cfg := New(
		WithVerbose(func(msg string) { logged = append(logged, msg) }),
		WithIncludePackages("com.acme."),
		WithExcludePackages("com.acme.internal."),
		WithCallGraphMode(CallGraphRTA),
		WithEntryPoints(`.*Controller\.handle.*`),
		WithSlicerBounds(5, false, true),
	)

	assert.Equal(t, []string{"com.acme."}, cfg.IncludePackages)
	assert.Equal(t, []string{"com.acme.internal."}, cfg.ExcludePackages)
	assert.Equal(t, CallGraphRTA, cfg.BuildCallGraph)
	assert.Equal(t, []string{`.*Controller\.handle.*`}, cfg.EntryPoints)
	assert.EqualValues(t, 5, cfg.MaxDepth)
	assert.False(t, cfg.TraverseMethodCalls)
	assert.True(t, cfg.CollectPaths)

	cfg.Log("hello %s", "world")
	assert.Equal(t, []string{"hello world"}, logged)
}

func TestConfig_Log_NoopWithoutVerbose(t *testing.T) {
	cfg := Default()
	assert.NotPanics(t, func() { cfg.Log("anything") })
}

func TestConfig_IncludesPackage(t *testing.T) {
	tests := []struct {
		description string
		cfg         *Config
		fqName      string
		expected    bool
	}{
		{"no filters permits everything", Default(), "com.acme.Widget", true},
		{"include prefix matches", New(WithIncludePackages("com.acme.")), "com.acme.Widget", true},
		{"include prefix excludes others", New(WithIncludePackages("com.acme.")), "com.other.Widget", false},
		{"exclude wins over include", New(WithIncludePackages("com.acme."), WithExcludePackages("com.acme.internal.")), "com.acme.internal.Secret", false},
		{"exclude does not affect other packages", New(WithExcludePackages("com.acme.internal.")), "com.acme.Widget", true},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.cfg.IncludesPackage(tc.fqName))
		})
	}
}

func TestLoad_ParsesYAMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("include_packages:\n  - com.acme.\nbuild_call_graph: CHA\nmax_depth: 3\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"com.acme."}, cfg.IncludePackages)
	assert.Equal(t, CallGraphCHA, cfg.BuildCallGraph)
	assert.EqualValues(t, 3, cfg.MaxDepth)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
