//go:build linux

package cgroup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mkCgroup creates a fake cgroup directory with a cpu.stat under root.
func mkCgroup(t *testing.T, root, name string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cpu.stat"), []byte("usage_usec 0\n"), 0o644))
}

func TestResolve(t *testing.T) {
	t.Run("explicit_names", func(t *testing.T) {
		root := t.TempDir()
		mkCgroup(t, root, "alpha")
		mkCgroup(t, root, "beta")

		targets, err := Resolve([]string{"alpha", "beta"}, false, root, DefaultExcludePolicy(), nil)
		require.NoError(t, err)
		require.Len(t, targets, 2)
		assert.Equal(t, "alpha", targets[0].Name)
		assert.Equal(t, filepath.Join(root, "alpha"), targets[0].Path)
		assert.True(t, targets[0].Valid)
		assert.Equal(t, "beta", targets[1].Name)
	})

	t.Run("invalid_candidate_dropped", func(t *testing.T) {
		root := t.TempDir()
		mkCgroup(t, root, "good")
		// directory without cpu.stat
		require.NoError(t, os.MkdirAll(filepath.Join(root, "hollow"), 0o755))

		targets, err := Resolve([]string{"good", "hollow", "missing"}, false, root, DefaultExcludePolicy(), nil)
		require.NoError(t, err)
		require.Len(t, targets, 1)
		assert.Equal(t, "good", targets[0].Name)
	})

	t.Run("all_invalid_is_fatal", func(t *testing.T) {
		_, err := Resolve([]string{"ghost"}, false, t.TempDir(), DefaultExcludePolicy(), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoValidTargets)
	})

	t.Run("no_request_falls_back_to_default", func(t *testing.T) {
		root := t.TempDir()
		mkCgroup(t, root, DefaultTarget)

		targets, err := Resolve(nil, false, root, DefaultExcludePolicy(), nil)
		require.NoError(t, err)
		require.Len(t, targets, 1)
		assert.Equal(t, DefaultTarget, targets[0].Name)
	})

	t.Run("empty_discovery_falls_back_to_default", func(t *testing.T) {
		root := t.TempDir()
		mkCgroup(t, root, DefaultTarget)

		// Policy that excludes everything discovery could find leaves the
		// single hard-coded fallback.
		policy := ExcludePolicy{Names: []string{DefaultTarget}}
		targets, err := Resolve(nil, true, root, policy, nil)
		require.NoError(t, err)
		require.Len(t, targets, 1)
		assert.Equal(t, DefaultTarget, targets[0].Name)
	})
}

func TestDiscover(t *testing.T) {
	t.Run("finds_nested_cgroups", func(t *testing.T) {
		root := t.TempDir()
		mkCgroup(t, root, "mycpu")
		mkCgroup(t, root, "user.slice/app")

		names := Discover(root, DefaultExcludePolicy())
		assert.ElementsMatch(t, []string{"mycpu", "user.slice/app"}, names)
	})

	t.Run("root_itself_excluded", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "cpu.stat"), []byte("usage_usec 0\n"), 0o644))
		mkCgroup(t, root, "only")

		assert.Equal(t, []string{"only"}, Discover(root, DefaultExcludePolicy()))
	})

	t.Run("policy_exclusions_applied", func(t *testing.T) {
		root := t.TempDir()
		mkCgroup(t, root, "mycpu")
		mkCgroup(t, root, "init.scope")
		mkCgroup(t, root, "system.slice")
		mkCgroup(t, root, "ssh.service")

		assert.Equal(t, []string{"mycpu"}, Discover(root, DefaultExcludePolicy()))
	})

	t.Run("empty_root", func(t *testing.T) {
		assert.Empty(t, Discover(t.TempDir(), DefaultExcludePolicy()))
	})

	t.Run("deterministic_order", func(t *testing.T) {
		root := t.TempDir()
		mkCgroup(t, root, "zeta")
		mkCgroup(t, root, "alpha")

		assert.Equal(t, []string{"alpha", "zeta"}, Discover(root, DefaultExcludePolicy()))
	})
}
