package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/metagen/pkg/manifest"
)

func writeManifest(t *testing.T, dir string, snaps map[string]string) string {
	t.Helper()
	m := &manifest.Manifest{}
	for _, version := range []string{"v1", "v2"} {
		content, ok := snaps[version]
		if !ok {
			continue
		}
		path := filepath.Join(dir, version+".snap")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		m.AddRun(manifest.Run{Name: "metadata", Version: version, Snapshot: path})
	}
	manifestPath := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, m.Save(manifestPath))
	return manifestPath
}

func TestDiffCurrentWithPrevious(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, map[string]string{
		"v1": "var UserMeta = meta.Type{}\n",
		"v2": "var UserMeta = meta.Type{Name: \"User\"}\n",
	})

	d, err := DiffCurrentWithPrevious(path)
	require.NoError(t, err)
	require.NotEmpty(t, d)
	require.Contains(t, d, "User")
}

func TestDiffIdenticalSnapshotsIsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, map[string]string{
		"v1": "same\n",
		"v2": "same\n",
	})

	d, err := DiffCurrentWithPrevious(path)
	require.NoError(t, err)
	require.Empty(t, d)
}

func TestDiffRequiresTwoRuns(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, map[string]string{"v1": "only\n"})

	_, err := DiffCurrentWithPrevious(path)
	require.Error(t, err)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, map[string]string{"v1": "a\n", "v2": "b\n"})

	m, err := List(path)
	require.NoError(t, err)
	require.Len(t, m.Runs, 2)
	require.Equal(t, "v2", m.CurrentVersion)
}
