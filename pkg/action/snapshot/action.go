// Package snapshot records generation runs in a manifest and compares the
// emitted metadata across versions.
package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/metagen/pkg/generator"
	"github.com/cmmoran/metagen/pkg/manifest"
)

// Generate runs the generator, writes a combined snapshot of the rendered
// companions and records the run in the manifest. It returns the snapshot
// path.
func Generate(ctx context.Context, opts generator.Options, manifestPath, name, version string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	report, err := generator.Run(ctx, opts)
	if err != nil {
		return "", err
	}

	snapPath := filepath.Join(report.Module.Root, ".metagen", fmt.Sprintf("%s-%s.snap", name, version))
	if err = os.MkdirAll(filepath.Dir(snapPath), 0o755); err != nil {
		return "", fmt.Errorf("create snapshot directory: %w", err)
	}
	if err = os.WriteFile(snapPath, combined(report), 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	run := manifest.Run{Name: name, Version: version, Snapshot: snapPath}
	for _, u := range report.Units {
		run.Units = append(run.Units, manifest.Unit{Type: u.Type, Package: u.Package, File: u.File})
	}
	m.AddRun(run)

	if err = m.Save(manifestPath); err != nil {
		return "", err
	}
	return snapPath, nil
}

// combined concatenates the rendered companions in unit order, each under a
// type banner, so one file captures the whole run.
func combined(r *generator.Report) []byte {
	var buf bytes.Buffer
	for _, u := range r.Units {
		if u.Content == nil {
			continue
		}
		fmt.Fprintf(&buf, "// ==== %s ====\n", u.Type)
		buf.Write(u.Content)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// List returns all runs recorded in the manifest.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// DiffCurrentWithPrevious loads the manifest, locates the current and
// previous snapshot files, and returns a textual diff of their contents.
func DiffCurrentWithPrevious(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", fmt.Errorf("no current/previous runs recorded")
	}

	currentPath := m.SnapshotFile(m.CurrentVersion)
	previousPath := m.SnapshotFile(m.PreviousVersion)

	if currentPath == "" || previousPath == "" {
		return "", fmt.Errorf("snapshot files not found in manifest")
	}

	current, err := os.ReadFile(currentPath)
	if err != nil {
		return "", fmt.Errorf("read current snapshot: %w", err)
	}

	previous, err := os.ReadFile(previousPath)
	if err != nil {
		return "", fmt.Errorf("read previous snapshot: %w", err)
	}

	return cmp.Diff(string(previous), string(current)), nil
}
