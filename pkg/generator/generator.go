// Package generator drives the whole pipeline: load annotated types, extract
// their models in parallel, synthesize companion files and write them next to
// the annotated declarations.
package generator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/cmmoran/metagen/internal/diag"
	"github.com/cmmoran/metagen/internal/emit"
	"github.com/cmmoran/metagen/internal/extract"
	"github.com/cmmoran/metagen/internal/loader"
	"github.com/cmmoran/metagen/internal/model"
)

// Options configure one generation run.
type Options struct {
	Dir         string   // root directory of the scan, defaults to "."
	Patterns    []string // package patterns, defaults to ./...
	DryRun      bool     // render but do not write
	Parallelism int      // concurrent extractions, 0 means unbounded
}

// Unit is the outcome for one annotated type.
type Unit struct {
	Type    string // qualified type name
	Package string
	File    string // output path, empty when extraction failed
	Content []byte // rendered source, nil when extraction failed
}

// Report is the full outcome of a run.
type Report struct {
	Module      loader.Module
	Units       []Unit
	Diagnostics []diag.Diagnostic
}

// Failed reports whether any type failed extraction.
func (r *Report) Failed() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}

// Run executes one generation pass. Types are extracted concurrently; the
// report lists units and diagnostics in source order regardless of
// scheduling. Extraction failures are reported as diagnostics, not as an
// error; the returned error covers environment problems only.
func Run(ctx context.Context, opts Options) (*Report, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	mod, err := loader.FindModule(dir)
	if err != nil {
		return nil, err
	}
	sources, err := loader.Load(ctx, dir, opts.Patterns...)
	if err != nil {
		return nil, err
	}

	results := make([]diag.Result[model.TypeModel], len(sources))
	g, gctx := errgroup.WithContext(ctx)
	if opts.Parallelism > 0 {
		g.SetLimit(opts.Parallelism)
	}
	for i, src := range sources {
		g.Go(func() error {
			results[i] = extract.Extract(gctx, src)
			return gctx.Err()
		})
	}
	if err = g.Wait(); err != nil {
		return nil, errors.Wrap(err, "extracting")
	}

	report := &Report{Module: mod}
	for i, src := range sources {
		res := results[i]
		report.Diagnostics = append(report.Diagnostics, res.Diagnostics()...)

		unit := Unit{
			Type:    src.Pkg.Path() + "." + src.Spec.Name.Name,
			Package: src.Pkg.Path(),
		}
		if res.OK() {
			tm := res.Value()
			var buf bytes.Buffer
			if err = emit.File(tm).Render(&buf); err != nil {
				return nil, errors.Wrapf(err, "rendering companion for %s", unit.Type)
			}
			unit.File = filepath.Join(filepath.Dir(src.Pos.Filename), snake(tm.Name)+extract.GeneratedSuffix)
			unit.Content = buf.Bytes()
			if !opts.DryRun {
				if err = os.WriteFile(unit.File, unit.Content, 0o644); err != nil {
					return nil, errors.Wrapf(err, "writing %s", unit.File)
				}
			}
		}
		report.Units = append(report.Units, unit)
	}
	return report, nil
}

// snake lowercases a CamelCase type name for the companion file hint,
// UserProfile becoming user_profile.
func snake(name string) string {
	var b strings.Builder
	prevUpper := false
	for i, r := range name {
		upper := unicode.IsUpper(r)
		if upper {
			if i > 0 && !prevUpper {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		prevUpper = upper
		b.WriteRune(r)
	}
	return b.String()
}
