package core

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cristianoliveira/displaygen/internal/codegen"
	"github.com/cristianoliveira/displaygen/internal/colors"
	"github.com/cristianoliveira/displaygen/internal/config"
	"github.com/cristianoliveira/displaygen/internal/hooks"
	"github.com/cristianoliveira/displaygen/internal/logging"
	"github.com/cristianoliveira/displaygen/internal/scan"
	"github.com/cristianoliveira/displaygen/internal/storage"
	"github.com/cristianoliveira/displaygen/internal/storage/manifest"
	"github.com/cristianoliveira/displaygen/internal/variant"
)

// GenerateRequest describes one generation over a package directory.
type GenerateRequest struct {
	Dir string
	// MethodName overrides the configured method name when set.
	MethodName string
	// DryRun computes the output without writing files or recording a run.
	DryRun bool
}

// VariantReport describes the code produced for one variant.
type VariantReport struct {
	Label     string
	Rewritten string
	Fields    []string
	// Unchanged is true when the last successful run produced the same code.
	Unchanged bool
}

// FileReport describes one generated file.
type FileReport struct {
	Path     string
	Data     []byte
	Written  bool
	Variants []VariantReport
}

// GenerateReport is the outcome of Generate.
type GenerateReport struct {
	Run     manifest.Run
	Package string
	Files   []FileReport
	// Removed lists generated files that no longer have a source.
	Removed []string
}

// Unchanged counts variants whose code matches the previous run.
func (r GenerateReport) Unchanged() int {
	n := 0
	for _, f := range r.Files {
		for _, v := range f.Variants {
			if v.Unchanged {
				n++
			}
		}
	}
	return n
}

// VariantCount counts variants across all files.
func (r GenerateReport) VariantCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Variants)
	}
	return n
}

// Generate scans req.Dir for directives and writes one output file per
// source file that declares the first variant of a type.
func (c *Core) Generate(ctx context.Context, req GenerateRequest) (GenerateReport, error) {
	dir, err := filepath.Abs(req.Dir)
	if err != nil {
		return GenerateReport{}, fmt.Errorf("generate: %w", err)
	}
	log := logging.With("component", "generate", "dir", dir)

	if !req.DryRun {
		if err := c.runHook(ctx, hooks.PreGenerate, map[string]string{"DIR": dir}); err != nil {
			return GenerateReport{}, fmt.Errorf("generate: %w", err)
		}
	}

	var report GenerateReport
	run := func() error {
		report, err = c.generate(ctx, dir, req, log)
		return err
	}
	if req.DryRun || c.opts.StateDir == "" {
		err = run()
	} else {
		err = storage.WithLock(c.lockPath(dir), run)
	}
	if err != nil {
		log.Error("generation failed", "error", err)
		return report, err
	}
	log.Info("generation finished", "files", len(report.Files), "variants", report.VariantCount(), "unchanged", report.Unchanged())

	if !req.DryRun {
		if err := c.runHook(ctx, hooks.PostGenerate, postGenerateEnv(dir, report)); err != nil {
			return report, fmt.Errorf("generate: %w", err)
		}
	}
	return report, nil
}

func (c *Core) runHook(ctx context.Context, point string, env map[string]string) error {
	if c.opts.Hooks == nil {
		return nil
	}
	return c.opts.Hooks.Run(ctx, point, env)
}

// postGenerateEnv lists the files a run actually wrote or removed.
func postGenerateEnv(dir string, report GenerateReport) map[string]string {
	var written []string
	for _, f := range report.Files {
		if f.Written {
			written = append(written, f.Path)
		}
	}
	return map[string]string{
		"DIR":       dir,
		"RUN_ID":    report.Run.ID,
		"PACKAGE":   report.Package,
		"FILES":     hooks.Files(written),
		"REMOVED":   hooks.Files(report.Removed),
		"VARIANTS":  strconv.Itoa(report.VariantCount()),
		"UNCHANGED": strconv.Itoa(report.Unchanged()),
	}
}

func (c *Core) generate(ctx context.Context, dir string, req GenerateRequest, log logging.Logger) (report GenerateReport, err error) {
	pkg, err := scan.Dir(dir, scan.Options{
		Directive:    c.opts.Directive,
		SkipSuffixes: []string{c.opts.OutputSuffix},
	})
	if err != nil {
		return GenerateReport{}, err
	}
	report.Package = pkg.Name

	methodName := req.MethodName
	if methodName == "" {
		methodName = c.opts.MethodName
	}
	gen := codegen.New(codegen.Options{MethodName: methodName, ParseOptions: c.parseOptions(false)})

	files, err := c.plan(pkg, gen)
	if err != nil {
		return report, err
	}

	if req.DryRun {
		for _, f := range files {
			fr, err := c.describe(ctx, dir, f, nil)
			if err != nil {
				return report, err
			}
			report.Files = append(report.Files, fr)
		}
		return report, nil
	}

	run, err := c.store.BeginRun(ctx, dir)
	if err != nil {
		return report, fmt.Errorf("generate: begin run: %w", err)
	}
	report.Run = run
	log = log.With("run", manifest.ShortID(run.ID))

	status := manifest.StatusFailed
	defer func() {
		if ferr := c.store.FinishRun(ctx, run.ID, len(report.Files), report.VariantCount(), status); ferr != nil {
			colors.Warning(fmt.Sprintf("failed to finish run %s: %v", manifest.ShortID(run.ID), ferr))
		}
		report.Run.Status = status
	}()

	for _, f := range files {
		fr, err := c.describe(ctx, dir, f, &run)
		if err != nil {
			return report, err
		}
		written, err := writeIfChanged(fr.Path, fr.Data)
		if err != nil {
			return report, err
		}
		fr.Written = written
		log.Debug("output", "path", fr.Path, "written", written, "variants", len(fr.Variants))
		report.Files = append(report.Files, fr)
	}

	report.Removed, err = c.removeStale(dir, report.Files)
	if err != nil {
		return report, err
	}
	status = manifest.StatusOK
	return report, nil
}

// plannedFile is a generated file before it is compared or written.
type plannedFile struct {
	file     codegen.File
	variants []variant.Variant
}

// plan groups variants by receiver type. Every type's method lands in the
// output file of the source file holding the type's first variant.
func (c *Core) plan(pkg *scan.Package, gen *codegen.Generator) ([]plannedFile, error) {
	var (
		order  []string
		bySrc  = make(map[string][]variant.Variant)
		owners = make(map[string]string)
	)
	for _, f := range pkg.Files {
		for _, v := range f.Variants {
			owner, ok := owners[v.TypeName]
			if !ok {
				owner = f.Path
				owners[v.TypeName] = owner
			}
			if _, ok := bySrc[owner]; !ok {
				order = append(order, owner)
			}
			bySrc[owner] = append(bySrc[owner], v)
		}
	}

	out := make([]plannedFile, 0, len(order))
	for _, src := range order {
		path := strings.TrimSuffix(src, ".go") + c.opts.OutputSuffix
		f, err := gen.File(filepath.Base(path), pkg.Name, bySrc[src])
		if err != nil {
			return nil, err
		}
		f.RelativePath = path
		out = append(out, plannedFile{file: f, variants: bySrc[src]})
	}
	return out, nil
}

// describe compares each variant against the manifest and, when run is set,
// records it.
func (c *Core) describe(ctx context.Context, dir string, f plannedFile, run *manifest.Run) (FileReport, error) {
	fr := FileReport{Path: f.file.RelativePath, Data: f.file.Data}
	for _, m := range f.file.Methods {
		for _, v := range f.variants {
			if v.TypeName != m.TypeName {
				continue
			}
			label := v.Label()
			t := m.Templates[label]
			expr := m.Exprs[label]
			hash := manifest.Hash(v.Template, expr.Code)

			last, found, err := c.store.LastHash(ctx, dir, v.TypeName, v.Name)
			if err != nil {
				return fr, fmt.Errorf("generate: manifest lookup %s: %w", label, err)
			}
			fr.Variants = append(fr.Variants, VariantReport{
				Label:     label,
				Rewritten: t.Rewritten,
				Fields:    t.Fields,
				Unchanged: found && last == hash,
			})

			if run == nil {
				continue
			}
			err = c.store.RecordEntry(ctx, manifest.Entry{
				RunID:     run.ID,
				TypeName:  v.TypeName,
				Variant:   v.Name,
				Template:  v.Template,
				Rewritten: t.Rewritten,
				Fields:    t.Fields,
				Hash:      hash,
				Output:    expr.Code,
			})
			if err != nil {
				return fr, fmt.Errorf("generate: record %s: %w", label, err)
			}
		}
	}
	return fr, nil
}

// removeStale deletes generated files in dir that this run did not produce.
// Only files starting with the generated-code header are touched.
func (c *Core) removeStale(dir string, produced []FileReport) ([]string, error) {
	keep := make(map[string]bool, len(produced))
	for _, f := range produced {
		keep[f.Path] = true
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	var removed []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), c.opts.OutputSuffix) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if keep[path] {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return removed, fmt.Errorf("generate: %w", err)
		}
		if !bytes.HasPrefix(data, []byte(codegen.Header)) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("generate: remove stale output: %w", err)
		}
		removed = append(removed, path)
	}
	sort.Strings(removed)
	return removed, nil
}

// writeIfChanged leaves files with identical content alone so their
// modification time only moves when the code does.
func writeIfChanged(path string, data []byte) (bool, error) {
	current, err := os.ReadFile(path)
	if err == nil && bytes.Equal(current, data) {
		return false, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("generate: %w", err)
	}
	if err := os.WriteFile(path, data, config.FileModeFile); err != nil {
		return false, fmt.Errorf("generate: write %s: %w", path, err)
	}
	return true, nil
}

func (c *Core) lockPath(dir string) string {
	sum := sha256.Sum256([]byte(dir))
	return filepath.Join(c.opts.StateDir, "locks", hex.EncodeToString(sum[:8])+".lock")
}
