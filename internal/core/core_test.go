package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cristianoliveira/displaygen/internal/codegen"
	"github.com/cristianoliveira/displaygen/internal/hooks"
	"github.com/cristianoliveira/displaygen/internal/interpolate"
	"github.com/cristianoliveira/displaygen/internal/render"
	"github.com/cristianoliveira/displaygen/internal/storage"
	"github.com/cristianoliveira/displaygen/internal/storage/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shapesSrc = `package shapes

//display:"({x}, {y})"
type Point struct{ X, Y int }

type Color int

const (
	//display:"red"
	Red Color = iota
	//display:"green {{ok}}"
	Green
)
`

func newTestCore(t *testing.T) *Core {
	t.Helper()
	stateDir := t.TempDir()
	store, err := storage.NewForBackend(storage.BackendSQLite, stateDir)
	require.NoError(t, err)
	c := NewCore(store, Options{
		Directive:    "display",
		OutputSuffix: "_display.go",
		MethodName:   "String",
		StateDir:     stateDir,
	})
	t.Cleanup(func() { require.NoError(t, c.Close()) })
	return c
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse(t *testing.T) {
	c := NewCore(nil, Options{})

	res, err := c.Parse(ParseRequest{Template: "{b} {} {a:>4}"})
	require.NoError(t, err)
	assert.Equal(t, "{b} {__0} {a:>4}", res.Rewritten)
	assert.Equal(t, []string{"__0", "a", "b"}, res.Fields)
	require.Len(t, res.Placeholders, 3)

	res, err = c.Parse(ParseRequest{Template: "{b} {} {a:>4}", Order: interpolate.OrderDiscovered})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "__0", "a"}, res.Fields)
}

func TestParseUnterminated(t *testing.T) {
	c := NewCore(nil, Options{})
	_, err := c.Parse(ParseRequest{Template: "tail {x"})
	require.ErrorIs(t, err, interpolate.ErrUnterminatedPlaceholder)

	res, err := c.Parse(ParseRequest{Template: "tail {x", Truncate: true})
	require.NoError(t, err)
	assert.Equal(t, "tail ", res.Rewritten)

	res, err = NewCore(nil, Options{Truncate: true}).Parse(ParseRequest{Template: "tail {x"})
	require.NoError(t, err)
	assert.Equal(t, "tail ", res.Rewritten)
}

func TestRender(t *testing.T) {
	c := NewCore(nil, Options{})

	out, err := c.Render(RenderRequest{Template: "{} has {n:03} {{items}}", Args: []string{"box", "n=7"}})
	require.NoError(t, err)
	assert.Equal(t, "box has 007 {items}", out)

	_, err = c.Render(RenderRequest{Template: "{missing}"})
	require.ErrorIs(t, err, render.ErrMissingValue)
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	c := newTestCore(t)
	dir := t.TempDir()
	writeSource(t, dir, "shapes.go", shapesSrc)

	report, err := c.Generate(ctx, GenerateRequest{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "shapes", report.Package)
	assert.Equal(t, manifest.StatusOK, report.Run.Status)
	require.Len(t, report.Files, 1)

	out := filepath.Join(dir, "shapes_display.go")
	f := report.Files[0]
	assert.Equal(t, out, f.Path)
	assert.True(t, f.Written)
	assert.Equal(t, 3, report.VariantCount())
	assert.Equal(t, 0, report.Unchanged())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	src := string(data)
	assert.True(t, strings.HasPrefix(src, codegen.Header))
	assert.Contains(t, src, "func (v Point) String() string {")
	assert.Contains(t, src, "case Green:\n\t\treturn \"green {ok}\"")

	entries, err := c.RunEntries(ctx, report.Run.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Point", entries[0].Label())
	assert.Equal(t, []string{"x", "y"}, entries[0].Fields)

	again, err := c.Generate(ctx, GenerateRequest{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 3, again.Unchanged())
	assert.False(t, again.Files[0].Written)

	runs, err := c.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, again.Run.ID, runs[0].ID)
	assert.Equal(t, 3, runs[0].Variants)
}

func TestGenerateDetectsChangedTemplate(t *testing.T) {
	ctx := context.Background()
	c := newTestCore(t)
	dir := t.TempDir()
	writeSource(t, dir, "shapes.go", shapesSrc)

	_, err := c.Generate(ctx, GenerateRequest{Dir: dir})
	require.NoError(t, err)

	writeSource(t, dir, "shapes.go", strings.Replace(shapesSrc, `"red"`, `"RED"`, 1))
	report, err := c.Generate(ctx, GenerateRequest{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Unchanged())
	assert.True(t, report.Files[0].Written)

	for _, v := range report.Files[0].Variants {
		assert.Equal(t, v.Label != "Color.Red", v.Unchanged, v.Label)
	}
}

func TestGenerateDryRun(t *testing.T) {
	ctx := context.Background()
	c := newTestCore(t)
	dir := t.TempDir()
	writeSource(t, dir, "shapes.go", shapesSrc)

	report, err := c.Generate(ctx, GenerateRequest{Dir: dir, DryRun: true, MethodName: "Describe"})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.False(t, report.Files[0].Written)
	assert.Contains(t, string(report.Files[0].Data), "func (v Point) Describe() string")
	assert.Empty(t, report.Run.ID)

	_, err = os.Stat(filepath.Join(dir, "shapes_display.go"))
	assert.True(t, os.IsNotExist(err))

	runs, err := c.History(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestGenerateGroupsTypesByFirstFile(t *testing.T) {
	ctx := context.Background()
	c := newTestCore(t)
	dir := t.TempDir()
	writeSource(t, dir, "a.go", "package p\n\ntype State int\n\nconst (\n\t//display:\"on\"\n\tOn State = iota\n)\n")
	writeSource(t, dir, "b.go", "package p\n\nconst (\n\t//display:\"off\"\n\tOff State = 5\n)\n\n//display:\"b {n}\"\ntype B struct{ N int }\n")

	report, err := c.Generate(ctx, GenerateRequest{Dir: dir})
	require.NoError(t, err)
	require.Len(t, report.Files, 2)

	a, err := os.ReadFile(filepath.Join(dir, "a_display.go"))
	require.NoError(t, err)
	assert.Contains(t, string(a), "case On:")
	assert.Contains(t, string(a), "case Off:")

	b, err := os.ReadFile(filepath.Join(dir, "b_display.go"))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "State")
	assert.Contains(t, string(b), "func (v B) String() string")
}

func TestGenerateRemovesStaleOutput(t *testing.T) {
	ctx := context.Background()
	c := newTestCore(t)
	dir := t.TempDir()
	writeSource(t, dir, "shapes.go", shapesSrc)
	stale := writeSource(t, dir, "gone_display.go", codegen.Header+"\n\npackage shapes\n")
	handWritten := writeSource(t, dir, "mine_display.go", "package shapes\n")

	report, err := c.Generate(ctx, GenerateRequest{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{stale}, report.Removed)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(handWritten)
	assert.NoError(t, err)
}

func TestGenerateFailureMarksRun(t *testing.T) {
	ctx := context.Background()
	c := newTestCore(t)
	dir := t.TempDir()
	writeSource(t, dir, "bad.go", "package p\n\n//display:\"{missing}\"\ntype T struct{ A int }\n")

	_, err := c.Generate(ctx, GenerateRequest{Dir: dir})
	require.Error(t, err)

	runs, err := c.History(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, runs, "planning errors happen before a run starts")

	_, err = c.Generate(ctx, GenerateRequest{Dir: filepath.Join(dir, "missing")})
	require.Error(t, err)
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	c := newTestCore(t)

	_, err := c.Prune(ctx, 0, false)
	require.ErrorIs(t, err, ErrInvalidDays)

	dir := t.TempDir()
	writeSource(t, dir, "shapes.go", shapesSrc)
	_, err = c.Generate(ctx, GenerateRequest{Dir: dir})
	require.NoError(t, err)

	n, err := c.Prune(ctx, 30, true)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewCoreDefaults(t *testing.T) {
	c := NewCore(nil, Options{})
	assert.Equal(t, "_display.go", c.Options().OutputSuffix)
	assert.Equal(t, interpolate.OrderSorted, c.Options().FieldOrder)
	assert.NoError(t, c.Close())
}

type hookCall struct {
	point string
	env   map[string]string
}

type recordingHooks struct {
	calls []hookCall
	fail  string
}

func (h *recordingHooks) Run(_ context.Context, point string, env map[string]string) error {
	h.calls = append(h.calls, hookCall{point: point, env: env})
	if point == h.fail {
		return hooks.ErrHookFailed
	}
	return nil
}

func TestGenerateRunsHooks(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "shapes.go", shapesSrc)

	rec := &recordingHooks{}
	c := NewCore(nil, Options{Directive: "display", MethodName: "String", Hooks: rec})

	_, err := c.Generate(context.Background(), GenerateRequest{Dir: dir, DryRun: true})
	require.NoError(t, err)
	assert.Empty(t, rec.calls)

	report, err := c.Generate(context.Background(), GenerateRequest{Dir: dir})
	require.NoError(t, err)
	require.Len(t, rec.calls, 2)
	assert.Equal(t, hooks.PreGenerate, rec.calls[0].point)
	assert.Equal(t, dir, rec.calls[0].env["DIR"])

	post := rec.calls[1]
	assert.Equal(t, hooks.PostGenerate, post.point)
	assert.Equal(t, "shapes", post.env["PACKAGE"])
	assert.Equal(t, report.Files[0].Path, post.env["FILES"])
	assert.Equal(t, "3", post.env["VARIANTS"])
	assert.Equal(t, report.Run.ID, post.env["RUN_ID"])
}

func TestGeneratePreHookAborts(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "shapes.go", shapesSrc)

	rec := &recordingHooks{fail: hooks.PreGenerate}
	c := NewCore(nil, Options{Directive: "display", MethodName: "String", Hooks: rec})

	_, err := c.Generate(context.Background(), GenerateRequest{Dir: dir})
	require.ErrorIs(t, err, hooks.ErrHookFailed)
	assert.NoFileExists(t, filepath.Join(dir, "shapes_display.go"))
	assert.Len(t, rec.calls, 1)
}
