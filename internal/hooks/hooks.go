// Package hooks runs user scripts around generation.
//
// Scripts live in one directory per hook point, for example
// $XDG_CONFIG_HOME/displaygen/hooks/post-generate/. Every executable file in
// that directory runs in name order with the hook environment added to the
// process environment.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cristianoliveira/displaygen/internal/colors"
	"github.com/cristianoliveira/displaygen/internal/config"
)

// Hook points.
const (
	PreGenerate  = "pre-generate"
	PostGenerate = "post-generate"
)

// Failure modes.
const (
	FailureAbort  = "abort"
	FailureWarn   = "warn"
	FailureIgnore = "ignore"
)

// EnvPrefix prefixes every variable passed to a script.
const EnvPrefix = config.EnvPrefix

const defaultTimeout = 30 * time.Second

// ErrHookFailed is returned when a script fails in abort mode.
var ErrHookFailed = errors.New("hook failed")

// Config controls where scripts are found and how failures are handled.
type Config struct {
	Dir         string
	FailureMode string
	Timeout     time.Duration
}

// ConfigFromGlobal reads Config from the loaded configuration.
func ConfigFromGlobal() Config {
	dir := config.Get("hooks_dir", "")
	if dir == "" {
		dir = filepath.Join(config.Get("config_dir", ""), "hooks")
	}
	return Config{
		Dir:         dir,
		FailureMode: config.Get("hooks_failure_mode", FailureWarn),
		Timeout:     time.Duration(config.GetInt("hooks_timeout", int(defaultTimeout/time.Second))) * time.Second,
	}
}

// Runner executes the scripts of a hook point.
type Runner struct {
	cfg    Config
	output io.Writer
}

// NewRunner creates a Runner. Script output goes to stderr.
func NewRunner(cfg Config) *Runner {
	if cfg.FailureMode == "" {
		cfg.FailureMode = FailureWarn
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Runner{cfg: cfg, output: os.Stderr}
}

// SetOutput redirects script output.
func (r *Runner) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	r.output = w
}

// Scripts lists the executable scripts of point, sorted by name. A missing
// directory has no scripts.
func (r *Runner) Scripts(point string) ([]string, error) {
	dir := filepath.Join(r.cfg.Dir, point)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read hooks dir %s: %w", dir, err)
	}

	var scripts []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || info.Mode()&0111 == 0 {
			continue
		}
		scripts = append(scripts, filepath.Join(dir, e.Name()))
	}
	sort.Strings(scripts)
	return scripts, nil
}

// Run executes every script of point. env keys are prefixed with EnvPrefix.
// Only the abort failure mode turns a script failure into an error.
func (r *Runner) Run(ctx context.Context, point string, env map[string]string) error {
	scripts, err := r.Scripts(point)
	if err != nil {
		return err
	}
	if len(scripts) == 0 {
		return nil
	}

	vars := map[string]string{
		"HOOK_POINT":     point,
		"HOOK_TIMESTAMP": time.Now().Format(time.RFC3339),
	}
	if exe, err := os.Executable(); err == nil {
		vars["BINARY"] = exe
	}
	for k, v := range env {
		vars[k] = v
	}
	environ := os.Environ()
	for k, v := range vars {
		environ = append(environ, EnvPrefix+k+"="+v)
	}

	colors.Debug(fmt.Sprintf("running %s hooks (%d script(s))", point, len(scripts)))
	for _, script := range scripts {
		if err := r.runScript(ctx, script, environ); err != nil {
			name := filepath.Base(script)
			switch r.cfg.FailureMode {
			case FailureAbort:
				return fmt.Errorf("%w: %s %s: %v", ErrHookFailed, point, name, err)
			case FailureWarn:
				colors.Warning(fmt.Sprintf("%s hook %s failed: %v", point, name, err))
			}
		}
	}
	return nil
}

func (r *Runner) runScript(ctx context.Context, script string, environ []string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, script)
	cmd.Env = environ
	cmd.Stdout = r.output
	cmd.Stderr = r.output
	cmd.WaitDelay = time.Second
	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("timed out after %s", r.cfg.Timeout)
	}
	colors.Debug(fmt.Sprintf("hook %s finished in %.2fs", filepath.Base(script), time.Since(start).Seconds()))
	return err
}

// Files joins paths the way scripts receive them, one per line.
func Files(paths []string) string {
	return strings.Join(paths, "\n")
}
