/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/cristianoliveira/displaygen/cmd"
	"github.com/cristianoliveira/displaygen/internal/colors"
	"github.com/cristianoliveira/displaygen/internal/config"
	"github.com/cristianoliveira/displaygen/internal/core"
	"github.com/cristianoliveira/displaygen/internal/format"
	"github.com/cristianoliveira/displaygen/internal/storage"
	"github.com/cristianoliveira/displaygen/internal/storage/manifest"
	"github.com/cristianoliveira/displaygen/internal/version"
)

// coreProvider builds the core on first use, after flags and configuration
// have been applied. Parse and render never open the manifest.
type coreProvider struct {
	once sync.Once
	core *core.Core
}

var coreClient = &coreProvider{}

func init() {
	cmd.OnShutdown(coreClient.Close)
}

func (p *coreProvider) withStore() *core.Core {
	p.once.Do(func() {
		store, err := storage.NewFromConfig()
		if err != nil {
			colors.Warning(fmt.Sprintf("history disabled: %v", err))
			store = storage.NoopStore{}
		}
		p.core = core.NewCore(store, core.OptionsFromConfig())
	})
	return p.core
}

func (p *coreProvider) stateless() *core.Core {
	return core.NewCore(nil, core.OptionsFromConfig())
}

// Close releases the manifest if it was opened.
func (p *coreProvider) Close() error {
	if p.core == nil {
		return nil
	}
	return p.core.Close()
}

func (p *coreProvider) Parse(req core.ParseRequest) (format.TemplateResult, error) {
	return p.stateless().Parse(req)
}

func (p *coreProvider) Render(req core.RenderRequest) (string, error) {
	return p.stateless().Render(req)
}

func (p *coreProvider) Generate(ctx context.Context, req core.GenerateRequest) (core.GenerateReport, error) {
	return p.withStore().Generate(ctx, req)
}

func (p *coreProvider) History(ctx context.Context, limit int) ([]manifest.Run, error) {
	return p.withStore().History(ctx, limit)
}

func (p *coreProvider) RunEntries(ctx context.Context, runID string) ([]manifest.Entry, error) {
	return p.withStore().RunEntries(ctx, runID)
}

func (p *coreProvider) Prune(ctx context.Context, days int, dryRun bool) (int, error) {
	return p.withStore().Prune(ctx, days, dryRun)
}

func (p *coreProvider) Version() string {
	return version.String()
}

func (p *coreProvider) ConfigPath() string {
	return config.Path()
}

func (p *coreProvider) ConfigSnapshot() [][2]string {
	return config.Snapshot()
}

func (p *coreProvider) WriteSampleConfig() (string, bool, error) {
	return config.WriteSampleConfig()
}
