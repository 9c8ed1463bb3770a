package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/grafops/grafimport/internal/grafana"
	"github.com/grafops/grafimport/internal/util"
)

// Runner executes one import directive against the external IaC tool.
// The production implementation shells out to the terraform binary; tests
// substitute a fake.
type Runner interface {
	Import(ctx context.Context, dir, address, id string) error
}

// Options is the shared configuration passed to every type importer.
type Options struct {
	Mode Mode
	// Prefix is prepended to every synthesized identifier. Must itself be
	// a legal identifier.
	Prefix string
	// OutputDir receives the per-type resource files, dashboard bodies,
	// and the import script.
	OutputDir string
	Logger    *slog.Logger
	// Out receives preview directive listings.
	Out io.Writer
	// Runner is required in bind mode.
	Runner Runner

	// now is overridable for byte-identical output in tests.
	now func() time.Time
}

func (o Options) clock() time.Time {
	if o.now != nil {
		return o.now()
	}
	return time.Now()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// TypeResult is the outcome of one type importer run. Counters replace the
// shared mutable tallies of the original scripts.
type TypeResult struct {
	Kind       Kind        `json:"kind" yaml:"kind"`
	Fetched    int         `json:"fetched" yaml:"fetched"`
	Dropped    int         `json:"dropped" yaml:"dropped"`
	Projected  int         `json:"projected" yaml:"projected"`
	Failed     int         `json:"failed" yaml:"failed"`
	Bound      int         `json:"bound" yaml:"bound"`
	BindFailed int         `json:"bindFailed" yaml:"bindFailed"`
	Error      string      `json:"error,omitempty" yaml:"error,omitempty"`
	Directives []Directive `json:"-" yaml:"-"`
}

// Failed-before-projection means the fetch or validation step aborted the
// whole type.
func (r TypeResult) Fatal() bool {
	return r.Error != ""
}

// RunType drives one resource type through the import pipeline:
// fetch -> validate -> project -> emit -> {preview | generate | bind}.
// Fetch and validation failures abort only this type; projection and bind
// failures are counted per record and never abort the remainder.
func RunType(ctx context.Context, client *grafana.Client, strat Strategy, opts Options) TypeResult {
	logger := opts.logger().With(slog.String("kind", string(strat.Kind())))
	res := TypeResult{Kind: strat.Kind()}

	candidates, dropped, err := strat.Fetch(ctx, client)
	if err != nil {
		logger.Error("fetch failed", slog.String("error", err.Error()))
		res.Error = err.Error()
		return res
	}
	res.Fetched = len(candidates) + dropped
	res.Dropped = dropped
	if dropped > 0 {
		logger.Warn("records without a usable identity were dropped", slog.Int("dropped", dropped))
	}

	file := newOutputFile(strat.Kind(), opts.clock())
	ids := util.NewIdentifierSet()
	var artifacts []Artifact

	for _, cand := range candidates {
		name := ids.Synthesize(cand.Label, opts.Prefix)
		block := hclwrite.NewBlock("resource", []string{strat.TerraformType(), name})

		arts, buildErr := cand.Build(name, block.Body())
		if buildErr != nil {
			logger.Warn("projection failed, record skipped",
				slog.String("label", cand.Label),
				slog.String("error", buildErr.Error()))
			res.Failed++
			continue
		}

		file.Body().AppendBlock(block)
		file.Body().AppendNewline()
		artifacts = append(artifacts, arts...)
		res.Projected++
		res.Directives = append(res.Directives, Directive{
			Address: strat.TerraformType() + "." + name,
			ID:      cand.ID,
		})
	}

	switch opts.Mode {
	case ModePreview:
		for _, d := range res.Directives {
			fmt.Fprintln(opts.Out, d.Command())
		}
		return res

	case ModeGenerate, ModeBind:
		if err := writeOutputs(opts.OutputDir, strat.OutputFile(), file, artifacts); err != nil {
			logger.Error("writing output failed", slog.String("error", err.Error()))
			res.Error = err.Error()
			return res
		}
		logger.Info("resource file written",
			slog.String("file", strat.OutputFile()),
			slog.Int("resources", res.Projected))
	}

	if opts.Mode == ModeBind {
		for _, d := range res.Directives {
			if err := opts.Runner.Import(ctx, opts.OutputDir, d.Address, d.ID); err != nil {
				// Partial success is the steady state when re-running
				// against a partially-imported environment.
				logger.Warn("import directive failed (may already exist)",
					slog.String("address", d.Address),
					slog.String("id", d.ID),
					slog.String("error", err.Error()))
				res.BindFailed++
				continue
			}
			res.Bound++
		}
	}

	return res
}

// writeOutputs overwrites the per-type resource file and its side files.
// Overwrite semantics keep re-runs idempotent at the file level.
func writeOutputs(dir, fileName string, file *hclwrite.File, artifacts []Artifact) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, fileName), file.Bytes(), 0o644); err != nil {
		return err
	}
	for _, art := range artifacts {
		target := filepath.Join(dir, filepath.FromSlash(art.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, art.Data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
