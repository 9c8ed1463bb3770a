package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/grafops/grafimport/internal/grafana"
)

// PlanWarning closes every summary: the projection is an initial
// declarative snapshot, not a drift check, and only the IaC tool's plan
// step can confirm convergence.
const PlanWarning = "Warning: projection may be attribute-incomplete; run `terraform plan` to verify."

// BatchReport aggregates per-type outcomes for one run.
type BatchReport struct {
	Results []TypeResult `json:"results" yaml:"results"`
}

// AllFatal reports whether every requested type failed before any
// projection happened; this is the only condition worth a nonzero exit.
func (r BatchReport) AllFatal() bool {
	if len(r.Results) == 0 {
		return false
	}
	for _, res := range r.Results {
		if !res.Fatal() {
			return false
		}
	}
	return true
}

func (r BatchReport) directives() []Directive {
	var all []Directive
	for _, res := range r.Results {
		all = append(all, res.Directives...)
	}
	return all
}

// DefaultStrategies returns every type importer in the fixed batch order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		Folders(),
		DataSources(),
		Dashboards(),
		ContactPoints(),
		AlertRuleGroups(),
	}
}

// StrategiesFor maps requested kinds onto strategies, preserving the fixed
// batch order regardless of the requested order.
func StrategiesFor(kinds []Kind) []Strategy {
	requested := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		requested[k] = true
	}
	var out []Strategy
	for _, strat := range DefaultStrategies() {
		if requested[strat.Kind()] {
			out = append(out, strat)
		}
	}
	return out
}

// Orchestrator runs type importers in sequence with shared configuration.
// One type's failure never prevents subsequent types from running.
type Orchestrator struct {
	Client     *grafana.Client
	Strategies []Strategy
	Options    Options
}

func (o *Orchestrator) Run(ctx context.Context) BatchReport {
	report := BatchReport{}
	for _, strat := range o.Strategies {
		report.Results = append(report.Results, RunType(ctx, o.Client, strat, o.Options))
	}

	if o.Options.Mode != ModePreview {
		if directives := report.directives(); len(directives) > 0 {
			if _, err := WriteImportScript(o.Options.OutputDir, directives); err != nil {
				o.Options.logger().Warn("failed to write import script",
					slog.String("error", err.Error()))
			}
		}
	}
	return report
}

// PrintReport renders the consolidated summary in the requested format,
// always followed by the plan-verification warning.
func PrintReport(w io.Writer, report BatchReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	case "yaml":
		if err := yaml.NewEncoder(w).Encode(report); err != nil {
			return err
		}
	default:
		tab := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tab, "KIND\tFETCHED\tDROPPED\tPROJECTED\tFAILED\tBOUND\tSTATUS")
		for _, res := range report.Results {
			status := "ok"
			if res.Fatal() {
				status = "failed: " + res.Error
			}
			fmt.Fprintf(tab, "%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
				res.Kind, res.Fetched, res.Dropped, res.Projected, res.Failed, res.Bound, status)
		}
		if err := tab.Flush(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, PlanWarning)
	return err
}
