package importcmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/grafops/grafimport/internal/cmd/common"
	"github.com/grafops/grafimport/internal/config"
	cmderr "github.com/grafops/grafimport/internal/err"
	"github.com/grafops/grafimport/internal/grafana"
	"github.com/grafops/grafimport/internal/importer"
	"github.com/grafops/grafimport/internal/iostreams"
	"github.com/grafops/grafimport/internal/log"
	"github.com/grafops/grafimport/internal/terraform"
	"github.com/grafops/grafimport/internal/util"
)

const importLong = `Import live Grafana resources into Terraform.

Runs each requested type importer in a fixed order (folders, data sources,
dashboards, contact points, alert rule groups), projecting every live
resource into a declarative block and emitting one terraform import
directive per resource. One type's failure never aborts the others.

Modes:
  preview    print the import directives, write nothing
  generate   write the resource files and import script, bind nothing
  bind       write the files, then execute every directive sequentially`

const importExamples = `  # See what would be imported
  grafimport import --url https://grafana.example.com --token $TOKEN

  # Generate resource files for dashboards only
  grafimport import dashboards --mode generate --output-dir ./grafana-tf

  # Bind everything to live state
  grafimport import all --mode bind`

// NewImportCmd builds the import command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "import [kind|all]",
		Short:   "Project live Grafana resources into Terraform blocks and bind them",
		Long:    importLong,
		Example: importExamples,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: bindFlags,
		RunE:    run,
	}

	cmd.Flags().String(common.URLFlagName, "", "Base URL of the Grafana instance.")
	cmd.Flags().String(common.TokenFlagName, "", "Service account bearer token.")
	cmd.Flags().Duration(common.TimeoutFlagName, grafana.DefaultTimeout, "Per-request timeout.")
	cmd.Flags().String(common.PrefixFlagName, common.DefaultPrefix,
		"Prefix for synthesized resource identifiers.")
	cmd.Flags().String(common.OutputDirFlagName, common.DefaultOutputDir,
		"Directory receiving resource files, dashboard bodies, and the import script.")
	cmd.Flags().String(common.ModeFlagName, string(importer.ModePreview),
		"Run mode (preview|generate|bind).")
	cmd.Flags().String(common.TerraformBinFlagName, "",
		"Terraform executable used in bind mode (default \"terraform\").")

	return cmd
}

func bindFlags(c *cobra.Command, _ []string) error {
	cfg, ok := c.Context().Value(config.ConfigKey).(config.Hook)
	if !ok || cfg == nil {
		return &cmderr.ConfigurationError{Err: fmt.Errorf("no config found in context")}
	}

	for flagName, configPath := range map[string]string{
		common.URLFlagName:          common.URLConfigPath,
		common.TokenFlagName:        common.TokenConfigPath,
		common.TimeoutFlagName:      common.TimeoutConfigPath,
		common.PrefixFlagName:       common.PrefixConfigPath,
		common.OutputDirFlagName:    common.OutputDirConfigPath,
		common.ModeFlagName:         common.ModeConfigPath,
		common.TerraformBinFlagName: common.TerraformBinPath,
	} {
		if err := cfg.BindFlag(configPath, c.Flags().Lookup(flagName)); err != nil {
			return &cmderr.ConfigurationError{Err: err}
		}
	}
	return nil
}

func run(c *cobra.Command, args []string) error {
	ctx := c.Context()
	cfg := ctx.Value(config.ConfigKey).(config.Hook)
	streams := ctx.Value(iostreams.StreamsKey).(*iostreams.IOStreams)
	logger, _ := ctx.Value(log.LoggerKey).(*slog.Logger)

	mode, err := importer.ParseMode(cfg.GetString(common.ModeConfigPath))
	if err != nil {
		return &cmderr.ConfigurationError{Err: err}
	}

	format, err := common.OutputFormatStringToIota(cfg.GetString(common.OutputConfigPath))
	if err != nil {
		return &cmderr.ConfigurationError{Err: err}
	}

	prefix := cfg.GetString(common.PrefixConfigPath)
	if !util.IsLegalIdentifier(prefix) {
		return &cmderr.ConfigurationError{
			Err: fmt.Errorf("prefix %q is not a legal identifier", prefix),
		}
	}

	strategies := importer.DefaultStrategies()
	if len(args) == 1 && args[0] != "all" {
		kind, err := importer.ParseKind(args[0])
		if err != nil {
			return &cmderr.ConfigurationError{Err: err}
		}
		strategies = importer.StrategiesFor([]importer.Kind{kind})
	}

	client, err := grafana.New(grafana.Config{
		BaseURL: cfg.GetString(common.URLConfigPath),
		Token:   cfg.GetString(common.TokenConfigPath),
		Timeout: cfg.GetDuration(common.TimeoutConfigPath),
		Logger:  logger,
	})
	if err != nil {
		return &cmderr.ConfigurationError{Err: err}
	}

	opts := importer.Options{
		Mode:      mode,
		Prefix:    prefix,
		OutputDir: cfg.GetString(common.OutputDirConfigPath),
		Logger:    logger,
		Out:       streams.Out,
	}
	if mode == importer.ModeBind {
		opts.Runner = &terraform.CLIRunner{
			Binary: cfg.GetString(common.TerraformBinPath),
			Stdout: streams.Out,
			Stderr: streams.ErrOut,
		}
	}

	orchestrator := &importer.Orchestrator{
		Client:     client,
		Strategies: strategies,
		Options:    opts,
	}
	report := orchestrator.Run(ctx)

	if err := importer.PrintReport(streams.Out, report, format.String()); err != nil {
		return err
	}

	if report.AllFatal() {
		return &cmderr.ExecutionError{
			Msg: "no resource type could be imported",
			Err: fmt.Errorf("%s", report.Results[0].Error),
		}
	}
	return nil
}
