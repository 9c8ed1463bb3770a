package root

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/grafops/grafimport/internal/build"
	"github.com/grafops/grafimport/internal/cmd/common"
	"github.com/grafops/grafimport/internal/cmd/root/importcmd"
	"github.com/grafops/grafimport/internal/cmd/root/version"
	"github.com/grafops/grafimport/internal/config"
	cmderr "github.com/grafops/grafimport/internal/err"
	"github.com/grafops/grafimport/internal/iostreams"
	"github.com/grafops/grafimport/internal/log"
	"github.com/grafops/grafimport/internal/meta"
)

const rootLong = `grafimport brings the live resources of a running Grafana instance under
Terraform management: it projects folders, data sources, dashboards, contact
points and alert rule groups into declarative resource blocks and emits the
terraform import directives binding each block to its live counterpart.`

var (
	rootCmd *cobra.Command

	configFilePath string
	currConfig     config.Hook
	streams        *iostreams.IOStreams
	buildInfo      *build.Info
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           meta.CLIName,
		Short:         fmt.Sprintf("%s projects live Grafana resources into Terraform", meta.CLIName),
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := slog.New(slog.NewTextHandler(streams.ErrOut, &slog.HandlerOptions{
				Level: log.ConfigLevelStringToSlogLevel(currConfig.GetString(common.LogLevelConfigPath)),
			}))

			ctx := context.WithValue(cmd.Context(), config.ConfigKey, currConfig)
			ctx = context.WithValue(ctx, iostreams.StreamsKey, streams)
			ctx = context.WithValue(ctx, log.LoggerKey, logger)
			ctx = context.WithValue(ctx, build.InfoKey, buildInfo)
			cmd.SetContext(ctx)
		},
	}

	defaultConfigPath, _ := config.GetDefaultConfigFilePath()
	cmd.PersistentFlags().StringVar(&configFilePath, common.ConfigFilePathFlagName,
		defaultConfigPath, "Path to the configuration file to load.")
	cmd.PersistentFlags().String(common.LogLevelFlagName, common.DefaultLogLevel,
		"Log level (trace|debug|info|warn|error).")
	cmd.PersistentFlags().StringP(common.OutputFlagName, common.OutputFlagShort,
		common.DefaultOutputFormat, "Output format for the run summary (text|json|yaml).")

	cmd.AddCommand(version.NewVersionCmd())
	cmd.AddCommand(importcmd.NewImportCmd())

	return cmd
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd = newRootCmd()
}

func initConfig() {
	defaultConfigPath, err := config.GetDefaultConfigFilePath()
	if err != nil {
		fmt.Fprintln(streams.ErrOut, "error:", err)
		os.Exit(2)
	}

	cfg, err := config.GetConfig(configFilePath, defaultConfigPath)
	if err != nil {
		fmt.Fprintln(streams.ErrOut, "error:", err)
		os.Exit(2)
	}
	currConfig = cfg

	for _, name := range []string{
		common.LogLevelFlagName,
		common.OutputFlagName,
	} {
		if f := rootCmd.PersistentFlags().Lookup(name); f != nil {
			if err := cfg.BindFlag(name, f); err != nil {
				fmt.Fprintln(streams.ErrOut, "error:", err)
				os.Exit(2)
			}
		}
	}
}

func Execute(ctx context.Context, s *iostreams.IOStreams, bi *build.Info) {
	streams = s
	buildInfo = bi

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(s.ErrOut, "error:", err)

		var configurationError *cmderr.ConfigurationError
		if errors.As(err, &configurationError) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
