package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grafops/grafimport/internal/build"
	"github.com/grafops/grafimport/internal/meta"
)

const ShowCommitFlagName = "show-commit"

// Build a new instance of the version command
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Print the %s version", meta.CLIName),
		RunE: func(c *cobra.Command, _ []string) error {
			info, _ := c.Context().Value(build.InfoKey).(*build.Info)
			if info == nil {
				info = &build.Info{Version: "dev", Commit: "unknown"}
			}

			showCommit, err := c.Flags().GetBool(ShowCommitFlagName)
			if err != nil {
				return err
			}

			if showCommit {
				fmt.Fprintf(c.OutOrStdout(), "%s (%s)\n", info.Version, info.Commit)
			} else {
				fmt.Fprintln(c.OutOrStdout(), info.Version)
			}
			return nil
		},
	}

	cmd.Flags().Bool(ShowCommitFlagName, false, "True to show the git commit hash when built.")

	return cmd
}
