package cmd

import (
	"fmt"
	"runtime"

	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprint(cmd.OutOrStdout(), versionText())
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func versionText() string {
	v := crucible.GetVersion()
	return fmt.Sprintf("s3uri %s\n  commit:   %s\n  built:    %s\n  go:       %s %s/%s\n  gofulmen: %s\n  crucible: %s\n",
		versionInfo.Version,
		versionInfo.Commit,
		versionInfo.BuildDate,
		runtime.Version(), runtime.GOOS, runtime.GOARCH,
		orUnknown(v.Gofulmen),
		orUnknown(v.Crucible),
	)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
