package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewCmdVersion creates the version command
func NewCmdVersion(d *deps, info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(d.stdout, "tpu-doc %s\n", info.Version)
			if info.Commit != "" {
				fmt.Fprintf(d.stdout, "Commit: %s\n", info.Commit)
			}
			if info.Date != "" {
				fmt.Fprintf(d.stdout, "Built: %s\n", info.Date)
			}
			fmt.Fprintf(d.stdout, "Target: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(d.stdout, "Go: %s\n", runtime.Version())
		},
	}
}
