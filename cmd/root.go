package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/caas-team/tpu-doc/pkg/checks/register"
	"github.com/caas-team/tpu-doc/pkg/engine"
	"github.com/caas-team/tpu-doc/pkg/platform"
)

// BuildInfo describes the binary. It is set at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// deps are the collaborators of the commands. Tests replace them.
type deps struct {
	stdout   io.Writer
	stderr   io.Writer
	platform func(platform.Config) platform.Platform
	source   func(platform.Platform) engine.Source
}

func defaultDeps(stdout, stderr io.Writer) *deps {
	return &deps{
		stdout:   stdout,
		stderr:   stderr,
		platform: platform.New,
		source: func(p platform.Platform) engine.Source {
			return register.NewRegistry(p)
		},
	}
}

// NewCmdRoot creates a new root command. Without a subcommand it runs the checks.
func NewCmdRoot(d *deps, info BuildInfo) *cobra.Command {
	v := newViper()
	rootCmd := &cobra.Command{
		Use:   "tpu-doc",
		Short: "tpu-doc, the TPU host diagnostic and validation tool",
		Long: "tpu-doc validates that a TPU host is ready for workloads.\n" +
			"It checks hardware, the software stack, performance, I/O, security and configuration.",
		Version:       info.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCheck(d, v),
	}
	rootCmd.SetOut(d.stdout)
	rootCmd.SetErr(d.stderr)
	addCheckFlags(rootCmd, v)
	return rootCmd
}

func newCommand(d *deps, info BuildInfo) *cobra.Command {
	cmd := NewCmdRoot(d, info)
	cmd.AddCommand(NewCmdCheck(d))
	cmd.AddCommand(NewCmdList(d))
	cmd.AddCommand(NewCmdVersion(d, info))
	cmd.AddCommand(NewCmdSchema(d))
	cmd.AddCommand(NewCmdGenDocs(cmd))
	return cmd
}

// run executes the command tree and returns the process exit code.
func run(ctx context.Context, d *deps, info BuildInfo, args []string) int {
	cmd := newCommand(d, info)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	var ee *ExitError
	if err != nil && (!errors.As(err, &ee) || ee.Err != nil) {
		fmt.Fprintln(d.stderr, "Error:", err)
	}
	return exitCode(err)
}

// Execute adds all child commands to the root command
// and executes the cmd tree
func Execute(info BuildInfo) {
	os.Exit(run(context.Background(), defaultDeps(os.Stdout, os.Stderr), info, os.Args[1:]))
}
