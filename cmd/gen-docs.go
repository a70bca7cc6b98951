package cmd

//go:generate go run ../main.go gen-docs --path ../docs/cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewCmdGenDocs creates a new gen-docs command
func NewCmdGenDocs(rootCmd *cobra.Command) *cobra.Command {
	var docPath string

	cmd := &cobra.Command{
		Use:    "gen-docs",
		Short:  "Generate markdown documentation",
		Long:   `Generate the markdown documentation of all commands and flags`,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE:   runGenDocs(rootCmd, &docPath),
	}

	cmd.Flags().StringVar(&docPath, "path", "docs", "directory path where the markdown files will be created")

	return cmd
}

func runGenDocs(rootCmd *cobra.Command, path *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		rootCmd.DisableAutoGenTag = true
		if err := doc.GenMarkdownTree(rootCmd, *path); err != nil {
			return runtimeError(err)
		}
		return nil
	}
}
