package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/platform"
)

type listEntry struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Category            checks.Category `json:"category"`
	Description         string          `json:"description"`
	Dependencies        []string        `json:"dependencies"`
	EstimatedDurationMs int64           `json:"estimated_duration_ms"`
}

// NewCmdList creates the list command, which prints the check catalogue.
func NewCmdList(d *deps) *cobra.Command {
	format := newEnumValue("text", []string{"text", "json"})
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := d.source(d.platform(platform.DefaultConfig())).Checks()
			if format.String() == "json" {
				return listJSON(d.stdout, all)
			}
			listText(d.stdout, all)
			return nil
		},
	}
	cmd.Flags().Var(format, "format", "output format")
	return cmd
}

func listText(w io.Writer, all []checks.Registered) {
	for _, c := range checks.Categories {
		var rows []checks.Registered
		for _, rc := range all {
			if rc.Category == c {
				rows = append(rows, rc)
			}
		}
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintln(w, c.Header())
		for _, rc := range rows {
			line := fmt.Sprintf("  %-8s %s", rc.ID, rc.Name)
			if len(rc.Dependencies) > 0 {
				line += fmt.Sprintf(" (after %s)", strings.Join(rc.Dependencies, ", "))
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d checks\n", len(all))
}

func listJSON(w io.Writer, all []checks.Registered) error {
	entries := make([]listEntry, 0, len(all))
	for _, rc := range all {
		after := rc.Dependencies
		if after == nil {
			after = []string{}
		}
		entries = append(entries, listEntry{
			ID:                  rc.ID,
			Name:                rc.Name,
			Category:            rc.Category,
			Description:         rc.Description,
			Dependencies:        after,
			EstimatedDurationMs: rc.EstimatedDurationMs,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return runtimeError(err)
	}
	return nil
}
