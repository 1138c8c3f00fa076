package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/recordlint/format"
	"github.com/c360studio/recordlint/validation"
)

func rulesCmd() *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List every rule code with its severity and classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := format.ASCII
			if markdown {
				mode = format.Markdown
			}
			fmt.Fprint(cmd.OutOrStdout(), rulesTable(mode))
			return nil
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render the table as markdown")
	return cmd
}

// rulesTable renders the code table in declaration order.
func rulesTable(mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Header("Code", "Severity", "Title", "Classes")
	for _, d := range validation.Codes() {
		tb.Row(d.Code, d.Severity, d.Title, classList(d.Code))
	}
	tb.Columns(format.ColumnConfig{Number: 3, MaxWidth: 60})
	return tb.String() + "\n"
}

func classList(code validation.Code) string {
	if validation.IsBootstrap(code) {
		return "all"
	}
	classes := validation.ApplicableClasses(code)
	if len(classes) == 0 {
		return "-"
	}
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
