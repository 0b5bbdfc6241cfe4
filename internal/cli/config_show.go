package cli

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"taskmcp/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var asTable bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration after flags, SYNAPTIK_* environment variables,
the config file and defaults have been merged. The output is a valid config
file. The API token is never printed.

With --table, print one row per setting instead.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asTable {
				table := tablewriter.NewWriter(cmd.OutOrStdout())
				table.Header("Setting", "Value")
				for _, s := range a.cfg.Settings() {
					if err := table.Append(s.Key, s.Value); err != nil {
						return err
					}
				}
				return table.Render()
			}
			b, err := config.Marshal(a.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	showCmd.Flags().BoolVar(&asTable, "table", false, "print settings as a table")
	configCmd.AddCommand(showCmd)
	return configCmd
}
