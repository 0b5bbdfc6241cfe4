package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"taskmcp/internal/flags"
	"taskmcp/internal/tools"
)

func newToolsCmd(a *app) *cobra.Command {
	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "List and describe the MCP tools",
		Long: `Discover which tools "taskmcp serve" exposes and which arguments each one takes.

Examples:
  # List all tools
  taskmcp tools list

  # Only the names
  taskmcp tools list -q

  # One tool in detail
  taskmcp tools show linkTasks
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var quiet bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available tools",
		Long: `List every tool registered in this build, sorted by name.

Output:
  A vertical list of tools:
    ----------------------------------------
    TOOL: {NAME}
    ----------------------------------------
    {DESCRIPTION}
    {ARGUMENTS}
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry(cmd)
			if err != nil {
				return err
			}
			for _, t := range reg.List() {
				if quiet {
					fmt.Fprintln(cmd.OutOrStdout(), t.Name())
				} else {
					printTool(cmd.OutOrStdout(), t, a.colorize)
				}
			}
			return nil
		},
	}
	listCmd.Flags().BoolVarP(&quiet, flags.FlagQuiet, "q", false, "Only print tool names")

	showCmd := &cobra.Command{
		Use:   "show [tool-name]",
		Short: "Show details of a specific tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry(cmd)
			if err != nil {
				return err
			}
			t, ok := reg.Get(args[0])
			if !ok {
				return fmt.Errorf("tool not found: %s", args[0])
			}
			printTool(cmd.OutOrStdout(), t, a.colorize)
			return nil
		},
	}

	toolsCmd.AddCommand(listCmd, showCmd)
	return toolsCmd
}

// registry builds the tool set without contacting the task service.
func (a *app) registry(cmd *cobra.Command) (*tools.Registry, error) {
	env, err := a.newEnv(cmd.Context())
	if err != nil {
		return nil, fatal(err)
	}
	return tools.Build(env), nil
}

func printTool(w io.Writer, t tools.Tool, colorize bool) {
	bold := color.New(color.Bold)
	if colorize {
		bold.EnableColor()
	} else {
		bold.DisableColor()
	}

	def := t.Definition()
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "TOOL: %s\n", t.Name())
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, t.Description())

	if hints := toolHints(def.Annotations.ReadOnlyHint, def.Annotations.DestructiveHint); hints != "" {
		fmt.Fprintf(w, "Hints: %s\n", hints)
	}

	props := def.InputSchema.Properties
	if len(props) > 0 {
		required := make(map[string]bool, len(def.InputSchema.Required))
		for _, name := range def.InputSchema.Required {
			required[name] = true
		}
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Arguments:")
		for _, name := range names {
			typ, desc := schemaField(props[name], "type"), schemaField(props[name], "description")
			req := "optional"
			if required[name] {
				req = "required"
			}
			fmt.Fprintf(w, "  %s (%s, %s)\n", name, typ, req)
			if desc != "" {
				fmt.Fprintf(w, "    %s\n", desc)
			}
		}
	}
	fmt.Fprintln(w)
}

func toolHints(readOnly, destructive *bool) string {
	switch {
	case readOnly != nil && *readOnly:
		return "read-only"
	case destructive != nil && *destructive:
		return "destructive"
	default:
		return ""
	}
}

func schemaField(prop any, key string) string {
	m, ok := prop.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
