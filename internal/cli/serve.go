package cli

import (
	"github.com/spf13/cobra"

	"taskmcp/internal/flags"
	"taskmcp/internal/server"
	"taskmcp/internal/tools"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task tools to MCP clients",
		Long: `Serve the task tools over the Model Context Protocol.

The stdio transport (default) speaks MCP on stdin/stdout; logs go to stderr.
The http transport serves streamable HTTP on --addr until interrupted.

Examples:
  taskmcp serve
  taskmcp serve --transport http --addr 127.0.0.1:8080
  taskmcp serve --tools getAllTasks,getTask,linkTasks
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.newEnv(cmd.Context())
			if err != nil {
				return fatal(err)
			}
			s, err := server.New(tools.Build(env), a.cfg.Server.Tools, buildVersion, a.log)
			if err != nil {
				return fatal(err)
			}
			return server.Serve(cmd.Context(), s, a.cfg.Server, a.stdin, a.stdout, a.log)
		},
	}

	d := cmd.Flags()
	d.String(flags.FlagTransport, "stdio", "Transport: stdio|http")
	d.String(flags.FlagAddr, ":8080", "Listen address for --transport http")
	d.String(flags.FlagTools, "", "Comma-separated tool names to expose (empty = all)")
	return cmd
}
