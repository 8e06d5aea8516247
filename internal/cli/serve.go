package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/trendspot/internal/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	noCache bool
}

// serveCommand creates the serve command. It runs the HTTP analysis API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: c.Config.Server.Addr}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP analysis API",
		Long: `Run the HTTP analysis API.

Endpoints:
  POST /api/v1/analyze   Run the analysis pipeline on an inline edge list
  GET  /healthz          Liveness probe

Examples:
  trendspot serve
  trendspot serve --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger)
			printInfo("Listening on %s", opts.addr)
			return srv.ListenAndServe(cmd.Context(), opts.addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}
