package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trendspot/pkg/graphio"
)

// egonetOpts holds the command-line flags for the egonet command.
type egonetOpts struct {
	output  string // write the egonet as graph JSON
	noCache bool
}

// egonetCommand creates the egonet command. It extracts the subgraph
// spanned by an account and the accounts it follows.
func (c *CLI) egonetCommand() *cobra.Command {
	opts := egonetOpts{}

	cmd := &cobra.Command{
		Use:   "egonet <edge-list> <account>",
		Short: "Extract an account's egonet",
		Long: `Extract an account's egonet: the account, every account it follows, and
all follow relations among them.

Examples:
  trendspot egonet follows.txt 42
  trendspot egonet follows.txt 42 -o egonet.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			center, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("account must be an integer: %q", args[1])
			}
			return c.runEgonet(cmd, args[0], center, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runEgonet(cmd *cobra.Command, path string, center int, opts egonetOpts) error {
	logger := loggerFromContext(cmd.Context())

	runner, err := c.newRunner(cmd, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := c.baseOptions()
	pipeOpts.Path = path

	g, err := runner.Ingest(cmd.Context(), pipeOpts)
	if err != nil {
		return err
	}

	ego, err := g.Egonet(center)
	if err != nil {
		return fmt.Errorf("account %d: %w", center, err)
	}
	logger.Infof("Extracted egonet of %d: %d accounts, %d follows",
		center, ego.Order(), ego.Size())

	if opts.output == "" {
		return graphio.WriteGraph(ego, cmd.OutOrStdout())
	}
	if err := graphio.WriteGraphFile(ego, opts.output); err != nil {
		return err
	}
	printSuccess("Wrote egonet of account %d", center)
	printFile(opts.output)
	return nil
}
