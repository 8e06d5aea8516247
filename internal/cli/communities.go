package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// communitiesOpts holds the command-line flags for the communities command.
type communitiesOpts struct {
	minSize     int    // hide communities smaller than this
	metric      string // ranking metric for trend-setter highlighting
	interactive bool   // open the bubbletea browser
	refresh     bool
	noCache     bool
}

// communitiesCommand creates the communities command. It lists the
// communities of a follows network, or opens an interactive browser with
// --interactive.
func (c *CLI) communitiesCommand() *cobra.Command {
	opts := communitiesOpts{minSize: 1, metric: c.Config.Analysis.Metric}

	cmd := &cobra.Command{
		Use:   "communities <edge-list>",
		Short: "List the communities of a follows network",
		Long: `List the communities of a follows network.

A community is a maximal group of accounts in which every member can reach
every other member through follow relations. Trend setters within each
community are highlighted.

Examples:
  trendspot communities follows.txt
  trendspot communities follows.txt --min-size 3
  trendspot communities follows.txt --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCommunities(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.minSize, "min-size", opts.minSize, "hide communities smaller than this")
	cmd.Flags().StringVar(&opts.metric, "metric", opts.metric, "ranking metric (followers|following)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse communities interactively")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runCommunities(cmd *cobra.Command, path string, opts communitiesOpts) error {
	runner, err := c.newRunner(cmd, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := c.baseOptions()
	pipeOpts.Path = path
	pipeOpts.Metric = opts.metric
	pipeOpts.Refresh = opts.refresh

	result, err := runner.Execute(cmd.Context(), pipeOpts)
	if err != nil {
		return err
	}

	communities := sortedBySize(result.Communities)
	filtered := communities[:0:0]
	for _, members := range communities {
		if len(members) >= opts.minSize {
			filtered = append(filtered, members)
		}
	}

	if opts.interactive {
		model := NewCommunityListModel(filtered, result.TrendSetters)
		if _, err := tea.NewProgram(model).Run(); err != nil {
			return fmt.Errorf("interactive browser: %w", err)
		}
		return nil
	}

	printNewline()
	fmt.Println(StyleTitle.Render("Communities"))
	printStats(result.Stats.VertexCount, result.Stats.EdgeCount, result.CacheInfo.CommunityHit)
	printNewline()

	for i, members := range filtered {
		setters := setterCount(members, result.TrendSetters)
		fmt.Printf("  %s %s\n",
			StyleHighlight.Render(fmt.Sprintf("#%d", i+1)),
			StyleValue.Render(fmt.Sprintf("%d members, %d trend setters", len(members), setters)))
	}
	if len(filtered) < len(communities) {
		printNewline()
		printDetail("%d smaller communities hidden (--min-size %d)",
			len(communities)-len(filtered), opts.minSize)
	}
	return nil
}
