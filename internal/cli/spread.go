package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// spreadOpts holds the command-line flags for the spread command.
type spreadOpts struct {
	metric         string
	topFraction    float64
	maxDepth       int
	maxGenerations int
	refresh        bool
	noCache        bool
}

// spreadCommand creates the spread command. It simulates how content posted
// by one account propagates through the follows network, generation by
// generation.
func (c *CLI) spreadCommand() *cobra.Command {
	opts := spreadOpts{
		metric:      c.Config.Analysis.Metric,
		topFraction: c.Config.Analysis.TopFraction,
	}

	cmd := &cobra.Command{
		Use:   "spread <edge-list> <account>",
		Short: "Simulate content spread from an account",
		Long: `Simulate how content posted by an account propagates through the network.

Content travels against follow edges (followers see what the accounts they
follow post). Trend setters stop resharing once a fifth of their audience
has already seen the content, so saturation naturally limits the reach.

Examples:
  trendspot spread follows.txt 2
  trendspot spread follows.txt 2 --max-depth 3
  trendspot spread follows.txt 2 --max-generations 5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("account must be an integer: %q", args[1])
			}
			return c.runSpread(cmd, args[0], start, opts)
		},
	}

	cmd.Flags().StringVar(&opts.metric, "metric", opts.metric, "ranking metric (followers|following)")
	cmd.Flags().Float64Var(&opts.topFraction, "top-fraction", opts.topFraction, "share of each community ranked as trend setters")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "maximum propagation depth (0 = unbounded)")
	cmd.Flags().IntVar(&opts.maxGenerations, "max-generations", 0, "maximum emitted generations")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runSpread(cmd *cobra.Command, path string, start int, opts spreadOpts) error {
	logger := loggerFromContext(cmd.Context())

	runner, err := c.newRunner(cmd, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := c.baseOptions()
	pipeOpts.Path = path
	pipeOpts.Metric = opts.metric
	pipeOpts.TopFraction = opts.topFraction
	pipeOpts.Refresh = opts.refresh
	pipeOpts.Spread = true
	pipeOpts.Start = start
	pipeOpts.MaxDepth = opts.maxDepth
	pipeOpts.MaxGenerations = opts.maxGenerations

	prog := newProgress(logger)
	result, err := runner.Execute(cmd.Context(), pipeOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Simulated %d generations from account %d",
		len(result.Generations), start))

	printNewline()
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Spread from account %d", start)))
	printStats(result.Stats.VertexCount, result.Stats.EdgeCount, result.CacheInfo.SpreadHit)
	printNewline()

	for _, gen := range result.Generations {
		members := make([]string, len(gen.Members))
		for i, id := range gen.Members {
			members[i] = formatMember(id, result.TrendSetters.Contains(id))
		}
		fmt.Printf("  %s %s\n",
			StyleHighlight.Render(fmt.Sprintf("gen %-2d (%d)", gen.Index, len(gen.Members))),
			strings.Join(members, " "))
	}

	if len(result.Generations) > 0 {
		last := result.Generations[len(result.Generations)-1]
		reach := float64(len(last.Members)) / float64(result.Stats.VertexCount) * 100
		printNewline()
		printDetail("Reached %d of %d accounts (%.0f%%)",
			len(last.Members), result.Stats.VertexCount, reach)
	}
	return nil
}
