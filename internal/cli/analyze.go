package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trendspot/pkg/pipeline"
	"github.com/matzehuels/trendspot/pkg/rank"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	metric      string  // ranking metric (followers or following)
	topFraction float64 // share of each community selected as trend setters
	refresh     bool    // bypass the analysis cache
	noCache     bool    // disable caching entirely
	output      string  // output file path (stdout pretty-print if empty)
}

// analyzeCommand creates the analyze command. It runs the full
// decomposition and ranking pipeline on an edge-list file and reports
// communities with their trend setters.
func (c *CLI) analyzeCommand() *cobra.Command {
	opts := analyzeOpts{
		metric:      c.Config.Analysis.Metric,
		topFraction: c.Config.Analysis.TopFraction,
	}

	cmd := &cobra.Command{
		Use:   "analyze <edge-list>",
		Short: "Find communities and trend setters in a follows network",
		Long: `Analyze a follows network given as an edge-list file.

Each line of the file holds one follow relation as two integers,
"<follower> <followed>". Lines starting with '#' are ignored.

The network is partitioned into communities (groups of accounts that all
reach each other through follow chains), and the most-followed accounts
of each community are reported as trend setters.

Examples:
  trendspot analyze follows.txt
  trendspot analyze follows.txt --metric following --top-fraction 0.2
  trendspot analyze follows.txt -o analysis.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.metric, "metric", opts.metric, "ranking metric (followers|following)")
	cmd.Flags().Float64Var(&opts.topFraction, "top-fraction", opts.topFraction, "share of each community ranked as trend setters")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (pretty-printed to stdout if empty)")

	return cmd
}

func (c *CLI) runAnalyze(cmd *cobra.Command, path string, opts analyzeOpts) error {
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

	prog := newProgress(logger)
	result, err := runner.Execute(cmd.Context(), pipeOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %d accounts in %d communities",
		result.Stats.VertexCount, result.Stats.CommunityCount))

	if opts.output != "" {
		return writeAnalysis(result, opts.output, logger)
	}

	printAnalysis(result)
	return nil
}

// printAnalysis pretty-prints an analysis result to stdout.
func printAnalysis(result *pipeline.Result) {
	printNewline()
	fmt.Println(StyleTitle.Render("Communities"))
	printStats(result.Stats.VertexCount, result.Stats.EdgeCount, result.CacheInfo.CommunityHit)
	printNewline()

	communities := sortedBySize(result.Communities)
	for i, members := range communities {
		rendered := make([]string, len(members))
		for j, id := range members {
			rendered[j] = formatMember(id, result.TrendSetters.Contains(id))
		}
		fmt.Printf("  %s %s\n",
			StyleHighlight.Render(fmt.Sprintf("#%d (%d)", i+1, len(members))),
			strings.Join(rendered, " "))
	}

	printNewline()
	printDetail("%s marks trend setters (%d total)", iconSetter, len(result.TrendSetters))
	printNextStep("Simulate spread", "trendspot spread <edge-list> <account>")
}

// sortedBySize orders communities largest-first without mutating the input.
func sortedBySize(communities [][]int) [][]int {
	out := make([][]int, len(communities))
	copy(out, communities)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// analysisDocument is the JSON output shape of the analyze command.
type analysisDocument struct {
	RunID        string  `json:"run_id"`
	GraphHash    string  `json:"graph_hash"`
	VertexCount  int     `json:"vertex_count"`
	EdgeCount    int     `json:"edge_count"`
	Communities  [][]int `json:"communities"`
	TrendSetters []int   `json:"trend_setters"`
}

func analysisFromResult(result *pipeline.Result) analysisDocument {
	return analysisDocument{
		RunID:        result.RunID,
		GraphHash:    result.GraphHash,
		VertexCount:  result.Stats.VertexCount,
		EdgeCount:    result.Stats.EdgeCount,
		Communities:  result.Communities,
		TrendSetters: result.TrendSetters.IDs(),
	}
}

// writeAnalysis serializes the analysis as JSON to path.
func writeAnalysis(result *pipeline.Result, path string, logger interface{ Infof(string, ...any) }) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(analysisFromResult(result)); err != nil {
		return err
	}
	if path != "" {
		logger.Infof("Wrote analysis to %s", path)
	}
	return nil
}

// setterCount reports how many of ids are trend setters.
func setterCount(ids []int, setters rank.Set) int {
	n := 0
	for _, id := range ids {
		if setters.Contains(id) {
			n++
		}
	}
	return n
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
