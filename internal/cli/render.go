package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trendspot/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	format  string // dot or svg
	output  string
	plain   bool // skip community clustering and highlighting
	metric  string
	noCache bool
	refresh bool
}

// renderCommand creates the render command. It draws the follows network
// as a node-link diagram, grouping communities into clusters and
// highlighting trend setters.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: "svg", metric: c.Config.Analysis.Metric}

	cmd := &cobra.Command{
		Use:   "render <edge-list>",
		Short: "Render a follows network as a node-link diagram",
		Long: `Render a follows network as a node-link diagram.

By default, communities are drawn as clusters and trend setters are
highlighted. Use --plain to draw the bare graph.

Examples:
  trendspot render follows.txt -o follows.svg
  trendspot render follows.txt --format dot
  trendspot render follows.txt --plain -o follows.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format (dot|svg)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "skip community clustering and trend-setter highlighting")
	cmd.Flags().StringVar(&opts.metric, "metric", opts.metric, "ranking metric (followers|following)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	if opts.format != "dot" && opts.format != "svg" {
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg)", opts.format)
	}

	logger := loggerFromContext(cmd.Context())

	runner, err := c.newRunner(cmd, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := c.baseOptions()
	pipeOpts.Path = path
	pipeOpts.Metric = opts.metric
	pipeOpts.Refresh = opts.refresh

	renderOptions := render.Options{}
	g, err := runner.Ingest(cmd.Context(), pipeOpts)
	if err != nil {
		return err
	}
	if !opts.plain {
		communities, setters, err := runner.Analyze(cmd.Context(), g, pipeOpts)
		if err != nil {
			return err
		}
		renderOptions.Communities = communities
		renderOptions.TrendSetters = setters
	}

	dot := render.ToDOT(g, renderOptions)

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	case "svg":
		spin := newSpinnerWithContext(cmd.Context(), "Rendering SVG...")
		spin.Start()
		data, err = render.RenderSVG(dot)
		spin.Stop()
		if err != nil {
			return err
		}
	}

	if opts.output == "" {
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return err
	}
	logger.Infof("Wrote %s (%d bytes)", opts.output, len(data))
	printSuccess("Rendered %s", strings.ToUpper(opts.format))
	printFile(opts.output)
	return nil
}
