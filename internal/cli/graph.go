package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vascnet/netinput/pkg/pipeline"
	"github.com/vascnet/netinput/pkg/topology"
)

const formatDOT = "dot"

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		flags    inputFlags
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph [input]",
		Short: "Draw the network topology",
		Long: `Draw the network topology.

Nodes are drawn as circles, joint nodes as filled double circles and
segments as arrows from inlet to outlet node. Segment ends that refer to a
missing node are drawn as dashed placeholders, so the graph also helps to
find broken references; the network is not validated first.

Output is DOT text, or SVG or PNG rendered with Graphviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			switch format {
			case formatDOT, string(topology.FormatSVG), string(topology.FormatPNG):
			default:
				return fmt.Errorf("invalid graph format: %q (must be one of: dot, svg, png)", format)
			}
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), cmd, args[0], output, format, detailed, opts, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", string(topology.FormatSVG), "output format: svg, png, dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label nodes with positions and segments with length and areas")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, cmd *cobra.Command, input, output, format string, detailed bool, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	in, err := runner.Load(ctx, input, opts)
	if err != nil {
		return err
	}

	dot := topology.ToDOT(in.Model, topology.Options{Detailed: detailed})
	data := []byte(dot)
	if format != formatDOT {
		if data, err = topology.Render(ctx, dot, topology.Format(format)); err != nil {
			return fmt.Errorf("render graph: %w", err)
		}
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Drew %s", input)
	printStats(out, in.Model.Counts())
	printFile(out, output)
	return nil
}
