package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vascnet/netinput/pkg/pipeline"
)

// planCommand creates the plan command.
func (c *CLI) planCommand() *cobra.Command {
	var (
		flags   inputFlags
		output  string
		echoDir string
	)

	cmd := &cobra.Command{
		Use:   "plan [input]",
		Short: "Run the full pipeline and write the construction plan",
		Long: `Run the full pipeline and write the construction plan.

The network is parsed, validated and assembled into the ordered list of
solver construction calls: nodes, joints, materials, data tables, segments
and the final solve with its inlet curve and output settings. The plan is
written as JSON.

With --echo-dir the text and JSON echoes are written as well, as a full
solver run would.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("echo-dir") {
				opts.EchoDir = echoDir
			}
			return c.runPlan(cmd.Context(), cmd, args[0], output, opts, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&echoDir, "echo-dir", "", "also write echo.out and echo.json to this directory")

	return cmd
}

func (c *CLI) runPlan(ctx context.Context, cmd *cobra.Command, input, output string, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, input, opts)
	if err != nil {
		return err
	}

	if output == "" {
		return result.Plan.WriteJSON(cmd.OutOrStdout())
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := result.Plan.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", output, err)
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Planned %d construction calls for %s", result.Plan.Calls(), input)
	printStats(out, result.Input.Model.Counts())
	printCacheStatus(out, result.Input.CacheHit)
	printFile(out, output)
	for _, path := range result.Echoes {
		printFile(out, path)
	}
	return nil
}
