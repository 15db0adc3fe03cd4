package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vascnet/netinput/pkg/pipeline"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		flags      inputFlags
		to         string
		output     string
		skipChecks bool
	)

	cmd := &cobra.Command{
		Use:   "convert [input]",
		Short: "Convert a network between the legacy and JSON formats",
		Long: `Convert a network between the legacy and JSON formats.

The input format is detected from the file extension or content unless
--input-format is given. The network is validated before it is written;
use --skip-checks to convert a network that does not validate.

Without --output the converted network is written to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := pipeline.ParseFormat(to)
			if err != nil {
				return err
			}
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runConvert(cmd.Context(), cmd, args[0], target, output, opts, flags.noCache, skipChecks)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&to, "to", "t", string(pipeline.FormatJSON), "output format: json, legacy")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&skipChecks, "skip-checks", false, "do not validate before writing")

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, cmd *cobra.Command, input string, target pipeline.Format, output string, opts pipeline.Options, noCache, skipChecks bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	in, err := runner.Load(ctx, input, opts)
	if err != nil {
		return err
	}
	if !skipChecks {
		if _, err := runner.Check(ctx, in, opts); err != nil {
			return err
		}
	}

	if output == "" {
		if err := pipeline.Encode(in.Model, target, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("convert: %w", err)
		}
		return nil
	}
	if err := pipeline.Convert(in.Model, target, output); err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Converted %s to %s", input, target)
	printFile(out, output)
	return nil
}
