package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vascnet/netinput/pkg/pipeline"
)

// echoCommand creates the echo command.
func (c *CLI) echoCommand() *cobra.Command {
	var (
		flags inputFlags
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "echo [input]",
		Short: "Write the text and JSON echoes of a validated network",
		Long: `Write the text and JSON echoes of a validated network.

The network is parsed and validated, then written twice into the output
directory: echo.out lists every entity block in a human-readable layout, and
echo.json holds the canonical JSON encoding of the network.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dir") && opts.EchoDir != "" {
				dir = opts.EchoDir
			}
			return c.runEcho(cmd.Context(), cmd.OutOrStdout(), args[0], dir, opts, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")

	return cmd
}

func (c *CLI) runEcho(ctx context.Context, out io.Writer, input, dir string, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	in, err := runner.Load(ctx, input, opts)
	if err != nil {
		return err
	}
	if _, err := runner.Check(ctx, in, opts); err != nil {
		return err
	}
	written, err := runner.Echo(ctx, in.Model, dir)
	if err != nil {
		return err
	}

	printSuccess(out, "Echoed %s", input)
	for _, path := range written {
		printFile(out, path)
	}
	return nil
}
