package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vascnet/netinput/pkg/errors"
	"github.com/vascnet/netinput/pkg/model"
	"github.com/vascnet/netinput/pkg/pipeline"
)

// Report formats of the check command.
const (
	reportText = "text"
	reportJSON = "json"
	reportYAML = "yaml"
)

// checkReport is the machine-readable result of the check command. Field
// order is output order.
type checkReport struct {
	Source   string           `json:"source" yaml:"source"`
	Format   string           `json:"format,omitempty" yaml:"format,omitempty"`
	Valid    bool             `json:"valid" yaml:"valid"`
	Code     errors.Code      `json:"code,omitempty" yaml:"code,omitempty"`
	Error    string           `json:"error,omitempty" yaml:"error,omitempty"`
	Counts   *model.Counts    `json:"counts,omitempty" yaml:"counts,omitempty"`
	Warnings []errors.Warning `json:"warnings" yaml:"warnings"`
	Flagged  []string         `json:"flagged_segments,omitempty" yaml:"flagged_segments,omitempty"`
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		flags  inputFlags
		report string
	)

	cmd := &cobra.Command{
		Use:   "check [input]",
		Short: "Validate a network and report warnings",
		Long: `Validate a network and report warnings.

The network is parsed and run through every consistency check: unique
names, non-negative areas, well-formed profiles, segment lengths against
node positions, resolvable references and joint mappings.

With --report json or --report yaml a machine-readable report is written
to stdout, also when the network is invalid. The exit status is non-zero
whenever the network fails to parse or validate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch report {
			case reportText, reportJSON, reportYAML:
			default:
				return fmt.Errorf("invalid report format: %q (must be one of: text, json, yaml)", report)
			}
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runCheck(cmd.Context(), cmd.OutOrStdout(), args[0], opts, flags.noCache, report)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&report, "report", "r", reportText, "report format: text, json, yaml")

	return cmd
}

func (c *CLI) runCheck(ctx context.Context, out io.Writer, input string, opts pipeline.Options, noCache bool, format string) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	done := startTimer(c.Logger)
	rep, checkErr := c.check(ctx, runner, input, opts)

	switch format {
	case reportJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	case reportYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	default:
		printCheckReport(out, rep)
	}

	if checkErr != nil {
		return checkErr
	}
	done("Checked " + input)
	return nil
}

// check loads and validates input. The report is filled in either case.
func (c *CLI) check(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (*checkReport, error) {
	rep := &checkReport{Source: input, Warnings: []errors.Warning{}}

	in, err := runner.Load(ctx, input, opts)
	if err != nil {
		rep.fail(err)
		return rep, err
	}
	rep.Format = string(in.Format)
	counts := in.Model.Counts()
	rep.Counts = &counts

	result, err := runner.Check(ctx, in, opts)
	if err != nil {
		rep.fail(err)
		return rep, err
	}
	rep.Valid = true
	rep.Warnings = append(rep.Warnings, result.Warnings...)
	rep.Flagged = result.Flagged
	return rep, nil
}

func (r *checkReport) fail(err error) {
	r.Valid = false
	r.Code = errors.GetCode(err)
	r.Error = errors.UserMessage(err)
}

func printCheckReport(w io.Writer, rep *checkReport) {
	if !rep.Valid {
		printError(w, "%s is invalid", rep.Source)
		printDetail(w, "%s", rep.Error)
		return
	}

	printSuccess(w, "%s is valid", rep.Source)
	printKeyValue(w, "format", rep.Format)
	printStats(w, *rep.Counts)
	for _, warning := range rep.Warnings {
		printWarning(w, "%s", warning.Message)
	}
}
