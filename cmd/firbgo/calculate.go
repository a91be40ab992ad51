package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/firbgo/internal/config"
	"github.com/rgehrsitz/firbgo/internal/output"
	"github.com/spf13/cobra"
)

func calculateCmd(a *app) *cobra.Command {
	var (
		flags    descriptorFlags
		format   string
		scenario string
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate foreign buyer costs for one or more properties",
		Long: `Calculate the full fee breakdown for each scenario in an input file, or for a
single property described with flags.

Examples:
  firbgo calculate scenarios.yaml
  firbgo calculate scenarios.yaml --scenario sydney_unit --format json
  firbgo calculate --value 850000 --state VIC --type newDwelling --deposit 10
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.GetFormatterByName(strings.ToLower(format))
			if f == nil {
				return fmt.Errorf("unknown output format %q (valid: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			input, err := a.loadScenarios(args, &flags)
			if err != nil {
				return err
			}
			engine, err := a.loadEngine(input.RatesFile)
			if err != nil {
				return err
			}

			scenarios := input.Scenarios
			if scenario != "" {
				s, err := pickScenario(input, scenario)
				if err != nil {
					return err
				}
				scenarios = []config.NamedDescriptor{s}
			}

			reports := make([]output.ScenarioReport, 0, len(scenarios))
			for _, s := range scenarios {
				b, err := engine.CalculateAllFees(s.Descriptor)
				if err != nil {
					return fmt.Errorf("scenario %s: %w", s.Name, err)
				}
				a.log.Debug("Calculated scenario", "scenario", s.Name, "grandTotal", b.GrandTotal.String())
				reports = append(reports, output.ScenarioReport{Name: s.Name, Breakdown: b})
			}
			report := output.NewReport(reports...)

			if save {
				filename, err := output.WriteFormatted(f, report, extensionFor(f.Name()))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, json, yaml, csv, html)")
	cmd.Flags().StringVar(&scenario, "scenario", "", "Only calculate the named scenario")
	cmd.Flags().BoolVar(&save, "save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func extensionFor(formatter string) string {
	if formatter == "console" {
		return "txt"
	}
	return formatter
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input file and the rate table it uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			engine, err := a.loadEngine(input.RatesFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid: %d scenario(s), rates for FY %s\n",
				args[0], len(input.Scenarios), engine.FinancialYear())
			return nil
		},
	}
}
