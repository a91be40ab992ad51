package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/firbgo/internal/breakeven"
	"github.com/rgehrsitz/firbgo/internal/config"
	"github.com/spf13/cobra"
)

func affordabilityCmd(a *app) *cobra.Command {
	var (
		flags     descriptorFlags
		scenario  string
		budget    string
		goal      string
		states    string
		format    string
		tolerance string
	)

	cmd := &cobra.Command{
		Use:   "affordability [input-file]",
		Short: "Find the most expensive property a budget can buy",
		Long: `Search for the highest property value whose price and costs fit a budget.
The property value of the scenario is ignored; every other input is kept.

Goals:
  total_outlay   price plus upfront costs (default)
  first_year     price, upfront costs and the first year's annual costs
  upfront_costs  upfront costs only, for buyers financing the price separately

Examples:
  firbgo affordability --budget 1,000,000 --state NSW
  firbgo affordability scenarios.yaml --scenario sydney_unit --budget 1500000 --states all
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := config.ParseAmount("budget", budget)
			if err != nil {
				return err
			}
			g, err := breakeven.ParseBudgetGoal(goal)
			if err != nil {
				return err
			}

			// The search chooses the value, so a placeholder keeps the parser happy
			if flags.raw.PropertyValue == "" {
				flags.raw.PropertyValue = "1"
			}
			input, err := a.loadScenarios(args, &flags)
			if err != nil {
				return err
			}
			base, err := pickScenario(input, scenario)
			if err != nil {
				return err
			}
			engine, err := a.loadEngine(input.RatesFile)
			if err != nil {
				return err
			}

			options := breakeven.DefaultSolverOptions()
			if tolerance != "" {
				tol, err := config.ParseAmount("tolerance", tolerance)
				if err != nil {
					return err
				}
				options.Tolerance = tol
			}
			solver := breakeven.NewSolver(engine, options)
			req := breakeven.AffordabilityRequest{Base: base.Descriptor, Budget: total, Goal: g}

			tf := &breakeven.TableFormatter{}
			jf := &breakeven.JSONFormatter{Pretty: true}
			out := cmd.OutOrStdout()

			if states != "" {
				result, err := solver.AcrossStates(cmd.Context(), req, parseStates(states))
				if err != nil {
					return err
				}
				if strings.EqualFold(format, "json") {
					s, err := jf.FormatStates(result)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, s)
					return nil
				}
				fmt.Fprint(out, tf.FormatStates(result))
				return nil
			}

			result, err := solver.MaxAffordable(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.log.Debug("Affordability search finished", "iterations", result.Iterations, "value", result.MaxPropertyValue.String())
			if strings.EqualFold(format, "json") {
				s, err := jf.Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
				return nil
			}
			fmt.Fprint(out, tf.Format(result))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&scenario, "scenario", "", "Scenario to use as the template (default: first scenario)")
	cmd.Flags().StringVar(&budget, "budget", "", "Total budget in dollars (required)")
	cmd.Flags().StringVar(&goal, "goal", string(breakeven.GoalTotalOutlay), "Costs the budget must cover (total_outlay, first_year, upfront_costs)")
	cmd.Flags().StringVar(&states, "states", "", "Run the search in each of these states (comma-separated, or all)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	cmd.Flags().StringVar(&tolerance, "tolerance", "", "Stop when the answer is within this many dollars (default 1)")
	_ = cmd.MarkFlagRequired("budget")
	return cmd
}
