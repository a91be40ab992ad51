package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/firbgo/internal/compare"
	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/rgehrsitz/firbgo/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd(a *app) *cobra.Command {
	var (
		flags         descriptorFlags
		scenario      string
		with          string
		states        string
		format        string
		listTemplates bool
	)

	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a property against alternative purchase strategies or states",
		Long: `Compare a base property against built-in strategy templates, or price the same
purchase across states.

Examples:
  firbgo compare scenarios.yaml --scenario sydney_unit --with new_dwelling,deposit_30
  firbgo compare --value 1200000 --state NSW --states NSW,VIC,QLD --format csv
  firbgo compare --list-templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := transform.CreateBuiltInTemplates()
			if listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), templateHelp(registry))
				return nil
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
			ce := compare.NewCompareEngine(engine)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var set *compare.ComparisonSet
			switch {
			case with != "":
				names := transform.ParseTemplateList(with)
				if len(names) == 0 {
					return fmt.Errorf("no valid templates specified in --with")
				}
				set, err = ce.Compare(ctx, base.Descriptor, compare.CompareOptions{
					BaseScenarioName: base.Name,
					Templates:        names,
				})
			default:
				list := parseStates(states)
				if len(list) == 0 {
					list = domain.AllStates
				}
				set, err = ce.CompareStates(ctx, base.Descriptor, statesWithBaseFirst(base.Descriptor.State, list))
			}
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			return writeComparison(cmd, set, format)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&scenario, "scenario", "", "Base scenario name (default: first scenario)")
	cmd.Flags().StringVar(&with, "with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringVar(&states, "states", "", "Comma-separated states to compare when --with is not given; the base state is always included (default: all)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List all available templates")
	return cmd
}

func writeComparison(cmd *cobra.Command, set *compare.ComparisonSet, format string) error {
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "csv":
		s, err := (&compare.CSVFormatter{}).Format(set)
		if err != nil {
			return fmt.Errorf("failed to format CSV: %w", err)
		}
		fmt.Fprint(out, s)
	case "json":
		s, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprint(out, s)
	case "compact":
		fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(set))
	case "table", "console", "":
		fmt.Fprint(out, (&compare.TableFormatter{}).Format(set))
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
	}
	return nil
}

// statesWithBaseFirst puts the base state first so it becomes the comparison
// base, and drops duplicates
func statesWithBaseFirst(base domain.State, list []domain.State) []domain.State {
	out := []domain.State{base}
	seen := map[domain.State]bool{base: true}
	for _, st := range list {
		if !seen[st] {
			seen[st] = true
			out = append(out, st)
		}
	}
	return out
}

func templateHelp(registry *transform.TemplateRegistry) string {
	var sb strings.Builder
	sb.WriteString("AVAILABLE TEMPLATES\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	for _, name := range registry.List() {
		t, _ := registry.Get(name)
		sb.WriteString(fmt.Sprintf("  %-26s %s\n", name, t.Description))
	}
	sb.WriteString("\nCombine templates with commas: --with new_dwelling,deposit_30\n")
	return sb.String()
}
