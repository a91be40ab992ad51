package main

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/rgehrsitz/firbgo/internal/output"
	"github.com/rgehrsitz/firbgo/internal/rates"
	"github.com/spf13/cobra"
)

func ratesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Inspect and validate rate tables",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Summarise the active rate table",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.loadEngine("")
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), summariseRates(engine.Table))
			return nil
		},
	}

	dump := &cobra.Command{
		Use:   "dump",
		Short: "Print the active rate table as YAML, ready to edit for a new financial year",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.loadEngine("")
			if err != nil {
				return err
			}
			data, err := rates.Marshal(engine.Table)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	validate := &cobra.Command{
		Use:   "validate [rates-file]",
		Short: "Check a rate table file for malformed brackets and tiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := rates.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rate table %s is valid (FY %s, %d states)\n",
				args[0], table.Metadata.FinancialYear, len(table.States))
			return nil
		},
	}

	cmd.AddCommand(show, dump, validate)
	return cmd
}

func summariseRates(table *domain.RateTable) string {
	s := fmt.Sprintf("RATE TABLE FY %s\n", table.Metadata.FinancialYear)
	if table.Metadata.LastUpdated != "" {
		s += fmt.Sprintf("Last updated: %s\n", table.Metadata.LastUpdated)
	}
	s += fmt.Sprintf("\n%-6s %12s %12s %14s %10s\n", "State", "Surcharge", "Land tax", "LT threshold", "Brackets")

	codes := make([]string, 0, len(table.States))
	for code := range table.States {
		codes = append(codes, string(code))
	}
	sort.Strings(codes)
	for _, code := range codes {
		sr := table.States[domain.State(code)]
		s += fmt.Sprintf("%-6s %12s %12s %14s %10d\n", code,
			output.FormatRate(sr.StampDutySurcharge),
			output.FormatRate(sr.LandTaxSurcharge),
			output.FormatCurrency(sr.LandTaxThreshold),
			len(sr.TransferDuty))
	}
	s += fmt.Sprintf("\nUnknown states: %s surcharge, %s flat duty\n",
		output.FormatRate(table.Fallback.StampDutySurcharge),
		output.FormatRate(table.Fallback.StandardDuty))
	return s
}
