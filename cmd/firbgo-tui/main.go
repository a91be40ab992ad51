package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/firbgo/internal/calculation"
	"github.com/rgehrsitz/firbgo/internal/config"
	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/rgehrsitz/firbgo/internal/rates"
	"github.com/rgehrsitz/firbgo/internal/tui"
)

// Usage: firbgo-tui [input-file [scenario]]
func main() {
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	initial := domain.PropertyDescriptor{
		PropertyValue:  decimal.NewFromInt(850000),
		PropertyType:   domain.PropertyEstablished,
		State:          domain.StateNSW,
		EntityType:     domain.EntityIndividual,
		DepositPercent: decimal.NewFromInt(20),
	}
	ratesFile := appCfg.RatesFile

	if len(os.Args) > 1 {
		input, err := config.NewInputParser().LoadFromFile(os.Args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		scenario := input.Scenarios[0]
		if len(os.Args) > 2 {
			var ok bool
			if scenario, ok = input.Find(os.Args[2]); !ok {
				fmt.Printf("Error: scenario %q not found in %s\n", os.Args[2], os.Args[1])
				os.Exit(1)
			}
		}
		initial = scenario.Descriptor
		if ratesFile == "" {
			ratesFile = input.RatesFile
		}
	}

	table, err := rates.Resolve(ratesFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	engine := calculation.NewCachedEngine(calculation.NewFeeEngineWithTable(table), appCfg.CacheTTL)

	p := tea.NewProgram(
		tui.NewModel(engine, initial),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
