package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/firbgo/internal/calculation"
	"github.com/rgehrsitz/firbgo/internal/config"
	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/rgehrsitz/firbgo/internal/logging"
	"github.com/rgehrsitz/firbgo/internal/rates"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds what the persistent pre-run resolves for every subcommand
type app struct {
	cfg    config.AppConfig
	log    *slog.Logger
	engine *calculation.FeeEngine

	envFile   string
	ratesFile string
	logLevel  string
	logFormat string
	debug     bool
	logOutput io.Writer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logOutput: os.Stderr}

	root := &cobra.Command{
		Use:   "firbgo",
		Short: "Foreign buyer property cost calculator",
		Long: `Estimates the government fees, taxes and purchase costs a foreign buyer pays
when acquiring residential property in Australia: FIRB application fees, stamp
duty surcharges, transfer duty, land tax surcharges, vacancy fees and the usual
costs of settlement.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Environment file with FIRBGO_* settings (ignored if missing)")
	root.PersistentFlags().StringVar(&a.ratesFile, "rates", "", "Rate table file (default: FIRBGO_RATES_FILE or the compiled-in table)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format (text, json)")
	root.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	root.AddCommand(
		calculateCmd(a),
		validateCmd(a),
		compareCmd(a),
		affordabilityCmd(a),
		ratesCmd(a),
		serveCmd(a),
		versionCmd(),
	)
	return root
}

// init loads app config, then lets flags override it
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.LoadAppConfig(a.envFile)
	if err != nil {
		return err
	}
	if a.ratesFile != "" {
		cfg.RatesFile = a.ratesFile
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	if a.debug, _ = cmd.Flags().GetBool("debug"); a.debug {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg
	a.log = logging.New(a.logOutput, cfg.LogLevel, cfg.LogFormat)
	return nil
}

// loadEngine builds the engine for a rates file. An input file's own
// rates_file is used when neither flag nor environment names one.
func (a *app) loadEngine(inputRates string) (*calculation.FeeEngine, error) {
	path := a.cfg.RatesFile
	if path == "" {
		path = inputRates
	}
	table, err := rates.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load rates: %w", err)
	}
	if path != "" {
		a.log.Info("Loaded rate table", "file", path, "financialYear", table.Metadata.FinancialYear)
	}

	engine := calculation.NewFeeEngineWithTable(table)
	if a.debug {
		engine.SetLogger(logging.EngineLogger{L: a.log})
	}
	a.engine = engine
	return engine, nil
}

// descriptorFlags collects a single property from the command line
type descriptorFlags struct {
	raw config.RawDescriptor
}

func (f *descriptorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.raw.PropertyValue, "value", "", "Property value, e.g. 850000 or $850,000")
	cmd.Flags().StringVar(&f.raw.PropertyType, "type", "established", "Property type (established, newDwelling, vacantLand)")
	cmd.Flags().StringVar(&f.raw.State, "state", "", "State or territory code (NSW, VIC, QLD, SA, WA, TAS, ACT, NT)")
	cmd.Flags().StringVar(&f.raw.EntityType, "entity", "individual", "Purchasing entity (individual, company, trust)")
	cmd.Flags().StringVar(&f.raw.FirstHomeBuyer, "first-home", "no", "First home buyer (yes/no)")
	cmd.Flags().StringVar(&f.raw.DepositPercent, "deposit", "20", "Deposit as a percentage of the price")
	cmd.Flags().StringVar(&f.raw.Occupancy, "occupancy", "", "Intended occupancy (occupied, vacant); empty means not stated")
}

// loadScenarios reads the input file when given, otherwise builds a single
// scenario from the descriptor flags
func (a *app) loadScenarios(args []string, flags *descriptorFlags) (*config.Configuration, error) {
	if len(args) > 0 {
		cfg, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}
	d, err := config.ParseDescriptor(flags.raw)
	if err != nil {
		return nil, err
	}
	return &config.Configuration{
		Scenarios: []config.NamedDescriptor{{Name: "property", Descriptor: d}},
	}, nil
}

// pickScenario returns the named scenario, or the first when name is empty
func pickScenario(cfg *config.Configuration, name string) (config.NamedDescriptor, error) {
	if name == "" {
		return cfg.Scenarios[0], nil
	}
	s, ok := cfg.Find(name)
	if !ok {
		names := make([]string, 0, len(cfg.Scenarios))
		for _, sc := range cfg.Scenarios {
			names = append(names, sc.Name)
		}
		return s, fmt.Errorf("scenario %q not found (available: %s)", name, strings.Join(names, ", "))
	}
	return s, nil
}

// parseStates reads a comma-separated state list; "all" or empty selects every state
func parseStates(list string) []domain.State {
	if strings.TrimSpace(list) == "" || strings.EqualFold(strings.TrimSpace(list), "all") {
		return nil
	}
	var states []domain.State
	for _, part := range strings.Split(list, ",") {
		if st := domain.ParseState(part); st != "" {
			states = append(states, st)
		}
	}
	return states
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "firbgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}
