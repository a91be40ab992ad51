package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/firbgo/internal/domain"
)

// ScenarioReport is one named breakdown
type ScenarioReport struct {
	Name      string              `json:"name" yaml:"name"`
	Breakdown domain.FeeBreakdown `json:"breakdown" yaml:"breakdown"`
}

// Report is the input to every formatter
type Report struct {
	Scenarios   []ScenarioReport `json:"scenarios" yaml:"scenarios"`
	Assumptions []string         `json:"assumptions,omitempty" yaml:"assumptions,omitempty"`
}

// NewReport builds a report with the default assumptions
func NewReport(scenarios ...ScenarioReport) *Report {
	return &Report{Scenarios: scenarios, Assumptions: DefaultAssumptions}
}

// Formatter renders a report
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"json":    JSONFormatter{},
	"yaml":    YAMLFormatter{},
	"csv":     CSVFormatter{},
	"html":    HTMLFormatter{},
}

var aliases = map[string]string{
	"text":  "console",
	"table": "console",
	"yml":   "yaml",
}

// GetFormatterByName returns the named formatter or nil
func GetFormatterByName(name string) Formatter {
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases, sorted
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders the report and writes it to a timestamped file in the
// working directory, returning the file name
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("firb_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
