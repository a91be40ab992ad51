package components

import (
	"math"
	"strings"

	"github.com/rgehrsitz/firbgo/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ParameterSlider renders a bounded descriptor parameter, such as the deposit
// percentage, as a label, value and bar on one line
type ParameterSlider struct {
	Label     string
	Value     decimal.Decimal
	Min       decimal.Decimal
	Max       decimal.Decimal
	Unit      string
	Width     int
	IsFocused bool
}

// NewParameterSlider creates a slider over [min, max]
func NewParameterSlider(label string, value, min, max decimal.Decimal) *ParameterSlider {
	return &ParameterSlider{
		Label: label,
		Value: value,
		Min:   min,
		Max:   max,
		Width: 20,
	}
}

// WithUnit sets the unit suffix
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Fraction returns how far along the range the value sits, clamped to [0, 1]
func (p *ParameterSlider) Fraction() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	f, _ := p.Value.Sub(p.Min).Div(span).Float64()
	return math.Max(0, math.Min(1, f))
}

// Filled returns the number of bar cells left of the thumb
func (p *ParameterSlider) Filled() int {
	return int(math.Round(float64(p.Width) * p.Fraction()))
}

// Render returns the compact slider line
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	filled := p.Filled()
	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < p.Width; i++ {
		switch {
		case i == filled || (i == p.Width-1 && filled >= p.Width):
			bar.WriteString(thumbStyle.Render("●"))
		case i < filled:
			bar.WriteString(thumbStyle.Render("━"))
		default:
			bar.WriteString(tuistyles.SliderTrackStyle.Render("─"))
		}
	}
	bar.WriteString("]")

	return labelStyle.Render(p.Label) + " " + valueStyle.Render(p.Value.StringFixed(0)+p.Unit) + " " + bar.String()
}
