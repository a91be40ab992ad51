package tui

import "github.com/rgehrsitz/firbgo/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	ColorPrimary = tuistyles.ColorPrimary
	ColorMuted   = tuistyles.ColorMuted

	AppStyle            = tuistyles.AppStyle
	TitleStyle          = tuistyles.TitleStyle
	SubtitleStyle       = tuistyles.SubtitleStyle
	StatusBarStyle      = tuistyles.StatusBarStyle
	BorderStyle         = tuistyles.BorderStyle
	ActiveBorderStyle   = tuistyles.ActiveBorderStyle
	SelectedItemStyle   = tuistyles.SelectedItemStyle
	UnselectedItemStyle = tuistyles.UnselectedItemStyle
	ParameterLabelStyle = tuistyles.ParameterLabelStyle
	ParameterValueStyle = tuistyles.ParameterValueStyle
	ErrorStyle          = tuistyles.ErrorStyle
	WarningStyle        = tuistyles.WarningStyle
	InfoStyle           = tuistyles.InfoStyle
	TableHeaderStyle    = tuistyles.TableHeaderStyle
	TableCellStyle      = tuistyles.TableCellStyle
	TableHighlightStyle = tuistyles.TableHighlightStyle
)

// Re-export helper functions
var (
	FormatCurrency = tuistyles.FormatCurrency
)
