package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap declares every binding the explorer responds to
type KeyMap struct {
	NextState   key.Binding
	PrevState   key.Binding
	Type        key.Binding
	Entity      key.Binding
	FirstHome   key.Binding
	Occupancy   key.Binding
	DepositUp   key.Binding
	DepositDown key.Binding
	EditValue   key.Binding
	Explorer    key.Binding
	Compare     key.Binding
	Help        key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextState:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next state")),
		PrevState:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev state")),
		Type:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "property type")),
		Entity:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "entity")),
		FirstHome:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "first home")),
		Occupancy:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "occupancy")),
		DepositUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "deposit up")),
		DepositDown: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "deposit down")),
		EditValue:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "edit value")),
		Explorer:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "explorer")),
		Compare:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare states")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevState, k.NextState, k.EditValue, k.Compare, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevState, k.NextState, k.Type, k.Entity},
		{k.FirstHome, k.Occupancy, k.DepositUp, k.DepositDown},
		{k.EditValue, k.Explorer, k.Compare},
		{k.Help, k.Back, k.Quit},
	}
}
