package tui

import "charm.land/bubbles/v2/key"

// keyMap represents key map data used by this package.
type keyMap struct {
	quit            key.Binding
	reload          key.Binding
	toggleHelp      key.Binding
	moveUp          key.Binding
	moveDown        key.Binding
	addActivity     key.Binding
	editActivity    key.Binding
	deleteActivity  key.Binding
	save            key.Binding
	toggleWeekends  key.Binding
	projectSettings key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:            key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		reload:          key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		toggleHelp:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveUp:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "activity up")),
		moveDown:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "activity down")),
		addActivity:     key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add activity")),
		editActivity:    key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e/enter", "edit activity")),
		deleteActivity:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete activity")),
		save:            key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		toggleWeekends:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "toggle weekends")),
		projectSettings: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "project settings")),
	}
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.addActivity, k.editActivity, k.deleteActivity, k.save, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.addActivity, k.editActivity, k.deleteActivity, k.projectSettings},
		{k.moveUp, k.moveDown, k.toggleWeekends, k.save, k.reload},
		{k.toggleHelp, k.quit},
	}
}
