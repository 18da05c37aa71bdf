package tui

// TableColumnConfig controls which optional columns the schedule table shows.
type TableColumnConfig struct {
	ShowAllowedDays  bool
	ShowDependencies bool
	ShowDisplayDates bool
}

type Option func(*Model)

func DefaultTableColumnConfig() TableColumnConfig {
	return TableColumnConfig{
		ShowAllowedDays:  true,
		ShowDependencies: true,
		ShowDisplayDates: true,
	}
}

func WithTableColumnConfig(cfg TableColumnConfig) Option {
	return func(m *Model) {
		m.tableColumns = cfg
	}
}

func WithConfirmDelete(confirm bool) Option {
	return func(m *Model) {
		m.confirmDelete = confirm
	}
}
