package ui

import "github.com/ftahirops/mtop/config"

// viewToggles are the console toggles persisted to disk.
type viewToggles struct {
	ShowCharts    bool
	ShowPreview   bool
	ShowColumns   bool
	ShowFullTable bool
}

func (m Model) viewDefaults() viewToggles {
	return viewToggles{
		ShowCharts:    m.showCharts,
		ShowPreview:   m.showPreview,
		ShowColumns:   m.showColumns,
		ShowFullTable: m.showFullTable,
	}
}

// saveViewDefaults persists the toggles on top of cfg.
func saveViewDefaults(cfg config.Config, path string, v viewToggles) error {
	cfg.UI.ShowCharts = v.ShowCharts
	cfg.UI.ShowPreview = v.ShowPreview
	cfg.UI.ShowColumns = v.ShowColumns
	cfg.UI.ShowFullTable = v.ShowFullTable
	return config.Save(cfg, path)
}
