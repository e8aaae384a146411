// Package ui implements the interactive maintenance KPI console.
package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ftahirops/mtop/config"
	"github.com/ftahirops/mtop/engine"
	"github.com/ftahirops/mtop/export"
	"github.com/ftahirops/mtop/model"
)

// Page identifies the current screen.
type Page int

const (
	PageOverview Page = iota
	PagePyramid
	PageCharts
	PageCauses
	PageRecommendations
	PageData
	PageFilters
	pageCount
)

var pageNames = []string{"Overview", "Pyramid", "Charts", "Causes", "Recommendations", "Data", "Filters"}

// Facet indexes on the Filters page.
const (
	facetLocation = iota
	facetEquipment
	facetStatus
	facetCount
)

var facetNames = []string{"Location", "Equipment", "Status"}

// ReloadFunc loads the dataset again from its source.
type ReloadFunc func() (*model.Dataset, error)

// Options configures the console.
type Options struct {
	Config     config.Config
	ConfigPath string // where ctrl+d saves view defaults; empty uses config.Path()
	Reload     ReloadFunc
	OutDir     string // where S and P write files
	Logger     *zap.Logger
	Now        func() time.Time
}

// reloadMsg carries the result of a reload.
type reloadMsg struct {
	ds  *model.Dataset
	err error
}

// saveConfirmMsg is sent after a save completes.
type saveConfirmMsg struct {
	path string
	err  error
}

// Model is the bubbletea model of the console.
type Model struct {
	opts    Options
	engine  *engine.Engine
	facets  engine.Facets
	history *engine.History
	report  *model.Report
	width   int
	height  int

	// Selection state
	selected [facetCount]map[string]bool
	from, to *time.Time

	// Navigation
	page             Page
	showHelp         bool
	explainPanelOpen bool
	explainScroll    int
	scroll           int

	// Filters page
	facet  int
	cursor int

	// View toggles
	showCharts    bool
	showPreview   bool
	showColumns   bool
	showFullTable bool

	// Save / status feedback
	saveMsg     string
	saveMsgTime time.Time
}

// NewModel creates a console over ds.
func NewModel(ds *model.Dataset, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := Model{
		opts:          opts,
		history:       engine.NewHistory(32),
		showCharts:    opts.Config.UI.ShowCharts,
		showPreview:   opts.Config.UI.ShowPreview,
		showColumns:   opts.Config.UI.ShowColumns,
		showFullTable: opts.Config.UI.ShowFullTable,
	}
	m.setDataset(ds)
	return m
}

// setDataset installs ds with every facet value selected.
func (m *Model) setDataset(ds *model.Dataset) {
	eopts := engine.OptionsFromConfig(m.opts.Config)
	eopts.Logger = m.opts.Logger
	eopts.Now = m.opts.Now
	m.engine = engine.New(ds, eopts)
	m.facets = engine.BuildFacets(ds)

	def := engine.DefaultSelection(ds)
	m.selected[facetLocation] = toSelected(def.Locations)
	m.selected[facetEquipment] = toSelected(def.Equipment)
	m.selected[facetStatus] = toSelected(def.Statuses)
	m.from, m.to = def.From, def.To
	m.cursor = 0
	m.recompute()
	m.history.Push(engine.Sample{At: m.opts.Now(), KPI: m.report.KPI})
}

func toSelected(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Selection returns the current filter selection. Facets keep the order of
// first appearance in the dataset.
func (m Model) Selection() model.Selection {
	pick := func(values []string, set map[string]bool) []string {
		out := make([]string, 0, len(values))
		for _, v := range values {
			if set[v] {
				out = append(out, v)
			}
		}
		return out
	}
	sel := model.Selection{From: m.from, To: m.to}
	if m.engine.Dataset().Schema.HasLocation {
		sel.Locations = pick(m.facets.Locations, m.selected[facetLocation])
	}
	if m.engine.Dataset().Schema.HasEquipment {
		sel.Equipment = pick(m.facets.Equipment, m.selected[facetEquipment])
	}
	sel.Statuses = pick(m.facets.Statuses, m.selected[facetStatus])
	return sel
}

// Report returns the latest computed report.
func (m Model) Report() *model.Report {
	return m.report
}

func (m *Model) recompute() {
	m.report = m.engine.Compute(m.Selection())
}

func (m Model) facetValues(f int) []string {
	switch f {
	case facetLocation:
		return m.facets.Locations
	case facetEquipment:
		return m.facets.Equipment
	default:
		return m.facets.Statuses
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func reload(fn ReloadFunc) tea.Cmd {
	return func() tea.Msg {
		ds, err := fn()
		return reloadMsg{ds: ds, err: err}
	}
}

// saveCSV writes the filtered records as CSV.
func saveCSV(eng *engine.Engine, sel model.Selection, dir string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		data, err := eng.ExportCSV(sel)
		if err != nil {
			return saveConfirmMsg{err: err}
		}
		path := filepath.Join(dir, fmt.Sprintf("mtop-export-%s.csv", now.Format("20060102-150405")))
		if err := os.WriteFile(path, data, 0600); err != nil {
			return saveConfirmMsg{err: err}
		}
		return saveConfirmMsg{path: path}
	}
}

// saveMarkdown writes the current report as Markdown.
func saveMarkdown(rep *model.Report, dir string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, fmt.Sprintf("mtop-report-%s.md", now.Format("20060102-150405")))
		if err := os.WriteFile(path, []byte(export.Markdown(rep)), 0600); err != nil {
			return saveConfirmMsg{err: err}
		}
		return saveConfirmMsg{path: path}
	}
}

func (m *Model) setStatus(msg string) {
	m.saveMsg = msg
	m.saveMsgTime = m.opts.Now()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case reloadMsg:
		if msg.err != nil {
			m.opts.Logger.Warn("reload failed", zap.Error(msg.err))
			m.setStatus("Reload failed: " + msg.err.Error())
			return m, nil
		}
		m.setDataset(msg.ds)
		m.opts.Logger.Info("dataset reloaded", zap.String("id", msg.ds.ID), zap.Int("rows", len(msg.ds.Records)))
		m.setStatus(fmt.Sprintf("Reloaded %d rows", len(msg.ds.Records)))

	case saveConfirmMsg:
		if msg.err != nil {
			m.setStatus("Save failed: " + msg.err.Error())
		} else {
			m.setStatus("Saved: " + msg.path)
		}

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "E":
		m.explainPanelOpen = !m.explainPanelOpen
		m.explainScroll = 0
	case "0", "1", "2", "3", "4", "5", "6":
		m.page = Page(key[0] - '0')
		m.scroll = 0
		m.explainScroll = 0
	case "j", "down":
		if m.page == PageFilters {
			if m.cursor < len(m.facetValues(m.facet))-1 {
				m.cursor++
			}
		} else {
			m.scroll++
		}
	case "k", "up":
		if m.page == PageFilters {
			if m.cursor > 0 {
				m.cursor--
			}
		} else if m.scroll > 0 {
			m.scroll--
		}
	case "g":
		m.scroll = 0
	case "tab":
		m.facet = (m.facet + 1) % facetCount
		m.cursor = 0
	case " ", "space":
		values := m.facetValues(m.facet)
		if m.cursor < len(values) {
			v := values[m.cursor]
			m.selected[m.facet][v] = !m.selected[m.facet][v]
			m.recompute()
		}
	case "a":
		set := m.selected[m.facet]
		values := m.facetValues(m.facet)
		all := true
		for _, v := range values {
			all = all && set[v]
		}
		for _, v := range values {
			set[v] = !all
		}
		m.recompute()
	case "[", "]", "{", "}":
		m.shiftDates(key)
	case "c":
		m.showCharts = !m.showCharts
	case "p":
		m.showPreview = !m.showPreview
	case "l":
		m.showColumns = !m.showColumns
	case "t":
		m.showFullTable = !m.showFullTable
	case "R":
		if m.opts.Reload != nil {
			m.setStatus("Reloading...")
			return m, reload(m.opts.Reload)
		}
	case "S":
		return m, saveCSV(m.engine, m.Selection(), m.opts.OutDir, m.opts.Now())
	case "P":
		return m, saveMarkdown(m.report, m.opts.OutDir, m.opts.Now())
	case "ctrl+d":
		if err := saveViewDefaults(m.opts.Config, m.opts.ConfigPath, m.viewDefaults()); err != nil {
			m.setStatus("Save defaults failed: " + err.Error())
		} else {
			m.setStatus("View toggles saved as defaults")
		}
	}
	return m, nil
}

// shiftDates moves From ([ ]) or To ({ }) by one day, keeping From <= To.
func (m *Model) shiftDates(key string) {
	if m.from == nil || m.to == nil {
		return
	}
	from, to := *m.from, *m.to
	switch key {
	case "[":
		from = from.AddDate(0, 0, -1)
	case "]":
		if from.Before(to) {
			from = from.AddDate(0, 0, 1)
		}
	case "{":
		if to.After(from) {
			to = to.AddDate(0, 0, -1)
		}
	case "}":
		to = to.AddDate(0, 0, 1)
	}
	m.from, m.to = &from, &to
	m.recompute()
}

func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	if m.width == 0 {
		return "Loading..."
	}

	renderW := m.width
	var explainW int
	if m.explainPanelOpen {
		renderW = m.width * 65 / 100
		explainW = m.width - renderW - 1
		if explainW < 20 {
			explainW = 20
			renderW = m.width - explainW - 1
		}
		if renderW < 40 {
			renderW = m.width
			explainW = 0
		}
	}

	var content string
	switch m.page {
	case PageOverview:
		content = renderOverviewPage(m.report, m.history, m.opts.Config.Targets.AvailabilityPct, renderW)
	case PagePyramid:
		content = renderPyramidPage(m.report, renderW)
	case PageCharts:
		content = renderChartsPage(m.report, m.showCharts, renderW, m.height)
	case PageCauses:
		content = renderCausesPage(m.report, m.showCharts, renderW)
	case PageRecommendations:
		content = renderRecommendationsPage(m.report, renderW)
	case PageData:
		content = renderDataPage(m.report, m.engine.Filtered(m.Selection()), dataView{
			preview: m.showPreview, columns: m.showColumns, full: m.showFullTable,
		}, renderW)
	case PageFilters:
		content = m.renderFiltersPage(renderW)
	}

	content = m.renderHeader(renderW) + "\n" + content

	if m.explainPanelOpen && explainW > 0 {
		panel := renderExplainSidePanel(m.page, m.report, explainW, m.height, m.explainScroll)
		content = joinColumns(content, panel, renderW, "")
	}

	lines := strings.Split(content, "\n")
	scroll := m.scroll
	if scroll >= len(lines) {
		scroll = len(lines) - 1
	}
	if scroll > 0 {
		lines = lines[scroll:]
	}
	maxLines := m.height - 2
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.Join(lines, "\n") + "\n" + m.renderStatusBar()
}

func (m Model) renderHeader(width int) string {
	rep := m.report
	left := titleStyle.Render(" mtop ") + dimStyle.Render("│ ") +
		valueStyle.Render(rep.Info.Source) + dimStyle.Render(fmt.Sprintf(" │ %d of %d rows", rep.Filtered, rep.Info.Total))
	right := dimStyle.Render(m.opts.Now().Format("15:04:05"))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderStatusBar() string {
	var tabs []string
	for i, name := range pageNames {
		label := fmt.Sprintf("%d:%s", i, name)
		if m.width < 100 {
			label = fmt.Sprintf("%d:%s", i, shortPageName(name))
		}
		if Page(i) == m.page {
			tabs = append(tabs, headerStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, dimStyle.Render(" "+label+" "))
		}
	}
	bar := strings.Join(tabs, "")

	hint := "?:help E:explain S:csv P:md R:reload q:quit"
	if m.saveMsg != "" && m.opts.Now().Sub(m.saveMsgTime) < 10*time.Second {
		hint = m.saveMsg
	}
	gap := m.width - lipgloss.Width(bar) - lipgloss.Width(hint)
	if gap < 1 {
		return bar
	}
	return bar + strings.Repeat(" ", gap) + helpStyle.Render(hint)
}

func shortPageName(name string) string {
	switch name {
	case "Overview":
		return "Ovr"
	case "Pyramid":
		return "Pyr"
	case "Charts":
		return "Chr"
	case "Causes":
		return "Cau"
	case "Recommendations":
		return "Rec"
	case "Filters":
		return "Flt"
	default:
		return name
	}
}

func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("mtop — Maintenance Downtime KPI Console"))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render("Navigation"))
	sb.WriteString("\n")
	sb.WriteString("  0         Overview (KPI cards, dataset, warnings)\n")
	sb.WriteString("  1         Safety pyramid\n")
	sb.WriteString("  2         Charts (location, equipment, monthly trend)\n")
	sb.WriteString("  3         Causes (maintenance types, cause words)\n")
	sb.WriteString("  4         Recommendations\n")
	sb.WriteString("  5         Data (preview, full table, columns)\n")
	sb.WriteString("  6         Filters\n")
	sb.WriteString("  j/k       Scroll down/up (select value on Filters)\n")
	sb.WriteString("  g         Top\n")
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Filters"))
	sb.WriteString("\n")
	sb.WriteString("  Tab       Next facet (location, equipment, status)\n")
	sb.WriteString("  Space     Toggle value under cursor\n")
	sb.WriteString("  a         Select all / none in facet\n")
	sb.WriteString("  [ / ]     Move From date back / forward a day\n")
	sb.WriteString("  { / }     Move To date back / forward a day\n")
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Controls"))
	sb.WriteString("\n")
	sb.WriteString("  c         Toggle charts\n")
	sb.WriteString("  p         Toggle data preview\n")
	sb.WriteString("  l         Toggle column list\n")
	sb.WriteString("  t         Toggle full table\n")
	sb.WriteString("  Ctrl+D    Save current toggles as defaults\n")
	sb.WriteString("  E         Toggle explain side panel (metric glossary)\n")
	sb.WriteString("  R         Reload the file\n")
	sb.WriteString("  S         Save filtered rows as CSV\n")
	sb.WriteString("  P         Save report as markdown\n")
	sb.WriteString("  ?         Toggle this help\n")
	sb.WriteString("  q/Ctrl+C  Quit\n")
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Press any key to close"))
	return sb.String()
}
