package tui

import (
	"context"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/hylla/tidplan/internal/app"
	"github.com/hylla/tidplan/internal/domain"
)

// Service represents service data used by this package.
type Service interface {
	Project() domain.Project
	Dirty() bool
	AddActivity(app.AddActivityInput) (domain.Activity, error)
	RemoveActivity(string) error
	UpdateActivityName(string, string) error
	SetDuration(string, int) error
	SetAllowedDays(string, domain.WeekdaySet) error
	SetDependencies(string, []string) error
	SetStartDate(string, time.Time) error
	SetEndDate(string, time.Time) error
	SetProjectStartDate(time.Time)
	SetIncludeWeekends(bool)
	RenameProject(string) error
	Load(context.Context)
	Save(context.Context) error
}

// inputMode represents a selectable mode.
type inputMode int

// modeNone and related constants define package defaults.
const (
	modeNone inputMode = iota
	modeAddActivity
	modeEditActivity
	modeProjectSettings
	modeConfirmDelete
	modeHelp
)

// add-form field indexes used throughout keyboard/update logic.
const (
	addFieldName = iota
	addFieldDuration
	addFieldDependencies
	addFieldAllowedDays
)

// edit-form field indexes used for focused form actions.
const (
	editFieldName = iota
	editFieldDuration
	editFieldStart
	editFieldEnd
	editFieldDependencies
	editFieldAllowedDays
)

// project-settings field indexes.
const (
	settingsFieldName = iota
	settingsFieldStart
)

// helpMarkdown is the full-key reference shown in the help overlay.
const helpMarkdown = `# tidplan

| key | action |
| --- | ------ |
| a / n | add activity |
| e / enter | edit selected activity |
| d | delete selected activity |
| j / ↓, k / ↑ | move selection |
| p | project settings |
| w | toggle weekend scheduling |
| s | save |
| r | reload from disk |
| ? | toggle this help |
| q | quit |

Dates are entered as YYYY-MM-DD. Dependencies are entered as
comma-separated row numbers, allowed start days as day names
("mon, thu"). An activity with dependencies always starts the first
permissible day after they finish.`

// Model represents model data used by this package.
type Model struct {
	svc Service

	ready  bool
	width  int
	height int

	status string

	help help.Model
	keys keyMap
	md   markdownRenderer

	tableColumns  TableColumnConfig
	confirmDelete bool

	project  domain.Project
	selected int

	mode       inputMode
	formInputs []textinput.Model
	formFocus  int
	// formBaseline holds the edit form's opening values so only changed
	// fields are submitted.
	formBaseline []string
	editingID    string

	pendingDeleteID   string
	pendingDeleteName string
	confirmChoice     int
}

// accentColor and friends fix the schedule view palette.
var (
	accentColor = lipgloss.Color("62")
	mutedColor  = lipgloss.Color("241")
	dimColor    = lipgloss.Color("239")
)

// savedMsg carries message data through update handling.
type savedMsg struct {
	err error
}

// reloadedMsg signals that the persisted project has been (re)loaded.
type reloadedMsg struct{}

// NewModel constructs a new value for this package.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		svc:           svc,
		status:        "loading...",
		help:          h,
		keys:          newKeyMap(),
		tableColumns:  DefaultTableColumnConfig(),
		confirmDelete: true,
	}
	m.project = svc.Project()
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return m.reloadCmd
}

// refresh pulls a fresh project snapshot from the service.
func (m *Model) refresh() {
	m.project = m.svc.Project()
	m.selected = clamp(m.selected, 0, len(m.project.Activities)-1)
}

func (m Model) reloadCmd() tea.Msg {
	m.svc.Load(context.Background())
	return reloadedMsg{}
}

func (m Model) saveCmd() tea.Msg {
	return savedMsg{err: m.svc.Save(context.Background())}
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case reloadedMsg:
		m.refresh()
		m.status = "loaded"
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "saved"
		return m, nil

	case tea.KeyPressMsg:
		if m.mode != modeNone {
			return m.handleInputModeKey(msg)
		}
		return m.handleNormalModeKey(msg)

	default:
		return m, nil
	}
}

func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.reload):
		m.status = "reloading..."
		return m, m.reloadCmd

	case key.Matches(msg, m.keys.save):
		m.status = "saving..."
		return m, m.saveCmd

	case key.Matches(msg, m.keys.toggleHelp):
		m.mode = modeHelp
		return m, nil

	case key.Matches(msg, m.keys.moveUp):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.moveDown):
		if m.selected < len(m.project.Activities)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.toggleWeekends):
		m.svc.SetIncludeWeekends(!m.project.IncludeWeekends)
		m.refresh()
		if m.project.IncludeWeekends {
			m.status = "weekends included"
		} else {
			m.status = "weekends excluded"
		}
		return m, nil

	case key.Matches(msg, m.keys.addActivity):
		return m.startAddForm()

	case key.Matches(msg, m.keys.editActivity):
		return m.startEditForm()

	case key.Matches(msg, m.keys.projectSettings):
		return m.startProjectSettings()

	case key.Matches(msg, m.keys.deleteActivity):
		activity, ok := m.selectedActivity()
		if !ok {
			return m, nil
		}
		if !m.confirmDelete {
			return m.deleteActivity(activity.ID, activity.Name)
		}
		m.mode = modeConfirmDelete
		m.pendingDeleteID = activity.ID
		m.pendingDeleteName = activity.Name
		m.confirmChoice = 0
		return m, nil

	default:
		return m, nil
	}
}

func (m Model) handleInputModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.mode = modeNone
			m.status = "ready"
		}
		return m, nil
	}

	if m.mode == modeConfirmDelete {
		switch msg.String() {
		case "esc", "n":
			m.mode = modeNone
			m.pendingDeleteID = ""
			m.status = "cancelled"
			return m, nil
		case "y":
			return m.applyPendingDelete()
		case "h", "left", "l", "right", "tab":
			m.confirmChoice = 1 - m.confirmChoice
			return m, nil
		case "enter":
			if m.confirmChoice == 0 {
				return m.applyPendingDelete()
			}
			m.mode = modeNone
			m.pendingDeleteID = ""
			m.status = "cancelled"
			return m, nil
		default:
			return m, nil
		}
	}

	switch msg.String() {
	case "esc":
		m.mode = modeNone
		m.formInputs = nil
		m.editingID = ""
		m.status = "cancelled"
		return m, nil

	case "tab", "down":
		return m, m.focusFormField((m.formFocus + 1) % len(m.formInputs))

	case "shift+tab", "up":
		return m, m.focusFormField((m.formFocus - 1 + len(m.formInputs)) % len(m.formInputs))

	case "enter":
		if m.formFocus < len(m.formInputs)-1 {
			return m, m.focusFormField(m.formFocus + 1)
		}
		return m.submitForm()

	default:
		var cmd tea.Cmd
		m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
		return m, cmd
	}
}

func (m *Model) focusFormField(idx int) tea.Cmd {
	if len(m.formInputs) == 0 {
		return nil
	}
	idx = clamp(idx, 0, len(m.formInputs)-1)
	for i := range m.formInputs {
		m.formInputs[i].Blur()
	}
	m.formFocus = idx
	return m.formInputs[idx].Focus()
}

func (m Model) selectedActivity() (domain.Activity, bool) {
	if len(m.project.Activities) == 0 {
		return domain.Activity{}, false
	}
	return m.project.Activities[clamp(m.selected, 0, len(m.project.Activities)-1)], true
}

func newFormInput(prompt, placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = limit
	return in
}

func (m Model) startAddForm() (tea.Model, tea.Cmd) {
	inputs := []textinput.Model{
		newFormInput("name: ", "activity name", 120),
		newFormInput("days: ", "duration in days", 4),
		newFormInput("after: ", "row numbers, e.g. 1, 3", 60),
		newFormInput("on: ", "allowed start days, e.g. mon, thu", 60),
	}
	m.mode = modeAddActivity
	m.formInputs = inputs
	m.editingID = ""
	m.status = "add activity"
	return m, m.focusFormField(addFieldName)
}

func (m Model) startEditForm() (tea.Model, tea.Cmd) {
	activity, ok := m.selectedActivity()
	if !ok {
		return m, nil
	}

	start := ""
	if activity.StartDate != nil {
		start = domain.FormatInputDate(*activity.StartDate)
	}
	end := ""
	if activity.EndDate != nil {
		end = domain.FormatInputDate(*activity.EndDate)
	}
	values := []string{
		activity.Name,
		strconv.Itoa(activity.Duration),
		start,
		end,
		domain.FormatDependencyRefs(activity.DependsOn, m.project.Activities),
		activity.AllowedDays.Format(),
	}

	inputs := []textinput.Model{
		newFormInput("name: ", "activity name", 120),
		newFormInput("days: ", "duration in days", 4),
		newFormInput("start: ", "YYYY-MM-DD", 10),
		newFormInput("end: ", "YYYY-MM-DD", 10),
		newFormInput("after: ", "row numbers, e.g. 1, 3", 60),
		newFormInput("on: ", "allowed start days, e.g. mon, thu", 60),
	}
	for i := range inputs {
		inputs[i].SetValue(values[i])
	}

	m.mode = modeEditActivity
	m.formInputs = inputs
	m.formBaseline = values
	m.editingID = activity.ID
	m.status = "edit " + activity.Name
	return m, m.focusFormField(editFieldName)
}

func (m Model) startProjectSettings() (tea.Model, tea.Cmd) {
	values := []string{
		m.project.Name,
		domain.FormatInputDate(m.project.StartDate),
	}
	inputs := []textinput.Model{
		newFormInput("project: ", "project name", 120),
		newFormInput("starts: ", "YYYY-MM-DD", 10),
	}
	for i := range inputs {
		inputs[i].SetValue(values[i])
	}

	m.mode = modeProjectSettings
	m.formInputs = inputs
	m.formBaseline = values
	m.status = "project settings"
	return m, m.focusFormField(settingsFieldName)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAddActivity:
		return m.submitAddForm()
	case modeEditActivity:
		return m.submitEditForm()
	case modeProjectSettings:
		return m.submitProjectSettings()
	default:
		return m, nil
	}
}

func (m Model) submitAddForm() (tea.Model, tea.Cmd) {
	duration, err := strconv.Atoi(strings.TrimSpace(m.formInputs[addFieldDuration].Value()))
	if err != nil {
		m.status = "duration must be a number of days"
		return m, m.focusFormField(addFieldDuration)
	}

	_, err = m.svc.AddActivity(app.AddActivityInput{
		Name:        m.formInputs[addFieldName].Value(),
		Duration:    duration,
		DependsOn:   domain.ParseDependencyRefs(m.formInputs[addFieldDependencies].Value(), m.project.Activities),
		AllowedDays: domain.ParseWeekdays(m.formInputs[addFieldAllowedDays].Value()),
	})
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	m.mode = modeNone
	m.formInputs = nil
	m.refresh()
	m.selected = len(m.project.Activities) - 1
	m.status = "activity added"
	return m, nil
}

// submitEditForm applies only the fields whose value differs from the form's
// opening state, so an untouched derived date never turns into a manual
// override.
func (m Model) submitEditForm() (tea.Model, tea.Cmd) {
	id := m.editingID
	changed := func(idx int) bool {
		return strings.TrimSpace(m.formInputs[idx].Value()) != strings.TrimSpace(m.formBaseline[idx])
	}

	if changed(editFieldName) {
		if err := m.svc.UpdateActivityName(id, m.formInputs[editFieldName].Value()); err != nil {
			m.status = err.Error()
			return m, m.focusFormField(editFieldName)
		}
	}
	if changed(editFieldDuration) {
		duration, err := strconv.Atoi(strings.TrimSpace(m.formInputs[editFieldDuration].Value()))
		if err != nil {
			m.status = "duration must be a number of days"
			return m, m.focusFormField(editFieldDuration)
		}
		if err := m.svc.SetDuration(id, duration); err != nil {
			m.status = err.Error()
			return m, m.focusFormField(editFieldDuration)
		}
	}
	if changed(editFieldDependencies) {
		deps := domain.ParseDependencyRefs(m.formInputs[editFieldDependencies].Value(), m.project.Activities)
		if err := m.svc.SetDependencies(id, deps); err != nil {
			m.status = err.Error()
			return m, m.focusFormField(editFieldDependencies)
		}
	}
	if changed(editFieldAllowedDays) {
		days := domain.ParseWeekdays(m.formInputs[editFieldAllowedDays].Value())
		if err := m.svc.SetAllowedDays(id, days); err != nil {
			m.status = err.Error()
			return m, m.focusFormField(editFieldAllowedDays)
		}
	}
	if changed(editFieldStart) {
		date, err := domain.ParseInputDate(m.formInputs[editFieldStart].Value())
		if err != nil {
			m.status = "start date must be YYYY-MM-DD"
			return m, m.focusFormField(editFieldStart)
		}
		if err := m.svc.SetStartDate(id, date); err != nil {
			m.status = err.Error()
			return m, m.focusFormField(editFieldStart)
		}
	}
	if changed(editFieldEnd) {
		date, err := domain.ParseInputDate(m.formInputs[editFieldEnd].Value())
		if err != nil {
			m.status = "end date must be YYYY-MM-DD"
			return m, m.focusFormField(editFieldEnd)
		}
		if err := m.svc.SetEndDate(id, date); err != nil {
			m.status = err.Error()
			return m, m.focusFormField(editFieldEnd)
		}
	}

	m.mode = modeNone
	m.formInputs = nil
	m.editingID = ""
	m.refresh()
	m.status = "activity updated"
	return m, nil
}

func (m Model) submitProjectSettings() (tea.Model, tea.Cmd) {
	if m.formInputs[settingsFieldName].Value() != m.formBaseline[settingsFieldName] {
		if err := m.svc.RenameProject(m.formInputs[settingsFieldName].Value()); err != nil {
			m.status = err.Error()
			return m, m.focusFormField(settingsFieldName)
		}
	}
	if m.formInputs[settingsFieldStart].Value() != m.formBaseline[settingsFieldStart] {
		date, err := domain.ParseInputDate(m.formInputs[settingsFieldStart].Value())
		if err != nil {
			m.status = "start date must be YYYY-MM-DD"
			return m, m.focusFormField(settingsFieldStart)
		}
		m.svc.SetProjectStartDate(date)
	}

	m.mode = modeNone
	m.formInputs = nil
	m.refresh()
	m.status = "project updated"
	return m, nil
}

func (m Model) deleteActivity(id, name string) (tea.Model, tea.Cmd) {
	if err := m.svc.RemoveActivity(id); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.refresh()
	m.status = "deleted " + name
	return m, nil
}

func (m Model) applyPendingDelete() (tea.Model, tea.Cmd) {
	id := m.pendingDeleteID
	name := m.pendingDeleteName
	m.mode = modeNone
	m.pendingDeleteID = ""
	m.pendingDeleteName = ""
	return m.deleteActivity(id, name)
}

// View handles view.
func (m Model) View() tea.View {
	if !m.ready {
		v := tea.NewView("loading...")
		v.AltScreen = true
		return v
	}

	accent := accentColor
	muted := mutedColor
	dim := dimColor

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(dim)

	header := titleStyle.Render("tidplan") + "  " + m.project.Name
	if m.svc.Dirty() {
		header += statusStyle.Render("  [unsaved]")
	}
	if m.project.IncludeWeekends {
		header += statusStyle.Render("  weekends: included")
	} else {
		header += statusStyle.Render("  weekends: excluded")
	}
	header += statusStyle.Render("  starts: " + domain.FormatInputDate(m.project.StartDate))

	table := m.renderScheduleTable(accent, muted, dim)

	statusLine := statusStyle.Render(m.status)

	helpBubble := m.help
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))

	content := header + "\n\n" + table + "\n\n" + statusLine
	if m.height > 0 {
		helpHeight := lipgloss.Height(helpLine)
		content = fitLines(content, max(0, m.height-helpHeight))
	}
	fullContent := content + "\n" + helpLine

	if overlay := m.renderModeOverlay(accent, muted, dim); overlay != "" {
		overlayHeight := lipgloss.Height(fullContent)
		if m.height > 0 {
			overlayHeight = m.height
		}
		fullContent = overlayOnContent(fullContent, overlay, max(1, m.width), max(1, overlayHeight))
	}

	v := tea.NewView(fullContent)
	v.AltScreen = true
	return v
}

// scheduleColumn describes one rendered table column.
type scheduleColumn struct {
	title string
	width int
	value func(idx int, a domain.Activity) string
}

func (m Model) scheduleColumns() []scheduleColumn {
	formatDate := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		if m.tableColumns.ShowDisplayDates {
			return domain.FormatDisplayDate(*t)
		}
		return domain.FormatInputDate(*t)
	}
	dateWidth := 10
	if m.tableColumns.ShowDisplayDates {
		dateWidth = 17
	}

	cols := []scheduleColumn{
		{title: "#", width: 3, value: func(idx int, _ domain.Activity) string {
			return strconv.Itoa(idx + 1)
		}},
		{title: "Activity", width: 28, value: func(_ int, a domain.Activity) string {
			return a.Name
		}},
		{title: "Days", width: 5, value: func(_ int, a domain.Activity) string {
			return strconv.Itoa(a.Duration)
		}},
		{title: "Start", width: dateWidth, value: func(_ int, a domain.Activity) string {
			return formatDate(a.StartDate)
		}},
		{title: "End", width: dateWidth, value: func(_ int, a domain.Activity) string {
			return formatDate(a.EndDate)
		}},
	}
	if m.tableColumns.ShowDependencies {
		cols = append(cols, scheduleColumn{title: "After", width: 10, value: func(_ int, a domain.Activity) string {
			return domain.FormatDependencyRefs(a.DependsOn, m.project.Activities)
		}})
	}
	if m.tableColumns.ShowAllowedDays {
		cols = append(cols, scheduleColumn{title: "On", width: 14, value: func(_ int, a domain.Activity) string {
			return a.AllowedDays.Format()
		}})
	}
	return cols
}

func (m Model) renderScheduleTable(accent, muted, dim color.Color) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	rowStyle := lipgloss.NewStyle().Foreground(muted)
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	emptyStyle := lipgloss.NewStyle().Foreground(dim)

	cols := m.scheduleColumns()

	cells := make([]string, 0, len(cols))
	for _, col := range cols {
		cells = append(cells, padRight(col.title, col.width))
	}
	lines := []string{headerStyle.Render(strings.Join(cells, "  "))}

	if len(m.project.Activities) == 0 {
		lines = append(lines, emptyStyle.Render("(no activities yet, press a to add one)"))
		return strings.Join(lines, "\n")
	}

	for idx, activity := range m.project.Activities {
		cells = cells[:0]
		for _, col := range cols {
			cells = append(cells, padRight(truncate(col.value(idx, activity), col.width), col.width))
		}
		line := strings.Join(cells, "  ")
		if idx == m.selected {
			lines = append(lines, selectedStyle.Render("> "+line))
		} else {
			lines = append(lines, rowStyle.Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderModeOverlay(accent, muted, dim color.Color) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle := lipgloss.NewStyle().Foreground(dim)

	switch m.mode {
	case modeAddActivity, modeEditActivity, modeProjectSettings:
		title := "Add activity"
		switch m.mode {
		case modeEditActivity:
			title = "Edit activity"
		case modeProjectSettings:
			title = "Project settings"
		}
		lines := []string{titleStyle.Render(title), ""}
		for i := range m.formInputs {
			marker := "  "
			if i == m.formFocus {
				marker = "> "
			}
			lines = append(lines, marker+m.formInputs[i].View())
		}
		lines = append(lines, "", hintStyle.Render("enter next/submit • tab move • esc cancel"))
		return boxStyle.Render(strings.Join(lines, "\n"))

	case modeConfirmDelete:
		yes := "[ yes ]"
		no := "[ no ]"
		choiceStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
		if m.confirmChoice == 0 {
			yes = choiceStyle.Render(yes)
		} else {
			no = choiceStyle.Render(no)
		}
		lines := []string{
			titleStyle.Render("Delete activity"),
			"",
			fmt.Sprintf("Delete %q?", m.pendingDeleteName),
			"Activities that depend on it lose the reference.",
			"",
			yes + "  " + no,
			"",
			hintStyle.Render("y/n choose • enter confirm • esc cancel"),
		}
		return boxStyle.Render(strings.Join(lines, "\n"))

	case modeHelp:
		md := m.md
		body := md.render(helpMarkdown, min(max(40, m.width-12), 76))
		return boxStyle.Render(body + "\n\n" + hintStyle.Render("esc close"))

	default:
		return ""
	}
}

// clamp keeps v inside [minV, maxV].
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// max returns the larger of the provided values.
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// min returns the smaller of the provided values.
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// padRight pads s with spaces to the given display width.
func padRight(s string, width int) string {
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// fitLines fits lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent overlays on content.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centeredOverlay := lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay,
	)
	overlayLayer := lipgloss.NewLayer(centeredOverlay).X(0).Y(0).Z(10)

	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}

// truncate truncates the requested operation.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max <= 1 {
		return string(rs[:max])
	}
	return string(rs[:max-1]) + "…"
}
