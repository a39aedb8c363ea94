package plan

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"spiralplan/internal/geo"
	"spiralplan/internal/spiral"
)

var (
	tuiTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tuiStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	tuiErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	tuiHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tuiBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const tuiHelpText = "tab: next field | enter: rebuild plan | left/right: switch slice | o: run optimizer | q: quit"

// tuiModel is the interactive plan preview: parameter inputs on top, the
// selected slice's waypoints in a table, and a log viewport below.
type tuiModel struct {
	center geo.Coordinate
	params spiral.Params

	inputs   []textinput.Model
	focusIdx int
	table    table.Model
	vp       viewport.Model
	logs     []string

	slices   [][]spiral.Waypoint
	sliceIdx int

	width  int
	height int
	err    string
}

// paramInputs builds one textinput per spiral parameter.
func paramInputs(p spiral.Params) []textinput.Model {
	labels := []string{
		strconv.Itoa(p.Slices),
		strconv.Itoa(p.N),
		strconv.FormatFloat(p.R0, 'f', -1, 64),
		strconv.FormatFloat(p.RHold, 'f', -1, 64),
	}
	inputs := make([]textinput.Model, len(labels))
	for i, v := range labels {
		ti := textinput.New()
		ti.SetValue(v)
		ti.CharLimit = 10
		ti.Width = 8
		inputs[i] = ti
	}
	inputs[0].Focus()
	return inputs
}

// NewPlanTUI creates a bubbletea program previewing a spiral plan.
func NewPlanTUI(p spiral.Params, center geo.Coordinate) *tea.Program {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Phase", Width: 20},
		{Title: "X (ft)", Width: 10},
		{Title: "Y (ft)", Width: 10},
		{Title: "Curve (ft)", Width: 10},
		{Title: "Dist (ft)", Width: 10},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(12))

	m := tuiModel{
		center: center,
		params: p,
		inputs: paramInputs(p),
		table:  t,
		vp:     viewport.New(0, 0),
	}
	m.rebuild()
	return tea.NewProgram(m, tea.WithAltScreen())
}

// rebuild recomputes the waypoints from the current inputs.
func (m *tuiModel) rebuild() {
	p, err := m.readParams()
	if err != nil {
		m.err = err.Error()
		return
	}
	slices, err := spiral.BuildAll(p)
	if err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
	m.params = p
	m.slices = slices
	if m.sliceIdx >= len(slices) {
		m.sliceIdx = 0
	}
	m.refreshTable()

	est, err := EstimateFlightMinutes(p, m.center, estimateMinHeight)
	if err == nil {
		m.log(fmt.Sprintf("plan rebuilt: slices=%d n=%d r0=%.0f rHold=%.0f est=%.1f min/slice",
			p.Slices, p.N, p.R0, p.RHold, est))
	}
}

func (m *tuiModel) readParams() (spiral.Params, error) {
	slices, err := strconv.Atoi(strings.TrimSpace(m.inputs[0].Value()))
	if err != nil {
		return spiral.Params{}, fmt.Errorf("slices: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(m.inputs[1].Value()))
	if err != nil {
		return spiral.Params{}, fmt.Errorf("N: %w", err)
	}
	r0, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[2].Value()), 64)
	if err != nil {
		return spiral.Params{}, fmt.Errorf("r0: %w", err)
	}
	rHold, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[3].Value()), 64)
	if err != nil {
		return spiral.Params{}, fmt.Errorf("rHold: %w", err)
	}
	p := spiral.Params{Slices: slices, N: n, R0: r0, RHold: rHold}
	return p, p.Validate()
}

func (m *tuiModel) refreshTable() {
	if len(m.slices) == 0 {
		return
	}
	wps := m.slices[m.sliceIdx]
	rows := make([]table.Row, len(wps))
	for i, wp := range wps {
		rows[i] = table.Row{
			strconv.Itoa(i),
			wp.Phase.String(),
			fmt.Sprintf("%.1f", wp.X),
			fmt.Sprintf("%.1f", wp.Y),
			fmt.Sprintf("%.1f", wp.Curve),
			fmt.Sprintf("%.1f", math.Hypot(wp.X, wp.Y)),
		}
	}
	m.table.SetRows(rows)
}

func (m *tuiModel) log(line string) {
	m.logs = append(m.logs, line)
	if len(m.logs) > 200 {
		m.logs = m.logs[len(m.logs)-200:]
	}
	m.vp.SetContent(strings.Join(m.logs, "\n"))
	m.vp.GotoBottom()
}

func (m tuiModel) Init() tea.Cmd { return textinput.Blink }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(3, msg.Height-m.table.Height()-8)
		m.vp.SetContent(strings.Join(m.logs, "\n"))
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.inputs[m.focusIdx].Blur()
			m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
			m.inputs[m.focusIdx].Focus()
		case "enter":
			m.rebuild()
		case "left":
			if len(m.slices) > 0 {
				m.sliceIdx = (m.sliceIdx + len(m.slices) - 1) % len(m.slices)
				m.refreshTable()
			}
		case "right":
			if len(m.slices) > 0 {
				m.sliceIdx = (m.sliceIdx + 1) % len(m.slices)
				m.refreshTable()
			}
		case "o":
			res, err := OptimizeForBattery(20, m.params.Slices, m.center)
			if err != nil {
				m.log(tuiErrorStyle.Render("optimize: " + err.Error()))
				break
			}
			m.log(fmt.Sprintf("optimizer (20 min): n=%d rHold=%.0f est=%.1f min util=%.1f%%",
				res.N, res.RHold, res.EstimatedTimeMinutes, res.BatteryUtilization))
		default:
			var cmd tea.Cmd
			m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
			return m, cmd
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	cmds = append(cmds, cmd)
	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(tuiTitleStyle.Render("spiralplan mission preview"))
	b.WriteString(fmt.Sprintf("  center=(%.5f, %.5f)\n", m.center.Lat, m.center.Lon))

	labels := []string{"slices", "N", "r0", "rHold"}
	fields := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		fields[i] = fmt.Sprintf("%s: %s", labels[i], in.View())
	}
	b.WriteString(tuiBoxStyle.Render(strings.Join(fields, "  ")))
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString(tuiErrorStyle.Render("invalid parameters: " + m.err))
		b.WriteString("\n")
	} else if len(m.slices) > 0 {
		b.WriteString(tuiStatusStyle.Render(fmt.Sprintf("slice %d/%d, %d waypoints",
			m.sliceIdx+1, len(m.slices), len(m.slices[m.sliceIdx]))))
		b.WriteString("\n")
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")

	help := tuiHelpText
	if m.width > 0 {
		help = wordwrap.String(help, m.width)
	}
	b.WriteString(tuiHelpStyle.Render(help))

	return b.String()
}
