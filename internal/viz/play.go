package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/greyspace/internal/config"
	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/level"
	"github.com/san-kum/greyspace/internal/space"
)

const (
	viewCols        = 80
	viewRows        = 32
	aimStep         = math.Pi / 16
	aimLength       = 4
	historyCapacity = 300
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the interactive play view over one level.
type Model struct {
	lvl  *level.Level
	cfg  *config.Config
	opts space.Options

	sp     *space.Space
	raster *Raster
	canvas *Canvas
	theme  int

	angle         float64
	pendingFire   bool
	running       bool
	err           error
	energyHistory []float64
}

// NewModel builds the level and prepares the view.
func NewModel(lvl *level.Level, cfg *config.Config, opts space.Options) (Model, error) {
	sp, err := level.Build(lvl, opts)
	if err != nil {
		return Model{}, err
	}
	return Model{
		lvl:           lvl,
		cfg:           cfg,
		opts:          opts,
		sp:            sp,
		raster:        NewRaster(viewCols, viewRows),
		canvas:        NewCanvas(viewCols, viewRows),
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}, nil
}

// Space exposes the running simulation.
func (m Model) Space() *space.Space { return m.sp }

func (m Model) Angle() float64 { return m.angle }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(max(m.cfg.FPS, 1)), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.angle = math.Remainder(m.angle-aimStep, 2*math.Pi)
		case "right", "l":
			m.angle = math.Remainder(m.angle+aimStep, 2*math.Pi)
		case " ":
			m.pendingFire = true
		case "p":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	fire := m.pendingFire
	m.pendingFire = false
	if _, err := m.sp.Update(m.cfg.Dt, m.cfg.SubSteps, fire, m.angle); err != nil {
		m.err = err
		return
	}
	if m.sp.Ship != nil {
		if len(m.energyHistory) == historyCapacity {
			m.energyHistory = append(m.energyHistory[:0], m.energyHistory[1:]...)
		}
		m.energyHistory = append(m.energyHistory, m.sp.Ship.Energy)
	}
}

func (m *Model) reset() {
	sp, err := level.Build(m.lvl, m.opts)
	if err != nil {
		m.err = err
		return
	}
	m.sp = sp
	m.err = nil
	m.pendingFire = false
	m.energyHistory = m.energyHistory[:0]
}

// draw paints the field and bodies onto the canvas. The field is resampled
// only when the space reports a potential change.
func (m Model) draw() {
	th := Themes[m.theme]
	if m.sp.ConsumePotentialUpdated() {
		m.raster.Sample(m.sp)
	}
	m.canvas.Clear()
	m.raster.Draw(m.canvas, th.Field)

	put := func(p dynamo.Vec2, r rune, ink lipgloss.Color) {
		col, row := m.raster.ScreenPoint(m.sp, p)
		m.canvas.Set(col, row, r, ink)
	}
	for _, pl := range m.sp.Planets {
		put(pl.Pos, 'O', th.Planet)
	}
	for _, fu := range m.sp.Fuels {
		put(fu.Pos, 'F', th.Fuel)
	}
	for _, b := range m.sp.Bombs {
		put(b.Pos, 'X', th.Bomb)
	}
	for _, e := range m.sp.Exits {
		put(e.Pos, 'E', th.Exit)
	}
	for _, p := range m.sp.Particles {
		put(p.Pos, '·', th.Particle)
	}
	if sh := m.sp.Ship; sh != nil {
		c0, r0 := m.raster.ScreenPoint(m.sp, sh.Pos)
		if !sh.Frozen {
			c1 := c0 + int(math.Round(aimLength*math.Cos(m.angle)))
			r1 := r0 + int(math.Round(aimLength*math.Sin(m.angle)/2))
			m.canvas.DrawLine(c0, r0, c1, r1, '∙', th.Aim)
		}
		m.canvas.Set(c0, r0, '▲', th.Ship)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	th := Themes[m.theme]
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render())

	var s strings.Builder
	name := m.lvl.Name
	if name == "" {
		name = "level"
	}
	s.WriteString(headerStyle.Render(strings.ToUpper(name)) + "\n")

	status := lipgloss.NewStyle().Foreground(th.Text).Render("RUNNING")
	switch {
	case m.err != nil:
		status = lipgloss.NewStyle().Foreground(th.Error).Render("ERROR: " + m.err.Error())
	case m.sp.IsLevelCompleted:
		status = lipgloss.NewStyle().Foreground(th.Success).Bold(true).Render("LEVEL COMPLETE")
	case m.sp.IsLevelLost:
		status = lipgloss.NewStyle().Foreground(th.Error).Bold(true).Render("SHIP LOST")
	case !m.running:
		status = lipgloss.NewStyle().Foreground(th.Muted).Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.sp.Frame()))
	row("Time", fmt.Sprintf("%.1f", m.sp.Time()))
	row("Aim", fmt.Sprintf("%.0f°", m.angle*180/math.Pi))
	if sh := m.sp.Ship; sh != nil {
		row("Fuel", fmt.Sprintf("%d", sh.ParticleCount))
		row("Speed", fmt.Sprintf("%.4f", sh.Vel.Len()))
		row("Energy", fmt.Sprintf("%.4f", sh.Energy))
		row("Potential", fmt.Sprintf("%.3f", m.sp.Potential(sh.Pos)))
	}
	row("Particles", fmt.Sprintf("%d", len(m.sp.Particles)))
	lo, hi := m.raster.Range()
	row("Field", fmt.Sprintf("%.2f..%.2f", lo, hi))
	row("Theme", th.Name)

	s.WriteString(helpStyle.Render("\n─────────────────────\n←→:Aim SP:Fire P:Pause\nR:Restart T:Theme Q:Quit"))
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run starts the play view in the alternate screen.
func Run(lvl *level.Level, cfg *config.Config, opts space.Options) error {
	m, err := NewModel(lvl, cfg, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
