package viz

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/greyspace/internal/config"
	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/level"
	"github.com/san-kum/greyspace/internal/space"
)

func newModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(level.Preset("drift"), config.DefaultConfig(), space.DefaultOptions())
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFireOnTick(t *testing.T) {
	m := newModel(t)
	m = send(m, key(" "))
	if len(m.Space().Particles) != 0 {
		t.Fatal("firing must wait for the next tick")
	}

	m = send(m, TickMsg(time.Now()))
	if got := len(m.Space().Particles); got != 1 {
		t.Fatalf("expected 1 particle, got %d", got)
	}
	if m.Space().Ship.ParticleCount != 4 {
		t.Errorf("expected 4 units left, got %d", m.Space().Ship.ParticleCount)
	}

	m = send(m, TickMsg(time.Now()))
	if got := len(m.Space().Particles); got != 1 {
		t.Errorf("expected a single shot, got %d particles", got)
	}
}

func TestAim(t *testing.T) {
	m := newModel(t)
	m = send(m, key("l"))
	m = send(m, key("l"))
	if math.Abs(m.Angle()-2*aimStep) > 1e-12 {
		t.Errorf("expected angle %f, got %f", 2*aimStep, m.Angle())
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	if math.Abs(m.Angle()-aimStep) > 1e-12 {
		t.Errorf("expected angle %f, got %f", aimStep, m.Angle())
	}
}

func TestPauseAndReset(t *testing.T) {
	m := newModel(t)
	m = send(m, key("p"))
	m = send(m, TickMsg(time.Now()))
	if m.Space().Frame() != 0 {
		t.Errorf("paused model advanced to frame %d", m.Space().Frame())
	}

	m = send(m, key("p"))
	m = send(m, TickMsg(time.Now()))
	old := m.Space()
	m = send(m, key("r"))
	if m.Space() == old || m.Space().Frame() != 0 {
		t.Error("reset should rebuild the level")
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestView(t *testing.T) {
	m := newModel(t)
	out := m.View()
	if !strings.Contains(out, "DRIFT") {
		t.Error("expected level name in view")
	}
	if !strings.Contains(out, "Fuel") {
		t.Error("expected fuel readout")
	}
}

func TestRasterShades(t *testing.T) {
	s, err := space.New(10, 10, 1, space.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	for x := range 10 {
		for y := range 10 {
			s.Field.SetPotential(x, y, float64(x)/9)
		}
	}

	r := NewRaster(10, 10)
	r.Sample(s)
	lo, hi := r.Range()
	if lo >= hi {
		t.Fatalf("expected a spread of values, got %f..%f", lo, hi)
	}
	if r.Shade(0, 5) == r.Shade(9, 5) {
		t.Error("expected dark and light ends to differ")
	}

	col, row := r.ScreenPoint(s, dynamo.V(9.5, 0.5))
	if col != 9 || row != 0 {
		t.Errorf("expected (9, 0), got (%d, %d)", col, row)
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(5, 3)
	c.DrawLine(0, 0, 4, 0, '-', "")
	if got := strings.Split(c.String(), "\n")[0]; got != "-----" {
		t.Errorf("expected a full row, got %q", got)
	}
	c.Set(10, 10, 'x', "")
	c.Clear()
	if strings.TrimSpace(c.String()) != "" {
		t.Error("expected empty canvas after clear")
	}
}
