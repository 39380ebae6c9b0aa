package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/diag"
	"github.com/san-kum/rigidsim/internal/input"
	"github.com/san-kum/rigidsim/internal/metrics"
	"github.com/san-kum/rigidsim/internal/sim"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model runs a world inside a Bubble Tea session at a fixed tick rate.
type Model struct {
	world    *sim.World
	cfg      *config.Config
	sink     diag.Sink
	bindings input.Bindings
	held     map[input.Key]bool

	camera  *Camera
	canvas  *Canvas
	energy  *metrics.KineticEnergy
	history []float64
	last    sim.FrameStats

	lastTick time.Time
	running  bool
	showHelp bool
}

func NewModel(cfg *config.Config, sink diag.Sink) (*Model, error) {
	w, err := sim.New(cfg, sink)
	if err != nil {
		return nil, err
	}
	m := &Model{
		world:    w,
		cfg:      cfg,
		sink:     sink,
		bindings: input.DefaultBindings(),
		held:     make(map[input.Key]bool),
		camera:   NewCamera(),
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		energy:   metrics.NewKineticEnergy(),
		history:  make([]float64, 0, historyCapacity),
		lastTick: time.Now(),
		running:  true,
	}
	w.AddMetric(m.energy)
	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the world.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.world.Stop()
			m.world.Close()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "p", "t":
			m.toggle(input.Key(msg.String()[0]))
		case "left":
			m.camera.RotateY(-0.1)
		case "right":
			m.camera.RotateY(0.1)
		case "up":
			m.camera.RotateX(0.1)
		case "down":
			m.camera.RotateX(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		now := time.Time(msg)
		elapsed := now.Sub(m.lastTick).Seconds()
		m.lastTick = now
		if m.running {
			m.last = m.world.Step(elapsed)
			m.history = append(m.history, m.energy.Value())
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
		return m, tick()
	}
	return m, nil
}

// toggle flips a press-and-hold binding on terminals that only deliver
// discrete key presses.
func (m *Model) toggle(k input.Key) {
	action := input.Press
	if m.held[k] {
		action = input.Release
	}
	if input.Apply(input.Event{Key: k, Action: action}, m.bindings, m.world.Forces(), m.world.Torques()) {
		m.held[k] = !m.held[k]
	}
}

func (m *Model) reset() {
	old := m.world
	w, err := sim.New(m.cfg, m.sink)
	if err != nil {
		m.sink.Logf("reset failed: %v", err)
		return
	}
	old.Close()
	m.world = w
	m.energy.Reset()
	w.AddMetric(m.energy)
	m.history = m.history[:0]
	m.held = make(map[input.Key]bool)
	m.last = sim.FrameStats{}
}

func (m *Model) View() string {
	m.canvas.Clear()
	RenderWorld(m.canvas, m.camera, m.world)

	var s strings.Builder
	s.WriteString(headerStyle.Render("RIGIDSIM") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	s.WriteString(canvasStyle.Render(m.canvas.String()) + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(40), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", m.world.Frame())) + "\n")
	s.WriteString(labelStyle.Render("Sim time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.world.Time())) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d particles, %d boxes", len(m.world.Particles()), len(m.world.Boxes()))) + "\n")
	s.WriteString(labelStyle.Render("Contacts") + valueStyle.Render(fmt.Sprintf("%d particle, %d box", m.last.ParticleContacts, m.last.BoxContacts)) + "\n")
	conv := "yes"
	if !m.last.Converged {
		conv = fmt.Sprintf("capped at %d", m.last.Iterations)
	}
	s.WriteString(labelStyle.Render("Converged") + valueStyle.Render(conv) + "\n")

	held := make([]string, 0, 2)
	for k, on := range m.held {
		if on {
			held = append(held, string(rune(k)))
		}
	}
	if len(held) > 0 {
		s.WriteString(labelStyle.Render("Held") + valueStyle.Render(strings.Join(held, " ")) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render("space pause | r reset | p force | t torque | arrows rotate | +/- zoom | q quit"))
	} else {
		s.WriteString(helpStyle.Render("? help | q quit"))
	}
	return s.String()
}

// Run starts the live view and blocks until the session ends.
func Run(cfg *config.Config, sink diag.Sink) error {
	m, err := NewModel(cfg, sink)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
