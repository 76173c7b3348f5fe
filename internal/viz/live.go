package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/springlab/internal/forcing"
	"github.com/san-kum/springlab/internal/oscillator"
)

const (
	springLane      = 64
	historyCapacity = 600
	stepsPerFrame   = 4
)

type TickMsg time.Time

// Model is the bubbletea live view: a spring animator over one system,
// stepped at a fixed dt per tick regardless of frame timing, so the
// trajectory stays deterministic while the display free-runs.
type Model struct {
	sys     *oscillator.System
	dt      float64
	running bool

	history   []float64
	amplitude float64

	paramKeys []string
	selected  int
	forcings  []string
	forcingIx int

	showHelp bool
}

func NewModel(sys *oscillator.System, dt float64) Model {
	name := "none"
	forcings := forcing.Names()
	ix := 0
	if n, _ := sys.Forcing(); n != "" {
		name = n
	}
	for i, f := range forcings {
		if f == name {
			ix = i
		}
	}

	return Model{
		sys:       sys,
		dt:        dt,
		running:   true,
		history:   make([]float64, 0, historyCapacity),
		amplitude: math.Max(math.Abs(sys.State().Position), 1),
		paramKeys: []string{"mass", "damping", "springConstant"},
		forcings:  forcings,
		forcingIx: ix,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.sys.Reset()
			m.history = m.history[:0]
		case "tab":
			m.selected = (m.selected + 1) % len(m.paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "f":
			m.forcingIx = (m.forcingIx + 1) % len(m.forcings)
			m.sys.SetForcing(m.forcings[m.forcingIx], nil)
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, nil

	case TickMsg:
		if m.running {
			s := m.sys.State()
			for i := 0; i < stepsPerFrame; i++ {
				s = m.sys.Step(m.dt)
			}
			m.history = append(m.history, s.Position)
			if len(m.history) > historyCapacity {
				m.history = m.history[len(m.history)-historyCapacity:]
			}
			m.amplitude = math.Max(m.amplitude, math.Abs(s.Position))
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}

	return m, nil
}

func (m *Model) adjustParam(factor float64) {
	key := m.paramKeys[m.selected]
	p := m.sys.Parameters()

	var value float64
	switch key {
	case "mass":
		value = p.Mass
	case "damping":
		value = p.Damping
	case "springConstant":
		value = p.SpringConstant
	}
	if value == 0 && factor > 1 {
		value = 0.01
	} else {
		value *= factor
	}
	m.sys.SetParameters(map[string]float64{key: value})
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("springlab"))
	b.WriteByte('\n')

	b.WriteString(springStyle.Render(m.drawSpring()))
	b.WriteString("\n\n")

	s := m.sys.State()
	props := m.sys.Properties()
	name, _ := m.sys.Forcing()

	b.WriteString(row("time", fmt.Sprintf("%.2f s", s.Time)))
	b.WriteString(row("position", fmt.Sprintf("%+.4f m", s.Position)))
	b.WriteString(row("velocity", fmt.Sprintf("%+.4f m/s", s.Velocity)))
	b.WriteString(row("energy", fmt.Sprintf("%.4f J", m.sys.Energy())))
	b.WriteString(row("forcing", name))
	b.WriteString(row("regime", string(props.Regime)))
	b.WriteString(row("zeta", fmt.Sprintf("%.3f", props.Zeta)))
	b.WriteByte('\n')

	p := m.sys.Parameters()
	for i, key := range m.paramKeys {
		var value float64
		switch key {
		case "mass":
			value = p.Mass
		case "damping":
			value = p.Damping
		case "springConstant":
			value = p.SpringConstant
		}
		line := fmt.Sprintf("%-15s %.3f", key, value)
		if i == m.selected {
			b.WriteString(activeStyle.Render("> " + line))
		} else {
			b.WriteString(valueStyle.Render("  " + line))
		}
		b.WriteByte('\n')
	}

	if len(m.history) > 1 {
		b.WriteString(graphStyle.Render(TimeSeries(m.history, "position")))
		b.WriteByte('\n')
	}

	if m.showHelp {
		b.WriteString(helpStyle.Render("space pause · r reset · tab select param · j/k adjust · f cycle forcing · q quit"))
	} else {
		b.WriteString(helpStyle.Render("? help · q quit"))
	}
	b.WriteByte('\n')

	return b.String()
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// drawSpring renders a wall, a coil stretched to the mass position,
// and the mass itself on a single lane.
func (m Model) drawSpring() string {
	rest := springLane / 2
	span := float64(springLane/2 - 6)

	offset := 0.0
	if m.amplitude > 0 {
		offset = m.sys.State().Position / m.amplitude
	}
	massCol := rest + int(offset*span)
	if massCol < 3 {
		massCol = 3
	}
	if massCol > springLane-2 {
		massCol = springLane - 2
	}

	lane := make([]rune, springLane)
	for i := range lane {
		lane[i] = ' '
	}
	lane[0] = '|'

	for i := 1; i < massCol; i++ {
		if i%2 == 0 {
			lane[i] = '\\'
		} else {
			lane[i] = '/'
		}
	}
	lane[massCol] = '█'

	return string(lane)
}
