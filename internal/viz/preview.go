package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lbmviz/internal/field"
	"github.com/san-kum/lbmviz/internal/render"
)

const (
	playInterval = time.Second / 10

	// rows reserved for the title, status, graph and key hints
	chromeRows = 14
)

// TickMsg advances playback by one frame. Gen ties it to the play
// session that scheduled it; ticks from an earlier session are dropped.
type TickMsg struct {
	Time time.Time
	Gen  int
}

func tick(gen int) tea.Cmd {
	return tea.Tick(playInterval, func(t time.Time) tea.Msg { return TickMsg{Time: t, Gen: gen} })
}

// Preview steps through the frames of a dataset in the terminal.
type Preview struct {
	ds            *field.Dataset
	cm            *render.Colormap
	vmax          float64
	frame         int
	playing       bool
	gen           int
	width, height int
	maxSeries     []float64
}

// NewPreview builds a preview over ds. vmax follows the same rule as the
// movie colour scale.
func NewPreview(ds *field.Dataset, cm *render.Colormap, vmax float64) (*Preview, error) {
	if ds.Len() == 0 {
		return nil, field.ErrNoFrames
	}
	if cm == nil {
		var err error
		if cm, err = render.ColormapByName("RdBu_r"); err != nil {
			return nil, err
		}
	}
	return &Preview{
		ds:        ds,
		cm:        cm,
		vmax:      render.ColorScale(vmax, ds),
		width:     80,
		height:    40,
		maxSeries: finite(ds.MaxSeries()),
	}, nil
}

// finite replaces NaN and infinite samples with zero so the graph keeps a
// usable range.
func finite(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out[i] = x
		}
	}
	return out
}

func (m *Preview) Frame() int { return m.frame }

func (m *Preview) Playing() bool { return m.playing }

func (m *Preview) Colormap() string { return m.cm.Name }

func (m *Preview) Init() tea.Cmd { return nil }

func (m *Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.step(-1)
		case "right", "l":
			m.step(1)
		case "home", "g":
			m.frame = 0
		case "end", "G":
			m.frame = m.ds.Len() - 1
		case " ":
			m.playing = !m.playing
			if m.playing {
				m.gen++
				return m, tick(m.gen)
			}
		case "c":
			m.cycleColormap()
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case TickMsg:
		if !m.playing || msg.Gen != m.gen {
			return m, nil
		}
		m.frame = (m.frame + 1) % m.ds.Len()
		return m, tick(m.gen)
	}
	return m, nil
}

func (m *Preview) step(d int) {
	m.frame += d
	if m.frame < 0 {
		m.frame = 0
	}
	if last := m.ds.Len() - 1; m.frame > last {
		m.frame = last
	}
}

func (m *Preview) cycleColormap() {
	names := render.ColormapNames()
	for i, n := range names {
		if n == m.cm.Name {
			if cm, err := render.ColormapByName(names[(i+1)%len(names)]); err == nil {
				m.cm = cm
			}
			return
		}
	}
}

func (m *Preview) View() string {
	var s strings.Builder
	s.WriteString(Title.Render("LBMVIZ") + Muted.Render("  velocity magnitude") + "\n\n")

	status := "PAUSED"
	if m.playing {
		status = "PLAYING"
	}
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(m.ds.Steps[m.frame]) + "\n")
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d/%d  %s", m.frame+1, m.ds.Len(), status)) + "\n")
	s.WriteString(labelStyle.Render("Scale") + valueStyle.Render(fmt.Sprintf("0..%.3g  %s", m.vmax, m.cm.Name)) + "\n\n")

	rows := m.height - chromeRows
	if rows < 4 {
		rows = 4
	}
	s.WriteString(HeatMap(m.ds.Magnitude[m.frame], m.cm, m.vmax, m.width-2, rows))

	if len(m.maxSeries) > 1 {
		chart := asciigraph.Plot(m.maxSeries,
			asciigraph.Height(4),
			asciigraph.Width(min(60, m.width-12)),
			asciigraph.Caption("max |u| per frame"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\n" + KeyHints("←/→", "step", "space", "play", "c", "colormap", "q", "quit") + "\n")
	return s.String()
}

// RunPreview runs the preview full screen until the user quits.
func RunPreview(ds *field.Dataset, cm *render.Colormap, vmax float64) error {
	m, err := NewPreview(ds, cm, vmax)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
