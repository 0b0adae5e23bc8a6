package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/olivier-w/barscope/internal/analyzer"
	"github.com/olivier-w/barscope/internal/visualizer"
)

const (
	defaultFPS = 60
	// header, blank, meter, bands, blank, help
	chromeLines = 6
	statusTTL   = 4 * time.Second
)

// Source supplies one dB snapshot per channel for every frame.
type Source interface {
	Snapshots() [][]float64
}

// Model is the Bubbletea model for the barscope TUI.
type Model struct {
	engine   *analyzer.Engine
	source   Source
	renderer *visualizer.Renderer
	log      *log.Logger
	keys     keyMap
	help     help.Model
	fps      int

	width, height int
	cols, rows    int
	paused        bool
	quitting      bool

	frame      *analyzer.FrameResult
	canvas     string
	status     string
	statusTime time.Time
}

// New creates a model drawing frames of e fed by src at fps frames per
// second. A nil src draws silence.
func New(e *analyzer.Engine, src Source, fps int, logger *log.Logger) Model {
	if fps <= 0 {
		fps = defaultFPS
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return Model{
		engine:   e,
		source:   src,
		renderer: visualizer.NewRenderer(),
		log:      logger.WithPrefix("ui"),
		keys:     defaultKeyMap(),
		help:     help.New(),
		fps:      fps,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.fps), tea.SetWindowTitle("barscope"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(m.keys, msg) {
			m.quitting = true
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		return m.handleKey(msg)

	case tickMsg:
		if m.status != "" && time.Since(m.statusTime) > statusTTL {
			m.status = ""
		}
		if !m.paused {
			m.drawFrame(time.Time(msg))
		}
		return m, tickCmd(m.fps)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil
	}
	return m, nil
}

func (m *Model) drawFrame(now time.Time) {
	var snaps [][]float64
	if m.source != nil {
		snaps = m.source.Snapshots()
	}
	m.frame = m.engine.Frame(now, snaps)
	m.canvas = m.renderer.Render(m.frame, m.cols, m.rows)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusTime = time.Now()
}

// resize maps the terminal size onto the engine canvas.
func (m *Model) resize() {
	m.cols = max(1, m.width-4)
	m.rows = max(1, m.height-chromeLines)
	w, h := visualizer.CanvasSize(m.engine.Config().Geometry.Radial, m.cols, m.rows)
	if err := m.engine.SetCanvas(w, h); err != nil {
		m.log.Warn("canvas rejected", "width", w, "height", h, "err", err)
		m.setStatus(err.Error())
	}
}

// apply pushes a modified configuration into the engine and reports the
// first rejected value, if any.
func (m *Model) apply(cfg analyzer.Config) {
	radial := m.engine.Config().Geometry.Radial
	ws := m.engine.Apply(cfg)
	if len(ws) > 0 {
		m.setStatus(ws[0].Error())
	}
	if m.engine.Config().Geometry.Radial != radial && m.width > 0 {
		m.resize()
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	cfg := m.engine.Config()
	switch {
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if !m.paused {
			m.engine.Resume()
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Theme), key.Matches(msg, m.keys.PrevTheme):
		step := 1
		if key.Matches(msg, m.keys.PrevTheme) {
			step = -1
		}
		next := cycle(m.engine.Themes().Names(), cfg.Color.Theme(0), step)
		if err := m.engine.SetTheme(0, next); err != nil {
			m.setStatus(err.Error())
		}
		return m, nil
	case key.Matches(msg, m.keys.Mode):
		cfg.Spectrum.Mode = cycle(bandModes, cfg.Spectrum.Mode, 1)
	case key.Matches(msg, m.keys.Scale):
		cfg.Spectrum.Scale = cycle(scales, cfg.Spectrum.Scale, 1)
	case key.Matches(msg, m.keys.Layout):
		cfg.Geometry.Layout = cycle(layouts, cfg.Geometry.Layout, 1)
	case key.Matches(msg, m.keys.Radial):
		cfg.Geometry.Radial = !cfg.Geometry.Radial
	case key.Matches(msg, m.keys.Mirror):
		cfg.Geometry.Mirror = !cfg.Geometry.Mirror
	case key.Matches(msg, m.keys.Leds):
		cfg.Bars.Leds = !cfg.Bars.Leds
	case key.Matches(msg, m.keys.Peaks):
		cfg.Peaks.Show = !cfg.Peaks.Show
	case key.Matches(msg, m.keys.Color):
		cfg.Color.Mode = cycle(colorModes, cfg.Color.Mode, 1)
	case key.Matches(msg, m.keys.Weighting):
		cfg.Spectrum.Weighting = cycle(filters, cfg.Spectrum.Weighting, 1)
	default:
		return m, nil
	}
	m.apply(cfg)
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	header := headerStyle.Render("barscope") + "  " + infoStyle.Render(renderHeader(m.engine.Config()))
	b.WriteString("  " + header + "\n")

	canvas := m.canvas
	if canvas == "" {
		canvas = strings.Repeat("\n", max(0, m.rows-1))
	}
	for _, line := range strings.Split(canvas, "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")

	if m.frame != nil {
		meterWidth := max(10, m.cols-12)
		fps := statusStyle.Render(renderFPS(m.frame.FPS))
		b.WriteString("  " + m.renderer.Meter(m.frame.Energy.Value, m.frame.Energy.Peak, meterWidth) + "  " + fps + "\n")
		b.WriteString("  " + statusStyle.Render(renderBands(m.frame.Bands)) + "\n")
	} else {
		b.WriteString("\n\n")
	}

	switch {
	case m.status != "":
		b.WriteString("  " + warnStyle.Render(m.status) + "\n")
	case m.paused:
		b.WriteString("  " + statusStyle.Render("❚❚ paused") + "\n")
	default:
		b.WriteString("\n")
	}
	b.WriteString("  " + helpStyle.Render(m.help.View(m.keys)))

	view := b.String()
	if pad := m.height - lipgloss.Height(view); pad > 0 {
		view += strings.Repeat("\n", pad)
	}
	return view
}

// WithWarnings shows rejected configuration values in the status line.
func (m Model) WithWarnings(ws []analyzer.Warning) Model {
	if len(ws) == 0 {
		return m
	}
	errs := make([]error, len(ws))
	for i, w := range ws {
		errs[i] = w
	}
	msg := fmt.Sprintf("%d config value(s) rejected: %v", len(ws), errors.Join(errs...))
	m.setStatus(strings.ReplaceAll(msg, "\n", "; "))
	return m
}
