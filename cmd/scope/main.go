// Command scope is a terminal waveform visualizer: a reference consumer of
// the engine's master waveform queue, driven here by a synthetic demo
// graph (a looping tone through a FakeBackend) rather than project files.
// It is not part of the core module.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/dtracker-go/engine/internal/audiobackend"
	"github.com/dtracker-go/engine/internal/engine"
	"github.com/dtracker-go/engine/internal/pool"
	"github.com/dtracker-go/engine/internal/render"
	"github.com/dtracker-go/engine/internal/transport"
)

const waveformQueueCapacity = 16

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	waitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

func main() {
	bufferPool := pool.NewBufferPool(waveformQueueCapacity, 1024)
	waveform := transport.NewQueue(waveformQueueCapacity)

	eng := engine.New(audiobackend.NewFakeBackend(), bufferPool, waveform, 120)
	if err := eng.SetOutputDevice(0); err != nil {
		fmt.Fprintln(os.Stderr, "scope:", err)
		os.Exit(1)
	}
	eng.Mixer.Add(render.NewToneSource(220, 44100))

	if err := eng.Start(44100, 1024); err != nil {
		fmt.Fprintln(os.Stderr, "scope:", err)
		os.Exit(1)
	}
	defer eng.Close()

	p := tea.NewProgram(newScopeModel(waveform))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "scope:", err)
		os.Exit(1)
	}
}

type tickMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

type scopeModel struct {
	queue    *transport.Queue
	latest   []float32
	width    int
	height   int
	color    colorful.Color
	occupied progress.Model
}

func newScopeModel(queue *transport.Queue) *scopeModel {
	c, _ := colorful.Hex("#33CCFF")
	occupied := progress.New(progress.WithDefaultGradient())
	occupied.Width = 40
	return &scopeModel{queue: queue, width: 80, height: 20, color: c, occupied: occupied}
}

func (m *scopeModel) Init() tea.Cmd {
	return tick()
}

func (m *scopeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height-1
		m.occupied.Width = m.width/2 - 10
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		occupancy := float64(m.queue.Len()) / float64(m.queue.Capacity())
		cmd := m.occupied.SetPercent(occupancy)
		m.drainQueue()
		return m, tea.Batch(cmd, tick())
	}
	return m, nil
}

// drainQueue pops every buffer currently queued, copying the samples of
// the most recent one for display and releasing every buffer to the pool.
func (m *scopeModel) drainQueue() {
	for {
		handle, ok := m.queue.TryPop()
		if !ok {
			return
		}
		m.latest = append(m.latest[:0], handle.Value().Samples...)
		handle.Release()
	}
}

func (m *scopeModel) View() string {
	header := titleStyle.Render("scope") + "  " + m.occupied.View()

	if len(m.latest) == 0 {
		return header + "\n" + waitStyle.Render("waiting for audio...") + "\n" + footerStyle.Render("(q to quit)")
	}

	mono := make([]float32, len(m.latest)/2)
	for i := range mono {
		mono[i] = (m.latest[i*2] + m.latest[i*2+1]) / 2
	}

	width, height := m.width/2, m.height/4
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	profile := termenv.ColorProfile()
	art := renderBraille(width, height, mono)
	styled := termenv.String(art).Foreground(profile.Color(m.color.Hex())).String()

	return header + "\n" + styled + "\n" + footerStyle.Render("(q to quit)")
}
