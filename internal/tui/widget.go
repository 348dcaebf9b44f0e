package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	padding      = 2
	maxBarWidth  = 72
	tickInterval = 50 * time.Millisecond
)

type tickMsg time.Time

type mode int

const (
	spin mode = iota
	bar
	text
)

// Widget renders the one-line export status: a spinner while totals
// are unknown, a bar while counting frames, plain text at the end.
type Widget struct {
	mode     mode
	title    string
	spinner  spinner.Model
	progress progress.Model
	percent  float64
}

func NewWidget() *Widget {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	return &Widget{
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

func (w *Widget) SetProgress(title string, percent float64) {
	w.mode = bar
	w.title = title
	if percent > 1 {
		percent = 1
	}
	w.percent = percent
}

func (w *Widget) SetSpinner(title string) {
	w.mode = spin
	w.title = title
}

func (w *Widget) SetText(title string) {
	w.mode = text
	w.title = title
}

func (w *Widget) Run() {
	if _, err := tea.NewProgram(w).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "tui error:", err)
		os.Exit(1)
	}
}

func (w *Widget) Init() tea.Cmd {
	return tea.Batch(tickCmd(), w.spinner.Tick)
}

func (w *Widget) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return w, tea.Quit

	case tea.WindowSizeMsg:
		w.progress.Width = msg.Width - padding*2 - 4
		if w.progress.Width > maxBarWidth {
			w.progress.Width = maxBarWidth
		}
		return w, nil

	// poll our own percent into the bar animation
	case tickMsg:
		return w, tea.Batch(tickCmd(), w.progress.SetPercent(w.percent))

	case spinner.TickMsg:
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(msg)
		return w, cmd

	case progress.FrameMsg:
		progressModel, cmd := w.progress.Update(msg)
		w.progress = progressModel.(progress.Model)
		return w, cmd

	default:
		return w, nil
	}
}

func (w *Widget) View() string {
	pad := strings.Repeat(" ", padding)

	switch w.mode {
	case spin:
		return fmt.Sprintf("\n\n%s%s %s\n\n", pad, w.spinner.View(), w.title)
	case bar:
		return "\n" +
			pad + w.title + "\n\n" +
			pad + w.progress.View() + "\n"
	default:
		return fmt.Sprintf("\n\n%s%s\n\n", pad, w.title)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
