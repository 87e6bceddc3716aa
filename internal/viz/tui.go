package viz

import (
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/basinsim/internal/basin"
)

// ErrInterrupted is returned by RunProgress when the user pressed ctrl+c.
var ErrInterrupted = errors.New("viz: interrupted")

type tickMsg time.Time

type doneMsg struct{}

// ProgressModel is a Bubble Tea model that polls a basin.Progress.
type ProgressModel struct {
	title       string
	progress    *basin.Progress
	start       time.Time
	done        <-chan struct{}
	interval    time.Duration
	finished    bool
	interrupted bool
}

func NewProgressModel(title string, p *basin.Progress, start time.Time, done <-chan struct{}) ProgressModel {
	return ProgressModel{
		title:    title,
		progress: p,
		start:    start,
		done:     done,
		interval: time.Second / 4,
	}
}

func (m ProgressModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m ProgressModel) wait() tea.Cmd {
	return func() tea.Msg {
		<-m.done
		return doneMsg{}
	}
}

func (m ProgressModel) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.wait())
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			return m, tea.Quit
		}
	case tickMsg:
		if m.finished {
			return m, nil
		}
		return m, m.tick()
	case doneMsg:
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() string {
	frac := m.progress.Fraction()
	if m.finished {
		frac = 1
	}
	return fmt.Sprintf("%s\n%s %s\n%s\n",
		Title.Render(m.title),
		ProgressBar(frac, 40),
		MetricValue.Render(StatusLine(m.progress, time.Since(m.start))),
		Subtle.Render(fmt.Sprintf("%d / %d samples", m.progress.Done(), m.progress.Total())),
	)
}

// RunProgress shows the progress view on out until done is closed.
func RunProgress(out io.Writer, title string, p *basin.Progress, start time.Time, done <-chan struct{}) error {
	final, err := tea.NewProgram(NewProgressModel(title, p, start, done), tea.WithOutput(out)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(ProgressModel); ok && m.interrupted {
		return ErrInterrupted
	}
	return nil
}
