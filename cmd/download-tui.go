package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rlsinstaller/rls-installer/internals/downloadmgr"
)

type progressMsg downloadmgr.ProgressEvent

type downloadDoneMsg struct {
	res *downloadmgr.Result
	err error
}

type downloadModel struct {
	req        downloadmgr.Request
	width      int
	spinner    spinner.Model
	progress   progress.Model
	downloaded uint64
	total      uint64
	done       bool
	canceled   bool
	res        *downloadmgr.Result
	err        error
}

var (
	modNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	sizeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
)

func newDownloadModel(req downloadmgr.Request) downloadModel {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
	)
	s := spinner.New()
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	return downloadModel{req: req, spinner: s, progress: p}
}

func (m downloadModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.canceled = true
			return m, tea.Quit
		}
	case progressMsg:
		m.downloaded = msg.Downloaded
		if msg.Total != nil {
			m.total = *msg.Total
		}
		if msg.Progress != nil {
			return m, m.progress.SetPercent(float64(*msg.Progress) / 100)
		}
	case downloadDoneMsg:
		m.done = true
		m.res, m.err = msg.res, msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		newModel, cmd := m.progress.Update(msg)
		if newModel, ok := newModel.(progress.Model); ok {
			m.progress = newModel
		}
		return m, cmd
	}
	return m, nil
}

func (m downloadModel) View() string {
	if m.done {
		return ""
	}
	name := modNameStyle.Render(m.req.ModID)
	if m.total == 0 {
		// no Content-Length, so no percentage
		return m.spinner.View() + " " + name + " " + sizeStyle.Render(humanize.Bytes(m.downloaded)) + "\n"
	}
	size := sizeStyle.Render(fmt.Sprintf(" %s / %s", humanize.Bytes(m.downloaded), humanize.Bytes(m.total)))
	line := m.spinner.View() + " " + name + " " + m.progress.View() + size
	gap := strings.Repeat(" ", max(0, m.width-lipgloss.Width(line)))
	return line + gap + "\n"
}

// runDownloadTUI downloads req while showing a progress bar
func runDownloadTUI(ctx context.Context, d *downloadmgr.Downloader, req downloadmgr.Request) (*downloadmgr.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newDownloadModel(req))
	d.Progress = downloadmgr.ProgressFunc(func(e downloadmgr.ProgressEvent) error {
		p.Send(progressMsg(e))
		return nil
	})

	go func() {
		res, err := d.Download(ctx, req)
		p.Send(downloadDoneMsg{res, err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(downloadModel)
	if m.canceled {
		return nil, context.Canceled
	}
	return m.res, m.err
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
