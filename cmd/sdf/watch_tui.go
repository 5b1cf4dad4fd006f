package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rjeczalik/notify"

	"github.com/apraga/scidataflow/internal/config"
	"github.com/apraga/scidataflow/internal/manifest"
	"github.com/apraga/scidataflow/internal/remote"
	"github.com/apraga/scidataflow/internal/scan"
	"github.com/apraga/scidataflow/internal/status"
	"github.com/apraga/scidataflow/internal/workspace"
)

// rescanDebounce coalesces bursts of filesystem events into one rescan.
const rescanDebounce = 400 * time.Millisecond

// Strings
const (
	txtScanning  = "Scanning..."
	txtWatchHelp = "Press 'r' to rescan. 'q' or 'Ctrl+C' to quit."
)

// Styles
var (
	watchTitleStyle  = cyan.Bold(true)
	watchHelpStyle   = gray
	watchErrorStyle  = red
	watchNoticeStyle = yellow
	watchMetaStyle   = gray
	spinnerStyle     = cyan
)

// --- Messages ---
type scanDoneMsg struct {
	report   string
	problems int
	err      error
}
type fsEventMsg struct{}
type rescanMsg struct{}

// watchModel holds the live report state
type watchModel struct {
	ctx     context.Context
	ws      *workspace.Workspace
	scanner *scan.Scanner
	remotes map[string]remote.Remote
	listing remote.Listing
	opts    status.RenderOptions
	workers int
	events  <-chan notify.EventInfo

	spinner spinner.Model

	report   string
	problems int
	lastScan time.Time

	isScanning   bool
	isDebouncing bool
	rescanQueued bool
	errorMessage string
}

func newWatchModel(ctx context.Context, ws *workspace.Workspace, scanner *scan.Scanner, mf *manifest.Manifest, listing remote.Listing, cfg *config.Config, events <-chan notify.EventInfo) watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return watchModel{
		ctx:     ctx,
		ws:      ws,
		scanner: scanner,
		remotes: mf.Remotes,
		listing: listing,
		opts: status.RenderOptions{
			Spacing: cfg.Spacing,
			Styled:  !cfg.NoColor,
		},
		workers:    cfg.Workers,
		events:     events,
		spinner:    s,
		isScanning: true, // Init kicks off the first scan
	}
}

// Init is the first command that is run when the program starts
func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startScan(), m.waitForEvent())
}

// Update handles messages and updates the model accordingly
func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			if !m.isScanning {
				m.isScanning = true
				return m, m.startScan()
			}
			m.rescanQueued = true
			return m, nil
		}

	case spinner.TickMsg:
		// Always update the spinner
		var spinnerCmd tea.Cmd
		m.spinner, spinnerCmd = m.spinner.Update(msg)
		cmds = append(cmds, spinnerCmd)

	case fsEventMsg:
		// Keep draining events; coalesce them into a delayed rescan
		cmds = append(cmds, m.waitForEvent())
		if !m.isDebouncing {
			m.isDebouncing = true
			cmds = append(cmds, tea.Tick(rescanDebounce, func(time.Time) tea.Msg {
				return rescanMsg{}
			}))
		}

	case rescanMsg:
		m.isDebouncing = false
		if m.isScanning {
			m.rescanQueued = true
		} else {
			m.isScanning = true
			cmds = append(cmds, m.startScan())
		}

	case scanDoneMsg:
		return m.handleScanDone(msg)
	}

	return m, tea.Batch(cmds...)
}

// handleScanDone installs the fresh report and runs any queued rescan
func (m watchModel) handleScanDone(msg scanDoneMsg) (tea.Model, tea.Cmd) {
	m.isScanning = false
	m.lastScan = time.Now()

	if msg.err != nil {
		m.errorMessage = msg.err.Error()
	} else {
		m.errorMessage = ""
		m.report = msg.report
		m.problems = msg.problems
	}

	if m.rescanQueued {
		m.rescanQueued = false
		m.isScanning = true
		return m, m.startScan()
	}
	return m, nil
}

// startScan runs one scan pass off the update loop
func (m watchModel) startScan() tea.Cmd {
	return func() tea.Msg {
		log := slog.With("scan_id", uuid.NewString()[:8])
		log.Debug("rescan start")

		res, err := m.scanner.Scan(m.ctx, scan.Options{
			Workers: m.workers,
			Listing: m.listing,
		})
		if err != nil {
			log.Error("rescan", "error", err)
			return scanDoneMsg{err: err}
		}

		var b strings.Builder
		status.PrintStatus(&b, res.Entries, m.remotes, m.opts)

		log.Debug("rescan done", "files", len(res.Entries), "problems", len(res.Problems))
		return scanDoneMsg{report: b.String(), problems: len(res.Problems)}
	}
}

// waitForEvent blocks on the watcher channel. Events under the metadata
// directory are skipped, otherwise the watch log would retrigger itself.
func (m watchModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		for ev := range m.events {
			if strings.HasPrefix(ev.Path(), m.ws.MetadataDir+string(filepath.Separator)) {
				continue
			}
			return fsEventMsg{}
		}
		return nil
	}
}

// View renders the report plus a one-line activity footer.
func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString(watchTitleStyle.Render("SciDataFlow watch"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s%s\n", gray.Render("Project  "), green.Render(m.ws.Root)))
	b.WriteString("\n")

	if m.report != "" {
		b.WriteString(m.report)
	}

	m.renderActivityView(&b)
	m.renderErrorView(&b)
	b.WriteString("\n")
	b.WriteString(watchHelpStyle.Render(txtWatchHelp))
	b.WriteString("\n")
	return b.String()
}

func (m watchModel) renderActivityView(b *strings.Builder) {
	if m.isScanning {
		b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), txtScanning))
		return
	}
	b.WriteString(watchMetaStyle.Render(fmt.Sprintf("Last scan %s.", humanize.Time(m.lastScan))))
	b.WriteString("\n")
	if m.problems > 0 {
		b.WriteString(watchNoticeStyle.Render(fmt.Sprintf("%d file(s) could not be read; see the watch log.", m.problems)))
		b.WriteString("\n")
	}
}

func (m watchModel) renderErrorView(b *strings.Builder) {
	if m.errorMessage != "" {
		b.WriteString(watchErrorStyle.Render("ERROR: " + m.errorMessage))
		b.WriteString("\n")
	}
}

// runWatchTUI is the main entry point of the live watch interface.
func runWatchTUI(ctx context.Context, ws *workspace.Workspace, mf *manifest.Manifest, listing remote.Listing, cfg *config.Config) error {
	watcher := scan.NewFileWatcher(ws.Root)
	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("file watcher: %w", err)
	}
	defer watcher.Stop()

	cache, err := scan.NewDigestCache()
	if err != nil {
		return err
	}
	scanner := scan.NewScanner(ws, mf, nil, cache)

	m := newWatchModel(ctx, ws, scanner, mf, listing, cfg, watcher.Events())
	model, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("watch TUI: %w", err)
	}

	if fm, ok := model.(watchModel); ok && fm.errorMessage != "" {
		return fmt.Errorf("watch interrupted: %s", fm.errorMessage)
	}
	return nil
}
