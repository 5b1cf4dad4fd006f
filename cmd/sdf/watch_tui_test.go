package main

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apraga/scidataflow/internal/workspace"
)

func newTestWatchModel() watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return watchModel{
		ws: &workspace.Workspace{
			Root:        "/proj",
			MetadataDir: "/proj/.scidataflow",
		},
		spinner: s,
	}
}

func TestWatchModelScanDone(t *testing.T) {
	m := newTestWatchModel()
	m.isScanning = true

	next, cmd := m.Update(scanDoneMsg{report: "[data]\n sample row\n", problems: 2})
	wm := next.(watchModel)

	assert.Nil(t, cmd)
	assert.False(t, wm.isScanning)
	assert.Equal(t, "[data]\n sample row\n", wm.report)
	assert.Equal(t, 2, wm.problems)
	assert.Empty(t, wm.errorMessage)

	view := wm.View()
	assert.Contains(t, view, "[data]")
	assert.Contains(t, view, "Last scan")
	assert.Contains(t, view, "2 file(s) could not be read")
	assert.Contains(t, view, txtWatchHelp)
}

func TestWatchModelScanDoneError(t *testing.T) {
	m := newTestWatchModel()
	m.isScanning = true
	m.report = "[data]\n old row\n"

	next, _ := m.Update(scanDoneMsg{err: errors.New("walk error: boom")})
	wm := next.(watchModel)

	assert.False(t, wm.isScanning)
	assert.Equal(t, "[data]\n old row\n", wm.report)
	assert.Contains(t, wm.View(), "ERROR: walk error: boom")
}

func TestWatchModelQueuedRescan(t *testing.T) {
	m := newTestWatchModel()
	m.isScanning = true

	next, cmd := m.Update(rescanMsg{})
	wm := next.(watchModel)
	assert.Nil(t, cmd)
	require.True(t, wm.rescanQueued)

	next, cmd = wm.Update(scanDoneMsg{report: "fresh\n"})
	wm = next.(watchModel)
	assert.True(t, wm.isScanning)
	assert.False(t, wm.rescanQueued)
	assert.NotNil(t, cmd)
}

func TestWatchModelDebounce(t *testing.T) {
	m := newTestWatchModel()

	next, cmd := m.Update(fsEventMsg{})
	wm := next.(watchModel)
	assert.True(t, wm.isDebouncing)
	assert.NotNil(t, cmd)

	next, _ = wm.Update(rescanMsg{})
	wm = next.(watchModel)
	assert.False(t, wm.isDebouncing)
	assert.True(t, wm.isScanning)
}

func TestWatchModelKeys(t *testing.T) {
	m := newTestWatchModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	wm := next.(watchModel)
	assert.True(t, wm.isScanning)
	assert.NotNil(t, cmd)

	next, _ = wm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	wm = next.(watchModel)
	assert.True(t, wm.rescanQueued)
}
