package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyoez/statusboard/types"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestToggleKey(t *testing.T) {
	m := newModel("")
	if m.state.Visible() {
		t.Fatal("table should start hidden")
	}
	m = update(t, m, keyMsg("t"))
	if !m.state.Visible() {
		t.Error("t should show the table")
	}
	m = update(t, m, keyMsg("t"))
	if m.state.Visible() {
		t.Error("second t should hide the table")
	}
}

func TestLoadedMsgAppliesGrid(t *testing.T) {
	m := newModel("")
	genBefore := m.bars.Generation()
	m = update(t, m, loadedMsg{
		path: "/tmp/jobs.xlsx",
		grid: types.Grid{{"Job", "Status"}, {"a", "SUCCESS"}, {"b", "FAILED"}, {"c"}},
	})

	if !m.state.Loaded() {
		t.Fatal("grid was not applied")
	}
	if got := m.state.Counts(); got.Success != 1 || got.Failed != 2 {
		t.Errorf("unexpected counts %+v", got)
	}
	if m.state.FileName() != "jobs.xlsx" {
		t.Errorf("file name = %q", m.state.FileName())
	}
	if m.bars.Generation() == genBefore {
		t.Error("bars were not redrawn")
	}
	if !strings.Contains(m.View(), "Status Summary:") {
		t.Error("summary missing from view")
	}
}

func TestLoadedMsgErrorKeepsState(t *testing.T) {
	m := newModel("")
	m = update(t, m, loadedMsg{path: "x.xlsx", err: errors.New("boom")})
	if m.state.Loaded() {
		t.Error("failed load must not change state")
	}
	if !strings.Contains(m.View(), "boom") {
		t.Error("error not shown")
	}
}

func TestTableShownWithRaggedRows(t *testing.T) {
	m := newModel("")
	m = update(t, m, loadedMsg{
		path: "jobs.csv",
		grid: types.Grid{{"status"}, {"SUCCESS", "extra"}, {}},
	})
	m = update(t, m, keyMsg("t"))
	view := m.View()
	if !strings.Contains(view, "extra") {
		t.Errorf("table missing ragged cell:\n%s", view)
	}
}

func TestOpenPromptLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	if err := os.WriteFile(path, []byte("status\nSUCCESS\nSUCCESS\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := newModel("")
	m = update(t, m, keyMsg("o"))
	if !m.prompting {
		t.Fatal("o should open the prompt")
	}
	m.input.SetValue(path)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if m.prompting || cmd == nil {
		t.Fatal("enter should close the prompt and start loading")
	}
	m = update(t, m, cmd())
	if got := m.state.Counts(); got.Success != 2 || got.Failed != 0 {
		t.Errorf("unexpected counts %+v", got)
	}
}

func TestBarsSkipUnchangedCounts(t *testing.T) {
	b := &Bars{}
	if drawn, _ := b.Update(types.Counts{Success: 1}); !drawn {
		t.Fatal("first update should draw")
	}
	if drawn, _ := b.Update(types.Counts{Success: 1}); drawn {
		t.Error("unchanged counts should not redraw")
	}
	if !strings.Contains(b.View(), "SUCCESS") {
		t.Error("bars missing label")
	}
}
