package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/trendspot/pkg/rank"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCommunityListModelNavigation(t *testing.T) {
	m := NewCommunityListModel([][]int{{1, 2, 3}, {4, 5}, {6}}, rank.Set{1: true})

	next, _ := m.Update(keyMsg("j"))
	m = next.(CommunityListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(CommunityListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d after up, want 0", m.Cursor)
	}

	// Cursor stays in bounds.
	next, _ = m.Update(keyMsg("k"))
	m = next.(CommunityListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, should not go negative", m.Cursor)
	}
}

func TestCommunityListModelExpand(t *testing.T) {
	m := NewCommunityListModel([][]int{{1, 2, 3}}, rank.Set{1: true})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(CommunityListModel)
	if !m.Expanded {
		t.Fatal("enter should expand the highlighted community")
	}

	view := m.View()
	if !strings.Contains(view, "Community #1") {
		t.Errorf("member view should show community title:\n%s", view)
	}
	if !strings.Contains(view, "trend setter") {
		t.Errorf("member view should mark trend setters:\n%s", view)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(CommunityListModel)
	if m.Expanded {
		t.Error("esc should collapse back to the list")
	}
}

func TestCommunityListModelQuit(t *testing.T) {
	m := NewCommunityListModel([][]int{{1}}, nil)

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
}

func TestCommunityListModelView(t *testing.T) {
	m := NewCommunityListModel([][]int{{1, 2}, {3, 4, 5}}, rank.Set{3: true})

	view := m.View()
	if !strings.Contains(view, "Communities") {
		t.Errorf("list view should have a title:\n%s", view)
	}
	if !strings.Contains(view, "[1/2]") {
		t.Errorf("list view should show position:\n%s", view)
	}
}

func TestPreviewMembers(t *testing.T) {
	got := previewMembers([]int{1, 2, 3, 4, 5}, 3)
	if got != "1 2 3 …" {
		t.Errorf("previewMembers = %q", got)
	}

	got = previewMembers([]int{1, 2}, 3)
	if got != "1 2" {
		t.Errorf("previewMembers = %q", got)
	}
}
