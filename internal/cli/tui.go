package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/trendspot/pkg/rank"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// CommunityListModel - Interactive community browsing
// =============================================================================

// CommunityListModel is the bubbletea model for browsing communities.
// The list view shows one row per community; pressing enter expands the
// member list of the highlighted community.
type CommunityListModel struct {
	Communities [][]int
	Setters     rank.Set
	Cursor      int
	Expanded    bool
	Height      int
	Offset      int
}

// NewCommunityListModel creates a new community list model.
func NewCommunityListModel(communities [][]int, setters rank.Set) CommunityListModel {
	return CommunityListModel{
		Communities: communities,
		Setters:     setters,
		Height:      15,
	}
}

func (m CommunityListModel) Init() tea.Cmd {
	return nil
}

func (m CommunityListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Expanded {
				m.Expanded = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if !m.Expanded && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.Expanded && m.Cursor < len(m.Communities)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Communities) > 0 {
				m.Expanded = !m.Expanded
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m CommunityListModel) View() string {
	if m.Expanded {
		return m.memberView()
	}
	return m.listView()
}

func (m CommunityListModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Communities"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ members  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Communities) {
		end = len(m.Communities)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		members := m.Communities[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", len(members)),
			fmt.Sprintf("%d", setterCount(members, m.Setters)),
			previewMembers(members, 8),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Community", "Members", "Setters", "Accounts").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Communities))))

	return b.String()
}

func (m CommunityListModel) memberView() string {
	var b strings.Builder

	members := m.Communities[m.Cursor]
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Community #%d", m.Cursor+1)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	for _, id := range members {
		if m.Setters.Contains(id) {
			b.WriteString("  " + styleSetter.Render(fmt.Sprintf("%d %s trend setter", id, iconSetter)))
		} else {
			b.WriteString("  " + StyleValue.Render(fmt.Sprintf("%d", id)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d members, %d trend setters",
		len(members), setterCount(members, m.Setters))))

	return b.String()
}

// previewMembers renders the first few member IDs of a community.
func previewMembers(members []int, max int) string {
	ids := make([]string, 0, max+1)
	for i, id := range members {
		if i == max {
			ids = append(ids, "…")
			break
		}
		ids = append(ids, fmt.Sprintf("%d", id))
	}
	return strings.Join(ids, " ")
}
