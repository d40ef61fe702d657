package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/datapeek/datapeek/pkg/excelfile"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SheetListModel - Interactive worksheet selection
// =============================================================================

// SheetListModel is the bubbletea model for interactive sheet selection.
type SheetListModel struct {
	Sheets   []excelfile.SheetInfo
	Cursor   int
	Selected *excelfile.SheetInfo
}

// NewSheetListModel creates a new sheet list model.
func NewSheetListModel(sheets []excelfile.SheetInfo) SheetListModel {
	return SheetListModel{Sheets: sheets}
}

func (m SheetListModel) Init() tea.Cmd {
	return nil
}

func (m SheetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Sheets)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Sheets[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m SheetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Sheet"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, sh := range m.Sheets {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		size := fmt.Sprintf("%d rows x %d cols", sh.Rows, sh.Cols)
		line := fmt.Sprintf("%s%-25s  %s", cursor, sh.Name, listDimStyle.Render(size))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pickSheet runs the interactive sheet picker and returns the chosen sheet
// name. An empty name means the user cancelled.
func pickSheet(sheets []excelfile.SheetInfo) (string, error) {
	m := NewSheetListModel(sheets)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	fm, ok := finalModel.(SheetListModel)
	if !ok || fm.Selected == nil {
		return "", nil
	}
	return fm.Selected.Name, nil
}
