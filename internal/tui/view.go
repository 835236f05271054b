package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/libsys/ils-importer/internal/api"
	"github.com/libsys/ils-importer/internal/form"
	"github.com/libsys/ils-importer/internal/nav"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	errorBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1).
			MarginTop(1)

	modalStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quit {
		return ""
	}

	switch m.history.Current() {
	case nav.Form:
		return m.formView()
	case nav.TaskList:
		return m.listView()
	default:
		return m.detailView()
	}
}

func (m Model) formView() string {
	if m.picking {
		var b strings.Builder
		b.WriteString(titleStyle.Render("SELECT METADATA FILE (.xml)"))
		b.WriteString("\n")
		b.WriteString(m.picker.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑↓ navigate  enter select  esc cancel"))
		return b.String()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("IMPORT METADATA"))
	b.WriteString("\n")

	b.WriteString(m.renderField(focusProvider, "Provider", m.providerLabel(), m.state.Flags.ProviderMissing))
	b.WriteString(m.renderField(focusMode, "Mode", m.modeLabel(), m.state.Flags.ModeMissing))
	b.WriteString(m.renderField(focusFile, "File", m.fileLabel(), m.state.Flags.FileMissing))
	b.WriteString(m.renderField(focusIgnoreRules, "Ignore missing rules", checkbox(m.state.Draft.IgnoreMissingRules), false))
	b.WriteString("\n")

	b.WriteString(m.renderButton(focusPreview, "Preview"))
	b.WriteString("  ")
	b.WriteString(m.renderButton(focusSubmit, commitLabel(m.state.Draft.Mode)))
	b.WriteString("\n")

	if m.state.InFlight {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" Submitting...")
		b.WriteString("\n")
	}

	b.WriteString(m.errorSurface())

	if m.state.Gate == form.GateOpen {
		b.WriteString("\n")
		b.WriteString(modalStyle.Render(
			"Delete the records described by this file?\n" +
				"This cannot be undone.\n\n" +
				"[y] confirm    [n] cancel"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(helpStyle.Render("tab/↑↓ move  ←→ change  enter activate  p preview  t tasks  q quit"))
	return b.String()
}

// errorSurface renders the captured submission error, or nothing when
// there is none.
func (m Model) errorSurface() string {
	if m.state.Outcome == nil || m.state.Outcome.Err == nil {
		return ""
	}
	return errorBoxStyle.Render("Submission failed: "+api.ErrorMessage(m.state.Outcome.Err)) + "\n"
}

func (m Model) renderField(focus int, label, value string, missing bool) string {
	cursor := "  "
	style := labelStyle
	if m.focus == focus {
		cursor = "> "
		style = focusedStyle
	}

	line := fmt.Sprintf("%s%s: %s", cursor, style.Render(label), value)
	if missing {
		line += "  " + missingStyle.Render("required")
	}
	return line + "\n"
}

func (m Model) renderButton(focus int, label string) string {
	if m.focus == focus {
		return focusedStyle.Render("[ " + label + " ]")
	}
	return labelStyle.Render("[ " + label + " ]")
}

func (m Model) providerLabel() string {
	if m.providerIdx < 0 || m.providerIdx >= len(m.providers) {
		return dimStyle.Render("(choose with ←→)")
	}
	return m.providers[m.providerIdx].Label
}

func (m Model) modeLabel() string {
	return m.modes[m.modeIdx].Label
}

func (m Model) fileLabel() string {
	if m.state.Draft.FilePath == "" {
		return dimStyle.Render("(press enter to pick an .xml file)")
	}
	return filepath.Base(m.state.Draft.FilePath)
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func commitLabel(mode form.Mode) string {
	if mode == form.ModeDelete {
		return "Delete"
	}
	return "Import"
}

func (m Model) detailView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("TASK DETAIL"))
	b.WriteString("\n")

	switch {
	case m.detailErr != nil:
		b.WriteString(errorBoxStyle.Render(api.ErrorMessage(m.detailErr)))
		b.WriteString("\n")
	case m.detail == nil || m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading task...\n")
	default:
		t := m.detail
		b.WriteString(fmt.Sprintf("  ID: %s\n", t.ID))
		b.WriteString(fmt.Sprintf("  Provider: %s\n", t.Provider))
		b.WriteString(fmt.Sprintf("  Mode: %s\n", t.Mode))
		b.WriteString(fmt.Sprintf("  Status: %s\n", statusLabel(t.Status)))
		if t.OriginalFilename != "" {
			b.WriteString(fmt.Sprintf("  File: %s\n", t.OriginalFilename))
		}
		if t.EntriesCount > 0 {
			b.WriteString(fmt.Sprintf("  Entries: %d (created %d, updated %d, deleted %d, errors %d)\n",
				t.EntriesCount, t.CreatedCount, t.UpdatedCount, t.DeletedCount, t.ErrorCount))
		}
		if t.ErrorMessage != "" {
			b.WriteString("  " + missingStyle.Render("Error: "+t.ErrorMessage) + "\n")
		}
	}

	b.WriteString(helpStyle.Render("r refresh  esc back  q quit"))
	return b.String()
}

func (m Model) listView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("IMPORT TASKS"))
	b.WriteString("\n")

	switch {
	case m.tasksErr != nil:
		b.WriteString(errorBoxStyle.Render(api.ErrorMessage(m.tasksErr)))
		b.WriteString("\n")
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading tasks...\n")
	case len(m.tasks) == 0:
		b.WriteString(dimStyle.Render("  No tasks yet\n"))
	default:
		for i, t := range m.tasks {
			cursor := "  "
			if i == m.taskCursor {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%-10s %-12s %-16s %s\n",
				cursor, t.ID, t.Mode, t.Provider, statusLabel(t.Status)))
		}
	}

	b.WriteString(helpStyle.Render("↑↓ navigate  enter open  r refresh  esc back  q quit"))
	return b.String()
}

func statusLabel(status string) string {
	switch status {
	case "SUCCEEDED":
		return successStyle.Render(status)
	case "FAILED":
		return missingStyle.Render(status)
	default:
		return status
	}
}
