package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpOps runs the help pager over the live terminal
type HelpOps struct {
	program *tea.Program
}

// NewHelpOps creates help operations bound to the running program
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{program: program}
}

// ShowHelpInPager shows help content using ov
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay so ov has fully exited before the terminal comes back
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	reader := strings.NewReader(helpContent)

	root, err := oviewer.NewRoot(reader)
	if err != nil {
		return err
	}

	// Don't write pager contents on exit, it would mess with our screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// helpContent renders the key reference shown in the pager
func helpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("choosy Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Results"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s       %s\n", keyStyle.Render("↑/↓"), descStyle.Render("Move the highlight (↓ opens a closed widget)")))
	help.WriteString(fmt.Sprintf("  %s     %s\n", keyStyle.Render("enter"), descStyle.Render("Select the highlighted entry")))
	help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render("alt+enter"), descStyle.Render("Select and keep the results open")))
	help.WriteString(fmt.Sprintf("  %s       %s\n", keyStyle.Render("esc"), descStyle.Render("Close the results")))
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render("ctrl+o"), descStyle.Render("Toggle the results open/closed")))
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render("typing"), descStyle.Render("Filter the results")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Selection"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render("backspace"), descStyle.Render("Remove the newest choice (empty search, multi)")))
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render("ctrl+u"), descStyle.Render("Clear a single-select back to its placeholder")))
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render("ctrl+y"), descStyle.Render("Yank the selected values to the clipboard")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Widgets"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("ctrl+n/p"), descStyle.Render("Focus the next/previous widget")))
	help.WriteString(fmt.Sprintf("  %s       %s\n", keyStyle.Render("tab"), descStyle.Render("Commit (single mode) and move focus on")))
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render("ctrl+c"), descStyle.Render("Quit")))

	return help.String()
}
