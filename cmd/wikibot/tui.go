package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/wikibot/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal UI.

Controls:
  Enter          - Ask the question
  ctrl+←/→, +/-  - Fewer / more documents (1-8)
  Esc, /         - Leave / return to the question input
  Tab, Space     - Select / expand a document
  ↑/k, ↓/j       - Scroll
  q, ctrl+c      - Quit

Log lines are written to logging.file (default wikibot.log).`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	model := tui.New(a.qa, tui.Options{
		DefaultQuery: a.cfg.UI.DefaultQuery,
		DefaultTop:   a.cfg.UI.DefaultTop,
		Categories:   a.cfg.UI.Categories,
		Checklist:    a.cfg.UI.Checklist,
	}).WithContext(cmd.Context())

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
