package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kailas-cloud/wikibot/internal/domain"
	"github.com/kailas-cloud/wikibot/internal/domain/reference"
)

// View renders the full screen.
func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.opts.Title))
	b.WriteString(mutedStyle.Render("  ·  ask a question about the guidebook"))
	b.WriteString("\n")

	if m.notReady != nil {
		b.WriteString(bannerStyle.Width(max(20, m.width-4)).Render(m.bannerText()))
		b.WriteString("\n")
	}

	b.WriteString(inputBoxStyle.Width(max(20, m.width-4)).Render(m.input.View()))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Top-K: %s  %s\n",
		selectStyle.Render(fmt.Sprintf("%d", m.top)),
		mutedStyle.Render("(ctrl+←/→ or +/-)"))

	results := resultBoxStyle.Render(m.viewport.View())
	side := sideBoxStyle.Render(m.renderSide())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, results, side))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) bannerText() string {
	var ce *domain.ConfigurationError
	if m.notConfigured() && errors.As(m.notReady, &ce) && len(ce.Missing) > 0 {
		return "Not configured. Set: " + strings.Join(ce.Missing, ", ")
	}
	return m.notReady.Error()
}

func (m Model) statusLine() string {
	switch {
	case m.busy:
		return m.spinner.View() + " Searching and generating an answer..."
	case m.input.Focused():
		return mutedStyle.Render("enter: ask · esc: results · ctrl+c: quit")
	default:
		return mutedStyle.Render("enter: ask again · /: edit · tab: next doc · space: expand · ↑/↓: scroll · q: quit")
	}
}

func (m Model) renderSide() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Categories"))
	b.WriteString("\n")
	for _, c := range m.opts.Categories {
		b.WriteString("• " + c + "\n")
	}
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("New-hire checklist"))
	b.WriteString("\n")
	for _, c := range m.opts.Checklist {
		b.WriteString("☐ " + c + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderBody renders the scrollable result area.
func (m Model) renderBody() string {
	width := max(20, m.viewport.Width)
	wrap := lipgloss.NewStyle().Width(width)

	if m.result == nil && m.err == nil {
		return mutedStyle.Render("Press Enter to ask the question above.")
	}

	var b strings.Builder
	if m.err != nil {
		b.WriteString(errorStyle.Render(wrap.Render("Error: " + m.err.Error())))
		b.WriteString("\n\n")
	}
	if m.result == nil {
		return b.String()
	}
	res := m.result

	if res.Answer.Text != "" {
		b.WriteString(sectionStyle.Render("Answer"))
		b.WriteString("\n")
		b.WriteString(wrap.Render(res.Answer.Text))
		b.WriteString("\n\n")
	}

	if res.Notice != "" {
		b.WriteString(noticeStyle.Render(res.Notice))
		b.WriteString("\n\n")
	} else if len(res.Documents) > 0 {
		b.WriteString(okStyle.Render(fmt.Sprintf("%d documents found", len(res.Documents))))
		b.WriteString("\n\n")
	}

	if len(res.References) > 0 {
		b.WriteString(sectionStyle.Render("References"))
		b.WriteString("\n")
		for _, r := range res.References {
			b.WriteString(wrap.Render(r.String()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(res.Details) > 0 {
		b.WriteString(sectionStyle.Render("Details"))
		b.WriteString("\n")
		for i, d := range res.Details {
			b.WriteString(m.renderDetail(i, d, wrap))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderDetail(i int, d reference.Detail, wrap lipgloss.Style) string {
	marker := "▸"
	if m.expanded[i] {
		marker = "▾"
	}
	title := marker + " " + d.Title()
	if i == m.selected {
		title = selectStyle.Render(title)
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	if !m.expanded[i] {
		return b.String()
	}

	if len(d.Highlights) > 0 {
		for _, h := range d.Highlights {
			b.WriteString(wrap.Render("  " + h.Field + ": " + renderMarks(h.Text)))
			b.WriteString("\n")
		}
	} else if d.Snippet != "" {
		b.WriteString(wrap.Render("  " + d.Snippet))
		b.WriteString("\n")
	}
	if d.Path != "" {
		b.WriteString(mutedStyle.Render(wrap.Render("  Open original: " + d.Path)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// renderMarks replaces <mark>…</mark> spans with styled text.
func renderMarks(s string) string {
	const open, closing = "<mark>", "</mark>"
	var b strings.Builder
	for {
		i := strings.Index(s, open)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		s = s[i+len(open):]
		j := strings.Index(s, closing)
		if j < 0 {
			b.WriteString(markStyle.Render(s))
			return b.String()
		}
		b.WriteString(markStyle.Render(s[:j]))
		s = s[j+len(closing):]
	}
}
