package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deckview/internal/deck"
)

func (a App) View() string {
	if !a.ready || a.width == 0 {
		return statusBarStyle.Render(a.statusOrDefault())
	}

	header := a.renderHeader()
	content := a.renderContent()
	statusLine := a.renderBar(statusBarStyle, a.statusOrDefault())
	footer := a.renderBar(footerStyle, a.helpText())

	base := header + "\n" + content
	view := a.placeWithFooter(base, statusLine, footer)
	switch a.modal {
	case modalJump:
		return a.composeModal(view, a.jumpModalView())
	case modalImport:
		return a.composeModal(view, a.importModalView())
	}
	return view
}

func (a App) statusOrDefault() string {
	if a.status != "" {
		return a.status
	}
	return "Loading deck..."
}

func (a App) renderHeader() string {
	name := a.deckLab
	if name == "" {
		name = "deckview"
	}
	left := titleStyle.Render(name)
	right := lipgloss.NewStyle().Foreground(colorSubtext0).
		Render(positionLine(a.ctrl.Active(), len(a.cards)))
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + left + strings.Repeat(" ", gap) + right
}

func (a App) renderContent() string {
	h := a.contentHeight()
	if a.expanded {
		return a.renderExpanded(h)
	}
	if a.ctrl.Mode() == deck.ModeDeck {
		return renderStack(a.cards, a.ctrl.Hints(), a.ctrl.Active(), a.activeBody(), a.width, h, a.cfg.UI.CellWidthPx)
	}
	strip := renderStrip(a.cards, a.scroll, a.width)
	return lipgloss.Place(a.width, h, lipgloss.Left, lipgloss.Center, strip)
}

// activeBody renders the active card's markdown through glamour, falling
// back to the raw text if the renderer is unavailable or unhappy.
func (a App) activeBody() string {
	if len(a.cards) == 0 {
		return ""
	}
	card := a.cards[a.ctrl.Active()]
	if a.cardRenderer == nil {
		return ""
	}
	out, err := a.cardRenderer.Render(card.Body)
	if err != nil {
		return ""
	}
	return cardBodyPlain(strings.TrimRight(strings.Trim(out, "\n"), " "), cardCols-2)
}

func (a App) renderExpanded(height int) string {
	if len(a.cards) == 0 {
		return lipgloss.Place(a.width, height, lipgloss.Center, lipgloss.Center,
			statusBarStyle.Render("deck is empty — press i to import cards"))
	}
	card := a.cards[a.ctrl.Active()]
	width := min(a.width-4, 100)
	body := card.Body
	if a.wideRenderer != nil {
		if out, err := a.wideRenderer.Render(card.Body); err == nil {
			body = strings.Trim(out, "\n")
		}
	}
	content := titleStyle.Render(card.Title) + "\n\n" + body
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorFocus).
		Padding(0, 2).
		Width(width).
		Render(content)
	return lipgloss.Place(a.width, height, lipgloss.Center, lipgloss.Center, box)
}

func (a App) contentHeight() int {
	h := a.height - 3 // header, status, footer
	if h < 5 {
		h = 5
	}
	return h
}

func (a App) placeWithFooter(body, statusLine, footer string) string {
	contentHeight := a.height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}
	if lipgloss.Height(body) >= contentHeight {
		return body + "\n" + statusLine + "\n" + footer
	}
	main := lipgloss.Place(a.width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	return main + "\n" + statusLine + "\n" + footer
}

func (a App) composeModal(base, modal string) string {
	framed := modalStyle.Render(modal)
	lines := splitLines(framed)
	modalWidth := maxLineWidth(lines)
	modalHeight := len(lines)

	x := (a.width - modalWidth) / 2
	if x < 0 {
		x = 0
	}
	y := (a.height - 2 - modalHeight) / 2
	if y < 0 {
		y = 0
	}
	return compositeAt(base, framed, x, y, a.width, a.height)
}

func (a App) jumpModalView() string {
	width := min(48, a.width-8)
	var b strings.Builder
	b.WriteString(titleStyle.Render("Jump to card"))
	b.WriteString("\n")
	b.WriteString(padRight("> "+a.jumpQuery+"▌", width))
	b.WriteString("\n")
	if a.jumpQuery == "" {
		b.WriteString(lipgloss.NewStyle().Foreground(colorOverlay0).Render(padRight("type a card title", width)))
		return b.String()
	}
	if len(a.matches) == 0 {
		b.WriteString(errorStyle.Render(padRight("no matches", width)))
		return b.String()
	}
	shown := a.matches
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for i, m := range shown {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(colorSubtext0)
		if i == 0 {
			prefix = "> "
			style = lipgloss.NewStyle().Foreground(colorText).Bold(true)
		}
		line := fmt.Sprintf("%s%s", prefix, truncate(m.Title, width-6))
		b.WriteString(style.Render(padRight(line, width-6)))
		b.WriteString(lipgloss.NewStyle().Foreground(colorOverlay1).Render(fmt.Sprintf(" %3.0f%%", m.Score*100)))
		if i < len(shown)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a App) importModalView() string {
	if !a.listReady {
		return "Scanning for markdown files..."
	}
	if len(a.fileList.Items()) == 0 {
		return "No .md files in " + a.basePath
	}
	return a.fileList.View()
}

func (a App) helpText() string {
	bindings := a.keys.browseHelp()
	if a.modal != modalNone {
		bindings = a.keys.modalHelp()
	}
	return renderHelp(bindings)
}

func (a App) renderBar(style lipgloss.Style, text string) string {
	flat := strings.ReplaceAll(text, "\n", " ")
	return style.Render(padRight(flat, a.width-style.GetHorizontalFrameSize()))
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, boldKey(help.Key)+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}

func boldKey(text string) string {
	if text == "" {
		return ""
	}
	return "\x1b[1m" + text + "\x1b[22m"
}

// ---------------------------------------------------------------------------
// Import file list
// ---------------------------------------------------------------------------

type fileItem struct {
	name string
}

func (f fileItem) Title() string       { return f.name }
func (f fileItem) Description() string { return "" }
func (f fileItem) FilterValue() string { return f.name }

type fileItemDelegate struct{}

func (d fileItemDelegate) Height() int                             { return 1 }
func (d fileItemDelegate) Spacing() int                            { return 0 }
func (d fileItemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d fileItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(fileItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = "> "
	}
	fmt.Fprint(w, padRight(prefix+entry.name, m.Width()))
}
