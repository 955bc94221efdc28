package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"deckview/internal/database/repository"
	"deckview/internal/deck"
)

const (
	// cardCols is the nominal card width in cells; scale hints shrink it.
	cardCols = 36
	// cardRows is the card content height, border excluded.
	cardRows = 9
	// stripGap separates cards in the wide flat strip.
	stripGap = 2
	// stackTop leaves headroom above the deck so stacked cards can sit
	// higher than the active one without clipping.
	stackTop = 1
)

// cellsOf converts a horizontal pixel hint into cells.
func cellsOf(px float64, cellWidthPx int) int {
	return int(math.Round(px / float64(cellWidthPx)))
}

// rowsOf converts a vertical pixel hint into rows. A cell is roughly twice
// as tall as it is wide.
func rowsOf(px float64, cellWidthPx int) int {
	return int(math.Round(px / float64(2*cellWidthPx)))
}

// renderCard draws one bordered card at the given width. Opacity picks the
// brightness ramp; the active card additionally gets the focus border.
func renderCard(card repository.Card, width int, opacity float64, active bool, body string) string {
	if width < 8 {
		width = 8
	}
	inner := width - 2 // border frame

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(opacityBorder(opacity, active)).
		Foreground(opacityText(opacity)).
		Width(inner).
		Height(cardRows)

	title := lipgloss.NewStyle().Bold(active).Foreground(opacityText(opacity)).
		Render(truncate(card.Title, inner))
	if body == "" {
		body = cardBodyPlain(card.Body, inner)
	}
	return box.Render(title + "\n\n" + body)
}

// cardBodyPlain fits raw markdown into a card without glamour: stacked
// cards are dimmed, and glamour's own colors would fight the ramp.
func cardBodyPlain(body string, width int) string {
	lines := splitLines(body)
	if len(lines) > cardRows-2 {
		lines = lines[:cardRows-2]
	}
	for i, line := range lines {
		lines[i] = truncate(line, width)
	}
	return strings.Join(lines, "\n")
}

// renderStack composites the narrow-mode deck: cards painted back to front
// by z, each offset and shrunk per its hint. activeBody, when non-empty,
// is the pre-rendered (glamour) body for the active card.
func renderStack(cards []repository.Card, hints []deck.Hint, active int, activeBody string, width, height, cellWidthPx int) string {
	if len(cards) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			statusBarStyle.Render("deck is empty — press i to import cards"))
	}

	// Back to front: ascending z, deeper index first among equals (cards
	// past the depth cap share a hint).
	order := make([]int, 0, len(cards))
	for i := range cards {
		if hints[i].Hidden || hints[i].Opacity <= 0 {
			continue
		}
		order = append(order, i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		if hints[order[a]].Z != hints[order[b]].Z {
			return hints[order[a]].Z < hints[order[b]].Z
		}
		return order[a] > order[b]
	})

	canvas := emptyCanvas(width, height)
	baseX := (width - cardCols) / 2
	if baseX < 0 {
		baseX = 0
	}
	for _, i := range order {
		h := hints[i]
		w := int(math.Round(h.Scale * cardCols))
		x := baseX + cellsOf(h.OffsetX, cellWidthPx)
		y := stackTop + rowsOf(h.OffsetY, cellWidthPx)
		body := ""
		if i == active {
			body = activeBody
		}
		card := renderCard(cards[i], w, h.Opacity, i == active, body)
		canvas = compositeAt(canvas, card, x, y, width, height)
	}
	return canvas
}

// renderStrip draws the wide-mode flat layout: every card at full
// strength, windowed by a card-snapped scroll offset. No hints apply here;
// this is the native-flow presentation.
func renderStrip(cards []repository.Card, scroll, width int) string {
	if len(cards) == 0 {
		return lipgloss.Place(width, cardRows+2, lipgloss.Center, lipgloss.Center,
			statusBarStyle.Render("deck is empty — press i to import cards"))
	}
	boxes := make([]string, 0, len(cards)*2)
	gap := strings.Repeat(" ", stripGap)
	for i, c := range cards {
		if i > 0 {
			boxes = append(boxes, gap)
		}
		boxes = append(boxes, renderCard(c, cardCols, 1, false, ""))
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	return windowLeft(strip, scroll*(cardCols+stripGap), width)
}

// stripMaxScroll is the last scroll position that still reveals new
// content.
func stripMaxScroll(n, width int) int {
	if n == 0 {
		return 0
	}
	visible := (width + stripGap) / (cardCols + stripGap)
	if visible < 1 {
		visible = 1
	}
	m := n - visible
	if m < 0 {
		m = 0
	}
	return m
}

// positionLine reports where the reader is, e.g. "card 3/7".
func positionLine(active, n int) string {
	if n == 0 {
		return "no cards"
	}
	return fmt.Sprintf("card %d/%d", active+1, n)
}

func emptyCanvas(width, height int) string {
	row := strings.Repeat(" ", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}
