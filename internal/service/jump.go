package service

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"deckview/internal/database/repository"
)

// Match is a card ranked against a jump query.
type Match struct {
	Index int // position in the card sequence
	Title string
	Score float64 // 0..1, higher is better
}

// MatchCards ranks cards by fuzzy title similarity to query,
// case-insensitive. Substring hits outrank pure edit-distance similarity
// so short queries behave like a filter. Ties keep deck order.
func MatchCards(query string, cards []repository.Card) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	out := make([]Match, 0, len(cards))
	for i, c := range cards {
		title := strings.ToLower(c.Title)
		score := similarity(q, title)
		if strings.Contains(title, q) {
			score = 0.5 + score/2
		}
		if score <= 0 {
			continue
		}
		out = append(out, Match{Index: i, Title: c.Title, Score: score})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out
}

// similarity is normalized levenshtein: 1 is an exact match, 0 shares
// nothing.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
