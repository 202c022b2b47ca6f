package main

import (
	"fmt"
	"strings"

	"video-poker-service/internal/game/cards"
	"video-poker-service/internal/game/strategy"
	"video-poker-service/internal/game/variant"

	"github.com/pterm/pterm"
)

// colorCard renders red suits in red and jokers in magenta.
func colorCard(c cards.Card) string {
	if c.IsWild() {
		return pterm.LightMagenta(c.String())
	}
	switch c.Suit {
	case cards.Hearts, cards.Diamonds:
		return pterm.LightRed(c.String())
	}
	return pterm.White(c.String())
}

func colorHand(h cards.Hand, m strategy.HoldMask) string {
	parts := make([]string, 0, cards.HandSize)
	for i, c := range h {
		s := colorCard(c)
		if !m.Holds(i) {
			s = pterm.FgDarkGray.Sprint(c.String())
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "  ")
}

func handBox(v *variant.Variant, h cards.Hand, cat variant.Category, pay int) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	body := pterm.Sprintfln("%s", colorHand(h, strategy.HoldAll)) +
		pterm.Sprintf("%s  pays %d", pterm.LightCyan(cat.String()), pay)
	return pbox.WithTitle(pterm.LightYellow("|" + v.Name + "|")).WithTitleTopCenter().Sprint(body)
}

func outcomeRows(h cards.Hand, outcomes []strategy.Outcome) [][]string {
	rows := [][]string{{"#", "Hold", "Cards", "EV", "Draws", "Hands"}}
	for i, o := range outcomes {
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			o.Pattern,
			colorHand(h, o.Mask),
			fmt.Sprintf("%.6f", o.EV),
			fmt.Sprint(o.Draws),
			fmt.Sprint(o.Hands),
		})
	}
	return rows
}

func variantRows() [][]string {
	rows := [][]string{{"ID", "Name", "Wild", "Jokers", "Categories"}}
	for _, v := range variant.All() {
		rows = append(rows, []string{
			v.ID,
			v.Name,
			v.Wild.String(),
			fmt.Sprint(v.JokerCount),
			fmt.Sprint(len(v.Paytable)),
		})
	}
	return rows
}
