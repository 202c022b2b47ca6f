// Package cards holds the card, hand and deck value types shared by the
// video poker and showdown engines.
package cards

import (
	"fmt"
	"strings"

	appErr "video-poker-service/pkg/errors"
)

type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists the four suits in deck order.
var Suits = [4]Suit{Hearts, Diamonds, Clubs, Spades}

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	}
	return "?"
}

// Rank doubles as the card's comparison value: Two=2 ... Ace=14.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// WildValue is the display/compare value of a joker. It never takes part in
// classification.
const WildValue = 15

// Ranks lists the thirteen ranks in ascending order.
var Ranks = [13]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	if r >= Two && r <= Ten {
		return fmt.Sprintf("%d", r)
	}
	return "?"
}

// Name is the plural rank name used in hand descriptions ("Aces", "Sixes").
func (r Rank) Name() string {
	names := [...]string{"", "", "Twos", "Threes", "Fours", "Fives", "Sixes", "Sevens",
		"Eights", "Nines", "Tens", "Jacks", "Queens", "Kings", "Aces"}
	if int(r) < len(names) && r >= Two {
		return names[r]
	}
	return "?"
}

// Card is either a face card (Rank, Suit) or a joker. Joker carries the joker
// identity (1 or 2) for display only; logically every joker is the same wild
// value. A card with a non-zero Joker never carries a meaningful rank or suit.
type Card struct {
	Rank  Rank
	Suit  Suit
	Joker uint8
}

// New returns the face card for rank and suit.
func New(rank Rank, suit Suit) (Card, error) {
	if rank < Two || rank > Ace || suit > Spades {
		return Card{}, fmt.Errorf("%w: rank %d suit %d", appErr.ErrInvalidCard, rank, suit)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// NewJoker returns joker number id (1 or 2).
func NewJoker(id uint8) (Card, error) {
	if id != 1 && id != 2 {
		return Card{}, fmt.Errorf("%w: joker id %d", appErr.ErrInvalidCard, id)
	}
	return Card{Joker: id}, nil
}

// IsWild reports whether the card is a joker.
func (c Card) IsWild() bool {
	return c.Joker != 0
}

// Value returns A=14 down to 2=2, or WildValue for a joker.
func (c Card) Value() int {
	if c.IsWild() {
		return WildValue
	}
	return int(c.Rank)
}

// Index maps each distinct card to 0..53 (face cards 0..51, jokers 52 and 53).
func (c Card) Index() int {
	if c.IsWild() {
		return 51 + int(c.Joker)
	}
	return int(c.Rank-Two)*4 + int(c.Suit)
}

func (c Card) valid() bool {
	if c.IsWild() {
		return c.Joker <= 2 && c.Rank == 0 && c.Suit == 0
	}
	return c.Rank >= Two && c.Rank <= Ace && c.Suit <= Spades
}

func (c Card) String() string {
	if c.IsWild() {
		return "Joker"
	}
	return c.Rank.String() + c.Suit.String()
}

func (c Card) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("%w: %+v", appErr.ErrInvalidCard, c)
	}
	if c.IsWild() {
		return []byte(fmt.Sprintf("JK%d", c.Joker)), nil
	}
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var suitAliases = map[string]Suit{
	"♥": Hearts, "h": Hearts, "♡": Hearts,
	"♦": Diamonds, "d": Diamonds, "♢": Diamonds,
	"♣": Clubs, "c": Clubs, "♧": Clubs,
	"♠": Spades, "s": Spades, "♤": Spades,
}

var rankAliases = map[string]Rank{
	"2": Two, "3": Three, "4": Four, "5": Five, "6": Six, "7": Seven, "8": Eight, "9": Nine,
	"10": Ten, "t": Ten, "j": Jack, "q": Queen, "k": King, "a": Ace, "1": Ace,
}

// Parse reads a single card: "A♥", "Ah", "10h", "Th", "JK", "JK2" or "Joker".
func Parse(s string) (Card, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	switch lower {
	case "jk", "jk1", "joker", "joker1", "🃏":
		return Card{Joker: 1}, nil
	case "jk2", "joker2":
		return Card{Joker: 2}, nil
	}

	for sym, suit := range suitAliases {
		if !strings.HasSuffix(lower, sym) {
			continue
		}
		rank, ok := rankAliases[strings.TrimSuffix(lower, sym)]
		if !ok {
			break
		}
		return Card{Rank: rank, Suit: suit}, nil
	}
	return Card{}, fmt.Errorf("%w: %q", appErr.ErrInvalidCard, s)
}

// MustParse is Parse for literals in tests and tables.
func MustParse(s string) Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseList reads whitespace or comma separated cards.
func ParseList(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	out := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := Parse(f)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
