package variant

import (
	"fmt"

	appErr "video-poker-service/pkg/errors"
)

// Category is a paying (or non-paying) hand name. Which categories a variant
// uses, and in which order they are tested, lives in its rule table.
type Category uint8

const (
	None Category = iota
	JacksOrBetter
	TensOrBetter
	KingsOrBetter
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	FourTwosThroughFours
	FourFivesThroughKings
	FourFivesThroughTens
	FourTwosThroughTens
	FourFaces
	FourAces
	FourLowWithLowKicker
	FourAcesWithLowKicker
	StraightFlush
	FiveOfAKind
	FiveSixesThroughKings
	FiveThreesThroughFives
	FiveAces
	WildRoyalFlush
	FourDeuces
	FourDeucesWithAce
	RoyalFlush

	NumCategories
)

var categoryInfo = [NumCategories]struct {
	slug string
	name string
}{
	None:                   {"none", "Nothing"},
	JacksOrBetter:          {"jacks_or_better", "Jacks or Better"},
	TensOrBetter:           {"tens_or_better", "Tens or Better"},
	KingsOrBetter:          {"kings_or_better", "Kings or Better"},
	TwoPair:                {"two_pair", "Two Pair"},
	ThreeOfAKind:           {"three_of_a_kind", "Three of a Kind"},
	Straight:               {"straight", "Straight"},
	Flush:                  {"flush", "Flush"},
	FullHouse:              {"full_house", "Full House"},
	FourOfAKind:            {"four_of_a_kind", "Four of a Kind"},
	FourTwosThroughFours:   {"four_2_4", "Four 2s-4s"},
	FourFivesThroughKings:  {"four_5_k", "Four 5s-Ks"},
	FourFivesThroughTens:   {"four_5_10", "Four 5s-10s"},
	FourTwosThroughTens:    {"four_2_10", "Four 2s-10s"},
	FourFaces:              {"four_j_k", "Four Js-Ks"},
	FourAces:               {"four_aces", "Four Aces"},
	FourLowWithLowKicker:   {"four_2_4_with_a_4", "Four 2s-4s with A-4"},
	FourAcesWithLowKicker:  {"four_aces_with_2_4", "Four Aces with 2-4"},
	StraightFlush:          {"straight_flush", "Straight Flush"},
	FiveOfAKind:            {"five_of_a_kind", "Five of a Kind"},
	FiveSixesThroughKings:  {"five_6_k", "Five 6s-Ks"},
	FiveThreesThroughFives: {"five_3_5", "Five 3s-5s"},
	FiveAces:               {"five_aces", "Five Aces"},
	WildRoyalFlush:         {"wild_royal_flush", "Wild Royal Flush"},
	FourDeuces:             {"four_deuces", "Four Deuces"},
	FourDeucesWithAce:      {"four_deuces_with_ace", "Four Deuces with Ace"},
	RoyalFlush:             {"royal_flush", "Royal Flush"},
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c < NumCategories
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", c)
	}
	return categoryInfo[c].name
}

// Slug is the stable snake_case key used in JSON and storage.
func (c Category) Slug() string {
	if !c.Valid() {
		return ""
	}
	return categoryInfo[c].slug
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", appErr.ErrUnknownCategory, c)
	}
	return []byte(c.Slug()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory maps a slug back to its Category.
func ParseCategory(slug string) (Category, error) {
	for i, info := range categoryInfo {
		if info.slug == slug {
			return Category(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", appErr.ErrUnknownCategory, slug)
}
