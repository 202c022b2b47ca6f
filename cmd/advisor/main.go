package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"video-poker-service/internal/game/cards"
	"video-poker-service/internal/game/strategy"
	"video-poker-service/internal/game/variant"
	"video-poker-service/internal/service/videopoker"
	"video-poker-service/pkg/utils/random"

	"github.com/pterm/pterm"
)

func main() {
	var (
		variantID string
		wager     int
		hand      string
		remaining string
		top       int
		list      bool
	)
	flag.StringVar(&variantID, "variant", "jacks_or_better", "variant id")
	flag.IntVar(&wager, "wager", 1, "coins wagered, 1 to 5")
	flag.StringVar(&hand, "hand", "", `five cards, e.g. "A♥ K♥ Q♥ J♥ 3♣"; empty deals a random hand`)
	flag.StringVar(&remaining, "remaining", "", "cards left to draw from; empty means the full deck minus the hand")
	flag.IntVar(&top, "top", 5, "hold patterns to show")
	flag.BoolVar(&list, "list", false, "list the variants and exit")
	flag.Parse()

	if list {
		pterm.DefaultTable.WithHasHeader().WithData(variantRows()).Render()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, variantID, wager, hand, remaining, top); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, variantID string, wager int, hand, remaining string, top int) error {
	v, err := variant.Lookup(variantID)
	if err != nil {
		return err
	}
	if hand == "" {
		deck, err := v.Deck()
		if err != nil {
			return err
		}
		dealt, _, err := cards.DealHand(cards.Shuffle(deck, random.NewRand(), 1))
		if err != nil {
			return err
		}
		hand = dealt.String()
		pterm.Info.Printfln("Dealt %s", hand)
	}

	in, err := videopoker.ParseStrategyInput(v.ID, wager, hand, remaining)
	if err != nil {
		return err
	}
	if len(in.Remaining) == 0 {
		deck, err := v.Deck()
		if err != nil {
			return err
		}
		in.Remaining = deck.Without(in.Hand[:]...)
	}
	cat, err := v.ClassifyHand(in.Hand)
	if err != nil {
		return err
	}
	pay, err := v.Payout(cat, in.Wager)
	if err != nil {
		return err
	}
	pterm.Println(handBox(v, in.Hand, cat, pay))

	spinner, _ := pterm.DefaultSpinner.Start("Searching 32 hold patterns ...")
	res, err := strategy.SearchWithProgress(ctx, strategy.Request{
		Hand:      in.Hand,
		Remaining: in.Remaining,
		Variant:   v,
		Wager:     in.Wager,
	}, func(o strategy.Outcome, done int) {
		spinner.UpdateText(pterm.Sprintf("Searching hold patterns ... %d/%d", done, strategy.Patterns))
	})
	if err != nil {
		spinner.Fail()
		return err
	}
	spinner.Success()

	best := res.Best()
	pterm.Success.Printfln("%s (EV %.4f)", best.Description, best.EV)
	if top <= 0 || top > len(res.Outcomes) {
		top = len(res.Outcomes)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(outcomeRows(in.Hand, res.Outcomes[:top])).Render()
}
