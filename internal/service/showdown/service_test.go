package showdown_test

import (
	"context"
	"errors"
	"testing"

	"video-poker-service/internal/game/cards"
	engine "video-poker-service/internal/game/showdown"
	"video-poker-service/internal/model"
	"video-poker-service/internal/service/showdown"
	appErr "video-poker-service/pkg/errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newService(t *testing.T, maxPlayers int) *showdown.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Showdown{}); err != nil {
		t.Fatalf("failed to migrate showdowns: %v", err)
	}
	return showdown.NewService(db, maxPlayers)
}

func seat(name, hand string) showdown.Seat {
	return showdown.Seat{Name: name, Hand: cards.MustParseHand(hand)}
}

func TestResolveRanksSeats(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, 8)

	res, err := svc.Resolve(ctx, []showdown.Seat{
		seat("ann", "A♥ A♦ K♣ K♠ 3♥"),
		seat("ben", "JK1 Q♥ Q♦ 7♣ 2♠"),
		seat("", "A♣ A♠ K♥ K♦ 3♣"),
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(res.Winners) != 1 || res.Winners[0] != 1 || res.Tied {
		t.Fatalf("expected seat 1 to win alone, got %v tied=%v", res.Winners, res.Tied)
	}

	wantOrder := []struct {
		seat  int
		place int
		cat   engine.Category
	}{
		{1, 1, engine.ThreeOfAKind},
		{0, 2, engine.TwoPair},
		{2, 2, engine.TwoPair},
	}
	for i, w := range wantOrder {
		got := res.Seats[i]
		if got.Seat != w.seat || got.Place != w.place || got.Evaluation.Category != w.cat {
			t.Fatalf("position %d: expected seat %d place %d %s, got %+v", i, w.seat, w.place, w.cat, got)
		}
	}
	if res.Seats[0].Evaluation.DisplayName != "Three Queens" {
		t.Fatalf("unexpected winning hand name %q", res.Seats[0].Evaluation.DisplayName)
	}
	if res.Seats[2].Name != "Seat 3" {
		t.Fatalf("expected default seat name, got %q", res.Seats[2].Name)
	}

	stored, err := svc.Get(ctx, res.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Seats) != 3 || stored.Seats[0].Name != "ben" || stored.Winners[0] != 1 {
		t.Fatalf("stored showdown mismatch: %+v", stored)
	}
	if stored.Seats[0].Hand != res.Seats[0].Hand {
		t.Fatalf("stored hand mismatch: %s vs %s", stored.Seats[0].Hand, res.Seats[0].Hand)
	}
}

func TestResolveTie(t *testing.T) {
	svc := newService(t, 8)

	res, err := svc.Resolve(context.Background(), []showdown.Seat{
		seat("a", "A♥ K♥ Q♥ J♥ 10♥"),
		seat("b", "2♣ 3♣ 4♦ 5♠ 7♥"),
		seat("c", "A♠ K♠ Q♠ J♠ 10♠"),
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !res.Tied || len(res.Winners) != 2 || res.Winners[0] != 0 || res.Winners[1] != 2 {
		t.Fatalf("expected seats 0 and 2 tied, got %v tied=%v", res.Winners, res.Tied)
	}
	if res.Seats[2].Place != 3 {
		t.Fatalf("expected third place after a tie for first, got %d", res.Seats[2].Place)
	}
}

func TestResolveRejections(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, 2)

	if _, err := svc.Resolve(ctx, []showdown.Seat{seat("a", "A♥ K♥ Q♥ J♥ 10♥")}); !errors.Is(err, appErr.ErrNotEnoughPlayers) {
		t.Fatalf("expected ErrNotEnoughPlayers, got %v", err)
	}
	_, err := svc.Resolve(ctx, []showdown.Seat{
		seat("a", "A♥ K♥ Q♥ J♥ 10♥"),
		seat("b", "2♣ 3♣ 4♦ 5♠ 7♥"),
		seat("c", "2♥ 3♥ 4♥ 5♥ 7♣"),
	})
	if !errors.Is(err, appErr.ErrTooManyPlayers) {
		t.Fatalf("expected ErrTooManyPlayers, got %v", err)
	}
	_, err = svc.Resolve(ctx, []showdown.Seat{
		seat("a", "A♥ K♥ Q♥ J♥ JK1"),
		seat("b", "JK1 3♣ 4♦ 5♠ 7♥"),
	})
	if !errors.Is(err, appErr.ErrDuplicateCard) {
		t.Fatalf("expected ErrDuplicateCard, got %v", err)
	}
	_, err = svc.Resolve(ctx, []showdown.Seat{
		seat("a", "A♥ K♥ Q♥ J♥ 10♥"),
		{Name: "empty"},
	})
	if !errors.Is(err, appErr.ErrInvalidCard) {
		t.Fatalf("expected ErrInvalidCard, got %v", err)
	}
	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, appErr.ErrShowdownNotFound) {
		t.Fatalf("expected ErrShowdownNotFound, got %v", err)
	}
}
