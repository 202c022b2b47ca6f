package showdown

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"video-poker-service/internal/game/cards"
	engine "video-poker-service/internal/game/showdown"
	"video-poker-service/internal/model"
	appErr "video-poker-service/pkg/errors"
	"video-poker-service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPlayers = 2

type Service struct {
	db         *gorm.DB
	maxPlayers int
}

func NewService(db *gorm.DB, maxPlayers int) *Service {
	if maxPlayers < minPlayers {
		maxPlayers = minPlayers
	}
	return &Service{db: db, maxPlayers: maxPlayers}
}

type Seat struct {
	Name string     `json:"name"`
	Hand cards.Hand `json:"hand"`
}

type SeatResult struct {
	Seat       int               `json:"seat"`
	Name       string            `json:"name"`
	Hand       cards.Hand        `json:"hand"`
	Place      int               `json:"place"`
	Evaluation engine.Evaluation `json:"evaluation"`
}

type Result struct {
	ID        string       `json:"id"`
	Seats     []SeatResult `json:"seats"`
	Winners   []int        `json:"winners"`
	Tied      bool         `json:"tied"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Resolve evaluates every seat, ranks them best first and stores the
// showdown. Cards must be unique across all seats; the two jokers count as
// distinct cards.
func (s *Service) Resolve(ctx context.Context, seats []Seat) (*Result, error) {
	if len(seats) < minPlayers {
		return nil, fmt.Errorf("%w: %d seats", appErr.ErrNotEnoughPlayers, len(seats))
	}
	if len(seats) > s.maxPlayers {
		return nil, fmt.Errorf("%w: %d seats, max %d", appErr.ErrTooManyPlayers, len(seats), s.maxPlayers)
	}

	all := make([]cards.Card, 0, len(seats)*cards.HandSize)
	evals := make([]engine.Evaluation, len(seats))
	for i, seat := range seats {
		if _, err := cards.NewHand(seat.Hand[:]); err != nil {
			return nil, fmt.Errorf("seat %d: %w", i, err)
		}
		all = append(all, seat.Hand[:]...)
		evals[i] = engine.Evaluate(seat.Hand)
	}
	if err := cards.Deck(all).Validate(); err != nil {
		return nil, err
	}

	placings := engine.Rank(evals)
	out := &Result{
		ID:        uuid.NewString(),
		Seats:     make([]SeatResult, len(placings)),
		CreatedAt: time.Now(),
	}
	for i, p := range placings {
		name := strings.TrimSpace(seats[p.Index].Name)
		if name == "" {
			name = fmt.Sprintf("Seat %d", p.Index+1)
		}
		out.Seats[i] = SeatResult{
			Seat:       p.Index,
			Name:       name,
			Hand:       seats[p.Index].Hand,
			Place:      p.Place,
			Evaluation: p.Evaluation,
		}
		if p.Place == 1 {
			out.Winners = append(out.Winners, p.Index)
		}
	}
	out.Tied = len(out.Winners) > 1

	if err := s.save(ctx, out); err != nil {
		return nil, err
	}
	logger.Log.Info("showdown resolved",
		zap.String("showdownID", out.ID),
		zap.Int("seats", len(seats)),
		zap.Ints("winners", out.Winners),
		zap.String("winningHand", out.Seats[0].Evaluation.DisplayName),
	)
	return out, nil
}

func (s *Service) save(ctx context.Context, res *Result) error {
	seatsJSON, err := json.Marshal(res.Seats)
	if err != nil {
		return err
	}
	winnersJSON, err := json.Marshal(res.Winners)
	if err != nil {
		return err
	}
	row := model.Showdown{
		ID:        res.ID,
		Seats:     seatsJSON,
		Winners:   winnersJSON,
		Tied:      res.Tied,
		CreatedAt: res.CreatedAt,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// Get loads a stored showdown.
func (s *Service) Get(ctx context.Context, id string) (*Result, error) {
	var row model.Showdown
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", appErr.ErrShowdownNotFound, id)
		}
		return nil, err
	}
	out := &Result{ID: row.ID, Tied: row.Tied, CreatedAt: row.CreatedAt}
	if err := json.Unmarshal(row.Seats, &out.Seats); err != nil {
		return nil, fmt.Errorf("decode seats of showdown %s: %w", id, err)
	}
	if err := json.Unmarshal(row.Winners, &out.Winners); err != nil {
		return nil, fmt.Errorf("decode winners of showdown %s: %w", id, err)
	}
	return out, nil
}
