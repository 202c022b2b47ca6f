package model

import (
	"time"

	"gorm.io/datatypes"
)

// Players & credits

type Player struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Nickname  string    `gorm:"not null" json:"nickname"`
	Status    string    `gorm:"default:active;not null" json:"status"` // active/banned
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Wallet struct {
	PlayerID     int64     `gorm:"primaryKey" json:"playerId"`
	Balance      int64     `json:"balance"`
	TotalWagered int64     `json:"totalWagered"`
	TotalWon     int64     `json:"totalWon"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Operators

type Admin struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string     `gorm:"unique;not null" json:"username"`
	PasswordHash string     `gorm:"not null" json:"-"`
	DisplayName  string     `json:"displayName"`
	Status       string     `gorm:"default:active;not null" json:"status"` // active/disabled
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Video poker rounds

const (
	RoundStatusDealt   = "dealt"
	RoundStatusSettled = "settled"
)

// Round is one deal and its draw. Card columns hold JSON arrays of card
// strings ("A♥", "JK1").
type Round struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	PlayerID  int64          `gorm:"index;not null" json:"playerId"`
	VariantID string         `gorm:"size:64;not null" json:"variantId"`
	Wager     int            `gorm:"not null" json:"wager"`
	Hand      datatypes.JSON `json:"hand"`
	Remaining datatypes.JSON `json:"-"`
	Final     datatypes.JSON `json:"final,omitempty"`
	HoldMask  *uint8         `json:"holdMask,omitempty"`
	Category  string         `gorm:"size:64" json:"category,omitempty"`
	Payout    int            `json:"payout"`
	Status    string         `gorm:"size:16;default:dealt;not null" json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	SettledAt *time.Time     `json:"settledAt,omitempty"`
}

// PlayRecord is the settled outcome of a round, the source for statistics.
type PlayRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RoundID   string    `gorm:"uniqueIndex;size:36" json:"roundId"`
	PlayerID  int64     `gorm:"index;not null" json:"playerId"`
	VariantID string    `gorm:"size:64;not null" json:"variantId"`
	Wager     int       `json:"wager"`
	Category  string    `gorm:"size:64" json:"category"`
	Payout    int       `json:"payout"`
	CreatedAt time.Time `json:"createdAt"`
}

// Multiplayer showdowns

type Showdown struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Seats     datatypes.JSON `json:"seats"`
	Winners   datatypes.JSON `json:"winners"`
	Tied      bool           `json:"tied"`
	CreatedAt time.Time      `json:"createdAt"`
}

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Player{},
		&Wallet{},
		&Admin{},
		&Round{},
		&PlayRecord{},
		&Showdown{},
	}
}
