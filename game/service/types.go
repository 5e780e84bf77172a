package service

import (
	"time"

	"github.com/ozank/partygames/game/engine"
)

// RoomSummary is the compact room listing for inspection surfaces.
type RoomSummary struct {
	ID          string         `json:"id"`
	Variant     engine.Variant `json:"variant"`
	Phase       engine.Phase   `json:"phase"`
	PlayerCount int            `json:"player_count"`
	CreatedAt   time.Time      `json:"created_at"`
}

// DefaultVariant is assumed when a joinRoom intent names none.
const DefaultVariant = engine.VariantRace
