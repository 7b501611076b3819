package domain

import (
	"time"

	"github.com/google/uuid"
)

// GameRecord is one finished maze run.
type GameRecord struct {
	ID         uuid.UUID `bson:"_id" json:"id"`
	SessionID  uuid.UUID `bson:"sessionId" json:"session_id"`
	PlayerID   uuid.UUID `bson:"playerId" json:"player_id"`
	Rows       int       `bson:"rows" json:"rows"`
	Cols       int       `bson:"cols" json:"cols"`
	Seed       int64     `bson:"seed" json:"seed"`
	Ticks      int64     `bson:"ticks" json:"ticks"`
	FinishedAt time.Time `bson:"finishedAt" json:"finished_at"`
}

// LeaderboardEntry is one player's best run on a maze size.
type LeaderboardEntry struct {
	PlayerID uuid.UUID `json:"player_id"`
	Ticks    int64     `json:"ticks"`
}
