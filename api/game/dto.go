// Package gameapi exposes maze sessions over REST and websockets.
package gameapi

import (
	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// CreateMazeRequest asks for a new maze. Zero cell counts default to 14.
type CreateMazeRequest struct {
	CellsHorizontal int    `json:"cells_horizontal" binding:"omitempty,min=1,max=100"`
	CellsVertical   int    `json:"cells_vertical" binding:"omitempty,min=1,max=100"`
	Seed            *int64 `json:"seed"`
}

// ImpulseRequest nudges the ball by direction name or by browser key code.
type ImpulseRequest struct {
	Direction string `json:"direction" binding:"omitempty,oneof=up right down left"`
	KeyCode   int    `json:"key_code"`
}

// StreamMessage is sent by websocket clients.
type StreamMessage struct {
	Action string `json:"action"` // "impulse" or "reset"
	ImpulseRequest
}

// Stream event types.
const (
	EventSnapshot = "snapshot" // full state, sent on connect and after a reset
	EventFrame    = "frame"    // moving bodies only, sent every tick
	EventError    = "error"
)

// StreamEvent is sent to websocket clients.
type StreamEvent struct {
	Type  string         `json:"type"`
	State *game.Snapshot `json:"state,omitempty"`
	Error string         `json:"error,omitempty"`
}

// HintResponse lists the cells from the ball to the goal.
type HintResponse struct {
	ID   uuid.UUID   `json:"id"`
	Path []maze.Cell `json:"path"`
}

// LeaderboardResponse is the fastest runs on one maze size.
type LeaderboardResponse struct {
	Board   string                 `json:"board"`
	Entries []dmn.LeaderboardEntry `json:"entries"`
}

// HistoryResponse is the caller's finished games.
type HistoryResponse struct {
	Games []dmn.GameRecord `json:"games"`
}
