package i

import (
	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(username string) (*dmn.User, error)

	// IncrementGamesWon atomically adds one win to a user.
	IncrementGamesWon(id uuid.UUID) error
}

// GameRepo stores finished games.
type GameRepo interface {
	// Save inserts a finished game.
	Save(record *dmn.GameRecord) error

	// ByPlayer returns up to limit games of a player, newest first.
	ByPlayer(playerID uuid.UUID, limit int64) ([]dmn.GameRecord, error)
}
