package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GameRepo stores finished maze runs.
type GameRepo struct {
	collection *mongo.Collection
}

var _ i.GameRepo = &GameRepo{}

// NewGameRepo creates a GameRepo on the given database and collection.
func NewGameRepo(client *mongo.Client, dbName, collectionName string) *GameRepo {
	return &GameRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// Save inserts a finished game.
func (g *GameRepo) Save(record *dmn.GameRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := g.collection.InsertOne(ctx, record); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByPlayer returns up to limit games of playerID, newest first.
func (g *GameRepo) ByPlayer(playerID uuid.UUID, limit int64) ([]dmn.GameRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "finishedAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := g.collection.Find(ctx, bson.M{"playerId": playerID}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	records := make([]dmn.GameRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return records, nil
}
