package ledger

import (
	"context"
	"net/url"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/minerush/game-services/internal/comm"
)

// Ledger mirrors resolved moves and telemetry into Mongo. It is a
// read-model for audit and reporting; the relational append in the game
// service stays the durable record.
type Ledger struct {
	db *mongo.Database
}

const (
	movesCollection  = "moves"
	eventsCollection = "events"
)

func Connect() (*Ledger, context.CancelFunc, error) {
	mongoURI := os.Getenv("MONGODB_URI")

	uri, err := url.Parse(mongoURI)
	if err != nil {
		return nil, nil, err
	}

	dbName := strings.TrimPrefix(uri.Path, "/")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		cancel()
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		cancel()
		return nil, nil, err
	}

	return &Ledger{db: client.Database(dbName)}, cancel, nil
}

// EnsureIndexes makes the record ids unique so a redelivered NATS
// message lands on the same document instead of duplicating it.
func (l *Ledger) EnsureIndexes(ctx context.Context) error {
	_, err := l.db.Collection(movesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "action_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = l.db.Collection(eventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "event_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (l *Ledger) SaveMove(ctx context.Context, record comm.MoveRecord) error {
	filter := bson.M{"action_id": record.ActionID}
	update := bson.M{"$setOnInsert": bson.M{
		"session_id":  record.SessionID,
		"config_id":   record.ConfigID,
		"bid":         record.Bid,
		"outcome":     record.Outcome,
		"payout":      record.Payout,
		"move_index":  record.MoveIndex,
		"state":       record.State,
		"resolved_at": record.ResolvedAt,
	}}

	_, err := l.db.Collection(movesCollection).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (l *Ledger) SaveEvent(ctx context.Context, record comm.EventRecord) error {
	filter := bson.M{"event_id": record.EventID}
	update := bson.M{"$setOnInsert": bson.M{
		"session_id":  record.SessionID,
		"event_type":  record.EventType,
		"payload":     string(record.Payload),
		"received_at": record.ReceivedAt,
	}}

	_, err := l.db.Collection(eventsCollection).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
