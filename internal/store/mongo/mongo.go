// Package mongo is the default record store: one document per expense in a
// MongoDB collection, keyed by ObjectID.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"kharcha/internal/core"
)

const connectTimeout = 10 * time.Second

// document is the persisted shape of an expense.
type document struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Amount   float64            `bson:"amount"`
	Category string             `bson:"category"`
	Date     time.Time          `bson:"date"`
}

type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Config selects the deployment, database and collection.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// New connects to MongoDB and verifies the primary is reachable.
func New(ctx context.Context, cfg Config) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Store{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func toDocument(e core.Expense) document {
	return document{
		Username: e.Username,
		Amount:   float64(e.Amount),
		Category: e.Category,
		Date:     e.Date.UTC(),
	}
}

func fromDocument(d document) core.Expense {
	return core.Expense{
		ID:       d.ID.Hex(),
		Username: d.Username,
		Amount:   core.Amount(d.Amount),
		Category: d.Category,
		Date:     core.Date{Time: d.Date.UTC()},
	}
}

// parseID reports false for ids that cannot name any document.
func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func (s *Store) List(ctx context.Context) ([]core.Expense, error) {
	cur, err := s.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}

	expenses := make([]core.Expense, 0, len(docs))
	for _, d := range docs {
		expenses = append(expenses, fromDocument(d))
	}
	return expenses, nil
}

func (s *Store) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	res, err := s.collection.InsertOne(ctx, toDocument(e))
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return core.Expense{}, errors.New("insert expense: unexpected id type")
	}
	return e.WithID(oid.Hex()), nil
}

func (s *Store) Update(ctx context.Context, id string, e core.Expense) error {
	oid, ok := parseID(id)
	if !ok {
		return nil
	}
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": oid}, toDocument(e)); err != nil {
		return fmt.Errorf("replace expense: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return nil
	}
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
