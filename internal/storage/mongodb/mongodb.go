package mongodb

import (
	"context"
	"currency-converter/internal/models"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStorage struct {
	client     *mongo.Client
	database   *mongo.Database
	collection *mongo.Collection
}

func NewMongoStorage(ctx context.Context, uri, database, collection string, timeout time.Duration) (*MongoStorage, error) {
	const op = "mongodb.NewMongoStorage"

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetAppName("currency-converter-history").
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("%s: connect: %w", op, err)
	}

	s := &MongoStorage{
		client:     client,
		database:   client.Database(database),
		collection: client.Database(database).Collection(collection),
	}

	if err := s.ping(ctx, timeout); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}
	if err := s.ensureIndexes(ctx, timeout); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%s: indexes: %w", op, err)
	}

	return s, nil
}

func (s *MongoStorage) ping(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.client.Ping(ctx, nil)
}

// ensureIndexes уникальный event_id делает повторную доставку идемпотентной.
func (s *MongoStorage) ensureIndexes(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_event_id"),
		},
		{
			Keys: bson.D{
				{Key: "from_currency", Value: 1},
				{Key: "to_currency", Value: 1},
				{Key: "fetched_at", Value: -1},
			},
			Options: options.Index().SetName("pair_fetched_at"),
		},
	})
	return err
}

// SaveRate повторная доставка того же события не считается ошибкой.
func (s *MongoStorage) SaveRate(ctx context.Context, record *models.RateRecord) error {
	_, err := s.collection.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to save rate: %w", err)
	}

	return nil
}

func (s *MongoStorage) Close() error {
	if s.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.client.Disconnect(ctx)
}
