package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/dashgrid/pkg/errors"
)

// MongoConfig holds connection settings for the MongoDB store.
type MongoConfig struct {
	URI        string // e.g. mongodb://localhost:27017
	Database   string // defaults to "dashgrid"
	Collection string // defaults to "dashboards"
}

// MongoStore is a MongoDB-backed store for production multi-instance
// deployments. Records are keyed by dashboard ID via the _id field.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "dashgrid"
	}
	if cfg.Collection == "" {
		cfg.Collection = "dashboards"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, dashboardID string) (*Record, error) {
	if err := errors.ValidateDashboardID(dashboardID); err != nil {
		return nil, err
	}

	var rec Record
	err := s.collection.FindOne(ctx, bson.M{"_id": dashboardID}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load dashboard")
	}
	return &rec, nil
}

func (s *MongoStore) Set(ctx context.Context, rec *Record) error {
	if err := errors.ValidateDashboardID(rec.DashboardID); err != nil {
		return err
	}

	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": rec.DashboardID}, rec, opts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save dashboard")
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, dashboardID string) error {
	if err := errors.ValidateDashboardID(dashboardID); err != nil {
		return err
	}

	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": dashboardID}); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete dashboard")
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.M{"_id": 1})

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list dashboards")
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "decode dashboard id")
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "iterate dashboards")
	}
	return ids, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
