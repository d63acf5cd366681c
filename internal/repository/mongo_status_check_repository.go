package repository

import (
	"context"
	"fmt"
	"time"

	"psytech/internal/domain/models"
	"psytech/internal/storage/mongodb"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type statusCheckDocument struct {
	ID         string    `bson:"id"`
	ClientName string    `bson:"client_name"`
	Timestamp  time.Time `bson:"timestamp"`
}

type MongoStatusCheckRepo struct {
	coll *mongo.Collection
}

func NewMongoStatusCheckRepository(db *mongo.Database) *MongoStatusCheckRepo {
	return &MongoStatusCheckRepo{coll: db.Collection(mongodb.StatusChecksCollection)}
}

func (r *MongoStatusCheckRepo) SaveStatusCheck(ctx context.Context, check models.StatusCheck) error {
	const op = "repository.mongo_status_check_repository.SaveStatusCheck"

	doc := statusCheckDocument{
		ID:         check.ID.String(),
		ClientName: check.ClientName,
		Timestamp:  check.Timestamp,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *MongoStatusCheckRepo) ListStatusChecks(ctx context.Context, limit int) ([]models.StatusCheck, error) {
	const op = "repository.mongo_status_check_repository.ListStatusChecks"

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	checks := make([]models.StatusCheck, 0)
	for cur.Next(ctx) {
		var doc statusCheckDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		checks = append(checks, models.StatusCheck{
			ID:         id,
			ClientName: doc.ClientName,
			Timestamp:  doc.Timestamp.UTC(),
		})
	}

	return checks, cur.Err()
}
