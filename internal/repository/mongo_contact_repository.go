package repository

import (
	"context"
	"errors"
	"fmt"

	"psytech/internal/domain/models"
	"psytech/internal/storage"
	"psytech/internal/storage/mongodb"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// contactListLimit caps the admin listing.
const contactListLimit = 1000

type MongoContactRepo struct {
	coll *mongo.Collection
}

func NewMongoContactRepository(db *mongo.Database) *MongoContactRepo {
	return &MongoContactRepo{coll: db.Collection(mongodb.ContactsCollection)}
}

func (r *MongoContactRepo) SaveContact(ctx context.Context, contact models.ContactSubmission) error {
	const op = "repository.mongo_contact_repository.SaveContact"

	if _, err := r.coll.InsertOne(ctx, newContactDocument(contact)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *MongoContactRepo) ListContacts(ctx context.Context) ([]models.ContactSubmission, error) {
	const op = "repository.mongo_contact_repository.ListContacts"

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(contactListLimit)

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	contacts := make([]models.ContactSubmission, 0)
	for cur.Next(ctx) {
		var doc contactDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		contact, err := doc.toModel()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		contacts = append(contacts, contact)
	}

	return contacts, cur.Err()
}

func (r *MongoContactRepo) GetContact(ctx context.Context, contactID uuid.UUID) (*models.ContactSubmission, error) {
	const op = "repository.mongo_contact_repository.GetContact"

	var doc contactDocument
	if err := r.coll.FindOne(ctx, bson.M{"id": contactID.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrContactNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	contact, err := doc.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &contact, nil
}
