package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"psytech/internal/domain/models"
	"psytech/internal/storage"
	"psytech/internal/storage/mongodb"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoPostRepo struct {
	coll *mongo.Collection
}

func NewMongoPostRepository(db *mongo.Database) *MongoPostRepo {
	return &MongoPostRepo{coll: db.Collection(mongodb.PostsCollection)}
}

func (r *MongoPostRepo) SavePost(ctx context.Context, post models.Post) error {
	const op = "repository.mongo_post_repository.SavePost"

	if _, err := r.coll.InsertOne(ctx, newPostDocument(post)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *MongoPostRepo) GetPostByID(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	const op = "repository.mongo_post_repository.GetPostByID"

	return r.findOne(ctx, op, bson.M{"id": postID.String()})
}

func (r *MongoPostRepo) GetPublishedPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	const op = "repository.mongo_post_repository.GetPublishedPostBySlug"

	return r.findOne(ctx, op, bson.M{"slug": slug, "status": string(models.PostStatusPublished)})
}

func (r *MongoPostRepo) findOne(ctx context.Context, op string, filter bson.M) (*models.Post, error) {
	var doc postDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	post, err := doc.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &post, nil
}

func (r *MongoPostRepo) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	const op = "repository.mongo_post_repository.SlugExists"

	filter := bson.M{"slug": slug}
	if excludeID != uuid.Nil {
		filter["id"] = bson.M{"$ne": excludeID.String()}
	}

	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return n > 0, nil
}

func (r *MongoPostRepo) UpdatePostFields(ctx context.Context, postID uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.mongo_post_repository.UpdatePostFields"

	if len(updates) == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNoFieldsToSave)
	}

	set := bson.M{"schema_version": models.PostSchemaVersion}
	unset := bson.M{}

	for field, value := range updates {
		if !postUpdatableFields[field] {
			return fmt.Errorf("%s: field '%s' is not allowed for update", op, field)
		}

		switch v := value.(type) {
		case *models.SEO:
			if v == nil {
				unset[field] = ""
				continue
			}
			value = newSEODocument(v)
		case models.PostStatus:
			value = string(v)
		case *string:
			if v == nil {
				unset[field] = ""
				continue
			}
		}

		set[field] = value
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": postID.String()}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
	}

	return nil
}

func (r *MongoPostRepo) DeletePost(ctx context.Context, postID uuid.UUID) error {
	const op = "repository.mongo_post_repository.DeletePost"

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": postID.String()})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
	}

	return nil
}

func (r *MongoPostRepo) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error) {
	const op = "repository.mongo_post_repository.ListPosts"

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.Language != "" {
		query["language"] = filter.Language
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}
	if filter.Query != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Query), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": rx},
			bson.M{"summary": rx},
			bson.M{"content": rx},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	opts := options.Find()
	if filter.Status == models.PostStatusPublished {
		opts.SetSort(bson.D{{Key: "published_at", Value: -1}, {Key: "created_at", Value: -1}})
	} else {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}
	if filter.PerPage > 0 {
		opts.SetSkip(int64(filter.Offset())).SetLimit(int64(filter.PerPage))
	}

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	posts := make([]models.Post, 0)
	for cur.Next(ctx) {
		var doc postDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}

		post, err := doc.toModel()
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		posts = append(posts, post)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return posts, int(total), nil
}

func (r *MongoPostRepo) TagCounts(ctx context.Context) ([]models.TagCount, error) {
	const op = "repository.mongo_post_repository.TagCounts"

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": string(models.PostStatusPublished)}}},
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.M{"_id": "$tags", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	counts := make([]models.TagCount, 0)
	if err := cur.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return counts, nil
}
