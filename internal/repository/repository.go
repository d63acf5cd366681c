package repository

import (
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository bundles the stores for one backend.
type Repository struct {
	Post    PostRepository
	Contact ContactRepository
	Status  StatusCheckRepository
}

func NewPostgresRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Post:    NewPostRepository(db),
		Contact: NewContactRepository(db),
		Status:  NewStatusCheckRepository(db),
	}
}

func NewMongoRepository(db *mongo.Database) *Repository {
	return &Repository{
		Post:    NewMongoPostRepository(db),
		Contact: NewMongoContactRepository(db),
		Status:  NewMongoStatusCheckRepository(db),
	}
}

// WithCache puts a read cache in front of the post store. ttl <= 0 leaves
// the repository unchanged.
func (r *Repository) WithCache(ttl time.Duration) *Repository {
	if ttl <= 0 {
		return r
	}
	return &Repository{
		Post:    NewCachedPostRepository(r.Post, ttl),
		Contact: r.Contact,
		Status:  r.Status,
	}
}
