package repository

import (
	"context"

	"psytech/internal/domain/models"

	"github.com/google/uuid"
)

type PostRepository interface {
	SavePost(ctx context.Context, post models.Post) error
	GetPostByID(ctx context.Context, postID uuid.UUID) (*models.Post, error)
	GetPublishedPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	// SlugExists ignores the post with excludeID; pass uuid.Nil to check all posts.
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	UpdatePostFields(ctx context.Context, postID uuid.UUID, updates map[string]interface{}) error
	DeletePost(ctx context.Context, postID uuid.UUID) error
	// ListPosts returns one page and the total match count. PerPage == 0 returns every match.
	ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error)
	TagCounts(ctx context.Context) ([]models.TagCount, error)
}

type ContactRepository interface {
	SaveContact(ctx context.Context, contact models.ContactSubmission) error
	ListContacts(ctx context.Context) ([]models.ContactSubmission, error)
	GetContact(ctx context.Context, contactID uuid.UUID) (*models.ContactSubmission, error)
}

type StatusCheckRepository interface {
	SaveStatusCheck(ctx context.Context, check models.StatusCheck) error
	// ListStatusChecks returns at most limit checks, newest first.
	ListStatusChecks(ctx context.Context, limit int) ([]models.StatusCheck, error)
}

// postUpdatableFields lists the keys UpdatePostFields accepts.
var postUpdatableFields = map[string]bool{
	"slug":         true,
	"title":        true,
	"summary":      true,
	"content":      true,
	"hero_image":   true,
	"tags":         true,
	"language":     true,
	"status":       true,
	"seo":          true,
	"updated_at":   true,
	"published_at": true,
	"scheduled_at": true,
}
