package repository

import (
	"context"
	"fmt"
	"time"

	"psytech/internal/domain/models"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const tagCountsKey = "tags"

type cachedPage struct {
	posts []models.Post
	total int
}

// CachedPostRepo serves the public read paths from memory.
// Any write flushes the whole cache.
type CachedPostRepo struct {
	PostRepository
	cache *cache.Cache
}

func NewCachedPostRepository(next PostRepository, ttl time.Duration) *CachedPostRepo {
	return &CachedPostRepo{
		PostRepository: next,
		cache:          cache.New(ttl, 2*ttl),
	}
}

func (r *CachedPostRepo) GetPublishedPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	key := "slug:" + slug
	if v, ok := r.cache.Get(key); ok {
		post := v.(models.Post)
		return &post, nil
	}

	post, err := r.PostRepository.GetPublishedPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	r.cache.SetDefault(key, *post)

	return post, nil
}

func (r *CachedPostRepo) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error) {
	if filter.Status != models.PostStatusPublished {
		return r.PostRepository.ListPosts(ctx, filter)
	}

	key := fmt.Sprintf("list:%s|%s|%s|%d|%d", filter.Language, filter.Tag, filter.Query, filter.Page, filter.PerPage)
	if v, ok := r.cache.Get(key); ok {
		page := v.(cachedPage)
		return page.posts, page.total, nil
	}

	posts, total, err := r.PostRepository.ListPosts(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	r.cache.SetDefault(key, cachedPage{posts: posts, total: total})

	return posts, total, nil
}

func (r *CachedPostRepo) TagCounts(ctx context.Context) ([]models.TagCount, error) {
	if v, ok := r.cache.Get(tagCountsKey); ok {
		return v.([]models.TagCount), nil
	}

	counts, err := r.PostRepository.TagCounts(ctx)
	if err != nil {
		return nil, err
	}

	r.cache.SetDefault(tagCountsKey, counts)

	return counts, nil
}

func (r *CachedPostRepo) SavePost(ctx context.Context, post models.Post) error {
	defer r.cache.Flush()
	return r.PostRepository.SavePost(ctx, post)
}

func (r *CachedPostRepo) UpdatePostFields(ctx context.Context, postID uuid.UUID, updates map[string]interface{}) error {
	defer r.cache.Flush()
	return r.PostRepository.UpdatePostFields(ctx, postID, updates)
}

func (r *CachedPostRepo) DeletePost(ctx context.Context, postID uuid.UUID) error {
	defer r.cache.Flush()
	return r.PostRepository.DeletePost(ctx, postID)
}
