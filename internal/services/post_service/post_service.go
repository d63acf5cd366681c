package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"psytech/internal/domain/models"
	"psytech/internal/lib/logger/sl"
	"psytech/internal/lib/slug"
	"psytech/internal/repository"
	"psytech/internal/storage"
	"psytech/internal/worker"

	"github.com/google/uuid"
)

const webhookTask = "publish_webhook"

type WebhookSender interface {
	Send(ctx context.Context, payload models.WebhookPayload) error
}

// PostService owns the draft/published lifecycle of blog posts.
type PostService struct {
	log           *slog.Logger
	repo          repository.PostRepository
	dispatcher    worker.Dispatcher
	webhook       WebhookSender
	publicBaseURL string
	now           func() time.Time
}

func NewPostService(
	log *slog.Logger,
	repo repository.PostRepository,
	dispatcher worker.Dispatcher,
	webhook WebhookSender,
	publicBaseURL string,
) *PostService {
	return &PostService{
		log:           log,
		repo:          repo,
		dispatcher:    dispatcher,
		webhook:       webhook,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// CreatePost validates in and stores it as a new draft.
func (s *PostService) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	const op = "post_service.CreatePost"
	log := s.log.With(slog.String("op", op))

	in.Language = normalizeLanguage(in.Language)
	in.Title = strings.TrimSpace(in.Title)
	in.Tags = normalizeTags(in.Tags)

	if err := validateInput(in); err != nil {
		log.Warn("invalid post input", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	post := models.Post{
		ID:          uuid.New(),
		Title:       in.Title,
		Summary:     in.Summary,
		Content:     in.Content,
		HeroImage:   optionalString(in.HeroImage),
		Tags:        in.Tags,
		Language:    in.Language,
		Status:      models.PostStatusDraft,
		SEO:         in.SEO,
		CreatedAt:   now,
		UpdatedAt:   now,
		ScheduledAt: in.ScheduledAt,
		AIGenerated: in.AIGenerated,
	}

	base := slug.ForPost(post.Title, post.Language)
	var err error
	post.Slug, err = s.uniqueSlug(ctx, base, post.ID)
	if err != nil {
		log.Error("failed to check slug", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = s.repo.SavePost(ctx, post)
	if errors.Is(err, storage.ErrSlugExists) && post.Slug == base {
		log.Warn("slug taken concurrently, retrying with suffix", slog.String("slug", base))
		post.Slug = slug.WithID(base, post.ID)
		err = s.repo.SavePost(ctx, post)
	}
	if err != nil {
		log.Error("failed to save post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post created",
		slog.String("post_id", post.ID.String()),
		slog.String("slug", post.Slug),
		slog.Bool("ai_generated", post.AIGenerated),
	)

	return &post, nil
}

// UpdatePost applies the non-nil fields of patch. The slug is rebuilt when
// the title or language changes.
func (s *PostService) UpdatePost(ctx context.Context, postID uuid.UUID, patch models.PostPatch) (*models.Post, error) {
	const op = "post_service.UpdatePost"
	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", postID.String()),
	)

	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		patch.Title = &t
	}
	if patch.Language != nil {
		l := normalizeLanguage(*patch.Language)
		patch.Language = &l
	}
	if patch.Tags != nil {
		patch.Tags = normalizeTags(patch.Tags)
	}

	if err := validatePatch(patch); err != nil {
		log.Warn("invalid post patch", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		log.Warn("failed to get post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updates := make(map[string]interface{})
	slugChanged := false

	if patch.Title != nil {
		slugChanged = slugChanged || *patch.Title != post.Title
		post.Title = *patch.Title
		updates["title"] = post.Title
	}
	if patch.Language != nil {
		slugChanged = slugChanged || *patch.Language != post.Language
		post.Language = *patch.Language
		updates["language"] = post.Language
	}
	if patch.Summary != nil {
		post.Summary = *patch.Summary
		updates["summary"] = post.Summary
	}
	if patch.Content != nil {
		post.Content = *patch.Content
		updates["content"] = post.Content
	}
	if patch.HeroImage != nil {
		post.HeroImage = optionalString(patch.HeroImage)
		updates["hero_image"] = post.HeroImage
	}
	if patch.Tags != nil {
		post.Tags = patch.Tags
		updates["tags"] = post.Tags
	}
	if patch.SEO != nil {
		post.SEO = patch.SEO
		updates["seo"] = post.SEO
	}
	if patch.ScheduledAt != nil {
		post.ScheduledAt = patch.ScheduledAt
		updates["scheduled_at"] = post.ScheduledAt
	}

	base := slug.ForPost(post.Title, post.Language)
	if slugChanged {
		newSlug, err := s.uniqueSlug(ctx, base, post.ID)
		if err != nil {
			log.Error("failed to check slug", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if newSlug != post.Slug {
			post.Slug = newSlug
			updates["slug"] = newSlug
		}
	}

	post.UpdatedAt = s.now()
	updates["updated_at"] = post.UpdatedAt

	err = s.repo.UpdatePostFields(ctx, postID, updates)
	if errors.Is(err, storage.ErrSlugExists) && updates["slug"] == base {
		log.Warn("slug taken concurrently, retrying with suffix", slog.String("slug", base))
		post.Slug = slug.WithID(base, post.ID)
		updates["slug"] = post.Slug
		err = s.repo.UpdatePostFields(ctx, postID, updates)
	}
	if err != nil {
		log.Error("failed to update post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post updated", slog.Int("fields", len(updates)))

	return post, nil
}

// PublishPost marks the post published and queues the publish webhook.
// Publishing an already published post refreshes its timestamps and sends
// the webhook again.
func (s *PostService) PublishPost(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	const op = "post_service.PublishPost"
	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", postID.String()),
	)

	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		log.Warn("failed to get post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	err = s.repo.UpdatePostFields(ctx, postID, map[string]interface{}{
		"status":       models.PostStatusPublished,
		"published_at": &now,
		"updated_at":   now,
	})
	if err != nil {
		log.Error("failed to publish post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	post.Status = models.PostStatusPublished
	post.PublishedAt = &now
	post.UpdatedAt = now

	log.Info("post published", slog.String("slug", post.Slug))

	s.enqueueWebhook(s.WebhookPayload(*post))

	return post, nil
}

// UnpublishPost returns a published post to draft. published_at keeps its
// last value. A draft is returned unchanged without a write.
func (s *PostService) UnpublishPost(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	const op = "post_service.UnpublishPost"
	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", postID.String()),
	)

	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		log.Warn("failed to get post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !post.IsPublished() {
		log.Debug("post already draft")
		return post, nil
	}

	now := s.now()
	err = s.repo.UpdatePostFields(ctx, postID, map[string]interface{}{
		"status":     models.PostStatusDraft,
		"updated_at": now,
	})
	if err != nil {
		log.Error("failed to unpublish post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	post.Status = models.PostStatusDraft
	post.UpdatedAt = now

	log.Info("post unpublished")

	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	const op = "post_service.DeletePost"
	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", postID.String()),
	)

	if err := s.repo.DeletePost(ctx, postID); err != nil {
		log.Warn("failed to delete post", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post deleted")

	return nil
}

func (s *PostService) GetPost(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	const op = "post_service.GetPost"

	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

// ListAllPosts returns every post, drafts included, newest first.
func (s *PostService) ListAllPosts(ctx context.Context) ([]models.Post, error) {
	const op = "post_service.ListAllPosts"

	posts, _, err := s.repo.ListPosts(ctx, models.PostFilter{})
	if err != nil {
		s.log.Error("failed to list posts", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return posts, nil
}

func (s *PostService) ListPublishedPosts(ctx context.Context, filter models.PostFilter) (models.PostPage, error) {
	const op = "post_service.ListPublishedPosts"

	filter.Status = models.PostStatusPublished
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Clamp()

	posts, total, err := s.repo.ListPosts(ctx, filter)
	if err != nil {
		s.log.Error("failed to list published posts", slog.String("op", op), sl.Err(err))
		return models.PostPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.NewPostPage(posts, total, filter.Page, filter.PerPage), nil
}

func (s *PostService) GetPublishedPost(ctx context.Context, slug string) (*models.Post, error) {
	const op = "post_service.GetPublishedPost"

	post, err := s.repo.GetPublishedPostBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

func (s *PostService) TagCounts(ctx context.Context) ([]models.TagCount, error) {
	const op = "post_service.TagCounts"

	counts, err := s.repo.TagCounts(ctx)
	if err != nil {
		s.log.Error("failed to count tags", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return counts, nil
}

// PublicURL is the address of a published post on the site.
func (s *PostService) PublicURL(postSlug string) string {
	return s.publicBaseURL + "/blog/" + postSlug
}

func (s *PostService) WebhookPayload(post models.Post) models.WebhookPayload {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}

	return models.WebhookPayload{
		Title:       post.Title,
		Excerpt:     post.Summary,
		URL:         s.PublicURL(post.Slug),
		ImageURL:    post.HeroImage,
		Tags:        tags,
		Language:    post.Language,
		PublishedAt: post.PublishedAt,
	}
}

func (s *PostService) enqueueWebhook(payload models.WebhookPayload) {
	const op = "post_service.enqueueWebhook"

	s.dispatcher.Enqueue(webhookTask, func(ctx context.Context) {
		if err := s.webhook.Send(ctx, payload); err != nil {
			s.log.Error("publish webhook not delivered",
				slog.String("op", op),
				slog.String("url", payload.URL),
				sl.Err(err),
			)
		}
	})
}

// uniqueSlug returns base, or base with an id suffix when another post holds it.
func (s *PostService) uniqueSlug(ctx context.Context, base string, postID uuid.UUID) (string, error) {
	exists, err := s.repo.SlugExists(ctx, base, postID)
	if err != nil {
		return "", err
	}

	if exists {
		return slug.WithID(base, postID), nil
	}

	return base, nil
}
