package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"psytech/internal/domain/models"
	"psytech/internal/lib/logger/handlers/slogdiscard"
	"psytech/internal/storage"
	"psytech/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) SavePost(ctx context.Context, post models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepository) GetPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetPublishedPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) UpdatePostFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *MockPostRepository) DeletePost(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPostRepository) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Post), args.Int(1), args.Error(2)
}

func (m *MockPostRepository) TagCounts(ctx context.Context) ([]models.TagCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.TagCount), args.Error(1)
}

type MockWebhookSender struct {
	mock.Mock
}

func (m *MockWebhookSender) Send(ctx context.Context, payload models.WebhookPayload) error {
	return m.Called(ctx, payload).Error(0)
}

const testBaseURL = "https://psytech.example/"

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newTestService(repo *MockPostRepository, webhook *MockWebhookSender) *PostService {
	s := NewPostService(slogdiscard.NewDiscardLogger(), repo, worker.Sync{}, webhook, testBaseURL)
	s.now = func() time.Time { return fixedNow }
	return s
}

func validInput() models.PostInput {
	return models.PostInput{
		Title:    "Test Blog Post",
		Summary:  "A summary that is long enough.",
		Content:  strings.Repeat("Psychometric assessments help teams hire better. ", 3),
		Tags:     []string{"hr", " assessment ", "hr", ""},
		Language: "en",
	}
}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("slug from title and language", func(t *testing.T) {
		repo := new(MockPostRepository)
		s := newTestService(repo, new(MockWebhookSender))

		repo.On("SlugExists", ctx, "test-blog-post-en", mock.AnythingOfType("uuid.UUID")).Return(false, nil).Once()
		repo.On("SavePost", ctx, mock.AnythingOfType("models.Post")).Return(nil).Once()

		post, err := s.CreatePost(ctx, validInput())
		require.NoError(t, err)

		assert.Equal(t, "test-blog-post-en", post.Slug)
		assert.Equal(t, models.PostStatusDraft, post.Status)
		assert.Equal(t, []string{"hr", "assessment"}, post.Tags)
		assert.Nil(t, post.PublishedAt)
		assert.False(t, post.AIGenerated)
		assert.Equal(t, fixedNow, post.CreatedAt)
		assert.NotEqual(t, uuid.Nil, post.ID)
		repo.AssertExpectations(t)
	})

	t.Run("existing slug gets id suffix", func(t *testing.T) {
		repo := new(MockPostRepository)
		s := newTestService(repo, new(MockWebhookSender))

		repo.On("SlugExists", ctx, "test-blog-post-en", mock.Anything).Return(true, nil).Once()
		repo.On("SavePost", ctx, mock.Anything).Return(nil).Once()

		post, err := s.CreatePost(ctx, validInput())
		require.NoError(t, err)

		assert.Equal(t, "test-blog-post-en-"+post.ID.String()[:8], post.Slug)
	})

	t.Run("identical titles yield distinct slugs", func(t *testing.T) {
		repo := new(MockPostRepository)
		s := newTestService(repo, new(MockWebhookSender))

		repo.On("SlugExists", ctx, "test-blog-post-en", mock.Anything).Return(false, nil).Once()
		repo.On("SlugExists", ctx, "test-blog-post-en", mock.Anything).Return(true, nil).Once()
		repo.On("SavePost", ctx, mock.Anything).Return(nil).Twice()

		first, err := s.CreatePost(ctx, validInput())
		require.NoError(t, err)
		second, err := s.CreatePost(ctx, validInput())
		require.NoError(t, err)

		assert.NotEqual(t, first.Slug, second.Slug)
	})

	t.Run("lost insert race retries with suffix", func(t *testing.T) {
		repo := new(MockPostRepository)
		s := newTestService(repo, new(MockWebhookSender))

		repo.On("SlugExists", ctx, "test-blog-post-en", mock.Anything).Return(false, nil).Once()
		repo.On("SavePost", ctx, mock.MatchedBy(func(p models.Post) bool {
			return p.Slug == "test-blog-post-en"
		})).Return(storage.ErrSlugExists).Once()
		repo.On("SavePost", ctx, mock.MatchedBy(func(p models.Post) bool {
			return strings.HasPrefix(p.Slug, "test-blog-post-en-")
		})).Return(nil).Once()

		post, err := s.CreatePost(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, "test-blog-post-en-"+post.ID.String()[:8], post.Slug)
		repo.AssertExpectations(t)
	})

	t.Run("language defaults to en", func(t *testing.T) {
		repo := new(MockPostRepository)
		s := newTestService(repo, new(MockWebhookSender))

		repo.On("SlugExists", ctx, "test-blog-post-en", mock.Anything).Return(false, nil).Once()
		repo.On("SavePost", ctx, mock.Anything).Return(nil).Once()

		in := validInput()
		in.Language = ""
		post, err := s.CreatePost(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "en", post.Language)
	})

	tests := []struct {
		name   string
		mutate func(in *models.PostInput)
		field  string
	}{
		{name: "short title", mutate: func(in *models.PostInput) { in.Title = "Hi" }, field: "title"},
		{name: "short summary", mutate: func(in *models.PostInput) { in.Summary = "short" }, field: "summary"},
		{name: "short content", mutate: func(in *models.PostInput) { in.Content = "too short" }, field: "content"},
		{name: "long language", mutate: func(in *models.PostInput) { in.Language = "english" }, field: "language"},
		{name: "too many tags", mutate: func(in *models.PostInput) {
			in.Tags = nil
			for i := 0; i < 21; i++ {
				in.Tags = append(in.Tags, uuid.NewString())
			}
		}, field: "tags"},
		{name: "long seo title", mutate: func(in *models.PostInput) {
			in.SEO = &models.SEO{MetaTitle: strings.Repeat("x", 71)}
		}, field: "seo.meta_title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPostRepository)
			s := newTestService(repo, new(MockWebhookSender))

			in := validInput()
			tt.mutate(&in)

			post, err := s.CreatePost(ctx, in)
			assert.Nil(t, post)

			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
			repo.AssertNotCalled(t, "SavePost", mock.Anything, mock.Anything)
		})
	}
}

func existingPost() *models.Post {
	created := fixedNow.Add(-24 * time.Hour)
	return &models.Post{
		ID:        uuid.MustParse("b3c87987-ba25-4c7b-8070-f74ef402fe7c"),
		Slug:      "test-blog-post-en",
		Title:     "Test Blog Post",
		Summary:   "A summary that is long enough.",
		Content:   strings.Repeat("content ", 10),
		Tags:      []string{"hr"},
		Language:  "en",
		Status:    models.PostStatusDraft,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestPostService_UpdatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("title change regenerates slug", func(t *testing.T) {
		repo := new(MockPostRepository)
		s := newTestService(repo, new(MockWebhookSender))
		post := existingPost()
		title := "A Brand New Title"

		repo.On("GetPostByID", ctx, post.ID).Return(post, nil).Once()
		repo.On("SlugExists", ctx, "a-brand-new-title-en", post.ID).Return(false, nil).Once()
		repo.On("UpdatePostFields", ctx, post.ID, map[string]interface{}{
			"title":      title,
			"slug":       "a-brand-new-title-en",
			"updated_at": fixedNow,
		}).Return(nil).Once()

		updated, err := s.UpdatePost(ctx, post.ID, models.PostPatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "a-brand-new-title-en", updated.Slug)
		assert.Equal(t, fixedNow, updated.UpdatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("language change regenerates slug with suffix on collision", func(t *testing.T) {
		repo := new(MockPostRepository)
		s := newTestService(repo, new(MockWebhookSender))
		post := existingPost()
		lang := "de"

		repo.On("GetPostByID", ctx, post.ID).Return(post, nil).Once()
		repo.On("SlugExists", ctx, "test-blog-post-de", post.ID).Return(true, nil).Once()
		repo.On("UpdatePostFields", ctx, post.ID, mock.Anything).Return(nil).Once()

		updated, err := s.UpdatePost(ctx, post.ID, models.PostPatch{Language: &lang})
		require.NoError(t, err)
		assert.Equal(t, "test-blog-post-de-b3c87987", updated.Slug)
	})

	t.Run("summary only keeps slug", func(t *testing.T) {
		repo := new(MockPostRepository)
		s := newTestService(repo, new(MockWebhookSender))
		post := existingPost()
		summary := "A different summary for the post."

		repo.On("GetPostByID", ctx, post.ID).Return(post, nil).Once()
		repo.On("UpdatePostFields", ctx, post.ID, map[string]interface{}{
			"summary":    summary,
			"updated_at": fixedNow,
		}).Return(nil).Once()

		updated, err := s.UpdatePost(ctx, post.ID, models.PostPatch{Summary: &summary})
		require.NoError(t, err)
		assert.Equal(t, "test-blog-post-en", updated.Slug)
		repo.AssertNotCalled(t, "SlugExists", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockPostRepository)
		s := newTestService(repo, new(MockWebhookSender))
		id := uuid.New()
		summary := "A different summary for the post."

		repo.On("GetPostByID", ctx, id).Return(nil, storage.ErrPostNotFound).Once()

		_, err := s.UpdatePost(ctx, id, models.PostPatch{Summary: &summary})
		assert.ErrorIs(t, err, storage.ErrPostNotFound)
	})

	t.Run("invalid patch", func(t *testing.T) {
		repo := new(MockPostRepository)
		s := newTestService(repo, new(MockWebhookSender))
		content := "short"

		_, err := s.UpdatePost(ctx, uuid.New(), models.PostPatch{Content: &content})

		var verr *models.ValidationError
		assert.True(t, errors.As(err, &verr))
		repo.AssertNotCalled(t, "GetPostByID", mock.Anything, mock.Anything)
	})
}

func TestPostService_PublishPost(t *testing.T) {
	ctx := context.Background()

	t.Run("sets timestamps and sends webhook", func(t *testing.T) {
		repo := new(MockPostRepository)
		webhook := new(MockWebhookSender)
		s := newTestService(repo, webhook)
		post := existingPost()

		repo.On("GetPostByID", ctx, post.ID).Return(post, nil).Once()
		repo.On("UpdatePostFields", ctx, post.ID, mock.MatchedBy(func(u map[string]interface{}) bool {
			at, ok := u["published_at"].(*time.Time)
			return ok && at.Equal(fixedNow) && u["status"] == models.PostStatusPublished && u["updated_at"] == fixedNow
		})).Return(nil).Once()
		webhook.On("Send", mock.Anything, mock.MatchedBy(func(p models.WebhookPayload) bool {
			return p.URL == "https://psytech.example/blog/test-blog-post-en" &&
				p.Title == "Test Blog Post" &&
				p.Excerpt == post.Summary &&
				p.PublishedAt != nil && p.PublishedAt.Equal(fixedNow)
		})).Return(nil).Once()

		published, err := s.PublishPost(ctx, post.ID)
		require.NoError(t, err)

		assert.Equal(t, models.PostStatusPublished, published.Status)
		require.NotNil(t, published.PublishedAt)
		assert.Equal(t, fixedNow, *published.PublishedAt)
		repo.AssertExpectations(t)
		webhook.AssertExpectations(t)
	})

	t.Run("webhook failure does not fail publish", func(t *testing.T) {
		repo := new(MockPostRepository)
		webhook := new(MockWebhookSender)
		s := newTestService(repo, webhook)
		post := existingPost()

		repo.On("GetPostByID", ctx, post.ID).Return(post, nil).Once()
		repo.On("UpdatePostFields", ctx, post.ID, mock.Anything).Return(nil).Once()
		webhook.On("Send", mock.Anything, mock.Anything).Return(errors.New("500 three times")).Once()

		published, err := s.PublishPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusPublished, published.Status)
	})

	t.Run("republish sends webhook again", func(t *testing.T) {
		repo := new(MockPostRepository)
		webhook := new(MockWebhookSender)
		s := newTestService(repo, webhook)
		post := existingPost()
		earlier := fixedNow.Add(-time.Hour)
		post.Status = models.PostStatusPublished
		post.PublishedAt = &earlier

		repo.On("GetPostByID", ctx, post.ID).Return(post, nil).Once()
		repo.On("UpdatePostFields", ctx, post.ID, mock.Anything).Return(nil).Once()
		webhook.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

		published, err := s.PublishPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, fixedNow, *published.PublishedAt)
		webhook.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockPostRepository)
		webhook := new(MockWebhookSender)
		s := newTestService(repo, webhook)
		id := uuid.New()

		repo.On("GetPostByID", ctx, id).Return(nil, storage.ErrPostNotFound).Once()

		_, err := s.PublishPost(ctx, id)
		assert.ErrorIs(t, err, storage.ErrPostNotFound)
		webhook.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestPostService_UnpublishPost(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps published_at", func(t *testing.T) {
		repo := new(MockPostRepository)
		s := newTestService(repo, new(MockWebhookSender))
		post := existingPost()
		earlier := fixedNow.Add(-time.Hour)
		post.Status = models.PostStatusPublished
		post.PublishedAt = &earlier

		repo.On("GetPostByID", ctx, post.ID).Return(post, nil).Once()
		repo.On("UpdatePostFields", ctx, post.ID, map[string]interface{}{
			"status":     models.PostStatusDraft,
			"updated_at": fixedNow,
		}).Return(nil).Once()

		draft, err := s.UnpublishPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusDraft, draft.Status)
		require.NotNil(t, draft.PublishedAt)
		assert.Equal(t, earlier, *draft.PublishedAt)
		repo.AssertExpectations(t)
	})

	t.Run("draft is a no-op", func(t *testing.T) {
		repo := new(MockPostRepository)
		s := newTestService(repo, new(MockWebhookSender))
		post := existingPost()

		repo.On("GetPostByID", ctx, post.ID).Return(post, nil).Once()

		draft, err := s.UnpublishPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.UpdatedAt, draft.UpdatedAt)
		repo.AssertNotCalled(t, "UpdatePostFields", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPostRepository)
	s := newTestService(repo, new(MockWebhookSender))
	id := uuid.New()

	repo.On("DeletePost", ctx, id).Return(nil).Once()
	repo.On("DeletePost", ctx, id).Return(storage.ErrPostNotFound).Once()

	require.NoError(t, s.DeletePost(ctx, id))
	assert.ErrorIs(t, s.DeletePost(ctx, id), storage.ErrPostNotFound)
}

func TestPostService_ListPublishedPosts(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPostRepository)
	s := newTestService(repo, new(MockWebhookSender))

	posts := []models.Post{*existingPost(), *existingPost(), *existingPost(), *existingPost(), *existingPost()}
	repo.On("ListPosts", ctx, models.PostFilter{
		Status:   models.PostStatusPublished,
		Language: "en",
		Query:    "anxiety",
		Page:     1,
		PerPage:  5,
	}).Return(posts, 12, nil).Once()

	page, err := s.ListPublishedPosts(ctx, models.PostFilter{Language: "en", Query: "  anxiety ", Page: 0, PerPage: 5})
	require.NoError(t, err)

	assert.LessOrEqual(t, len(page.Posts), 5)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	repo.AssertExpectations(t)
}

func TestPostService_ListAllPosts(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPostRepository)
	s := newTestService(repo, new(MockWebhookSender))

	repo.On("ListPosts", ctx, models.PostFilter{}).Return([]models.Post{*existingPost()}, 1, nil).Once()

	posts, err := s.ListAllPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}
