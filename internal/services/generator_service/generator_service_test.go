package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"psytech/internal/domain/models"
	"psytech/internal/lib/ai"
	"psytech/internal/lib/logger/handlers/slogdiscard"
	"psytech/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Complete(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

type MockImageGenerator struct {
	mock.Mock
}

func (m *MockImageGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockPostPublisher struct {
	mock.Mock
}

func (m *MockPostPublisher) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostPublisher) PublishPost(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

const draftJSON = `{
  "title": "Why Reliability Matters",
  "summary": "A short look at test reliability.",
  "content": "## Reliability\n\nConsistent scores are the foundation of any assessment.",
  "tags": ["psychometrics", "reliability"],
  "seo_title": "Test Reliability Explained",
  "seo_description": "What reliability means for psychometric tests."
}`

func newTestGenerator(text *MockTextGenerator, images *MockImageGenerator, posts *MockPostPublisher, autoPublish bool) *GeneratorService {
	var img ai.ImageGenerator
	if images != nil {
		img = images
	}

	s := NewGeneratorService(
		slogdiscard.NewDiscardLogger(),
		text,
		img,
		posts,
		worker.Sync{},
		GeneratorConfig{AutoPublish: autoPublish},
	)
	s.pick = func(int) int { return 0 }

	return s
}

func TestGeneratorService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("fenced json creates ai draft", func(t *testing.T) {
		text := new(MockTextGenerator)
		images := new(MockImageGenerator)
		posts := new(MockPostPublisher)
		s := newTestGenerator(text, images, posts, false)

		text.On("Complete", ctx, systemPrompt, mock.MatchedBy(func(user string) bool {
			return strings.Contains(user, topics[0]) && strings.Contains(user, "Language: en")
		})).Return("```json\n"+draftJSON+"\n```", nil).Once()
		images.On("GenerateImage", ctx, mock.MatchedBy(func(p string) bool {
			return strings.Contains(p, "Why Reliability Matters")
		})).Return("data:image/png;base64,aGk=", nil).Once()

		stored := &models.Post{ID: uuid.New(), Slug: "why-reliability-matters-en", AIGenerated: true}
		posts.On("CreatePost", ctx, mock.MatchedBy(func(in models.PostInput) bool {
			return in.AIGenerated &&
				in.Title == "Why Reliability Matters" &&
				in.Language == "en" &&
				in.SEO != nil && in.SEO.MetaTitle == "Test Reliability Explained" &&
				in.HeroImage != nil && *in.HeroImage == "data:image/png;base64,aGk="
		})).Return(stored, nil).Once()

		post, err := s.Generate(ctx)
		require.NoError(t, err)
		assert.Equal(t, stored, post)
		posts.AssertNotCalled(t, "PublishPost", mock.Anything, mock.Anything)
		text.AssertExpectations(t)
		images.AssertExpectations(t)
	})

	t.Run("auto publish", func(t *testing.T) {
		text := new(MockTextGenerator)
		posts := new(MockPostPublisher)
		s := newTestGenerator(text, nil, posts, true)

		stored := &models.Post{ID: uuid.New()}
		published := &models.Post{ID: stored.ID, Status: models.PostStatusPublished}

		text.On("Complete", ctx, mock.Anything, mock.Anything).Return(draftJSON, nil).Once()
		posts.On("CreatePost", ctx, mock.MatchedBy(func(in models.PostInput) bool {
			return in.HeroImage == nil
		})).Return(stored, nil).Once()
		posts.On("PublishPost", ctx, stored.ID).Return(published, nil).Once()

		post, err := s.Generate(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusPublished, post.Status)
		posts.AssertExpectations(t)
	})

	t.Run("image failure is tolerated", func(t *testing.T) {
		text := new(MockTextGenerator)
		images := new(MockImageGenerator)
		posts := new(MockPostPublisher)
		s := newTestGenerator(text, images, posts, false)

		text.On("Complete", ctx, mock.Anything, mock.Anything).Return(draftJSON, nil).Once()
		images.On("GenerateImage", ctx, mock.Anything).Return("", errors.New("quota exceeded")).Once()
		posts.On("CreatePost", ctx, mock.MatchedBy(func(in models.PostInput) bool {
			return in.HeroImage == nil
		})).Return(&models.Post{ID: uuid.New()}, nil).Once()

		_, err := s.Generate(ctx)
		require.NoError(t, err)
		posts.AssertExpectations(t)
	})

	t.Run("invalid json leaves store untouched", func(t *testing.T) {
		text := new(MockTextGenerator)
		posts := new(MockPostPublisher)
		s := newTestGenerator(text, nil, posts, true)

		text.On("Complete", ctx, mock.Anything, mock.Anything).Return("Sure! Here is your post: {", nil).Once()

		post, err := s.Generate(ctx)
		assert.Nil(t, post)
		assert.ErrorIs(t, err, ErrInvalidDraft)
		posts.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
	})

	t.Run("text failure", func(t *testing.T) {
		text := new(MockTextGenerator)
		posts := new(MockPostPublisher)
		s := newTestGenerator(text, nil, posts, false)

		text.On("Complete", ctx, mock.Anything, mock.Anything).Return("", errors.New("timeout")).Once()

		_, err := s.Generate(ctx)
		assert.Error(t, err)
		posts.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
	})
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) SaveDataURI(ctx context.Context, dataURI, subPath, name string) (string, error) {
	args := m.Called(ctx, dataURI, subPath, name)
	return args.String(0), args.Error(1)
}

func TestGeneratorService_ImageStore(t *testing.T) {
	ctx := context.Background()

	t.Run("data uri is stored", func(t *testing.T) {
		text := new(MockTextGenerator)
		images := new(MockImageGenerator)
		posts := new(MockPostPublisher)
		store := new(MockImageStore)
		s := newTestGenerator(text, images, posts, false).WithImageStore(store)

		text.On("Complete", ctx, mock.Anything, mock.Anything).Return(draftJSON, nil).Once()
		images.On("GenerateImage", ctx, mock.Anything).Return("data:image/png;base64,aGk=", nil).Once()
		store.On("SaveDataURI", ctx, "data:image/png;base64,aGk=", "hero", mock.AnythingOfType("string")).
			Return("http://localhost:8080/uploads/hero/x.png", nil).Once()
		posts.On("CreatePost", ctx, mock.MatchedBy(func(in models.PostInput) bool {
			return in.HeroImage != nil && *in.HeroImage == "http://localhost:8080/uploads/hero/x.png"
		})).Return(&models.Post{ID: uuid.New()}, nil).Once()

		_, err := s.Generate(ctx)
		require.NoError(t, err)
		store.AssertExpectations(t)
		posts.AssertExpectations(t)
	})

	t.Run("remote url is kept", func(t *testing.T) {
		text := new(MockTextGenerator)
		images := new(MockImageGenerator)
		posts := new(MockPostPublisher)
		store := new(MockImageStore)
		s := newTestGenerator(text, images, posts, false).WithImageStore(store)

		text.On("Complete", ctx, mock.Anything, mock.Anything).Return(draftJSON, nil).Once()
		images.On("GenerateImage", ctx, mock.Anything).Return("https://cdn.example/hero.png", nil).Once()
		posts.On("CreatePost", ctx, mock.MatchedBy(func(in models.PostInput) bool {
			return in.HeroImage != nil && *in.HeroImage == "https://cdn.example/hero.png"
		})).Return(&models.Post{ID: uuid.New()}, nil).Once()

		_, err := s.Generate(ctx)
		require.NoError(t, err)
		store.AssertNotCalled(t, "SaveDataURI", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGeneratorService_Disabled(t *testing.T) {
	s := NewGeneratorService(slogdiscard.NewDiscardLogger(), nil, nil, new(MockPostPublisher), worker.Sync{}, GeneratorConfig{})

	assert.False(t, s.Enabled())
	assert.ErrorIs(t, s.Enqueue(), ErrGeneratorDisabled)

	_, err := s.Generate(context.Background())
	assert.ErrorIs(t, err, ErrGeneratorDisabled)
}

func TestGeneratorService_Enqueue(t *testing.T) {
	text := new(MockTextGenerator)
	posts := new(MockPostPublisher)
	s := newTestGenerator(text, nil, posts, false)

	text.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(draftJSON, nil).Once()
	posts.On("CreatePost", mock.Anything, mock.Anything).Return(&models.Post{ID: uuid.New()}, nil).Once()

	require.NoError(t, s.Enqueue())
	posts.AssertExpectations(t)
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `{"a":1}`, want: `{"a":1}`},
		{in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: "```\n{\"a\":1}\n```\n", want: `{"a":1}`},
		{in: "  \n```json{\"a\":1}```", want: `{"a":1}`},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			assert.Equal(t, tt.want, stripFence(tt.in))
		})
	}
}
