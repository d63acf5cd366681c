package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"psytech/internal/domain/models"
	"psytech/internal/lib/ai"
	"psytech/internal/lib/logger/sl"
	"psytech/internal/metrics"
	"psytech/internal/worker"

	"github.com/google/uuid"
)

const generateTask = "ai_post_generation"

var (
	ErrGeneratorDisabled = errors.New("ai generator is not configured")
	ErrInvalidDraft      = errors.New("ai response is not a valid draft")
)

var topics = []string{
	"How validated psychometric assessments reduce hiring bias",
	"Measuring burnout risk in healthcare teams",
	"What reliability and validity mean for a personality test",
	"Using cognitive assessments in university admissions",
	"Early screening for anxiety and depression in primary care",
	"Data privacy in digital mental health tools",
	"Building resilient teams with evidence-based assessments",
	"The difference between clinical and organizational psychometrics",
	"How adaptive testing shortens assessments without losing accuracy",
	"Cross-cultural fairness in psychological testing",
	"Tracking therapy outcomes with standardized measures",
	"AI-assisted scoring and where human review still matters",
}

const systemPrompt = `You are a content writer for PsyTech, a company that builds psychometric assessment software for clinics, hospitals, universities and employers.
Write accurate, evidence-informed articles for professionals. Never give individual medical advice.
Respond with a single JSON object and nothing else.`

const userPromptTemplate = `Write a blog post about: %s

Language: %s

Return JSON with exactly these fields:
{
  "title": "at most 80 characters",
  "summary": "at most 200 characters",
  "content": "600-800 words of markdown with ## subheadings",
  "tags": ["3 to 5 lowercase tags"],
  "seo_title": "at most 60 characters",
  "seo_description": "at most 155 characters"
}`

const imagePromptTemplate = `Editorial illustration for an article titled "%s". Clean, modern, calm palette of blues and soft greens, abstract shapes suggesting the human mind and data, no text, no logos, no faces.`

type PostPublisher interface {
	CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error)
	PublishPost(ctx context.Context, postID uuid.UUID) (*models.Post, error)
}

// ImageStore persists a generated data: URI image and returns its public URL.
type ImageStore interface {
	SaveDataURI(ctx context.Context, dataURI, subPath, name string) (string, error)
}

type GeneratorConfig struct {
	AutoPublish bool
	Language    string
}

// GeneratorService drafts blog posts with a language model. text may be nil,
// in which case the generator is disabled. images is optional.
type GeneratorService struct {
	log        *slog.Logger
	text       ai.TextGenerator
	images     ai.ImageGenerator
	store      ImageStore
	posts      PostPublisher
	dispatcher worker.Dispatcher
	cfg        GeneratorConfig
	pick       func(n int) int
}

func NewGeneratorService(
	log *slog.Logger,
	text ai.TextGenerator,
	images ai.ImageGenerator,
	posts PostPublisher,
	dispatcher worker.Dispatcher,
	cfg GeneratorConfig,
) *GeneratorService {
	if cfg.Language == "" {
		cfg.Language = models.DefaultLanguage
	}

	return &GeneratorService{
		log:        log,
		text:       text,
		images:     images,
		posts:      posts,
		dispatcher: dispatcher,
		cfg:        cfg,
		pick:       rand.Intn,
	}
}

// WithImageStore makes generated images land in store instead of being
// kept inline on the post.
func (s *GeneratorService) WithImageStore(store ImageStore) *GeneratorService {
	s.store = store
	return s
}

func (s *GeneratorService) Enabled() bool {
	return s.text != nil
}

func (s *GeneratorService) AutoPublish() bool {
	return s.cfg.AutoPublish
}

// Enqueue schedules one generation run on the dispatcher and returns at once.
func (s *GeneratorService) Enqueue() error {
	const op = "generator_service.Enqueue"

	if !s.Enabled() {
		return fmt.Errorf("%s: %w", op, ErrGeneratorDisabled)
	}

	s.dispatcher.Enqueue(generateTask, func(ctx context.Context) {
		_, _ = s.Generate(ctx)
	})

	return nil
}

// Generate writes one draft about a random topic and stores it. The draft is
// published right away when auto publish is on.
func (s *GeneratorService) Generate(ctx context.Context) (*models.Post, error) {
	const op = "generator_service.Generate"

	if !s.Enabled() {
		return nil, fmt.Errorf("%s: %w", op, ErrGeneratorDisabled)
	}

	topic := topics[s.pick(len(topics))]
	log := s.log.With(
		slog.String("op", op),
		slog.String("topic", topic),
	)

	log.Info("generating ai post")

	raw, err := s.text.Complete(ctx, systemPrompt, fmt.Sprintf(userPromptTemplate, topic, s.cfg.Language))
	if err != nil {
		metrics.AIGenerationsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		log.Error("text generation failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d, err := parseDraft(raw)
	if err != nil {
		metrics.AIGenerationsTotal.WithLabelValues(metrics.ResultParseErr).Inc()
		log.Error("failed to parse ai response", sl.Err(err), slog.String("raw", raw))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	in := models.PostInput{
		Title:       d.Title,
		Summary:     d.Summary,
		Content:     d.Content,
		Tags:        d.Tags,
		Language:    s.cfg.Language,
		AIGenerated: true,
	}
	if d.SEOTitle != "" || d.SEODescription != "" {
		in.SEO = &models.SEO{MetaTitle: d.SEOTitle, MetaDescription: d.SEODescription}
	}

	if s.images != nil {
		img, err := s.images.GenerateImage(ctx, fmt.Sprintf(imagePromptTemplate, d.Title))
		if err != nil {
			log.Warn("image generation failed, continuing without hero image", sl.Err(err))
		} else {
			img = s.persistImage(ctx, log, img)
			in.HeroImage = &img
		}
	}

	post, err := s.posts.CreatePost(ctx, in)
	if err != nil {
		metrics.AIGenerationsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		log.Error("failed to store ai post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.cfg.AutoPublish {
		metrics.AIGenerationsTotal.WithLabelValues(metrics.ResultCreated).Inc()
		log.Info("ai draft created", slog.String("post_id", post.ID.String()))
		return post, nil
	}

	published, err := s.posts.PublishPost(ctx, post.ID)
	if err != nil {
		metrics.AIGenerationsTotal.WithLabelValues(metrics.ResultCreated).Inc()
		log.Error("ai draft created but not published", slog.String("post_id", post.ID.String()), sl.Err(err))
		return post, fmt.Errorf("%s: %w", op, err)
	}

	metrics.AIGenerationsTotal.WithLabelValues(metrics.ResultPublished).Inc()
	log.Info("ai post published", slog.String("slug", published.Slug))

	return published, nil
}

func (s *GeneratorService) persistImage(ctx context.Context, log *slog.Logger, img string) string {
	if s.store == nil || !strings.HasPrefix(img, "data:") {
		return img
	}

	url, err := s.store.SaveDataURI(ctx, img, "hero", uuid.NewString())
	if err != nil {
		log.Warn("failed to store hero image, keeping inline data", sl.Err(err))
		return img
	}

	return url
}

type draft struct {
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	Content        string   `json:"content"`
	Tags           []string `json:"tags"`
	SEOTitle       string   `json:"seo_title"`
	SEODescription string   `json:"seo_description"`
}

func parseDraft(raw string) (draft, error) {
	var d draft

	if err := json.Unmarshal([]byte(stripFence(raw)), &d); err != nil {
		return d, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	if d.Title == "" || d.Content == "" {
		return d, fmt.Errorf("%w: title and content are required", ErrInvalidDraft)
	}

	return d, nil
}

// stripFence removes a surrounding ```json ... ``` block.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}
