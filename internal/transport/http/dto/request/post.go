package request

import (
	"time"

	"psytech/internal/domain/models"
)

type SEORequest struct {
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
}

func (r *SEORequest) toModel() *models.SEO {
	if r == nil {
		return nil
	}
	return &models.SEO{MetaTitle: r.MetaTitle, MetaDescription: r.MetaDescription}
}

// CreatePostRequest is the admin payload for a new draft. Lengths are
// checked by the post service.
type CreatePostRequest struct {
	Title       string      `json:"title" example:"Measuring Burnout in Clinical Teams"`
	Summary     string      `json:"summary"`
	Content     string      `json:"content"`
	HeroImage   *string     `json:"hero_image,omitempty"`
	Tags        []string    `json:"tags"`
	Language    string      `json:"language" example:"en"`
	SEO         *SEORequest `json:"seo,omitempty"`
	ScheduledAt *time.Time  `json:"scheduled_at,omitempty"`
}

func (r CreatePostRequest) ToInput() models.PostInput {
	return models.PostInput{
		Title:       r.Title,
		Summary:     r.Summary,
		Content:     r.Content,
		HeroImage:   r.HeroImage,
		Tags:        r.Tags,
		Language:    r.Language,
		SEO:         r.SEO.toModel(),
		ScheduledAt: r.ScheduledAt,
	}
}

// UpdatePostRequest carries only the fields to change.
type UpdatePostRequest struct {
	Title       *string     `json:"title,omitempty"`
	Summary     *string     `json:"summary,omitempty"`
	Content     *string     `json:"content,omitempty"`
	HeroImage   *string     `json:"hero_image,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Language    *string     `json:"language,omitempty"`
	SEO         *SEORequest `json:"seo,omitempty"`
	ScheduledAt *time.Time  `json:"scheduled_at,omitempty"`
}

func (r UpdatePostRequest) ToPatch() models.PostPatch {
	return models.PostPatch{
		Title:       r.Title,
		Summary:     r.Summary,
		Content:     r.Content,
		HeroImage:   r.HeroImage,
		Tags:        r.Tags,
		Language:    r.Language,
		SEO:         r.SEO.toModel(),
		ScheduledAt: r.ScheduledAt,
	}
}
