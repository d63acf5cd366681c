package models

import (
	"time"

	"github.com/google/uuid"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

const DefaultLanguage = "en"

// PostSchemaVersion is written to every stored post document.
const PostSchemaVersion = 1

type SEO struct {
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
}

type Post struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Slug        string     `db:"slug" json:"slug"`
	Title       string     `db:"title" json:"title"`
	Summary     string     `db:"summary" json:"summary"`
	Content     string     `db:"content" json:"content"`
	HeroImage   *string    `db:"hero_image" json:"hero_image,omitempty"`
	Tags        []string   `db:"tags" json:"tags"`
	Language    string     `db:"language" json:"language"`
	Status      PostStatus `db:"status" json:"status"`
	SEO         *SEO       `db:"seo" json:"seo,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	ScheduledAt *time.Time `db:"scheduled_at" json:"scheduled_at,omitempty"`
	AIGenerated bool       `db:"ai_generated" json:"ai_generated"`
}

func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// Normalize fills defaults for fields older records may lack.
func (p *Post) Normalize() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Language == "" {
		p.Language = DefaultLanguage
	}
	if p.Status == "" {
		p.Status = PostStatusDraft
	}
}

// PostInput is the validated payload for a new post.
type PostInput struct {
	Title       string
	Summary     string
	Content     string
	HeroImage   *string
	Tags        []string
	Language    string
	SEO         *SEO
	ScheduledAt *time.Time
	AIGenerated bool
}

// PostPatch carries a partial update. Nil fields are left untouched.
type PostPatch struct {
	Title       *string
	Summary     *string
	Content     *string
	HeroImage   *string
	Tags        []string
	Language    *string
	SEO         *SEO
	ScheduledAt *time.Time
}

func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Summary == nil && p.Content == nil && p.HeroImage == nil &&
		p.Tags == nil && p.Language == nil && p.SEO == nil && p.ScheduledAt == nil
}

type PostFilter struct {
	Status   PostStatus
	Language string
	Tag      string
	Query    string
	Page     int
	PerPage  int
}

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Clamp applies the pagination defaults and bounds.
func (f *PostFilter) Clamp() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
}

func (f PostFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}

type PostPage struct {
	Posts      []Post `json:"posts"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	TotalPages int    `json:"total_pages"`
}

func NewPostPage(posts []Post, total, page, perPage int) PostPage {
	if posts == nil {
		posts = []Post{}
	}

	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}

	return PostPage{
		Posts:      posts,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
}

type TagCount struct {
	Tag   string `json:"tag" bson:"_id"`
	Count int    `json:"count" bson:"count"`
}
