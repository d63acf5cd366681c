package repository

import (
	"time"

	"psytech/internal/domain/models"

	"github.com/google/uuid"
)

// postDocument is the stored shape of a post. Unknown fields are ignored on
// decode and missing ones take their defaults in toModel.
type postDocument struct {
	SchemaVersion int          `bson:"schema_version"`
	ID            string       `bson:"id"`
	Slug          string       `bson:"slug"`
	Title         string       `bson:"title"`
	Summary       string       `bson:"summary"`
	Content       string       `bson:"content"`
	HeroImage     *string      `bson:"hero_image,omitempty"`
	Tags          []string     `bson:"tags"`
	Language      string       `bson:"language"`
	Status        string       `bson:"status"`
	SEO           *seoDocument `bson:"seo,omitempty"`
	CreatedAt     time.Time    `bson:"created_at"`
	UpdatedAt     time.Time    `bson:"updated_at"`
	PublishedAt   *time.Time   `bson:"published_at,omitempty"`
	ScheduledAt   *time.Time   `bson:"scheduled_at,omitempty"`
	AIGenerated   bool         `bson:"ai_generated"`
}

type seoDocument struct {
	MetaTitle       string `bson:"meta_title"`
	MetaDescription string `bson:"meta_description"`
}

func newPostDocument(p models.Post) postDocument {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return postDocument{
		SchemaVersion: models.PostSchemaVersion,
		ID:            p.ID.String(),
		Slug:          p.Slug,
		Title:         p.Title,
		Summary:       p.Summary,
		Content:       p.Content,
		HeroImage:     p.HeroImage,
		Tags:          tags,
		Language:      p.Language,
		Status:        string(p.Status),
		SEO:           newSEODocument(p.SEO),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		PublishedAt:   p.PublishedAt,
		ScheduledAt:   p.ScheduledAt,
		AIGenerated:   p.AIGenerated,
	}
}

func newSEODocument(seo *models.SEO) *seoDocument {
	if seo == nil {
		return nil
	}
	return &seoDocument{MetaTitle: seo.MetaTitle, MetaDescription: seo.MetaDescription}
}

func (d postDocument) toModel() (models.Post, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return models.Post{}, err
	}

	post := models.Post{
		ID:          id,
		Slug:        d.Slug,
		Title:       d.Title,
		Summary:     d.Summary,
		Content:     d.Content,
		HeroImage:   d.HeroImage,
		Tags:        d.Tags,
		Language:    d.Language,
		Status:      models.PostStatus(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		PublishedAt: d.PublishedAt,
		ScheduledAt: d.ScheduledAt,
		AIGenerated: d.AIGenerated,
	}
	if d.SEO != nil {
		post.SEO = &models.SEO{MetaTitle: d.SEO.MetaTitle, MetaDescription: d.SEO.MetaDescription}
	}
	post.Normalize()

	return post, nil
}

type contactDocument struct {
	SchemaVersion int       `bson:"schema_version"`
	ID            string    `bson:"id"`
	Name          string    `bson:"name"`
	Email         string    `bson:"email"`
	Company       *string   `bson:"company,omitempty"`
	CompanyType   string    `bson:"company_type"`
	Message       string    `bson:"message"`
	Phone         *string   `bson:"phone,omitempty"`
	CreatedAt     time.Time `bson:"created_at"`
	Status        string    `bson:"status"`
}

const contactSchemaVersion = 1

func newContactDocument(c models.ContactSubmission) contactDocument {
	return contactDocument{
		SchemaVersion: contactSchemaVersion,
		ID:            c.ID.String(),
		Name:          c.Name,
		Email:         c.Email,
		Company:       c.Company,
		CompanyType:   c.CompanyType,
		Message:       c.Message,
		Phone:         c.Phone,
		CreatedAt:     c.CreatedAt,
		Status:        c.Status,
	}
}

func (d contactDocument) toModel() (models.ContactSubmission, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return models.ContactSubmission{}, err
	}

	status := d.Status
	if status == "" {
		status = models.ContactStatusNew
	}

	return models.ContactSubmission{
		ID:          id,
		Name:        d.Name,
		Email:       d.Email,
		Company:     d.Company,
		CompanyType: d.CompanyType,
		Message:     d.Message,
		Phone:       d.Phone,
		CreatedAt:   d.CreatedAt,
		Status:      status,
	}, nil
}
