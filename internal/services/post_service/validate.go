package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"psytech/internal/domain/models"
)

const (
	titleMin       = 3
	titleMax       = 200
	summaryMin     = 10
	summaryMax     = 500
	contentMin     = 50
	languageMin    = 2
	languageMax    = 5
	tagsMax        = 20
	seoTitleMax    = 70
	seoDescription = 170
)

func checkLen(verr *models.ValidationError, field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	switch {
	case n < min:
		verr.Add(field, fmt.Sprintf("must be at least %d characters", min))
	case max > 0 && n > max:
		verr.Add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

func checkTags(verr *models.ValidationError, tags []string) {
	if len(tags) > tagsMax {
		verr.Add("tags", fmt.Sprintf("must contain at most %d tags", tagsMax))
	}
}

func checkSEO(verr *models.ValidationError, seo *models.SEO) {
	if seo == nil {
		return
	}
	checkLen(verr, "seo.meta_title", seo.MetaTitle, 0, seoTitleMax)
	checkLen(verr, "seo.meta_description", seo.MetaDescription, 0, seoDescription)
}

func validateInput(in models.PostInput) error {
	verr := models.NewValidationError()

	checkLen(verr, "title", in.Title, titleMin, titleMax)
	checkLen(verr, "summary", in.Summary, summaryMin, summaryMax)
	checkLen(verr, "content", in.Content, contentMin, 0)
	checkLen(verr, "language", in.Language, languageMin, languageMax)
	checkTags(verr, in.Tags)
	checkSEO(verr, in.SEO)

	return verr.OrNil()
}

func validatePatch(p models.PostPatch) error {
	verr := models.NewValidationError()

	if p.Title != nil {
		checkLen(verr, "title", *p.Title, titleMin, titleMax)
	}
	if p.Summary != nil {
		checkLen(verr, "summary", *p.Summary, summaryMin, summaryMax)
	}
	if p.Content != nil {
		checkLen(verr, "content", *p.Content, contentMin, 0)
	}
	if p.Language != nil {
		checkLen(verr, "language", *p.Language, languageMin, languageMax)
	}
	if p.Tags != nil {
		checkTags(verr, p.Tags)
	}
	checkSEO(verr, p.SEO)

	return verr.OrNil()
}

// normalizeTags trims tags and drops blanks and duplicates, keeping order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))

	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	return out
}

func normalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return models.DefaultLanguage
	}
	return lang
}

func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
