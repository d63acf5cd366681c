package models

import "time"

// WebhookPayload is posted to the automation endpoint when a post is published.
type WebhookPayload struct {
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	URL         string     `json:"url"`
	ImageURL    *string    `json:"image_url"`
	Tags        []string   `json:"tags"`
	Language    string     `json:"language"`
	PublishedAt *time.Time `json:"published_at"`
}
