package storage

import "errors"

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrContactNotFound = errors.New("contact submission not found")
	ErrSlugExists      = errors.New("slug already exists")
	ErrNoFieldsToSave  = errors.New("no fields to update")
)
