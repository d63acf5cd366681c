package models

import (
	"time"

	"github.com/google/uuid"
)

// StatusCheck records that a client pinged the API.
type StatusCheck struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ClientName string    `db:"client_name" json:"client_name"`
	Timestamp  time.Time `db:"timestamp" json:"timestamp"`
}
