package model

import (
	"time"

	"github.com/google/uuid"
)

// Note is the free-text notebook entry of a star.
// There is at most one note per catalogue id.
type Note struct {
	ID          int       `json:"id"`
	RID         uuid.UUID `json:"rid"`
	CatalogueID int64     `json:"catalogue_id"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
