package model

import "github.com/cockroachdb/apd/v3"

// Neighbor is a star found within the search radius of an origin star
type Neighbor struct {
	DisplayID   string       `json:"display_id"`
	Distance    *apd.Decimal `json:"distance"` // parsecs from the origin
	CatalogueID int64        `json:"catalogue_id"`
}
