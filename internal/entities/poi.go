package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RatingList holds the ordered ratings exactly as supplied by the source
// file. It is persisted as a JSON array in a single text column.
type RatingList []float64

// Value implements driver.Valuer for database serialization.
func (r RatingList) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize ratings: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database deserialization.
func (r *RatingList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*r = nil
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("cannot scan %T into RatingList", value)
	}
}

// Average returns the arithmetic mean of the ratings, or nil when the
// list is empty. nil means "no ratings known", which is distinct from an
// explicit average of zero.
func (r RatingList) Average() *float64 {
	if len(r) == 0 {
		return nil
	}
	var sum float64
	for _, v := range r {
		sum += v
	}
	avg := sum / float64(len(r))
	return &avg
}

// PointOfInterest is the canonical record every source format normalizes
// into. ID is assigned by the store on first insert and never changes;
// ExternalID comes from the source file and is the upsert key.
type PointOfInterest struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ExternalID string `gorm:"uniqueIndex;size:256" json:"external_id"`
	Name       string `gorm:"index;size:512" json:"name"`
	Category   string `gorm:"index;size:100" json:"category"`

	// Latitude and Longitude are optional but always present together.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Ratings RatingList `gorm:"type:text" json:"ratings"`

	// AverageRating is derived from Ratings and recomputed on every
	// import that touches this record. nil when no ratings are known.
	AverageRating *float64 `json:"average_rating"`

	Description string `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PointOfInterest) TableName() string {
	return "points_of_interest"
}
