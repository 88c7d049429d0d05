package models

// GeoPoint is a geographic coordinate.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Specialist represents a medical specialist as served by the backend. The
// client never mutates these; each record is a read-only projection.
type Specialist struct {
	ID         string   `bson:"_id" json:"_id"`
	Name       string   `bson:"name" json:"name"`
	Email      string   `bson:"email" json:"email"`
	Phone      string   `bson:"phone" json:"phone"`
	Specialty  string   `bson:"specialty" json:"specialty"`
	City       string   `bson:"city" json:"city"`
	Location   GeoPoint `bson:"location" json:"location"`
	Experience int      `bson:"experience" json:"experience"` // years of practice
	Rating     float64  `bson:"rating" json:"rating"`         // 0..5
	Available  bool     `bson:"available" json:"available"`
	Contact    string   `bson:"contact" json:"contact"`

	// Distance is set by the backend only when the query carried an origin.
	Distance *float64 `bson:"-" json:"distance,omitempty"`
}

// SpecialistFilter is the query side of GET /specialists. An origin is
// present only when both Lat and Lng are set.
type SpecialistFilter struct {
	Lat         *float64
	Lng         *float64
	MaxDistance float64
	City        string
	Specialty   string
}

// HasOrigin reports whether the filter carries a search origin.
func (f SpecialistFilter) HasOrigin() bool {
	return f.Lat != nil && f.Lng != nil
}
