package domain

import "time"

// PostStatus tells whether the animal was lost or found.
type PostStatus string

const (
	StatusLost  PostStatus = "lost"
	StatusFound PostStatus = "found"
)

// Valid reports whether s is a known status.
func (s PostStatus) Valid() bool {
	return s == StatusLost || s == StatusFound
}

// Post is a lost or found animal listing.
type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Species     string     `json:"species"`
	Breed       string     `json:"breed"`
	Color       string     `json:"color"`
	Description string     `json:"description,omitempty"`
	Photos      []string   `json:"photos"`
	Suburb      string     `json:"suburb"`
	ContactInfo string     `json:"contact_info"`
	Status      PostStatus `json:"status"`
	UserID      string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// PostFilter narrows a post listing. Empty fields are ignored.
type PostFilter struct {
	Species string
	Breed   string
	Color   string
	Suburb  string
	Status  string
	UserID  string
}

// SpeciesBreeds groups the distinct breeds seen for one species.
type SpeciesBreeds struct {
	Species string   `json:"species"`
	Breeds  []string `json:"breeds"`
}

// distinctFields are the post fields whose distinct values may be listed.
var distinctFields = map[string]bool{
	"species": true,
	"breed":   true,
	"color":   true,
	"suburb":  true,
	"status":  true,
}

// IsDistinctField reports whether the distinct values of field may be listed.
func IsDistinctField(field string) bool {
	return distinctFields[field]
}
