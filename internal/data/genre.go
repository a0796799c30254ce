package data

// Genre is a category a book may be filed under.
type Genre struct {
	ID   string `json:"id"   bson:"_id"`
	Name string `json:"name" bson:"name"` // unique across genres
}

// GetID returns the store-assigned identifier.
func (g Genre) GetID() string { return g.ID }

// WithID returns a copy of g carrying id.
func (g Genre) WithID(id string) Genre {
	g.ID = id
	return g
}

// URL is the detail page location of the genre.
func (g Genre) URL() string { return "/catalog/genre/" + g.ID }
