// Package data provides the data models and storage contract
// for the local library catalog.
package data

import "slices"

// Book represents a single catalogued title.
// Author and Genre hold ids of records in the authors and genres collections.
type Book struct {
	ID      string   `json:"id"      bson:"_id"`
	Title   string   `json:"title"   bson:"title"`
	Author  string   `json:"author"  bson:"author"`  // Author id
	Summary string   `json:"summary" bson:"summary"`
	ISBN    string   `json:"isbn"    bson:"isbn"`
	Genre   []string `json:"genre"   bson:"genre"`   // Genre ids, possibly empty
}

// GetID returns the store-assigned identifier.
func (b Book) GetID() string { return b.ID }

// WithID returns a copy of b carrying id.
func (b Book) WithID(id string) Book {
	b.ID = id
	b.Genre = slices.Clone(b.Genre)
	return b
}

// URL is the detail page location of the book.
func (b Book) URL() string { return "/catalog/book/" + b.ID }

// HasGenre reports whether genreID is one of the book's genres.
func (b Book) HasGenre(genreID string) bool {
	return slices.Contains(b.Genre, genreID)
}
