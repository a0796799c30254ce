package data

import "time"

// DateLayout is the canonical form of dates on input forms and in lifespans.
const DateLayout = "2006-01-02"

// Author is a person credited on one or more books.
type Author struct {
	ID          string     `json:"id"            bson:"_id"`
	FirstName   string     `json:"first_name"    bson:"first_name"`
	FamilyName  string     `json:"family_name"   bson:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth" bson:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death" bson:"date_of_death,omitempty"`
}

// GetID returns the store-assigned identifier.
func (a Author) GetID() string { return a.ID }

// WithID returns a copy of a carrying id.
func (a Author) WithID(id string) Author {
	a.ID = id
	return a
}

// URL is the detail page location of the author.
func (a Author) URL() string { return "/catalog/author/" + a.ID }

// Name is the display name, "family, first".
func (a Author) Name() string {
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan renders "birth - death"; an unknown date leaves its side blank.
func (a Author) Lifespan() string {
	return formatDate(a.DateOfBirth) + " - " + formatDate(a.DateOfDeath)
}

// DateOfBirthInput is the birth date as an input field value.
func (a Author) DateOfBirthInput() string { return formatDate(a.DateOfBirth) }

// DateOfDeathInput is the death date as an input field value.
func (a Author) DateOfDeathInput() string { return formatDate(a.DateOfDeath) }

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
