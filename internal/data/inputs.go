package data

// AuthorInput holds the raw author form fields.
// Dates are optional; an empty string means "not provided".
type AuthorInput struct {
	FirstName   string `form:"first_name"    validate:"required,max=100"`
	FamilyName  string `form:"family_name"   validate:"required,max=100"`
	DateOfBirth string `form:"date_of_birth"`
	DateOfDeath string `form:"date_of_death"`
}

// GenreInput holds the raw genre form fields.
type GenreInput struct {
	Name string `form:"name" validate:"required,min=3,max=100"`
}

// BookInput holds the raw book form fields. Genre carries every selected genre id.
type BookInput struct {
	Title   string   `form:"title"   validate:"required"`
	Author  string   `form:"author"  validate:"required"`
	Summary string   `form:"summary" validate:"required"`
	ISBN    string   `form:"isbn"    validate:"required"`
	Genre   []string `form:"genre"`
}

// BookInstanceInput holds the raw copy form fields.
// An empty Status selects DefaultStatus; an empty DueBack selects the current time.
type BookInstanceInput struct {
	Book    string `form:"book"    validate:"required"`
	Imprint string `form:"imprint" validate:"required"`
	Status  string `form:"status"`
	DueBack string `form:"due_back"`
}
