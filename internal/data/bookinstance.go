package data

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Status is the circulation state of a physical copy.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusMaintenance Status = "Maintenance"
	StatusLoaned      Status = "Loaned"
	StatusReserved    Status = "Reserved"
)

// Statuses lists every valid Status in display order.
var Statuses = []Status{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}

// DefaultStatus is applied when a copy is submitted without a status.
const DefaultStatus = StatusMaintenance

// BookInstance is a physical copy of a Book that can be borrowed.
type BookInstance struct {
	ID      string    `json:"id"       bson:"_id"`
	Book    string    `json:"book"     bson:"book"` // Book id
	Imprint string    `json:"imprint"  bson:"imprint"`
	Status  Status    `json:"status"   bson:"status"`
	DueBack time.Time `json:"due_back" bson:"due_back"`
}

// GetID returns the store-assigned identifier.
func (bi BookInstance) GetID() string { return bi.ID }

// WithID returns a copy of bi carrying id.
func (bi BookInstance) WithID(id string) BookInstance {
	bi.ID = id
	return bi
}

// URL is the detail page location of the copy.
func (bi BookInstance) URL() string { return "/catalog/bookinstance/" + bi.ID }

// DueBackInput is the due date as an input field value.
func (bi BookInstance) DueBackInput() string { return formatDate(&bi.DueBack) }

// DueBackFormatted renders the due date for display, e.g. "March 3rd, 2024".
func (bi BookInstance) DueBackFormatted() string {
	if bi.DueBack.IsZero() {
		return ""
	}
	return bi.DueBack.Format("January") + " " + humanize.Ordinal(bi.DueBack.Day()) + ", " + bi.DueBack.Format("2006")
}
