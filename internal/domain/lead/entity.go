package lead

import "time"

// Status represents lead status
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusConverted Status = "converted"
	StatusClosed    Status = "closed"
)

// ParseStatus returns the matching status, coercing anything
// outside the known set to StatusNew.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusClosed:
		return Status(s)
	default:
		return StatusNew
	}
}

// Lead represents a sales-prospect contact record
type Lead struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Source    string    `json:"source,omitempty"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Valid reports whether the lead has the required contact fields.
func (l *Lead) Valid() bool {
	return l.FirstName != "" && l.LastName != "" && l.Email != ""
}

// IsConverted returns true if the lead reached the converted status
func (l *Lead) IsConverted() bool {
	return l.Status == StatusConverted
}
