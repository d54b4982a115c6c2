package lead

// CreateLeadRequest represents manual lead creation
type CreateLeadRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Source    string `json:"source"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

// UpdateLeadRequest represents a full edit of an existing lead.
// ID and creation time are never touched by an update.
type UpdateLeadRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Source    string `json:"source"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

// Page represents one window of the filtered lead set plus its totals
type Page struct {
	Leads      []*Lead `json:"leads"`
	TotalCount int64   `json:"total_count"`
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
}

// ImportResult reports a successful CSV import
type ImportResult struct {
	Imported int `json:"imported"`
}
