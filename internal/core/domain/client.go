package domain

// Client represents a billable customer.
type Client struct {
	ID      string `json:"id"` // Primary Key (UUID)
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
	Notes   string `json:"notes"`
	Timestamps
}
