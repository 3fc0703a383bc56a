package domain

// Actor identifies who performed an operation, for activity logging. Both
// fields may be empty when the caller did not identify itself.
type Actor struct {
	UserID    string
	UserEmail string
}
