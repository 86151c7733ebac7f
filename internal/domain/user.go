package domain

// User is the authenticated caller identity attached to every request by
// the identity middleware. Candidates are scoped to User.ID via CreatedBy.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
