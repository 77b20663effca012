package domain

// User is owned by the auth subsystem; the catalog only reads it as the
// author reference on stores and reviews, and mutates its hearts set.
type User struct {
	ID     string
	Email  string
	Name   string
	Hearts []string
}
