package services

import "github.com/google/uuid"

// Actor is the authenticated caller of an operation, taken from the access
// token. The zero Actor stands for an anonymous API call.
type Actor struct {
	ID    *uuid.UUID
	Name  string
	Email string
	Role  string
}

// label is written to created_by/updated_by columns.
func (a Actor) label() string {
	if a.Email != "" {
		return a.Email
	}
	return createdByAPI
}
