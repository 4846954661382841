// package models defines the data model shared by the friend book client
package models

import "fmt"

// AuthenticatedUser is the account returned by the remote service after a successful login.
//
// Identity is by ID; Email and Name are carried as-is.
type AuthenticatedUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u AuthenticatedUser) String() string {
	return fmt.Sprintf("%s <%s> (#%d)", u.Name, u.Email, u.ID)
}

// Credentials is the body of a login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the body of a registration request.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
