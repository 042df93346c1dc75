package domain

import "strings"

type Customer struct {
	ID    string `json:"customer_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (c Customer) Validate() error {
	if c.ID == "" {
		return &ValidationError{Field: "customer_id", Reason: "must not be empty"}
	}
	if c.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		return &ValidationError{Field: "email", Reason: "must contain '@'"}
	}
	if c.Phone == "" {
		return &ValidationError{Field: "phone", Reason: "must not be empty"}
	}
	return nil
}
