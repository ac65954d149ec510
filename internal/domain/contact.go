package domain

import "strings"

// ContactInfo is the contact record scraped out of a ticket. Empty fields are absent.
type ContactInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// FullName joins the name parts the way the helpdesk user name is built.
func (c ContactInfo) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// HasName reports whether at least one name part was found.
func (c ContactInfo) HasName() bool {
	return c.FirstName != "" || c.LastName != ""
}
