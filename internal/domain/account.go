package domain

import "time"

// Account is the snapshot of a user held by the account service. The web
// gateway never owns this data; it reads id/email and requests password
// updates through the account client.
type Account struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	PhoneNumber        string    `json:"phone_number"`
	PhotoURL           string    `json:"photo_url"`
	ConfirmedAndActive bool      `json:"confirmed_and_active"`
	MemberSince        time.Time `json:"member_since"`
}

// Company is an organization administered through the platform.
type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Team is a scheduling unit inside a company.
type Team struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
}

// AdminOfList enumerates the companies a user administers.
type AdminOfList struct {
	UserID    string    `json:"user_id"`
	Companies []Company `json:"companies"`
}

// WorkerOfList enumerates the teams a user belongs to.
type WorkerOfList struct {
	UserID string `json:"user_id"`
	Teams  []Team `json:"teams"`
}
