package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Doctor is a doctor record as listed by the platform backend.
type Doctor struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Specialization  string    `json:"specialization"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Designation     string    `json:"designation,omitempty"`
	Description     string    `json:"description,omitempty"`
	Qualification   string    `json:"qualification,omitempty"`
	ExperienceYears *int      `json:"experienceYears,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Hospital struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Pincode     string    `json:"pincode"`
	Email       string    `json:"email"`
	Website     string    `json:"website,omitempty"`
	Description string    `json:"description,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Type        string    `json:"type,omitempty"`
	Territory   string    `json:"territory,omitempty"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

type Chemist struct {
	ID                string    `json:"id,omitempty"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	ChemistChainID    string    `json:"chemistChainId,omitempty"`
	TerritoryID       string    `json:"territoryId,omitempty"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Address           string    `json:"address"`
	City              string    `json:"city"`
	State             string    `json:"state"`
	Pincode           string    `json:"pincode"`
	Description       string    `json:"description,omitempty"`
	ProfilePictureURL string    `json:"profilePictureUrl,omitempty"`
	VisitingHours     string    `json:"visitingHours,omitempty"`
	Status            string    `json:"status,omitempty"`
	CreatedAt         time.Time `json:"createdAt,omitempty"`
}

// Drug mirrors the backend drug catalog, which uses snake_case keys.
type Drug struct {
	ID                  string          `json:"id,omitempty"`
	Name                string          `json:"name"`
	Composition         string          `json:"composition"`
	Manufacturer        string          `json:"manufacturer"`
	Indications         string          `json:"indications"`
	SideEffects         string          `json:"side_effects"`
	SafetyAdvice        string          `json:"safety_advice"`
	DosageForms         string          `json:"dosage_forms"`
	Price               decimal.Decimal `json:"price"`
	Schedule            string          `json:"schedule"`
	RegulatoryApprovals string          `json:"regulatory_approvals"`
	Category            string          `json:"category"`
	Type                string          `json:"type"`
	IsAvailable         bool            `json:"is_available"`
	Images              []string        `json:"images,omitempty"`
}

// CreatedDoctor is the backend answer to a doctor creation.
type CreatedDoctor struct {
	Success bool
	ID      string
}

// LoginResult is the backend answer to a credential login.
type LoginResult struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type LoginUser struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	Role         string            `json:"role"`
	IsActive     *bool             `json:"isActive"`
	Organization LoginOrganization `json:"organization"`
}

type LoginOrganization struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}
