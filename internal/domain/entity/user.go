package entity

import "time"

// Roles a console admin can give to a new organization member.
const (
	StaffRoleMedicalRepresentative = "MEDICAL_REPRESENTATIVE"
	StaffRoleSalesManager          = "SALES_MANAGER"
	StaffRoleSystemAdministrator   = "SYSTEM_ADMINISTRATOR"
)

// User is an organization member as listed by the platform backend.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	EmployeeCode string    `json:"employeeCode,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// NewUser is the form sent to create an organization member. Password is a temporary
// one; the member picks their own when activating the account.
type NewUser struct {
	OrganizationName string
	Email            string
	Password         string
	FirstName        string
	LastName         string
	Phone            string
	Role             string
	EmployeeCode     string
	City             string
	State            string
	DateOfBirth      string
}

// NewOrganization registers an organization together with its first admin.
type NewOrganization struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Address        string `json:"address,omitempty"`
	Website        string `json:"website,omitempty"`
	Phone          string `json:"phone,omitempty"`
	AdminEmail     string `json:"adminEmail"`
	AdminPassword  string `json:"adminPassword"`
	AdminFirstName string `json:"adminFirstName"`
	AdminLastName  string `json:"adminLastName"`
}

type CreatedOrganization struct {
	OrganizationID string `json:"organizationId"`
	AdminUserID    string `json:"adminUserId"`
}
