package dto

import "time"

// Request DTOs

type CreateUserRequest struct {
	FirstName    string `json:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" validate:"max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"max=20"`
	Role         string `json:"role" validate:"required,oneof=MEDICAL_REPRESENTATIVE SALES_MANAGER SYSTEM_ADMINISTRATOR"`
	EmployeeCode string `json:"employee_code" validate:"max=50"`
	City         string `json:"city" validate:"max=100"`
	State        string `json:"state" validate:"max=100"`
	DateOfBirth  string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

type SignupRequest struct {
	OrganizationName    string `json:"organization_name" validate:"required,max=255"`
	OrganizationEmail   string `json:"organization_email" validate:"required,email"`
	OrganizationAddress string `json:"organization_address" validate:"max=500"`
	OrganizationWebsite string `json:"organization_website" validate:"omitempty,url"`
	OrganizationPhone   string `json:"organization_phone" validate:"max=20"`
	AdminFirstName      string `json:"admin_first_name" validate:"required,max=100"`
	AdminLastName       string `json:"admin_last_name" validate:"max=100"`
	AdminEmail          string `json:"admin_email" validate:"required,email"`
	AdminPassword       string `json:"admin_password" validate:"required,min=8"`
}

type ActivateAccountRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// Response DTOs

type MemberResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Role         string     `json:"role"`
	Phone        string     `json:"phone,omitempty"`
	EmployeeCode string     `json:"employee_code,omitempty"`
	City         string     `json:"city,omitempty"`
	State        string     `json:"state,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

type MemberListResponse struct {
	Users []MemberResponse `json:"users"`
	Total int              `json:"total"`
}

type SignupResponse struct {
	OrganizationID string `json:"organization_id"`
	AdminUserID    string `json:"admin_user_id"`
	AdminEmail     string `json:"admin_email"`
}
