package dto

import (
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateHospitalRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state" validate:"required"`
	Pincode     string `json:"pincode" validate:"required,numeric"`
	Email       string `json:"email" validate:"required,email"`
	Website     string `json:"website" validate:"omitempty,url"`
	Description string `json:"description"`
}

type CreateChemistRequest struct {
	Name              string `json:"name" validate:"required,min=2"`
	Type              string `json:"type" validate:"required,oneof=CHEMIST STOCKIST"`
	ChemistChainID    string `json:"chemist_chain_id"`
	TerritoryID       string `json:"territory_id"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone" validate:"required"`
	Address           string `json:"address" validate:"required"`
	City              string `json:"city" validate:"required"`
	State             string `json:"state" validate:"required"`
	Pincode           string `json:"pincode" validate:"required,numeric"`
	Description       string `json:"description"`
	ProfilePictureURL string `json:"profile_picture_url" validate:"omitempty,url"`
	VisitingHours     string `json:"visiting_hours"`
}

type CreateDrugRequest struct {
	Name                string          `json:"name" validate:"required,min=2"`
	Composition         string          `json:"composition" validate:"required"`
	Manufacturer        string          `json:"manufacturer" validate:"required"`
	Indications         string          `json:"indications"`
	SideEffects         string          `json:"side_effects"`
	SafetyAdvice        string          `json:"safety_advice"`
	DosageForms         string          `json:"dosage_forms"`
	Price               decimal.Decimal `json:"price" validate:"required"`
	Schedule            string          `json:"schedule"`
	RegulatoryApprovals string          `json:"regulatory_approvals"`
	Category            string          `json:"category"`
	Type                string          `json:"type"`
	IsAvailable         bool            `json:"is_available"`
	Images              []string        `json:"images" validate:"omitempty,dive,url"`
}

// Response DTOs

type HospitalResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	Email       string `json:"email"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

type ChemistResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	VisitingHours string `json:"visiting_hours,omitempty"`
	Status        string `json:"status,omitempty"`
}

type DrugResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Composition  string          `json:"composition"`
	Manufacturer string          `json:"manufacturer"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	Type         string          `json:"type"`
	IsAvailable  bool            `json:"is_available"`
}

type HospitalListResponse struct {
	Hospitals []HospitalResponse `json:"hospitals"`
	Total     int                `json:"total"`
}

type ChemistListResponse struct {
	Chemists []ChemistResponse `json:"chemists"`
	Total    int               `json:"total"`
}

type DrugListResponse struct {
	Drugs []DrugResponse `json:"drugs"`
	Total int            `json:"total"`
}
