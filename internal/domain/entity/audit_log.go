package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AuditLog records a console action performed by a staff member.
type AuditLog struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string    `gorm:"type:varchar(64);index" json:"user_id,omitempty"`
	OrganizationID string    `gorm:"type:varchar(64);index" json:"organization_id,omitempty"`
	Action         string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata       JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Console audit actions
const (
	AuditActionUserLogin      = "user.login"
	AuditActionUserLogout     = "user.logout"
	AuditActionWizardOpen     = "wizard.open"
	AuditActionWizardCancel   = "wizard.cancel"
	AuditActionWizardSubmit   = "wizard.submit"
	AuditActionHospitalCreate = "hospital.create"
	AuditActionChemistCreate  = "chemist.create"
	AuditActionDrugCreate     = "drug.create"
	AuditActionUserCreate     = "user.create"
	AuditActionUserActivate   = "user.activate"
	AuditActionOrgSignup      = "organization.signup"
)
