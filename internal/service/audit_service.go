package service

import (
	"context"

	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	LogAction(ctx context.Context, session entity.Session, action string, metadata entity.JSON) error
	LogCreate(ctx context.Context, session entity.Session, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, session entity.Session, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, session entity.Session, action string, entityName string, entityID string, oldValue interface{}) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogAction logs an action that does not change a stored entity, like a login
func (s *auditService) LogAction(ctx context.Context, session entity.Session, action string, metadata entity.JSON) error {
	return s.create(ctx, session, action, metadata)
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, session entity.Session, action string, entityName string, entityID string, newValue interface{}) error {
	return s.create(ctx, session, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, session entity.Session, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.create(ctx, session, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, session entity.Session, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.create(ctx, session, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": nil,
	})
}

func (s *auditService) create(ctx context.Context, session entity.Session, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		UserID:         session.UserID,
		OrganizationID: session.OrganizationID,
		Action:         action,
		Metadata:       metadata,
	}

	if err := s.auditRepo.Create(s.db.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
