package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/models"
)

type AuditMapper interface {
	ToModel(e *audit.Entry) (*models.AdminActivityLogModel, error)
	ToDomain(model *models.AdminActivityLogModel) (*audit.Entry, error)
}

type AuditMapperImpl struct{}

func NewAuditMapper() AuditMapper {
	return &AuditMapperImpl{}
}

func (m *AuditMapperImpl) ToModel(e *audit.Entry) (*models.AdminActivityLogModel, error) {
	details, err := json.Marshal(e.Details())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit details: %w", err)
	}

	model := &models.AdminActivityLogModel{
		ID:         e.ID(),
		AdminID:    e.AdminID(),
		ActionType: e.ActionType().String(),
		TargetID:   e.TargetID(),
		Details:    datatypes.JSON(details),
		IPAddress:  e.IPAddress(),
		UserAgent:  e.UserAgent(),
		CreatedAt:  e.CreatedAt(),
	}
	if tt := e.TargetType(); tt != nil {
		s := string(*tt)
		model.TargetType = &s
	}
	return model, nil
}

func (m *AuditMapperImpl) ToDomain(model *models.AdminActivityLogModel) (*audit.Entry, error) {
	var details map[string]any
	if len(model.Details) > 0 {
		if err := json.Unmarshal(model.Details, &details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal audit details (id=%s): %w", model.ID, err)
		}
	}

	var targetType *audit.TargetType
	if model.TargetType != nil {
		tt := audit.TargetType(*model.TargetType)
		targetType = &tt
	}

	return audit.ReconstructEntry(
		model.ID,
		model.AdminID,
		audit.ActionType(model.ActionType),
		model.TargetID,
		targetType,
		details,
		model.IPAddress,
		model.UserAgent,
		model.CreatedAt,
	), nil
}
