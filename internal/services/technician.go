package services

import (
	"context"

	"go.uber.org/zap"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/constants"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"
)

type TechnicianServiceInterface interface {
	List(ctx context.Context) ([]dto.TechnicianDTO, error)
	UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateTechnicianStatusDTO) error
}

type TechnicianService struct {
	technicianRepo repositories.TechnicianRepositoryInterface
	gatekeeper     *authz.Gatekeeper
	logger         *zap.Logger
}

func NewTechnicianService(
	technicianRepo repositories.TechnicianRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	logger *zap.Logger,
) TechnicianServiceInterface {
	return &TechnicianService{
		technicianRepo: technicianRepo,
		gatekeeper:     gatekeeper,
		logger:         logger,
	}
}

func (s *TechnicianService) List(ctx context.Context) ([]dto.TechnicianDTO, error) {
	if err := s.gatekeeper.Require(ctx, authz.TechnicianAccess); err != nil {
		return nil, err
	}
	technicians, err := s.technicianRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.TechnicianDTO, 0, len(technicians))
	for _, t := range technicians {
		item := dto.TechnicianDTO{
			ID:          t.ID,
			UserID:      t.UserID,
			Status:      t.Status,
			OrdersCount: t.OrdersCount,
		}
		if t.User != nil {
			item.Fio = t.User.Fio
		}
		result = append(result, item)
	}
	return result, nil
}

// UpdateStatus — вход/выход техника из дежурства. Сам техник меняет
// только свой статус; право technician_edit позволяет менять любой.
func (s *TechnicianService) UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateTechnicianStatusDTO) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	perms, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return err
	}

	tech, err := s.technicianRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if tech.UserID != userID && s.gatekeeper.Denies(perms, authz.TechnicianEdit) {
		return apperrors.Forbidden("")
	}

	status := *payload.Status
	if status != constants.TechnicianActive && status != constants.TechnicianInactive {
		return apperrors.NewInvalidInputError("недопустимый статус техника")
	}

	if err := s.technicianRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Info("статус техника изменён",
		zap.Uint64("technicianId", id), zap.Int16("status", status))
	return nil
}
