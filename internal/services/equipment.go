package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/types"
	"maintenance-system/pkg/utils"

	"github.com/aarondl/null/v8"
)

type EquipmentServiceInterface interface {
	List(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	Show(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	gatekeeper    *authz.Gatekeeper
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		gatekeeper:    gatekeeper,
		logger:        logger,
	}
}

// List: клиенту показывается только оборудование его департамента.
func (s *EquipmentService) List(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	if err := s.gatekeeper.Require(ctx, authz.EquipmentAccess); err != nil {
		return nil, 0, err
	}
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	var departmentID *uint64
	if user.IsClient() && user.DepartmentID.Valid {
		id := user.DepartmentID.Uint64
		departmentID = &id
	}

	items, total, err := s.equipmentRepo.List(ctx, filter, departmentID)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.EquipmentDTO, 0, len(items))
	for i := range items {
		result = append(result, mapEquipmentDTO(&items[i]))
	}
	return result, total, nil
}

func (s *EquipmentService) Show(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	if err := s.gatekeeper.Require(ctx, authz.EquipmentAccess); err != nil {
		return nil, err
	}
	eq, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	mapped := mapEquipmentDTO(eq)
	return &mapped, nil
}

func (s *EquipmentService) Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if err := s.gatekeeper.Require(ctx, authz.EquipmentCreate); err != nil {
		return nil, err
	}

	eq := &entities.Equipment{
		Name: payload.Name,
		Code: payload.Code,
	}
	if payload.ZoneID != nil {
		eq.ZoneID = null.Uint64From(*payload.ZoneID)
	}
	if payload.DepartmentID != nil {
		eq.DepartmentID = null.Uint64From(*payload.DepartmentID)
	}

	id, err := s.equipmentRepo.Create(ctx, eq)
	if err != nil {
		return nil, err
	}
	created, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("оборудование создано", zap.Uint64("equipmentId", id), zap.String("code", created.Code))
	mapped := mapEquipmentDTO(created)
	return &mapped, nil
}

func (s *EquipmentService) Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if err := s.gatekeeper.Require(ctx, authz.EquipmentCreate); err != nil {
		return nil, err
	}
	eq, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		eq.Name = *payload.Name
	}
	if payload.Code != nil {
		eq.Code = *payload.Code
	}
	if payload.ZoneID != nil {
		eq.ZoneID = null.Uint64From(*payload.ZoneID)
	}
	if payload.DepartmentID != nil {
		eq.DepartmentID = null.Uint64From(*payload.DepartmentID)
	}

	if err := s.equipmentRepo.Update(ctx, eq); err != nil {
		return nil, err
	}
	updated, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	mapped := mapEquipmentDTO(updated)
	return &mapped, nil
}

func (s *EquipmentService) Delete(ctx context.Context, id uint64) error {
	if err := s.gatekeeper.Require(ctx, authz.EquipmentCreate); err != nil {
		return err
	}
	err := s.equipmentRepo.Delete(ctx, id)
	if err == nil {
		s.logger.Info("оборудование удалено", zap.Uint64("equipmentId", id))
	}
	return err
}

func mapEquipmentDTO(e *entities.Equipment) dto.EquipmentDTO {
	mapped := dto.EquipmentDTO{
		ID:   e.ID,
		Name: e.Name,
		Code: e.Code,
	}
	if e.ZoneID.Valid {
		id := e.ZoneID.Uint64
		mapped.ZoneID = &id
	}
	if e.DepartmentID.Valid {
		id := e.DepartmentID.Uint64
		mapped.DepartmentID = &id
	}
	if e.CreatedAt != nil {
		mapped.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	return mapped
}

