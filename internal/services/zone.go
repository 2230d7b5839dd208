package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
)

type ZoneServiceInterface interface {
	List(ctx context.Context) ([]dto.ZoneDTO, error)
	Create(ctx context.Context, payload dto.CreateZoneDTO) (*dto.ZoneDTO, error)
}

type ZoneService struct {
	zoneRepo       repositories.ZoneRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	gatekeeper     *authz.Gatekeeper
	logger         *zap.Logger
}

func NewZoneService(
	zoneRepo repositories.ZoneRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	logger *zap.Logger,
) ZoneServiceInterface {
	return &ZoneService{
		zoneRepo:       zoneRepo,
		departmentRepo: departmentRepo,
		gatekeeper:     gatekeeper,
		logger:         logger,
	}
}

func (s *ZoneService) List(ctx context.Context) ([]dto.ZoneDTO, error) {
	if err := s.gatekeeper.Require(ctx, authz.ZoneAccess); err != nil {
		return nil, err
	}
	zones, err := s.zoneRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ZoneDTO, 0, len(zones))
	for _, z := range zones {
		result = append(result, mapZoneDTO(&z))
	}
	return result, nil
}

func (s *ZoneService) Create(ctx context.Context, payload dto.CreateZoneDTO) (*dto.ZoneDTO, error) {
	if err := s.gatekeeper.Require(ctx, authz.ZoneCreate); err != nil {
		return nil, err
	}
	if _, err := s.departmentRepo.FindByID(ctx, payload.DepartmentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInvalidInputError("указанный департамент не найден")
		}
		return nil, err
	}

	zone := &entities.Zone{
		Room:         payload.Room,
		RoomCode:     payload.RoomCode,
		DepartmentID: payload.DepartmentID,
	}
	id, err := s.zoneRepo.Create(ctx, zone)
	if err != nil {
		return nil, err
	}

	created, err := s.zoneRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("зона создана", zap.Uint64("zoneId", id), zap.String("roomCode", created.RoomCode))
	mapped := mapZoneDTO(created)
	return &mapped, nil
}

func mapZoneDTO(z *entities.Zone) dto.ZoneDTO {
	mapped := dto.ZoneDTO{
		ID:           z.ID,
		Room:         z.Room,
		RoomCode:     z.RoomCode,
		DepartmentID: z.DepartmentID,
	}
	if z.CreatedAt != nil {
		mapped.CreatedAt = z.CreatedAt.Format(time.RFC3339)
	}
	return mapped
}
