package services

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/constants"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"
	"maintenance-system/pkg/utils"
)

type WorkOrderServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateWorkOrderDTO) (*dto.WorkOrderDTO, error)
	List(ctx context.Context, filter types.Filter) ([]dto.WorkOrderDTO, uint64, error)
	Show(ctx context.Context, id uint64) (*dto.WorkOrderDTO, error)
	Logs(ctx context.Context, id uint64) ([]dto.WorkOrderLogDTO, error)
}

type WorkOrderService struct {
	txManager      repositories.TxManagerInterface
	orderRepo      repositories.WorkOrderRepositoryInterface
	requestRepo    repositories.WorkRequestRepositoryInterface
	technicianRepo repositories.TechnicianRepositoryInterface
	adminRepo      repositories.AdminRepositoryInterface
	gatekeeper     *authz.Gatekeeper
	logger         *zap.Logger
	now            func() time.Time
}

func NewWorkOrderService(
	txManager repositories.TxManagerInterface,
	orderRepo repositories.WorkOrderRepositoryInterface,
	requestRepo repositories.WorkRequestRepositoryInterface,
	technicianRepo repositories.TechnicianRepositoryInterface,
	adminRepo repositories.AdminRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	logger *zap.Logger,
) WorkOrderServiceInterface {
	return &WorkOrderService{
		txManager:      txManager,
		orderRepo:      orderRepo,
		requestRepo:    requestRepo,
		technicianRepo: technicianRepo,
		adminRepo:      adminRepo,
		gatekeeper:     gatekeeper,
		logger:         logger,
		now:            time.Now,
	}
}

// Create — ручное создание ордера администратором во время рабочих
// часов, после разбора заявки. Если заявка указана, она переводится
// в "В работе" той же транзакцией, что и вставка ордера.
func (s *WorkOrderService) Create(ctx context.Context, payload dto.CreateWorkOrderDTO) (*dto.WorkOrderDTO, error) {
	if err := s.gatekeeper.Require(ctx, authz.WorkOrderCreate); err != nil {
		return nil, err
	}
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	order := &entities.WorkOrder{
		Type:        payload.Type,
		Description: payload.Description,
		Date:        s.now().Format("2006-01-02"),
		Hour:        s.now().Format("15:04:05"),
	}

	if payload.TechnicianID != nil {
		if _, err := s.technicianRepo.FindByID(ctx, *payload.TechnicianID); err != nil {
			return nil, err
		}
		order.MaintenanceTechnicianID = null.Uint64From(*payload.TechnicianID)
	} else {
		// Техник не указан — ордером владеет сам администратор.
		admin, err := s.adminRepo.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		order.AdminID = null.Uint64From(admin.ID)
	}

	var request *entities.WorkRequest
	if payload.WorkRequestID != nil {
		request, err = s.requestRepo.FindByID(ctx, *payload.WorkRequestID)
		if err != nil {
			return nil, err
		}
		if !constants.CanTransitionRequest(request.Status, constants.RequestStatusInProgress) {
			return nil, apperrors.ErrStatusTransition
		}
		order.WorkRequestID = null.Uint64From(*payload.WorkRequestID)
	}

	var orderID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		orderID, err = s.orderRepo.CreateInTx(ctx, tx, order)
		if err != nil {
			return err
		}
		if _, err := s.orderRepo.AppendLogInTx(ctx, tx, orderID, constants.OrderLogCreated); err != nil {
			return err
		}
		if request != nil {
			return s.requestRepo.UpdateStatusInTx(ctx, tx, request.ID, constants.RequestStatusInProgress)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("создание ордера не удалось", zap.Error(err))
		return nil, err
	}

	s.logger.Info("ордер создан", zap.Uint64("orderId", orderID))

	created, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	mapped := mapWorkOrderDTO(created)
	return &mapped, nil
}

// List: техник без полного доступа видит только свои ордера.
func (s *WorkOrderService) List(ctx context.Context, filter types.Filter) ([]dto.WorkOrderDTO, uint64, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	perms, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	var technicianID *uint64
	if s.gatekeeper.Denies(perms, authz.WorkOrderAccess) {
		tech, err := s.technicianRepo.FindByUserID(ctx, userID)
		if err != nil {
			return nil, 0, apperrors.Forbidden("")
		}
		technicianID = &tech.ID
	}

	orders, total, err := s.orderRepo.List(ctx, filter, technicianID)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.WorkOrderDTO, 0, len(orders))
	for i := range orders {
		result = append(result, mapWorkOrderDTO(&orders[i]))
	}
	return result, total, nil
}

func (s *WorkOrderService) Show(ctx context.Context, id uint64) (*dto.WorkOrderDTO, error) {
	if err := s.gatekeeper.Require(ctx, authz.WorkOrderShow); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	mapped := mapWorkOrderDTO(order)
	return &mapped, nil
}

func (s *WorkOrderService) Logs(ctx context.Context, id uint64) ([]dto.WorkOrderLogDTO, error) {
	if err := s.gatekeeper.Require(ctx, authz.WorkOrderShow); err != nil {
		return nil, err
	}
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	logs, err := s.orderRepo.Logs(ctx, id)
	if err != nil {
		return nil, err
	}
	result := make([]dto.WorkOrderLogDTO, 0, len(logs))
	for _, l := range logs {
		result = append(result, dto.WorkOrderLogDTO{
			ID:          l.ID,
			WorkOrderID: l.WorkOrderID,
			Status:      l.Status,
			CreatedAt:   l.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

func mapWorkOrderDTO(o *entities.WorkOrder) dto.WorkOrderDTO {
	mapped := dto.WorkOrderDTO{
		ID:          o.ID,
		Type:        o.Type,
		Description: o.Description,
		Date:        o.Date,
		Hour:        o.Hour,
	}
	if o.WorkRequestID.Valid {
		id := o.WorkRequestID.Uint64
		mapped.WorkRequestID = &id
	}
	if o.MaintenanceTechnicianID.Valid {
		mapped.Technician = &dto.ShortTechnicianDTO{ID: o.MaintenanceTechnicianID.Uint64}
		if o.Technician != nil {
			mapped.Technician.UserID = o.Technician.UserID
			mapped.Technician.Status = o.Technician.Status
			if o.Technician.User != nil {
				mapped.Technician.Fio = o.Technician.User.Fio
			}
		}
	}
	if o.AdminID.Valid {
		mapped.Admin = &dto.ShortUserDTO{ID: o.AdminID.Uint64}
	}
	if o.CreatedAt != nil {
		mapped.CreatedAt = o.CreatedAt.Format(time.RFC3339)
	}
	return mapped
}
