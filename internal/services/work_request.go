package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dispatch"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/events"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/constants"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/eventbus"
	"maintenance-system/pkg/types"
	"maintenance-system/pkg/utils"
)

type WorkRequestServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateWorkRequestDTO) (*dto.DispatchResultDTO, error)
	List(ctx context.Context, filter types.Filter) ([]dto.WorkRequestDTO, uint64, error)
	Show(ctx context.Context, id uint64) (*dto.WorkRequestDTO, error)
	ShowView(ctx context.Context, id uint64) (*dto.WorkRequestViewDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateWorkRequestDTO) (*dto.WorkRequestDTO, error)
	Cancel(ctx context.Context, id uint64) error
	Delete(ctx context.Context, id uint64) error
}

type WorkRequestService struct {
	txManager      repositories.TxManagerInterface
	requestRepo    repositories.WorkRequestRepositoryInterface
	orderRepo      repositories.WorkOrderRepositoryInterface
	technicianRepo repositories.TechnicianRepositoryInterface
	adminRepo      repositories.AdminRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	equipmentRepo  repositories.EquipmentRepositoryInterface
	gatekeeper     *authz.Gatekeeper
	policy         dispatch.Policy
	bus            *eventbus.Bus
	logger         *zap.Logger
	now            func() time.Time
}

func NewWorkRequestService(
	txManager repositories.TxManagerInterface,
	requestRepo repositories.WorkRequestRepositoryInterface,
	orderRepo repositories.WorkOrderRepositoryInterface,
	technicianRepo repositories.TechnicianRepositoryInterface,
	adminRepo repositories.AdminRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	policy dispatch.Policy,
	bus *eventbus.Bus,
	logger *zap.Logger,
) WorkRequestServiceInterface {
	return &WorkRequestService{
		txManager:      txManager,
		requestRepo:    requestRepo,
		orderRepo:      orderRepo,
		technicianRepo: technicianRepo,
		adminRepo:      adminRepo,
		userRepo:       userRepo,
		equipmentRepo:  equipmentRepo,
		gatekeeper:     gatekeeper,
		policy:         policy,
		bus:            bus,
		logger:         logger,
		now:            time.Now,
	}
}

// Create — приём новой заявки и её диспетчеризация.
//
// Снимок техников читается под FOR UPDATE, решение принимает чистый
// движок dispatch.Policy, и всё, что он решил, записывается в одной
// транзакции. Уведомления публикуются только после коммита: если
// транзакция откатилась, никто ничего не получит.
func (s *WorkRequestService) Create(ctx context.Context, payload dto.CreateWorkRequestDTO) (*dto.DispatchResultDTO, error) {
	if err := s.gatekeeper.Require(ctx, authz.WorkRequestCreate); err != nil {
		return nil, err
	}

	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	requester, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.FindByID(ctx, payload.EquipmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInvalidInputError("указанное оборудование не найдено")
		}
		return nil, err
	}
	// Клиент видит только оборудование своего департамента.
	if requester.IsClient() && requester.DepartmentID.Valid &&
		equipment.DepartmentID.Valid && equipment.DepartmentID.Uint64 != requester.DepartmentID.Uint64 {
		return nil, apperrors.Forbidden("оборудование недоступно для вашего департамента")
	}

	now := s.now()
	input := dispatch.Input{
		RequesterID:       userID,
		RequesterIsClient: requester.IsClient(),
		EquipmentID:       payload.EquipmentID,
		Description:       payload.Description,
		Priority:          payload.Priority,
	}

	var (
		requestID uint64
		orderID   uint64
		outcome   dispatch.Outcome
	)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		// Критическая секция: строки техников заблокированы до коммита,
		// параллельные создания заявок видят уже учтённые назначения.
		technicians, err := s.technicianRepo.LockAndLoadInTx(ctx, tx)
		if err != nil {
			return err
		}
		adminIDs, err := s.adminRepo.AdminUserIDsInTx(ctx, tx)
		if err != nil {
			return err
		}

		outcome = s.policy.Decide(input, now, dispatch.Snapshot{
			AdminUserIDs: adminIDs,
			Technicians:  technicians,
		})

		request := &entities.WorkRequest{
			UserID:      userID,
			EquipmentID: payload.EquipmentID,
			Description: payload.Description,
			Priority:    payload.Priority,
			Status:      outcome.RequestStatus,
			Date:        now.Format("2006-01-02"),
			Hour:        now.Format("15:04:05"),
		}
		requestID, err = s.requestRepo.CreateInTx(ctx, tx, request)
		if err != nil {
			return err
		}

		if outcome.Order != nil {
			order := &entities.WorkOrder{
				WorkRequestID:           null.Uint64From(requestID),
				MaintenanceTechnicianID: null.Uint64From(outcome.Order.TechnicianID),
				Type:                    outcome.Order.Type,
				Description:             outcome.Order.Description,
				Date:                    now.Format("2006-01-02"),
				Hour:                    now.Format("15:04:05"),
			}
			orderID, err = s.orderRepo.CreateInTx(ctx, tx, order)
			if err != nil {
				return err
			}
			if _, err = s.orderRepo.AppendLogInTx(ctx, tx, orderID, constants.OrderLogCreated); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("диспетчеризация заявки не удалась", zap.Error(err))
		return nil, err
	}

	s.logger.Info("заявка создана",
		zap.Uint64("requestId", requestID),
		zap.String("mode", outcome.Mode.String()),
		zap.Int16("status", outcome.RequestStatus))

	s.bus.Publish(ctx, events.WorkRequestDispatchedEvent{
		RequestID:   requestID,
		WorkOrderID: orderID,
		Outcome:     outcome,
	})

	created, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	result := &dto.DispatchResultDTO{
		WorkRequest: mapWorkRequestDTO(created),
		Mode:        outcome.Mode.String(),
	}
	if outcome.Order != nil {
		order, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		orderDTO := mapWorkOrderDTO(order)
		result.WorkOrder = &orderDTO
	}
	return result, nil
}

// List: пользователи без полного доступа видят только свои заявки.
func (s *WorkRequestService) List(ctx context.Context, filter types.Filter) ([]dto.WorkRequestDTO, uint64, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	perms, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	var requesterID *uint64
	if s.gatekeeper.Denies(perms, authz.WorkRequestAccess) {
		requesterID = &userID
	}

	requests, total, err := s.requestRepo.List(ctx, filter, requesterID)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.WorkRequestDTO, 0, len(requests))
	for i := range requests {
		result = append(result, mapWorkRequestDTO(&requests[i]))
	}
	return result, total, nil
}

func (s *WorkRequestService) Show(ctx context.Context, id uint64) (*dto.WorkRequestDTO, error) {
	request, err := s.findVisible(ctx, id, authz.WorkRequestShow)
	if err != nil {
		return nil, err
	}
	mapped := mapWorkRequestDTO(request)
	return &mapped, nil
}

// ShowView — заявка вместе со справочниками для формы редактирования.
func (s *WorkRequestService) ShowView(ctx context.Context, id uint64) (*dto.WorkRequestViewDTO, error) {
	request, err := s.findVisible(ctx, id, authz.WorkRequestShow)
	if err != nil {
		return nil, err
	}

	technicians, err := s.technicianRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	shortTechs := make([]dto.ShortTechnicianDTO, 0, len(technicians))
	for _, t := range technicians {
		st := dto.ShortTechnicianDTO{ID: t.ID, UserID: t.UserID, Status: t.Status}
		if t.User != nil {
			st.Fio = t.User.Fio
		}
		shortTechs = append(shortTechs, st)
	}

	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	viewer, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var departmentID *uint64
	if viewer.IsClient() && viewer.DepartmentID.Valid {
		departmentID = &viewer.DepartmentID.Uint64
	}
	equipments, _, err := s.equipmentRepo.List(ctx, types.Filter{}, departmentID)
	if err != nil {
		return nil, err
	}
	shortEquipments := make([]dto.ShortEquipmentDTO, 0, len(equipments))
	for _, e := range equipments {
		shortEquipments = append(shortEquipments, dto.ShortEquipmentDTO{ID: e.ID, Name: e.Name, Code: e.Code})
	}

	return &dto.WorkRequestViewDTO{
		WorkRequest: mapWorkRequestDTO(request),
		Priorities:  constants.Priorities,
		Types:       constants.OrderTypes,
		Natures:     constants.OrderNatures,
		Technicians: shortTechs,
		Equipments:  shortEquipments,
	}, nil
}

// Update меняет описание, приоритет и оборудование в любом статусе,
// сам статус заявки при этом не трогается.
func (s *WorkRequestService) Update(ctx context.Context, id uint64, payload dto.UpdateWorkRequestDTO) (*dto.WorkRequestDTO, error) {
	if err := s.gatekeeper.Require(ctx, authz.WorkRequestEdit); err != nil {
		return nil, err
	}
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.EquipmentID != nil {
		if _, err := s.equipmentRepo.FindByID(ctx, *payload.EquipmentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewInvalidInputError("указанное оборудование не найдено")
			}
			return nil, err
		}
		request.EquipmentID = *payload.EquipmentID
	}
	if payload.Description != nil {
		request.Description = *payload.Description
	}
	if payload.Priority != nil {
		request.Priority = *payload.Priority
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.requestRepo.UpdateInTx(ctx, tx, request)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	mapped := mapWorkRequestDTO(updated)
	return &mapped, nil
}

// Cancel переводит заявку в "Отменена". Допустимо из "Ожидает" и
// "В работе"; завершённые и уже отменённые заявки не трогаются.
// Право work_request_edit обязательно даже для автора заявки.
// Заявитель получает одно уведомление сразу, без задержки.
func (s *WorkRequestService) Cancel(ctx context.Context, id uint64) error {
	if err := s.gatekeeper.Require(ctx, authz.WorkRequestEdit); err != nil {
		return err
	}
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !constants.CanTransitionRequest(request.Status, constants.RequestStatusCancelled) {
		return apperrors.ErrStatusTransition
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.requestRepo.UpdateStatusInTx(ctx, tx, id, constants.RequestStatusCancelled)
	})
	if err != nil {
		return err
	}

	s.logger.Info("заявка отменена", zap.Uint64("requestId", id))
	s.bus.Publish(ctx, events.WorkRequestCancelledEvent{
		RequestID: id,
		Notifications: []dispatch.Notification{{
			UserID:   request.UserID,
			Text:     fmt.Sprintf("Ваша заявка №%d отменена", id),
			Category: "work_request",
			Delay:    0,
		}},
	})
	return nil
}

func (s *WorkRequestService) Delete(ctx context.Context, id uint64) error {
	if err := s.gatekeeper.Require(ctx, authz.WorkRequestDelete); err != nil {
		return err
	}
	if _, err := s.requestRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.requestRepo.Delete(ctx, id)
}

// findVisible загружает заявку и проверяет право на чтение: владелец
// всегда видит свою заявку, остальным нужно право permission.
// Для изменяющих операций это послабление не действует.
func (s *WorkRequestService) findVisible(ctx context.Context, id uint64, permission string) (*entities.WorkRequest, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	perms, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.UserID != userID && s.gatekeeper.Denies(perms, permission) {
		return nil, apperrors.Forbidden("")
	}
	return request, nil
}

func mapWorkRequestDTO(r *entities.WorkRequest) dto.WorkRequestDTO {
	mapped := dto.WorkRequestDTO{
		ID:          r.ID,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		StatusName:  constants.RequestStatusName(r.Status),
		Date:        r.Date,
		Hour:        r.Hour,
	}
	if r.Requester != nil {
		mapped.Requester = dto.ShortUserDTO{ID: r.Requester.ID, Fio: r.Requester.Fio}
	}
	if r.Equipment != nil {
		mapped.Equipment = dto.ShortEquipmentDTO{ID: r.Equipment.ID, Name: r.Equipment.Name, Code: r.Equipment.Code}
	}
	if r.CreatedAt != nil {
		mapped.CreatedAt = r.CreatedAt.Format(time.RFC3339)
	}
	return mapped
}
