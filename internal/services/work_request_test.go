package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dispatch"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/events"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/constants"
	"maintenance-system/pkg/contextkeys"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/eventbus"
	"maintenance-system/pkg/types"
)

// --- фейки репозиториев ---

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	f.calls++
	return fn(nil)
}

type fakeRequestRepo struct {
	nextID       uint64
	created      *entities.WorkRequest
	updated      *entities.WorkRequest
	statusByID   map[uint64]int16
	findOverride *entities.WorkRequest
}

func (f *fakeRequestRepo) CreateInTx(ctx context.Context, q repositories.Querier, req *entities.WorkRequest) (uint64, error) {
	copied := *req
	f.created = &copied
	return f.nextID, nil
}

func (f *fakeRequestRepo) FindByID(ctx context.Context, id uint64) (*entities.WorkRequest, error) {
	if f.findOverride != nil {
		return f.findOverride, nil
	}
	if f.created == nil {
		return nil, apperrors.ErrNotFound
	}
	req := *f.created
	req.ID = id
	now := time.Now()
	req.CreatedAt = &now
	req.Requester = &entities.User{ID: req.UserID, Fio: "Тест"}
	req.Equipment = &entities.Equipment{ID: req.EquipmentID, Name: "Компрессор", Code: "CMP-1"}
	return &req, nil
}

func (f *fakeRequestRepo) FindByIDInTx(ctx context.Context, q repositories.Querier, id uint64) (*entities.WorkRequest, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeRequestRepo) List(ctx context.Context, filter types.Filter, requesterID *uint64) ([]entities.WorkRequest, uint64, error) {
	return nil, 0, nil
}

func (f *fakeRequestRepo) UpdateInTx(ctx context.Context, q repositories.Querier, req *entities.WorkRequest) error {
	copied := *req
	f.updated = &copied
	return nil
}

func (f *fakeRequestRepo) UpdateStatusInTx(ctx context.Context, q repositories.Querier, id uint64, status int16) error {
	if f.statusByID == nil {
		f.statusByID = make(map[uint64]int16)
	}
	f.statusByID[id] = status
	return nil
}

func (f *fakeRequestRepo) Delete(ctx context.Context, id uint64) error { return nil }

type fakeOrderRepo struct {
	nextID    uint64
	createErr error
	created   *entities.WorkOrder
	logs      []string
}

func (f *fakeOrderRepo) CreateInTx(ctx context.Context, q repositories.Querier, order *entities.WorkOrder) (uint64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	copied := *order
	f.created = &copied
	return f.nextID, nil
}

func (f *fakeOrderRepo) AppendLogInTx(ctx context.Context, q repositories.Querier, orderID uint64, status string) (uint64, error) {
	f.logs = append(f.logs, status)
	return uint64(len(f.logs)), nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uint64) (*entities.WorkOrder, error) {
	if f.created == nil {
		return nil, apperrors.ErrNotFound
	}
	order := *f.created
	order.ID = id
	now := time.Now()
	order.CreatedAt = &now
	return &order, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, filter types.Filter, technicianID *uint64) ([]entities.WorkOrder, uint64, error) {
	return nil, 0, nil
}

func (f *fakeOrderRepo) Logs(ctx context.Context, orderID uint64) ([]entities.WorkOrderLog, error) {
	return nil, nil
}

type fakeTechnicianRepo struct {
	loads []dispatch.TechnicianLoad
}

func (f *fakeTechnicianRepo) LockAndLoadInTx(ctx context.Context, q repositories.Querier) ([]dispatch.TechnicianLoad, error) {
	return f.loads, nil
}

func (f *fakeTechnicianRepo) GetAll(ctx context.Context) ([]entities.MaintenanceTechnician, error) {
	return nil, nil
}

func (f *fakeTechnicianRepo) FindByID(ctx context.Context, id uint64) (*entities.MaintenanceTechnician, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeTechnicianRepo) FindByUserID(ctx context.Context, userID uint64) (*entities.MaintenanceTechnician, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeTechnicianRepo) UpdateStatus(ctx context.Context, id uint64, status int16) error {
	return nil
}

type fakeAdminRepo struct {
	userIDs []uint64
}

func (f *fakeAdminRepo) AdminUserIDs(ctx context.Context) ([]uint64, error) { return f.userIDs, nil }

func (f *fakeAdminRepo) AdminUserIDsInTx(ctx context.Context, q repositories.Querier) ([]uint64, error) {
	return f.userIDs, nil
}

func (f *fakeAdminRepo) FindByUserID(ctx context.Context, userID uint64) (*entities.Admin, error) {
	return nil, apperrors.ErrNotFound
}

type fakeUserRepo struct {
	user *entities.User
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	return f.user, nil
}

func (f *fakeUserRepo) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	return f.user, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entities.User) (uint64, error) {
	return 0, nil
}

func (f *fakeUserRepo) UpdateDeviceToken(ctx context.Context, id uint64, token string) error {
	return nil
}

type fakeEquipmentRepo struct {
	equipment *entities.Equipment
}

func (f *fakeEquipmentRepo) List(ctx context.Context, filter types.Filter, departmentID *uint64) ([]entities.Equipment, uint64, error) {
	return nil, 0, nil
}

func (f *fakeEquipmentRepo) FindByID(ctx context.Context, id uint64) (*entities.Equipment, error) {
	if f.equipment == nil {
		return nil, apperrors.ErrNotFound
	}
	return f.equipment, nil
}

func (f *fakeEquipmentRepo) Create(ctx context.Context, eq *entities.Equipment) (uint64, error) {
	return 0, nil
}

func (f *fakeEquipmentRepo) Update(ctx context.Context, eq *entities.Equipment) error { return nil }
func (f *fakeEquipmentRepo) Delete(ctx context.Context, id uint64) error              { return nil }

func (f *fakeEquipmentRepo) UpsertByCode(ctx context.Context, eq *entities.Equipment) (bool, error) {
	return false, nil
}

type eventRecorder struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (r *eventRecorder) record(ctx context.Context, event eventbus.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *eventRecorder) first() eventbus.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[0]
}

// --- сборка сервиса ---

type workRequestFixture struct {
	svc       *WorkRequestService
	txManager *fakeTxManager
	requests  *fakeRequestRepo
	orders    *fakeOrderRepo
	recorder  *eventRecorder
}

func newWorkRequestFixture(t *testing.T, loads []dispatch.TechnicianLoad, at time.Time) *workRequestFixture {
	t.Helper()

	txManager := &fakeTxManager{}
	requests := &fakeRequestRepo{nextID: 100}
	orders := &fakeOrderRepo{nextID: 200}
	recorder := &eventRecorder{}

	bus := eventbus.New(zap.NewNop())
	bus.Subscribe("work_request.dispatched", recorder.record)
	bus.Subscribe("work_request.cancelled", recorder.record)

	policy := dispatch.Policy{
		Window: dispatch.Window{
			Start: 7*time.Hour + 30*time.Minute,
			End:   17*time.Hour + 30*time.Minute,
		},
		NotifyDelay: 10 * time.Second,
	}

	svc := NewWorkRequestService(
		txManager, requests, orders,
		&fakeTechnicianRepo{loads: loads},
		&fakeAdminRepo{userIDs: []uint64{50}},
		&fakeUserRepo{user: &entities.User{ID: 5, Fio: "Клиент", RoleName: constants.RoleClient}},
		&fakeEquipmentRepo{equipment: &entities.Equipment{ID: 9, Name: "Компрессор", Code: "CMP-1"}},
		authz.NewGatekeeper(), policy, bus, zap.NewNop(),
	).(*WorkRequestService)
	svc.now = func() time.Time { return at }

	return &workRequestFixture{
		svc:       svc,
		txManager: txManager,
		requests:  requests,
		orders:    orders,
		recorder:  recorder,
	}
}

func requesterCtx(perms ...string) context.Context {
	permsMap := make(map[string]bool)
	for _, p := range perms {
		permsMap[p] = true
	}
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, uint64(5))
	ctx = context.WithValue(ctx, contextkeys.RoleIDKey, uint64(4))
	return context.WithValue(ctx, contextkeys.UserPermissionsMapKey, permsMap)
}

var createPayload = dto.CreateWorkRequestDTO{
	EquipmentID: 9,
	Description: "Компрессор не держит давление",
	Priority:    constants.PriorityHigh,
}

// --- тесты ---

func TestWorkRequestCreate_OutsideHours_AutoAssigns(t *testing.T) {
	at := time.Date(2025, 8, 1, 21, 0, 0, 0, time.UTC)
	fx := newWorkRequestFixture(t, []dispatch.TechnicianLoad{
		{TechnicianID: 1, UserID: 11, Status: constants.TechnicianActive, OrdersCount: 3},
		{TechnicianID: 2, UserID: 12, Status: constants.TechnicianActive, OrdersCount: 1, DeviceToken: "tok-2"},
	}, at)

	res, err := fx.svc.Create(requesterCtx(authz.WorkRequestCreate), createPayload)
	require.NoError(t, err)

	assert.Equal(t, "auto_assign", res.Mode)
	require.NotNil(t, res.WorkOrder)

	// Заявка сразу в работе, ордер достался наименее загруженному.
	require.NotNil(t, fx.requests.created)
	assert.Equal(t, constants.RequestStatusInProgress, fx.requests.created.Status)
	require.NotNil(t, fx.orders.created)
	assert.Equal(t, uint64(2), fx.orders.created.MaintenanceTechnicianID.Uint64)
	assert.Equal(t, constants.OrderTypeCurative, fx.orders.created.Type)
	assert.Equal(t, constants.AutoOrderDescription, fx.orders.created.Description)
	assert.Equal(t, []string{constants.OrderLogCreated}, fx.orders.logs)
	assert.Equal(t, 1, fx.txManager.calls)

	require.Eventually(t, func() bool { return fx.recorder.count() == 1 }, time.Second, 5*time.Millisecond)
	event, ok := fx.recorder.first().(events.WorkRequestDispatchedEvent)
	require.True(t, ok)
	assert.Equal(t, uint64(100), event.RequestID)
	assert.Equal(t, uint64(200), event.WorkOrderID)
	assert.Equal(t, dispatch.ModeAutoAssign, event.Outcome.Mode)
}

func TestWorkRequestCreate_BusinessHours_GoesToAdminReview(t *testing.T) {
	at := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	fx := newWorkRequestFixture(t, []dispatch.TechnicianLoad{
		{TechnicianID: 1, UserID: 11, Status: constants.TechnicianActive},
	}, at)

	res, err := fx.svc.Create(requesterCtx(authz.WorkRequestCreate), createPayload)
	require.NoError(t, err)

	assert.Equal(t, "admin_review", res.Mode)
	assert.Nil(t, res.WorkOrder)
	assert.Equal(t, constants.RequestStatusPending, fx.requests.created.Status)
	assert.Nil(t, fx.orders.created)

	require.Eventually(t, func() bool { return fx.recorder.count() == 1 }, time.Second, 5*time.Millisecond)
	event := fx.recorder.first().(events.WorkRequestDispatchedEvent)
	assert.Equal(t, dispatch.ModeAdminReview, event.Outcome.Mode)
}

func TestWorkRequestCreate_NoActiveTechnicians_StaysPending(t *testing.T) {
	at := time.Date(2025, 8, 1, 21, 0, 0, 0, time.UTC)
	fx := newWorkRequestFixture(t, []dispatch.TechnicianLoad{
		{TechnicianID: 1, UserID: 11, Status: constants.TechnicianInactive},
	}, at)

	res, err := fx.svc.Create(requesterCtx(authz.WorkRequestCreate), createPayload)
	require.NoError(t, err)

	assert.Equal(t, "no_technician", res.Mode)
	assert.Nil(t, res.WorkOrder)
	assert.Equal(t, constants.RequestStatusPending, fx.requests.created.Status)
}

func TestWorkRequestCreate_OrderFailureAbortsDispatch(t *testing.T) {
	at := time.Date(2025, 8, 1, 21, 0, 0, 0, time.UTC)
	fx := newWorkRequestFixture(t, []dispatch.TechnicianLoad{
		{TechnicianID: 1, UserID: 11, Status: constants.TechnicianActive},
	}, at)
	fx.orders.createErr = fmt.Errorf("нарушение ограничения БД")

	_, err := fx.svc.Create(requesterCtx(authz.WorkRequestCreate), createPayload)
	require.Error(t, err)

	// Событие не публиковалось: транзакция не зафиксирована.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, fx.recorder.count())
}

func TestWorkRequestCreate_WithoutPermission(t *testing.T) {
	at := time.Date(2025, 8, 1, 21, 0, 0, 0, time.UTC)
	fx := newWorkRequestFixture(t, nil, at)

	_, err := fx.svc.Create(requesterCtx(), createPayload)
	require.Error(t, err)
	assert.Equal(t, 0, fx.txManager.calls)
}

func TestWorkRequestCancel_FromPending(t *testing.T) {
	at := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newWorkRequestFixture(t, nil, at)
	fx.requests.findOverride = &entities.WorkRequest{
		ID: 42, UserID: 5, Status: constants.RequestStatusPending,
	}

	err := fx.svc.Cancel(requesterCtx(authz.WorkRequestEdit), 42)
	require.NoError(t, err)
	assert.Equal(t, constants.RequestStatusCancelled, fx.requests.statusByID[42])

	require.Eventually(t, func() bool { return fx.recorder.count() == 1 }, time.Second, 5*time.Millisecond)
	event := fx.recorder.first().(events.WorkRequestCancelledEvent)
	require.Len(t, event.Notifications, 1)
	assert.Equal(t, uint64(5), event.Notifications[0].UserID)
	assert.Equal(t, time.Duration(0), event.Notifications[0].Delay)
}

func TestWorkRequestCancel_FromDoneIsRejected(t *testing.T) {
	at := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newWorkRequestFixture(t, nil, at)
	fx.requests.findOverride = &entities.WorkRequest{
		ID: 42, UserID: 5, Status: constants.RequestStatusDone,
	}

	err := fx.svc.Cancel(requesterCtx(authz.WorkRequestEdit), 42)
	assert.ErrorIs(t, err, apperrors.ErrStatusTransition)
	assert.Empty(t, fx.requests.statusByID)
}

func TestWorkRequestUpdate_AllowedWhileInProgress(t *testing.T) {
	at := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newWorkRequestFixture(t, nil, at)
	fx.requests.findOverride = &entities.WorkRequest{
		ID: 42, UserID: 5, Status: constants.RequestStatusInProgress,
		Priority: constants.PriorityHigh,
	}

	desc := "обновлённое описание проблемы"
	_, err := fx.svc.Update(requesterCtx(authz.WorkRequestEdit), 42, dto.UpdateWorkRequestDTO{Description: &desc})
	require.NoError(t, err)

	// Редактирование не трогает статус заявки.
	require.NotNil(t, fx.requests.updated)
	assert.Equal(t, desc, fx.requests.updated.Description)
	assert.Equal(t, constants.RequestStatusInProgress, fx.requests.updated.Status)
}

// Право work_request_edit обязательно для изменяющих операций:
// владение заявкой его не заменяет.
func TestWorkRequestMutations_RequireEditCapability(t *testing.T) {
	at := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newWorkRequestFixture(t, nil, at)
	fx.requests.findOverride = &entities.WorkRequest{
		ID: 42, UserID: 5, Status: constants.RequestStatusPending,
	}

	err := fx.svc.Cancel(requesterCtx(), 42)
	require.Error(t, err)
	assert.Empty(t, fx.requests.statusByID, "отмена без права не должна менять статус")

	desc := "попытка без права"
	_, err = fx.svc.Update(requesterCtx(), 42, dto.UpdateWorkRequestDTO{Description: &desc})
	require.Error(t, err)
	assert.Nil(t, fx.requests.updated)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, fx.recorder.count(), "события не должны публиковаться")
}
